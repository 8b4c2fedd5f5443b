package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"roveri/internal/api"
	"roveri/internal/chat"
	"roveri/internal/session"
	"roveri/internal/storage"
	"roveri/internal/ui"
	"roveri/internal/utils"
)

func main() {
	server := flag.String("server", "http://localhost:8000/api/", "backend API base URL")
	logPort := flag.Int("log-port", 0, "TCP port for the remote diagnostics log (0 disables)")
	configDir := flag.String("config-dir", "", "config directory (default ~/.roveri)")
	flag.Parse()

	dir := *configDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get user home directory: %v", err)
		}
		dir = filepath.Join(home, ".roveri")
	}

	rl, err := utils.NewRemoteLogger(*logPort)
	if err != nil {
		log.Printf("Failed to start remote logger: %v", err)
	}
	defer rl.Close()

	store, err := storage.Open(filepath.Join(dir, "roveri.db"))
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}
	defer store.Close()

	themeName, err := store.LoadTheme()
	if err != nil || themeName == "" {
		themeName = "default_theme"
	}
	theme, err := ui.LoadThemeFromDir(dir, themeName)
	if err != nil {
		rl.Logf("[main] failed to load theme %q, using default: %v", themeName, err)
		theme = ui.DefaultTheme()
	}

	client, err := api.NewClient(*server, store, rl)
	if err != nil {
		log.Fatalf("Invalid server URL %q: %v", *server, err)
	}

	app := &App{
		API:   client,
		Store: store,
		Log:   rl,
		Ctx:   context.Background(),
	}
	app.Session = session.NewManager(client, store, rl)
	app.Chat = chat.NewController(client, rl)

	app.UI = ui.NewUI(&ui.Config{
		Theme: theme,

		LoginHandler:    app.LoginHandler,
		RegisterHandler: app.RegisterHandler,
		LogoutHandler:   app.LogoutHandler,

		LoadRoomsHandler:  app.LoadRoomsHandler,
		SelectRoomHandler: app.SelectRoomHandler,
		SendHandler:       app.SendHandler,

		LoadPetsHandler:       app.LoadPetsHandler,
		ToggleFavoriteHandler: app.ToggleFavoriteHandler,
		AdoptHandler:          app.AdoptHandler,

		SaveProfileHandler: app.SaveProfileHandler,

		LoadAdminHandler:   app.LoadAdminHandler,
		AdminActionHandler: app.AdminActionHandler,
	})

	app.Chat.SetOnChange(app.renderChat)
	app.Session.SetOnChange(app.routeForSession)

	defer app.Shutdown()

	go app.Session.Bootstrap(app.Ctx)

	rl.Logf("Roveri client started against %s", *server)
	if err := app.UI.App.Run(); err != nil {
		log.Fatalf("Failed to run UI: %v", err)
	}
}
