package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"roveri/internal/api"
	"roveri/internal/chat"
	"roveri/internal/session"
	"roveri/internal/storage"
	"roveri/internal/ui"
	"roveri/internal/utils"
)

func testApp(t *testing.T, handler http.Handler) *App {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := storage.Open(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	log, err := utils.NewRemoteLogger(0)
	require.NoError(t, err)

	client, err := api.NewClient(srv.URL+"/api/", store, log)
	require.NoError(t, err)

	app := &App{
		API:   client,
		Store: store,
		Log:   log,
		Ctx:   context.Background(),
	}
	app.Session = session.NewManager(client, store, log)
	app.Chat = chat.NewController(client, log)
	app.UI = ui.NewUI(&ui.Config{Theme: ui.DefaultTheme()})

	// Handlers refresh screens through QueueUpdateDraw, which blocks
	// until a running event loop drains the queue; drive it with a
	// simulation screen so those calls complete.
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	app.UI.App.SetScreen(screen)
	go app.UI.App.Run()
	t.Cleanup(app.UI.App.Stop)
	return app
}

func TestSaveProfilePersistsThemeChoice(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/accounts/profile/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "first_name": "Ana"})
	})
	mux.HandleFunc("GET /api/accounts/user/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "first_name": "Ana"})
	})
	app := testApp(t, mux)

	app.SaveProfileHandler(map[string]string{
		"first_name": "Ana",
		"theme":      "midnight",
	})

	name, err := app.Store.LoadTheme()
	require.NoError(t, err)
	require.Equal(t, "midnight", name, "picked up on the next start")
}

func TestSaveProfileKeepsStoredThemeWhenFieldEmpty(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/accounts/profile/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1})
	})
	mux.HandleFunc("GET /api/accounts/user/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1})
	})
	app := testApp(t, mux)
	require.NoError(t, app.Store.SaveTheme("midnight"))

	app.SaveProfileHandler(map[string]string{"first_name": "Ana", "theme": "  "})

	name, err := app.Store.LoadTheme()
	require.NoError(t, err)
	require.Equal(t, "midnight", name)
}
