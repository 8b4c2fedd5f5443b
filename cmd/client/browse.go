package main

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"roveri/internal/api"
	"roveri/internal/models"
	"roveri/internal/ui"
)

func (a *App) LoadPetsHandler(species, status string) {
	filters := url.Values{}
	if species != "" {
		filters.Set("species", species)
	}
	if status != "" {
		filters.Set("status", status)
	}
	pets, err := a.API.ListPets(a.Ctx, filters)
	if err != nil {
		a.Log.Logf("[app] failed to load pets: %v", err)
		a.UI.Browse.SetPets(nil)
		return
	}
	a.UI.Browse.SetPets(pets)
}

func (a *App) ToggleFavoriteHandler(pet models.Pet) {
	var err error
	if pet.IsFavorite {
		err = a.API.RemoveFavorite(a.Ctx, pet.ID)
	} else {
		err = a.API.AddFavorite(a.Ctx, pet.ID)
	}
	if err != nil {
		a.UI.ShowError("Favorites", api.ErrorMessage(err))
		return
	}
	a.LoadPetsHandler("", "")
}

// AdoptHandler opens (or creates) the conversation with the pet's owner
// and jumps straight into it.
func (a *App) AdoptHandler(pet models.Pet) {
	room, err := a.API.OpenRoom(a.Ctx, pet.ID)
	if err != nil {
		a.UI.ShowError("Adoption", api.ErrorMessage(err))
		return
	}
	a.UI.SwitchTo(ui.PageChat)
	a.LoadRoomsHandler()
	// Prefer the cached copy: the create response omits the label fields.
	if full, err := a.Chat.RoomByID(room.ID); err == nil {
		room = full
	}
	a.SelectRoomHandler(room)
}

func (a *App) SaveProfileHandler(fields map[string]string) {
	avatarPath := fields["avatar"]
	delete(fields, "avatar")

	// The theme choice is a local preference, not a backend field.
	// Persist it up front; it is applied on the next start.
	if theme := strings.TrimSpace(fields["theme"]); theme != "" {
		if err := a.Store.SaveTheme(theme); err != nil {
			a.Log.Logf("[app] failed to persist theme choice: %v", err)
		}
	}
	delete(fields, "theme")

	var avatar *os.File
	avatarName := ""
	if avatarPath != "" {
		f, err := os.Open(avatarPath)
		if err != nil {
			a.UI.Profile.ShowStatus("Cannot read avatar file: " + err.Error())
			return
		}
		defer f.Close()
		avatar = f
		avatarName = filepath.Base(avatarPath)
	}

	var err error
	if avatar != nil {
		_, err = a.API.UpdateProfile(a.Ctx, fields, avatarName, avatar)
	} else {
		_, err = a.API.UpdateProfile(a.Ctx, fields, "", nil)
	}
	if err != nil {
		a.UI.Profile.ShowStatus(api.ErrorMessage(err))
		return
	}

	// Re-sync the session from the backend instead of waiting for the
	// next start.
	a.Session.Refresh(a.Ctx)
	a.UI.Profile.Fill(a.Session.Snapshot().Identity)
	a.UI.Profile.ShowStatus("Profile saved")
}

func (a *App) LoadAdminHandler() {
	// The page is reachable without a confirmed identity when the
	// backend is unreachable; admin calls would only time out.
	if a.Session.Snapshot().Identity == nil {
		a.UI.ShowError("Admin", models.ErrNotAuthenticated.Error())
		return
	}
	users, err := a.API.ListUsers(a.Ctx)
	if err != nil {
		a.UI.ShowError("Admin", api.ErrorMessage(err))
		return
	}
	a.UI.Admin.SetUsers(users)

	stats, err := a.API.Stats(a.Ctx)
	if err != nil {
		a.Log.Logf("[app] failed to load stats: %v", err)
		return
	}
	a.UI.Admin.SetStats(stats)
}

func (a *App) AdminActionHandler(userID int64, action string) {
	if err := a.API.UserAction(a.Ctx, userID, action); err != nil {
		a.UI.ShowError("Admin", api.ErrorMessage(err))
		return
	}
	a.LoadAdminHandler()
}
