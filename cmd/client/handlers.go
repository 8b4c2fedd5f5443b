package main

import (
	"context"

	"roveri/internal/api"
	"roveri/internal/chat"
	"roveri/internal/models"
	"roveri/internal/session"
	"roveri/internal/storage"
	"roveri/internal/ui"
	"roveri/internal/utils"
)

// App wires the UI to the session manager and chat controller. All
// handlers run off the UI goroutine; screens are updated through their
// queue-safe setters.
type App struct {
	API     *api.Client
	Store   *storage.Store
	Session *session.Manager
	Chat    *chat.Controller
	UI      *ui.UI
	Log     *utils.RemoteLogger
	Ctx     context.Context
}

func (a *App) Shutdown() {
	a.Chat.Close()
}

// routeForSession applies the route-guard contract whenever the session
// state changes: loading shows the spinner, a definitive sign-out goes
// to the welcome entry point, anything else keeps (or enters) the
// protected content.
func (a *App) routeForSession() {
	state := a.Session.Snapshot()
	switch session.Decide(state) {
	case session.ShowLoading:
		a.UI.SwitchTo(ui.PageLoading)
	case session.Redirect:
		switch a.UI.CurrentPage() {
		case ui.PageWelcome, ui.PageLogin, ui.PageRegister:
			// Already on a public page; stay put.
		default:
			a.UI.SwitchTo(ui.PageWelcome)
		}
	case session.Allow:
		switch a.UI.CurrentPage() {
		case ui.PageWelcome, ui.PageLoading:
			if state.Identity != nil || state.Degraded {
				a.enterMain()
			}
		}
	}
}

func (a *App) enterMain() {
	a.UI.Profile.Fill(a.Session.Snapshot().Identity)
	a.UI.SwitchTo(ui.PageBrowse)
	go a.LoadPetsHandler("", "")
}

func (a *App) LoginHandler(email, password string) {
	if err := utils.ValidateEmail(email); err != nil {
		a.UI.Login.ShowStatus(err.Error())
		return
	}
	res := a.Session.Login(a.Ctx, api.Credentials{Email: email, Password: password})
	if !res.OK {
		a.UI.Login.ShowStatus(res.Err)
		return
	}
	a.UI.Login.ShowStatus("")
	a.enterMain()
}

func (a *App) RegisterHandler(reg ui.RegistrationForm) {
	if err := utils.ValidateName(reg.FirstName); err != nil {
		a.UI.Register.ShowStatus(err.Error())
		return
	}
	if err := utils.ValidateEmail(reg.Email); err != nil {
		a.UI.Register.ShowStatus(err.Error())
		return
	}
	if err := utils.ValidatePassword(reg.Password); err != nil {
		a.UI.Register.ShowStatus(err.Error())
		return
	}
	res := a.Session.Register(a.Ctx, api.Registration{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Password:  reg.Password,
		Phone:     reg.Phone,
		City:      reg.City,
	})
	if !res.OK {
		a.UI.Register.ShowStatus(res.Err)
		return
	}
	a.UI.Register.ShowStatus("")
	a.enterMain()
}

func (a *App) LogoutHandler() {
	a.Chat.Close()
	a.Session.Logout(a.Ctx)
	a.UI.SwitchTo(ui.PageWelcome)
}

func (a *App) LoadRoomsHandler() {
	rooms, err := a.Chat.ListRooms(a.Ctx)
	if err != nil {
		a.Log.Logf("[app] failed to load rooms: %v", err)
		a.UI.Chat.SetRooms(nil)
		return
	}
	a.UI.Chat.SetRooms(rooms)
}

func (a *App) SelectRoomHandler(room *models.Room) {
	a.UI.Chat.SetActive(room)
	a.Chat.SetActiveRoom(a.Ctx, room)
}

// SendHandler clears the draft only once the message was accepted by
// whichever path took it. A failed send shows a blocking notification;
// a no-op (empty trim, no room selected) keeps the draft too.
func (a *App) SendHandler(text string) {
	sent, err := a.Chat.SendMessage(a.Ctx, text)
	if err != nil {
		a.UI.ShowError("Send failed", api.ErrorMessage(err))
		return
	}
	if sent {
		a.UI.Chat.ClearInput()
	}
}

// renderChat pushes the controller's current snapshot to the chat
// screen. Registered as the controller's change hook.
func (a *App) renderChat() {
	var selfID int64
	if id := a.Session.Snapshot().Identity; id != nil {
		selfID = id.ID
	}
	a.UI.Chat.SetMessages(a.Chat.Messages(), selfID)
}
