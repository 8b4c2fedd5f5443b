// Package ui holds the tview screens. Screens render snapshots and
// forward every action to handlers injected by the application; no
// screen talks to the network or mutates shared state itself.
package ui

import (
	"github.com/rivo/tview"

	"roveri/internal/models"
)

// Page names for the root Pages container.
const (
	PageWelcome  = "welcome"
	PageLogin    = "login"
	PageRegister = "register"
	PageBrowse   = "browse"
	PageChat     = "chat"
	PageProfile  = "profile"
	PageAdmin    = "admin"
	PageLoading  = "loading"
)

// Config carries the theme and the application handlers each screen
// calls. Handlers are expected to do their own work off the UI
// goroutine and push results back via the Set* methods.
type Config struct {
	Theme *Theme

	LoginHandler    func(email, password string)
	RegisterHandler func(reg RegistrationForm)
	LogoutHandler   func()

	LoadRoomsHandler  func()
	SelectRoomHandler func(room *models.Room)
	SendHandler       func(text string)

	LoadPetsHandler       func(species, status string)
	ToggleFavoriteHandler func(pet models.Pet)
	AdoptHandler          func(pet models.Pet)

	SaveProfileHandler func(fields map[string]string)

	LoadAdminHandler   func()
	AdminActionHandler func(userID int64, action string)
}

type RegistrationForm struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	City      string
}

type UI struct {
	App   *tview.Application
	Pages *tview.Pages
	Theme *Theme
	cfg   *Config

	Welcome  *WelcomeScreen
	Login    *LoginScreen
	Register *RegisterScreen
	Browse   *BrowseScreen
	Chat     *ChatScreen
	Profile  *ProfileScreen
	Admin    *AdminScreen
}

func NewUI(cfg *Config) *UI {
	u := &UI{
		App:   tview.NewApplication().EnableMouse(true),
		Theme: cfg.Theme,
		cfg:   cfg,
	}

	u.Welcome = newWelcomeScreen(u)
	u.Login = newLoginScreen(u)
	u.Register = newRegisterScreen(u)
	u.Browse = newBrowseScreen(u)
	u.Chat = newChatScreen(u)
	u.Profile = newProfileScreen(u)
	u.Admin = newAdminScreen(u)

	u.Pages = tview.NewPages().
		AddPage(PageWelcome, u.Welcome.layout, true, true).
		AddPage(PageLogin, u.Login.layout, true, false).
		AddPage(PageRegister, u.Register.layout, true, false).
		AddPage(PageBrowse, u.Browse.layout, true, false).
		AddPage(PageChat, u.Chat.layout, true, false).
		AddPage(PageProfile, u.Profile.layout, true, false).
		AddPage(PageAdmin, u.Admin.layout, true, false).
		AddPage(PageLoading, loadingView(u.Theme), true, false)

	u.App.SetRoot(u.Pages, true).SetFocus(u.Pages)
	return u
}

// SwitchTo changes the visible page. Safe from any goroutine.
func (u *UI) SwitchTo(page string) {
	u.App.QueueUpdateDraw(func() {
		u.Pages.SwitchToPage(page)
	})
}

// CurrentPage returns the name of the visible page.
func (u *UI) CurrentPage() string {
	name, _ := u.Pages.GetFrontPage()
	return name
}

func loadingView(theme *Theme) tview.Primitive {
	text := tview.NewTextView().
		SetText("Loading...").
		SetTextAlign(tview.AlignCenter)
	text.SetTextColor(theme.Color(ColorMuted))
	text.SetBackgroundColor(theme.Color(ColorBackground))
	return text
}
