package ui

import (
	"github.com/rivo/tview"
)

type LoginScreen struct {
	ui     *UI
	layout *tview.Flex
	form   *tview.Form
	status *tview.TextView
}

func newLoginScreen(u *UI) *LoginScreen {
	s := &LoginScreen{ui: u}

	s.status = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	s.status.SetTextColor(u.Theme.Color(ColorError))

	s.form = tview.NewForm().
		AddInputField("Email", "", 40, nil, nil).
		AddPasswordField("Password", "", 40, '*', nil)
	s.form.AddButton("Sign in", func() {
		email := s.form.GetFormItemByLabel("Email").(*tview.InputField).GetText()
		password := s.form.GetFormItemByLabel("Password").(*tview.InputField).GetText()
		if u.cfg.LoginHandler != nil {
			go u.cfg.LoginHandler(email, password)
		}
	})
	s.form.AddButton("Back", func() {
		s.SetStatus("")
		u.Pages.SwitchToPage(PageWelcome)
	})
	s.form.SetBorder(true).SetTitle(" Sign in ")

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.status, 1, 0, false).
		AddItem(s.form, 0, 1, true)
	return s
}

// SetStatus shows an inline failure message. Safe from any goroutine
// when wrapped by the caller in QueueUpdateDraw; handlers use
// ShowStatus instead.
func (s *LoginScreen) SetStatus(msg string) {
	s.status.SetText(msg)
}

func (s *LoginScreen) ShowStatus(msg string) {
	s.ui.App.QueueUpdateDraw(func() { s.SetStatus(msg) })
}

type RegisterScreen struct {
	ui     *UI
	layout *tview.Flex
	form   *tview.Form
	status *tview.TextView
}

func newRegisterScreen(u *UI) *RegisterScreen {
	s := &RegisterScreen{ui: u}

	s.status = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	s.status.SetTextColor(u.Theme.Color(ColorError))

	s.form = tview.NewForm().
		AddInputField("First name", "", 30, nil, nil).
		AddInputField("Last name", "", 30, nil, nil).
		AddInputField("Email", "", 40, nil, nil).
		AddPasswordField("Password", "", 40, '*', nil).
		AddInputField("Phone", "", 20, nil, nil).
		AddInputField("City", "", 30, nil, nil)
	s.form.AddButton("Register", func() {
		reg := RegistrationForm{
			FirstName: s.field("First name"),
			LastName:  s.field("Last name"),
			Email:     s.field("Email"),
			Password:  s.field("Password"),
			Phone:     s.field("Phone"),
			City:      s.field("City"),
		}
		if u.cfg.RegisterHandler != nil {
			go u.cfg.RegisterHandler(reg)
		}
	})
	s.form.AddButton("Back", func() {
		s.SetStatus("")
		u.Pages.SwitchToPage(PageWelcome)
	})
	s.form.SetBorder(true).SetTitle(" Create account ")

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.status, 1, 0, false).
		AddItem(s.form, 0, 1, true)
	return s
}

func (s *RegisterScreen) field(label string) string {
	return s.form.GetFormItemByLabel(label).(*tview.InputField).GetText()
}

func (s *RegisterScreen) SetStatus(msg string) {
	s.status.SetText(msg)
}

func (s *RegisterScreen) ShowStatus(msg string) {
	s.ui.App.QueueUpdateDraw(func() { s.SetStatus(msg) })
}
