package ui

import (
	"github.com/rivo/tview"
)

const banner = `Roveri
Find a friend, give a home.`

type WelcomeScreen struct {
	ui     *UI
	layout *tview.Flex
}

func newWelcomeScreen(u *UI) *WelcomeScreen {
	s := &WelcomeScreen{ui: u}

	text := tview.NewTextView().
		SetText(banner).
		SetTextAlign(tview.AlignCenter)
	text.SetTextColor(u.Theme.Color(ColorAccent))

	menu := tview.NewList().
		AddItem("Sign in", "Use an existing account", 'l', func() {
			u.Pages.SwitchToPage(PageLogin)
		}).
		AddItem("Create account", "Register as a new adopter", 'r', func() {
			u.Pages.SwitchToPage(PageRegister)
		}).
		AddItem("Quit", "", 'q', func() {
			u.App.Stop()
		})
	menu.SetBackgroundColor(u.Theme.Color(ColorBackground))

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(text, 4, 0, false).
		AddItem(menu, 0, 1, true)
	return s
}
