package ui

import "github.com/rivo/tview"

const pageModal = "modal"

// ShowError pops a blocking modal with a single dismiss button. Safe
// from any goroutine.
func (u *UI) ShowError(title, message string) {
	u.App.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(title + "\n\n" + message).
			AddButtons([]string{"OK"}).
			SetDoneFunc(func(int, string) {
				u.Pages.RemovePage(pageModal)
			})
		modal.SetBackgroundColor(u.Theme.Color(ColorBackground))
		u.Pages.AddPage(pageModal, modal, true, true)
	})
}

// Confirm asks a yes/no question and runs onYes on confirmation.
func (u *UI) Confirm(message string, onYes func()) {
	u.App.QueueUpdateDraw(func() {
		modal := tview.NewModal().
			SetText(message).
			AddButtons([]string{"Yes", "No"}).
			SetDoneFunc(func(_ int, label string) {
				u.Pages.RemovePage(pageModal)
				if label == "Yes" && onYes != nil {
					go onYes()
				}
			})
		u.Pages.AddPage(pageModal, modal, true, true)
	})
}
