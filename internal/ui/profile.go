package ui

import (
	"github.com/rivo/tview"

	"roveri/internal/models"
)

type ProfileScreen struct {
	ui     *UI
	layout *tview.Flex
	form   *tview.Form
	status *tview.TextView
}

func newProfileScreen(u *UI) *ProfileScreen {
	s := &ProfileScreen{ui: u}

	s.status = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	s.status.SetTextColor(u.Theme.Color(ColorAccent))

	s.form = tview.NewForm().
		AddInputField("First name", "", 30, nil, nil).
		AddInputField("Last name", "", 30, nil, nil).
		AddInputField("Phone", "", 20, nil, nil).
		AddInputField("City", "", 30, nil, nil).
		AddInputField("Avatar path", "", 40, nil, nil).
		AddInputField("Theme", "", 20, nil, nil)
	s.form.AddButton("Save", func() {
		fields := map[string]string{
			"first_name": s.field("First name"),
			"last_name":  s.field("Last name"),
			"phone":      s.field("Phone"),
			"city":       s.field("City"),
			"avatar":     s.field("Avatar path"),
			"theme":      s.field("Theme"),
		}
		if u.cfg.SaveProfileHandler != nil {
			go u.cfg.SaveProfileHandler(fields)
		}
	})
	s.form.AddButton("Back", func() {
		s.status.SetText("")
		u.Pages.SwitchToPage(PageBrowse)
	})
	s.form.SetBorder(true).SetTitle(" Profile ")

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.status, 1, 0, false).
		AddItem(s.form, 0, 1, true)
	return s
}

func (s *ProfileScreen) field(label string) string {
	return s.form.GetFormItemByLabel(label).(*tview.InputField).GetText()
}

// Fill pre-populates the form from the current identity and theme.
func (s *ProfileScreen) Fill(id *models.Identity) {
	s.ui.App.QueueUpdateDraw(func() {
		s.setField("Theme", s.ui.Theme.Name)
		if id == nil {
			return
		}
		s.setField("First name", id.FirstName)
		s.setField("Last name", id.LastName)
		s.setField("Phone", id.Profile.Phone)
		s.setField("City", id.Profile.City)
	})
}

func (s *ProfileScreen) setField(label, value string) {
	s.form.GetFormItemByLabel(label).(*tview.InputField).SetText(value)
}

func (s *ProfileScreen) ShowStatus(msg string) {
	s.ui.App.QueueUpdateDraw(func() { s.status.SetText(msg) })
}
