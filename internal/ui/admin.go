package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"roveri/internal/api"
	"roveri/internal/models"
)

type AdminScreen struct {
	ui     *UI
	layout *tview.Flex

	UserList *tview.List
	stats    *tview.TextView
	users    []models.Identity
}

func newAdminScreen(u *UI) *AdminScreen {
	s := &AdminScreen{ui: u}

	s.UserList = tview.NewList().ShowSecondaryText(true)
	s.UserList.SetBorder(true).SetTitle(" Users ")
	s.UserList.SetInputCapture(s.handleKey)

	s.stats = tview.NewTextView().SetDynamicColors(true)
	s.stats.SetBorder(true).SetTitle(" Stats ")

	help := tview.NewTextView().
		SetText("b: block  u: unblock  d: delete  r: refresh  esc: back").
		SetTextAlign(tview.AlignCenter)
	help.SetTextColor(u.Theme.Color(ColorMuted))

	body := tview.NewFlex().
		AddItem(s.UserList, 0, 2, true).
		AddItem(s.stats, 0, 1, false)

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(help, 1, 0, false)
	return s
}

func (s *AdminScreen) handleKey(event *tcell.EventKey) *tcell.EventKey {
	u := s.ui
	if event.Key() == tcell.KeyEscape {
		u.Pages.SwitchToPage(PageBrowse)
		return nil
	}
	action := ""
	switch event.Rune() {
	case 'b':
		action = api.AdminBlock
	case 'u':
		action = api.AdminUnblock
	case 'd':
		action = api.AdminDelete
	case 'r':
		if u.cfg.LoadAdminHandler != nil {
			go u.cfg.LoadAdminHandler()
		}
		return nil
	default:
		return event
	}

	index := s.UserList.GetCurrentItem()
	if index < 0 || index >= len(s.users) || u.cfg.AdminActionHandler == nil {
		return nil
	}
	user := s.users[index]
	if action == api.AdminDelete {
		u.Confirm(fmt.Sprintf("Delete account %s?", user.Email), func() {
			u.cfg.AdminActionHandler(user.ID, action)
		})
		return nil
	}
	go u.cfg.AdminActionHandler(user.ID, action)
	return nil
}

// SetUsers redraws the account list. Safe from any goroutine.
func (s *AdminScreen) SetUsers(users []models.Identity) {
	s.ui.App.QueueUpdateDraw(func() {
		s.users = users
		s.UserList.Clear()
		for _, user := range users {
			state := "active"
			if !user.IsActive {
				state = "blocked"
			}
			s.UserList.AddItem(user.DisplayName(), fmt.Sprintf("%s (%s)", user.Email, state), 0, nil)
		}
	})
}

// SetStats redraws the counters panel.
func (s *AdminScreen) SetStats(stats *models.Stats) {
	s.ui.App.QueueUpdateDraw(func() {
		s.stats.Clear()
		if stats == nil {
			return
		}
		fmt.Fprintf(s.stats, "Pets: %d\nAvailable: %d\nAdopted: %d\nUsers: %d\n",
			stats.TotalPets, stats.AvailablePets, stats.AdoptedPets, stats.TotalUsers)
	})
}
