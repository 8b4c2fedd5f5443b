package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"roveri/internal/models"
)

type BrowseScreen struct {
	ui     *UI
	layout *tview.Flex

	PetList *tview.List
	detail  *tview.TextView
	pets    []models.Pet
}

func newBrowseScreen(u *UI) *BrowseScreen {
	s := &BrowseScreen{ui: u}

	s.PetList = tview.NewList().ShowSecondaryText(true)
	s.PetList.SetBorder(true).SetTitle(" Pets ")
	s.PetList.SetChangedFunc(func(index int, _, _ string, _ rune) {
		s.renderDetail(index)
	})
	s.PetList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index < 0 || index >= len(s.pets) {
			return
		}
		pet := s.pets[index]
		if pet.Status == models.PetAvailable && u.cfg.AdoptHandler != nil {
			go u.cfg.AdoptHandler(pet)
		}
	})
	s.PetList.SetInputCapture(s.handleKey)

	s.detail = tview.NewTextView().SetDynamicColors(true).SetWordWrap(true)
	s.detail.SetBorder(true).SetTitle(" Details ")

	help := tview.NewTextView().
		SetText("enter: open chat with owner  f: favorite  r: refresh  c: chat  p: profile  a: admin  q: sign out").
		SetTextAlign(tview.AlignCenter)
	help.SetTextColor(u.Theme.Color(ColorMuted))

	body := tview.NewFlex().
		AddItem(s.PetList, 0, 1, true).
		AddItem(s.detail, 0, 1, false)

	s.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(body, 0, 1, true).
		AddItem(help, 1, 0, false)
	return s
}

func (s *BrowseScreen) handleKey(event *tcell.EventKey) *tcell.EventKey {
	u := s.ui
	switch event.Rune() {
	case 'f':
		index := s.PetList.GetCurrentItem()
		if index >= 0 && index < len(s.pets) && u.cfg.ToggleFavoriteHandler != nil {
			go u.cfg.ToggleFavoriteHandler(s.pets[index])
		}
		return nil
	case 'r':
		if u.cfg.LoadPetsHandler != nil {
			go u.cfg.LoadPetsHandler("", "")
		}
		return nil
	case 'c':
		u.Pages.SwitchToPage(PageChat)
		if u.cfg.LoadRoomsHandler != nil {
			go u.cfg.LoadRoomsHandler()
		}
		return nil
	case 'p':
		u.Pages.SwitchToPage(PageProfile)
		return nil
	case 'a':
		u.Pages.SwitchToPage(PageAdmin)
		if u.cfg.LoadAdminHandler != nil {
			go u.cfg.LoadAdminHandler()
		}
		return nil
	case 'q':
		if u.cfg.LogoutHandler != nil {
			go u.cfg.LogoutHandler()
		}
		return nil
	}
	return event
}

// SetPets redraws the catalog. Safe from any goroutine.
func (s *BrowseScreen) SetPets(pets []models.Pet) {
	s.ui.App.QueueUpdateDraw(func() {
		s.pets = pets
		s.PetList.Clear()
		if len(pets) == 0 {
			s.PetList.AddItem("No pets found", "", 0, nil)
			s.detail.Clear()
			return
		}
		for _, pet := range pets {
			label := pet.Name
			if pet.IsFavorite {
				label = "* " + label
			}
			secondary := strings.TrimSpace(fmt.Sprintf("%s %s, %s", pet.Species, pet.Breed, pet.Status))
			s.PetList.AddItem(label, secondary, 0, nil)
		}
		s.renderDetail(s.PetList.GetCurrentItem())
	})
}

func (s *BrowseScreen) renderDetail(index int) {
	s.detail.Clear()
	if index < 0 || index >= len(s.pets) {
		return
	}
	pet := s.pets[index]
	fmt.Fprintf(s.detail, "[::b]%s[-:-:-]\n\n", pet.Name)
	fmt.Fprintf(s.detail, "Species: %s\nBreed: %s\nAge: %d\nStatus: %s\nOwner: %s\n\n%s",
		pet.Species, pet.Breed, pet.Age, pet.Status, pet.OwnerUsername, pet.Description)
}
