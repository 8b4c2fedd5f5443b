package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"roveri/internal/models"
	"roveri/internal/utils"
)

type ChatScreen struct {
	ui     *UI
	layout *tview.Flex

	RoomList    *tview.List
	MessagePane *tview.TextView
	Input       *tview.InputField
	header      *tview.TextView

	rooms []models.Room
}

func newChatScreen(u *UI) *ChatScreen {
	s := &ChatScreen{ui: u}

	s.RoomList = tview.NewList().ShowSecondaryText(false)
	s.RoomList.SetBorder(true).SetTitle(" Rooms ")
	s.RoomList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(s.rooms) && u.cfg.SelectRoomHandler != nil {
			room := s.rooms[index]
			go u.cfg.SelectRoomHandler(&room)
		}
	})

	s.header = tview.NewTextView().SetTextAlign(tview.AlignLeft)
	s.header.SetText("Select a room")
	s.header.SetTextColor(u.Theme.Color(ColorAccent))

	s.MessagePane = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	s.MessagePane.SetBorder(true)

	s.Input = tview.NewInputField().SetLabel("> ")
	s.Input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := s.Input.GetText()
		if u.cfg.SendHandler != nil {
			go u.cfg.SendHandler(text)
		}
	})

	panel := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(s.header, 1, 0, false).
		AddItem(s.MessagePane, 0, 1, false).
		AddItem(s.Input, 1, 0, true)

	s.layout = tview.NewFlex().
		AddItem(s.RoomList, 30, 0, true).
		AddItem(panel, 0, 1, false)
	return s
}

// SetRooms redraws the sidebar. Safe from any goroutine.
func (s *ChatScreen) SetRooms(rooms []models.Room) {
	s.ui.App.QueueUpdateDraw(func() {
		s.rooms = rooms
		s.RoomList.Clear()
		if len(rooms) == 0 {
			s.RoomList.AddItem("No rooms yet", "", 0, nil)
			return
		}
		for _, room := range rooms {
			s.RoomList.AddItem(room.Label(), "", 0, nil)
		}
	})
}

// SetActive updates the header for the selected room (nil resets it).
func (s *ChatScreen) SetActive(room *models.Room) {
	s.ui.App.QueueUpdateDraw(func() {
		if room == nil {
			s.header.SetText("Select a room")
			return
		}
		s.header.SetText(room.Label())
	})
}

// SetMessages redraws the message pane from a log snapshot.
func (s *ChatScreen) SetMessages(msgs []models.Message, selfID int64) {
	s.ui.App.QueueUpdateDraw(func() {
		s.MessagePane.Clear()
		if len(msgs) == 0 {
			fmt.Fprint(s.MessagePane, "[gray]No messages yet. Send the first one below.[-]")
			return
		}
		for _, m := range msgs {
			sender := m.SenderUsername
			if sender == "" {
				sender = "Anonymous"
			}
			color := "white"
			if m.Sender == selfID && selfID != 0 {
				color = "aqua"
			}
			when := utils.FormatPrettyTime(utils.ParseWireTime(m.Timestamp))
			if when != "" {
				fmt.Fprintf(s.MessagePane, "[yellow][%s] [%s]%s:[-] %s\n", when, color, sender, m.Content)
			} else {
				fmt.Fprintf(s.MessagePane, "[%s]%s:[-] %s\n", color, sender, m.Content)
			}
		}
		s.MessagePane.ScrollToEnd()
	})
}

// ClearInput empties the draft field. Called only after a send was
// accepted, so a failed send keeps the draft for retry.
func (s *ChatScreen) ClearInput() {
	s.ui.App.QueueUpdateDraw(func() {
		s.Input.SetText("")
	})
}
