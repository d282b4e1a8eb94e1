package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentra/group-booking/internal/flow"
	"github.com/mentra/group-booking/internal/intake"
)

const chatErrorText = "Sorry, I encountered an error. Please try again."

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		return m.handleKey(msg)

	case groupsMsg:
		if msg.err == nil {
			m.groups = msg.groups
		}
		return m, nil

	case chatMsg:
		m.busy = false
		if msg.err != nil {
			if !errors.Is(msg.err, intake.ErrEmptyMessage) {
				m.err = errors.New(chatErrorText)
			}
			return m, nil
		}
		m.err = nil
		if msg.turn.ProfileErr != nil {
			m.err = msg.turn.ProfileErr
		}
		if msg.turn.Profile != nil {
			m.state = m.state.WithProfile(msg.turn.Profile)
			m.cursor = 0
			m.chatInput.Blur()
		}
		return m, nil

	case groupMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.state = m.state.ViewGroup(msg.group)
		m.cursor = 0
		return m, nil

	case bookedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.state = m.state.Booked(msg.resp)
		m.nameInput.Blur()
		m.emailInput.Blur()
		return m, nil

	case handoffMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.state = m.state.WithHandoff(msg.resp)
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Saved " + msg.path
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state.Screen {
	case flow.ScreenLanding:
		switch msg.String() {
		case "enter":
			m.state = m.state.Start()
		case "q":
			return m, tea.Quit
		}

	case flow.ScreenConsent:
		switch msg.String() {
		case "y":
			m.state, m.err = m.state.Agree(true)
			cmd := m.chatInput.Focus()
			return m, cmd
		case "n":
			m.state, m.err = m.state.Agree(false)
		}

	case flow.ScreenChat:
		switch msg.Type {
		case tea.KeyEnter:
			text := m.chatInput.Value()
			if text == "" {
				return m, nil
			}
			m.chatInput.Reset()
			m.busy = true
			return m, m.send(text)
		case tea.KeyTab:
			m.state = m.state.Browse()
			m.cursor = 0
			m.chatInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.chatInput, cmd = m.chatInput.Update(msg)
		return m, cmd

	case flow.ScreenProfile:
		choices := m.choices()
		switch msg.String() {
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = max(min(m.cursor+1, len(choices)-1), 0)
		case "r":
			if id, ok := m.state.RecommendedGroupID(); ok {
				m.busy = true
				return m, m.openGroup(id)
			}
		case "enter":
			if m.cursor < len(choices) {
				m.busy = true
				return m, m.openGroup(choices[m.cursor].GroupID)
			}
		}

	case flow.ScreenSessions:
		sessions := m.state.Group.Sessions
		switch msg.String() {
		case "up", "k":
			m.cursor = max(m.cursor-1, 0)
		case "down", "j":
			m.cursor = max(min(m.cursor+1, len(sessions)-1), 0)
		case "esc":
			m.state = m.state.Browse()
			m.cursor = 0
		case "enter":
			if m.cursor < len(sessions) {
				m.state, m.err = m.state.SelectSession(sessions[m.cursor].ID)
				if m.err == nil {
					cmd := m.nameInput.Focus()
					return m, cmd
				}
			}
		}

	case flow.ScreenBooking:
		switch msg.Type {
		case tea.KeyTab, tea.KeyShiftTab:
			var cmd tea.Cmd
			if m.nameInput.Focused() {
				m.nameInput.Blur()
				cmd = m.emailInput.Focus()
			} else {
				m.emailInput.Blur()
				cmd = m.nameInput.Focus()
			}
			return m, cmd
		case tea.KeyEsc:
			m.state = m.state.ViewGroup(m.state.Group)
			return m, nil
		case tea.KeyEnter:
			req, err := m.state.Request(flow.BookingForm{Name: m.nameInput.Value(), Email: m.emailInput.Value()})
			if err != nil {
				m.err = err
				return m, nil
			}
			m.busy = true
			return m, m.book(req)
		}
		var cmd tea.Cmd
		if m.emailInput.Focused() {
			m.emailInput, cmd = m.emailInput.Update(msg)
		} else {
			m.nameInput, cmd = m.nameInput.Update(msg)
		}
		return m, cmd

	case flow.ScreenPayment:
		if msg.Type == tea.KeyEnter {
			m.state, m.err = m.state.Pay()
		}

	case flow.ScreenConfirmation:
		switch msg.String() {
		case "h":
			m.busy = true
			return m, m.fetchHandoff(m.state.Booking.GroupID)
		case "q":
			return m, tea.Quit
		}

	case flow.ScreenHandoff:
		switch msg.String() {
		case "j":
			return m, m.export(false)
		case "t":
			return m, m.export(true)
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}
