package tui

import (
	"fmt"
	"strings"

	"github.com/mentra/group-booking/internal/flow"
	"github.com/mentra/group-booking/internal/intake"
	"github.com/mentra/group-booking/internal/model"
)

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Mentra · Group Therapy Booking"))
	b.WriteString("\n\n")

	switch m.state.Screen {
	case flow.ScreenLanding:
		b.WriteString(m.styles.Title.Render("Find a group that fits you"))
		b.WriteString("\nA short conversation helps us match you with a therapist-led group.\n")
		b.WriteString(m.footer("enter start · q quit"))

	case flow.ScreenConsent:
		b.WriteString(m.styles.Title.Render("Before we begin"))
		b.WriteString("\nThis assistant is not a therapist and does not diagnose. Recommendations are\n")
		b.WriteString("advisory only. If you are in crisis, contact local emergency services.\n")
		b.WriteString(m.footer("y agree and continue · n decline"))

	case flow.ScreenChat:
		b.WriteString(m.viewChat())

	case flow.ScreenProfile:
		b.WriteString(m.viewProfile())

	case flow.ScreenSessions:
		b.WriteString(m.viewSessions())

	case flow.ScreenBooking:
		g, s := m.state.Group, m.state.Session
		b.WriteString(m.styles.Title.Render("Book your seat"))
		fmt.Fprintf(&b, "\n%s\n%s at %s with %s\n\n", g.Name, flow.FormatDate(s.Date), flow.FormatTime(s.Time), s.Therapist)
		b.WriteString(m.nameInput.View() + "\n")
		b.WriteString(m.emailInput.View() + "\n")
		b.WriteString(m.footer("tab switch field · enter confirm · esc back"))

	case flow.ScreenPayment:
		b.WriteString(m.styles.Title.Render("Payment"))
		b.WriteString("\nThis demo takes no payment.\n")
		b.WriteString(m.footer("enter continue"))

	case flow.ScreenConfirmation:
		bk := m.state.Booking
		b.WriteString(m.styles.Success.Render("You're booked!"))
		fmt.Fprintf(&b, "\n\nBooking ID  %s\nGroup       %s\nDate        %s\nTime        %s\nTherapist   %s\n",
			bk.ID, bk.GroupName, flow.FormatDate(bk.SessionDate), flow.FormatTime(bk.SessionTime), bk.Therapist)
		b.WriteString(m.footer("h therapist handoff · q quit"))

	case flow.ScreenHandoff:
		b.WriteString(m.viewHandoff())
	}

	if m.busy {
		b.WriteString("\n" + m.styles.Muted.Render("Working..."))
	}
	if m.err != nil {
		b.WriteString("\n" + m.styles.Error.Render(m.err.Error()))
	}
	if m.status != "" {
		b.WriteString("\n" + m.styles.Success.Render(m.status))
	}
	return b.String()
}

func (m Model) footer(keys string) string {
	return "\n" + m.styles.Footer.Render(keys)
}

func (m Model) viewChat() string {
	var b strings.Builder
	st := m.intake.State()

	steps := make([]string, len(intake.Steps))
	for i, name := range intake.Steps {
		switch {
		case i < st.CurrentStep:
			steps[i] = m.styles.Muted.Render("✓ " + name)
		case i == st.CurrentStep:
			steps[i] = m.styles.Selected.Render("● " + name)
		default:
			steps[i] = m.styles.Muted.Render("○ " + name)
		}
	}
	b.WriteString(strings.Join(steps, "  ") + "\n\n")

	if len(st.History) == 0 {
		b.WriteString(m.styles.Assistant.Render("Hi, I'm here to help you find a group. What's been on your mind lately?") + "\n")
	}
	for _, msg := range st.History {
		if msg.Role == model.RoleUser {
			b.WriteString(m.styles.User.Render("You: "+msg.Content) + "\n")
			continue
		}
		b.WriteString(m.styles.Assistant.Render(msg.Content) + "\n")
	}

	b.WriteString("\n" + m.chatInput.View())
	b.WriteString(m.footer("enter send · tab browse groups"))
	return b.String()
}

func (m Model) viewProfile() string {
	var b strings.Builder
	if p := m.state.Profile; p != nil {
		b.WriteString(m.styles.Title.Render("Your profile"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "Themes       %s\n", orNotSpecified(strings.Join(p.Themes, ", ")))
		fmt.Fprintf(&b, "Main concern %s\n", orNotSpecified(p.MainConcern))
		fmt.Fprintf(&b, "Goals        %s\n", orNotSpecified(strings.Join(p.Goals, "; ")))
		fmt.Fprintf(&b, "Challenges   %s\n", orNotSpecified(strings.Join(p.Challenges, "; ")))
		fmt.Fprintf(&b, "Format       %s\n", orNotSpecified(p.Preferences.Format))
		fmt.Fprintf(&b, "Timing       %s\n\n", orNotSpecified(p.Preferences.Timing))
	}

	b.WriteString(m.styles.Title.Render("Groups"))
	b.WriteString("\n")
	for i, c := range m.choices() {
		line := c.GroupName
		if c.RelevanceScore > 0 {
			line = fmt.Sprintf("%s  (relevance %d/10)", c.GroupName, c.RelevanceScore)
		}
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
		if c.Reasoning != "" {
			b.WriteString("    " + m.styles.Muted.Render(c.Reasoning) + "\n")
		}
	}

	keys := "↑/↓ choose · enter view sessions"
	if _, name, ok := m.bestPick(); ok {
		keys += " · r book " + name
	}
	b.WriteString(m.footer(keys))
	return b.String()
}

func (m Model) bestPick() (string, string, bool) {
	if m.state.Profile == nil {
		return "", "", false
	}
	return m.state.Profile.BestRecommendation()
}

func (m Model) viewSessions() string {
	var b strings.Builder
	g := m.state.Group
	b.WriteString(m.styles.Title.Render(g.Name))
	b.WriteString("\n")

	for i, s := range g.Sessions {
		left := g.SeatsLeft(s)
		card := fmt.Sprintf("%s · %s (%d min)\n%s\n%s",
			flow.FormatDate(s.Date), flow.FormatTime(s.Time), s.Duration, s.Therapist, flow.FormatSeats(left))
		style := m.styles.Card
		if i == m.cursor {
			style = style.BorderForeground(accent)
		}
		if left <= 0 {
			card = m.styles.Muted.Render(card)
		}
		b.WriteString(style.Render(card) + "\n")
	}

	b.WriteString(m.footer("↑/↓ choose · enter book seat · esc back"))
	return b.String()
}

func (m Model) viewHandoff() string {
	var b strings.Builder
	h := m.state.Handoff
	b.WriteString(m.styles.Title.Render("Therapist handoff"))
	b.WriteString("\n")
	if h.Handoff != nil {
		fmt.Fprintf(&b, "Theme  %s\n\nShared goals\n", h.Handoff.GroupTheme)
		for _, g := range h.Handoff.SharedGoals {
			b.WriteString("  • " + g + "\n")
		}
	}
	b.WriteString("\nParticipants\n")
	for _, p := range h.Participants {
		fmt.Fprintf(&b, "  %s: %s\n", p.Name, p.Summary())
	}
	if h.Handoff != nil {
		b.WriteString("\nSuggested focus areas\n")
		for _, f := range h.Handoff.SuggestedFocusAreas {
			b.WriteString("  • " + f + "\n")
		}
		b.WriteString("\nNotes\n  " + h.Handoff.TherapistNotes + "\n")
	}
	b.WriteString(m.footer("j export JSON · t export text · q quit"))
	return b.String()
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}
