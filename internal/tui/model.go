// Package tui is the terminal front end of the booking flow.
package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mentra/group-booking/internal/flow"
	"github.com/mentra/group-booking/internal/intake"
	"github.com/mentra/group-booking/internal/model"
)

// API is the server surface the client needs. *flow.Client implements it.
type API interface {
	intake.Chatter
	intake.Extractor
	Groups(ctx context.Context) ([]model.Group, error)
	Group(ctx context.Context, id string) (*model.Group, error)
	Book(ctx context.Context, req *model.CreateBookingRequest) (*model.CreateBookingResponse, error)
	Handoff(ctx context.Context, groupID string) (*model.HandoffResponse, error)
}

type (
	chatMsg struct {
		turn *intake.Turn
		err  error
	}
	groupsMsg struct {
		groups []model.Group
		err    error
	}
	groupMsg struct {
		group *model.Group
		err   error
	}
	bookedMsg struct {
		resp *model.CreateBookingResponse
		err  error
	}
	handoffMsg struct {
		resp *model.HandoffResponse
		err  error
	}
	exportedMsg struct {
		path string
		err  error
	}
)

// Model is the bubbletea model. All journey data lives in state; the rest is
// widget state.
type Model struct {
	api       API
	ctx       context.Context
	intake    *intake.Controller
	state     flow.State
	styles    Styles
	exportDir string
	now       func() time.Time

	chatInput  textinput.Model
	nameInput  textinput.Model
	emailInput textinput.Model

	groups []model.Group
	cursor int
	busy   bool
	status string
	err    error
	width  int
}

// New creates the client model. Handoff exports are written to exportDir.
func New(ctx context.Context, api API, exportDir string) Model {
	chat := textinput.New()
	chat.Placeholder = "Type your message"
	chat.CharLimit = 4000

	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 200

	email := textinput.New()
	email.Placeholder = "Email"
	email.CharLimit = 254

	return Model{
		api:        api,
		ctx:        ctx,
		intake:     intake.NewController(api, api),
		state:      flow.New(),
		styles:     DefaultStyles(),
		exportDir:  exportDir,
		now:        time.Now,
		chatInput:  chat,
		nameInput:  name,
		emailInput: email,
	}
}

// State returns the current flow state.
func (m Model) State() flow.State {
	return m.state
}

// Init loads the catalog for the profile screen.
func (m Model) Init() tea.Cmd {
	return m.loadGroups()
}

func (m Model) loadGroups() tea.Cmd {
	return func() tea.Msg {
		groups, err := m.api.Groups(m.ctx)
		return groupsMsg{groups: groups, err: err}
	}
}

func (m Model) send(message string) tea.Cmd {
	return func() tea.Msg {
		turn, err := m.intake.Send(m.ctx, message)
		return chatMsg{turn: turn, err: err}
	}
}

func (m Model) openGroup(id string) tea.Cmd {
	return func() tea.Msg {
		g, err := m.api.Group(m.ctx, id)
		return groupMsg{group: g, err: err}
	}
}

func (m Model) book(req *model.CreateBookingRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.Book(m.ctx, req)
		return bookedMsg{resp: resp, err: err}
	}
}

func (m Model) fetchHandoff(groupID string) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.Handoff(m.ctx, groupID)
		return handoffMsg{resp: resp, err: err}
	}
}

func (m Model) export(asText bool) tea.Cmd {
	h := m.state.Handoff
	dir := m.exportDir
	at := m.now()
	return func() tea.Msg {
		ext := "json"
		var data []byte
		if asText {
			ext = "txt"
			data = []byte(flow.HandoffText(h, at))
		} else {
			var err error
			if data, err = flow.HandoffJSON(h); err != nil {
				return exportedMsg{err: err}
			}
		}
		path := filepath.Join(dir, flow.ExportFileName(h.GroupID, at, ext))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path}
	}
}

// choices are the groups offered on the profile screen: the scored
// recommendations when present, otherwise the whole catalog.
func (m Model) choices() []model.GroupRecommendation {
	if m.state.Profile != nil && len(m.state.Profile.RecommendedGroups) > 0 {
		return m.state.Profile.RecommendedGroups
	}
	out := make([]model.GroupRecommendation, len(m.groups))
	for i, g := range m.groups {
		out[i] = model.GroupRecommendation{GroupID: g.ID, GroupName: g.Name, Reasoning: g.Description}
	}
	return out
}
