// Package tui renders the foods dashboard in the terminal and turns key
// presses into sync intents.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

// Syncer is the sync core the dashboard drives.
type Syncer interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, input models.FoodInput) (models.Food, error)
	SubmitEdit(ctx context.Context, editing models.Food, input models.FoodInput) (models.Food, error)
	ToggleAvailable(ctx context.Context, id int64) (models.Food, error)
	Delete(ctx context.Context, id int64) error
	Pending(id int64) bool
}

// Source provides the foods to display.
type Source interface {
	Snapshot() []models.Food
}

// Exporter publishes the menu. It is optional.
type Exporter interface {
	Export(ctx context.Context) (int, error)
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx      context.Context
	sync     Syncer
	source   Source
	exporter Exporter
	logger   *zap.Logger

	view     ViewState
	addForm  foodForm
	editForm foodForm
	foods    []models.Food
	cursor   int

	inflight  int
	adding    bool
	editingID int64

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	status  string
	err     error
	width   int
	height  int
}

// New builds the dashboard model. Remote calls made by the model use ctx, so
// cancelling it aborts them. exporter may be nil.
func New(ctx context.Context, s Syncer, source Source, exporter Exporter, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctx:      ctx,
		sync:     s,
		source:   source,
		exporter: exporter,
		logger:   logger,
		addForm:  newFoodForm("New dish", "Add dish"),
		editForm: newFoodForm("Edit dish", "Save dish"),
		inflight: 1,
		spinner:  sp,
		help:     help.New(),
		keys:     keys,
	}
}

// ViewState returns the current modal state.
func (m Model) ViewState() ViewState { return m.view }

// Foods returns the foods currently rendered.
func (m Model) Foods() []models.Food { return m.foods }

// Selected returns the food under the cursor.
func (m Model) Selected() (models.Food, bool) {
	if m.cursor < 0 || m.cursor >= len(m.foods) {
		return models.Food{}, false
	}
	return m.foods[m.cursor], true
}

// Err returns the last error shown in the status line.
func (m Model) Err() error { return m.err }

// Init starts the initial load, which New already counts as in flight.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadCmd(m.ctx, m.sync))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.inflight == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		m.done()
		m.refresh()
		if msg.err != nil {
			m.fail("load foods", msg.err)
			return m, nil
		}
		m.succeed(fmt.Sprintf("%d foods loaded", len(m.foods)))
		return m, nil

	case addedMsg:
		m.done()
		m.adding = false
		if msg.err != nil {
			m.fail("add dish", msg.err)
			return m, nil
		}
		if m.view.ModalOpen {
			m.view.ToggleModal()
		}
		m.addForm.reset()
		m.refresh()
		m.cursor = m.indexOf(msg.food.ID)
		m.succeed(fmt.Sprintf("%q added", msg.food.Name))
		return m, nil

	case editedMsg:
		m.done()
		if m.editingID == msg.id {
			m.editingID = 0
		}
		if msg.err != nil {
			m.fail("edit dish", msg.err)
			return m, nil
		}
		if m.view.EditModalOpen && m.view.Editing != nil && m.view.Editing.ID == msg.id {
			m.view.ToggleEditModal()
		}
		m.refresh()
		m.succeed(fmt.Sprintf("%q saved", msg.food.Name))
		return m, nil

	case toggledMsg:
		m.done()
		m.refresh()
		if msg.err != nil {
			m.fail("toggle availability", msg.err)
			return m, nil
		}
		state := "unavailable"
		if msg.food.Available {
			state = "available"
		}
		m.succeed(fmt.Sprintf("%q is now %s", msg.food.Name, state))
		return m, nil

	case deletedMsg:
		m.done()
		m.refresh()
		if msg.err != nil {
			m.fail("delete dish", msg.err)
			return m, nil
		}
		m.succeed(fmt.Sprintf("dish %d deleted", msg.id))
		return m, nil

	case exportedMsg:
		m.done()
		if msg.err != nil {
			m.fail("export menu", msg.err)
			return m, nil
		}
		m.succeed(fmt.Sprintf("%d foods exported", msg.count))
		return m, nil

	case SyncMsg:
		m.refresh()
		if msg.Err != nil {
			m.fail(msg.Source, msg.Err)
			return m, nil
		}
		if msg.Detail != "" {
			m.succeed(msg.Detail)
		}
		return m, nil

	case tea.KeyMsg:
		if m.view.AnyModalOpen() {
			return m.updateModal(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.foods)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Add):
		m.addForm.reset()
		m.view.ToggleModal()

	case key.Matches(msg, m.keys.Edit):
		if f, ok := m.Selected(); ok {
			m.editForm.fill(models.InputFrom(f))
			m.view.EditFood(f)
		}

	case key.Matches(msg, m.keys.Toggle):
		if f, ok := m.Selected(); ok {
			return m, m.start(toggleCmd(m.ctx, m.sync, f.ID))
		}

	case key.Matches(msg, m.keys.Delete):
		if f, ok := m.Selected(); ok {
			return m, m.start(deleteCmd(m.ctx, m.sync, f.ID))
		}

	case key.Matches(msg, m.keys.Reload):
		return m, m.start(loadCmd(m.ctx, m.sync))

	case key.Matches(msg, m.keys.Export):
		if m.exporter == nil {
			m.status = "menu export is not configured"
			return m, nil
		}
		return m, m.start(exportCmd(m.ctx, m.exporter))
	}

	return m, nil
}

func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	editMode := m.view.EditModalOpen
	form := &m.addForm
	busy := m.adding
	if editMode {
		form = &m.editForm
		busy = m.editBusy()
	}

	switch {
	case key.Matches(msg, formKeys.Cancel):
		if editMode {
			m.view.ToggleEditModal()
		} else {
			m.view.ToggleModal()
		}
		m.err = nil
		return m, nil

	case key.Matches(msg, formKeys.Next):
		form.next()
		return m, nil

	case key.Matches(msg, formKeys.Prev):
		form.prev()
		return m, nil

	case key.Matches(msg, formKeys.Submit):
		if busy {
			return m, nil
		}
		input := form.Input()
		if editMode {
			m.editingID = m.view.Editing.ID
			return m, m.start(editCmd(m.ctx, m.sync, *m.view.Editing, input))
		}
		m.adding = true
		return m, m.start(addCmd(m.ctx, m.sync, input))
	}

	var cmd tea.Cmd
	*form, cmd = form.update(msg)
	return m, cmd
}

// start counts a remote call in flight and starts the spinner when idle.
func (m *Model) start(cmd tea.Cmd) tea.Cmd {
	m.inflight++
	if m.inflight == 1 {
		return tea.Batch(m.spinner.Tick, cmd)
	}
	return cmd
}

// editBusy reports whether the food in the open edit modal is being saved.
func (m Model) editBusy() bool {
	return m.editingID != 0 && m.view.Editing != nil && m.view.Editing.ID == m.editingID
}

func (m *Model) done() {
	if m.inflight > 0 {
		m.inflight--
	}
}

func (m *Model) refresh() {
	m.foods = m.source.Snapshot()
	if m.cursor >= len(m.foods) {
		m.cursor = len(m.foods) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) fail(action string, err error) {
	m.err = fmt.Errorf("%s: %w", action, err)
	m.logger.Warn("dashboard action failed", zap.String("action", action), zap.Error(err))
}

func (m *Model) succeed(status string) {
	m.err = nil
	m.status = status
}

func (m Model) indexOf(id int64) int {
	for i := range m.foods {
		if m.foods[i].ID == id {
			return i
		}
	}
	return m.cursor
}
