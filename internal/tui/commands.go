package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

type loadedMsg struct{ err error }

type addedMsg struct {
	food models.Food
	err  error
}

type editedMsg struct {
	id   int64
	food models.Food
	err  error
}

type toggledMsg struct {
	food models.Food
	err  error
}

type deletedMsg struct {
	id  int64
	err error
}

type exportedMsg struct {
	count int
	err   error
}

// SyncMsg tells the dashboard that a background job changed or tried to
// change its state. Send it with Program.Send.
type SyncMsg struct {
	Source string
	Detail string
	Err    error
}

func loadCmd(ctx context.Context, s Syncer) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: s.Load(ctx)}
	}
}

func addCmd(ctx context.Context, s Syncer, input models.FoodInput) tea.Cmd {
	return func() tea.Msg {
		food, err := s.Add(ctx, input)
		return addedMsg{food: food, err: err}
	}
}

func editCmd(ctx context.Context, s Syncer, editing models.Food, input models.FoodInput) tea.Cmd {
	return func() tea.Msg {
		food, err := s.SubmitEdit(ctx, editing, input)
		return editedMsg{id: editing.ID, food: food, err: err}
	}
}

func toggleCmd(ctx context.Context, s Syncer, id int64) tea.Cmd {
	return func() tea.Msg {
		food, err := s.ToggleAvailable(ctx, id)
		return toggledMsg{food: food, err: err}
	}
}

func deleteCmd(ctx context.Context, s Syncer, id int64) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: s.Delete(ctx, id)}
	}
}

func exportCmd(ctx context.Context, e Exporter) tea.Cmd {
	return func() tea.Msg {
		n, err := e.Export(ctx)
		return exportedMsg{count: n, err: err}
	}
}
