package tui

import "github.com/mamadbah2/foodboard/internal/domain/models"

// ViewState is the presentation half of the dashboard: which modal is open
// and which food the edit modal targets. The foods themselves live in
// dashboard.State.
type ViewState struct {
	ModalOpen     bool
	EditModalOpen bool
	Editing       *models.Food
}

// ToggleModal flips the add modal.
func (v *ViewState) ToggleModal() {
	v.ModalOpen = !v.ModalOpen
}

// ToggleEditModal flips the edit modal. Opening requires a target; without
// one the call is refused and false is returned.
func (v *ViewState) ToggleEditModal() bool {
	if !v.EditModalOpen && v.Editing == nil {
		return false
	}
	v.EditModalOpen = !v.EditModalOpen
	return true
}

// EditFood sets the edit target and opens the edit modal in one step.
func (v *ViewState) EditFood(f models.Food) {
	target := f
	v.Editing = &target
	v.EditModalOpen = true
}

// AnyModalOpen reports whether keys should be routed to a modal.
func (v ViewState) AnyModalOpen() bool {
	return v.ModalOpen || v.EditModalOpen
}
