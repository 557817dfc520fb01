package dashboard

import (
	"sync"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

// State is the local projection of the remote foods collection. Order is the
// server's list order with created entries appended; entries are matched by id only.
type State struct {
	mu      sync.RWMutex
	foods   []models.Food
	loaded  bool
	version uint64
}

// NewState returns an empty, not yet loaded state.
func NewState() *State {
	return &State{}
}

// Snapshot returns a copy of the foods in display order.
func (s *State) Snapshot() []models.Food {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Food, len(s.foods))
	copy(out, s.foods)
	return out
}

// Len returns the number of foods held.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.foods)
}

// Loaded reports whether a Load has completed at least once.
func (s *State) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Version increases on every mutation.
func (s *State) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Find looks up a food by id.
func (s *State) Find(id int64) (models.Food, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.foods[i], true
	}
	return models.Food{}, false
}

// Replace swaps the whole collection, as done after a Load.
func (s *State) Replace(foods []models.Food) {
	cloned := make([]models.Food, len(foods))
	copy(cloned, foods)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.foods = cloned
	s.loaded = true
	s.version++
}

// Append adds a created food at the end.
func (s *State) Append(food models.Food) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.foods = append(s.foods, food)
	s.version++
}

// ReplaceByID swaps the entry carrying food.ID in place. It reports false and
// leaves the state untouched when no entry matches.
func (s *State) ReplaceByID(food models.Food) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(food.ID)
	if i < 0 {
		return false
	}
	s.foods[i] = food
	s.version++
	return true
}

// RemoveByID drops the entry with the given id, keeping the others in order.
func (s *State) RemoveByID(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]models.Food, 0, len(s.foods)-1)
	next = append(next, s.foods[:i]...)
	next = append(next, s.foods[i+1:]...)
	s.foods = next
	s.version++
	return true
}

func (s *State) indexOf(id int64) int {
	for i := range s.foods {
		if s.foods[i].ID == id {
			return i
		}
	}
	return -1
}
