package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

func seq(ids ...int64) []models.Food {
	out := make([]models.Food, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Food{ID: id, Name: "food"})
	}
	return out
}

func ids(list []models.Food) []int64 {
	out := make([]int64, 0, len(list))
	for _, f := range list {
		out = append(out, f.ID)
	}
	return out
}

func TestStateStartsEmpty(t *testing.T) {
	s := NewState()
	assert.Empty(t, s.Snapshot())
	assert.False(t, s.Loaded())
	assert.Zero(t, s.Version())
}

func TestStateReplaceCopiesInput(t *testing.T) {
	s := NewState()
	in := seq(1, 2)
	s.Replace(in)
	in[0].Name = "mutated"

	assert.True(t, s.Loaded())
	assert.Equal(t, "food", s.Snapshot()[0].Name)

	snap := s.Snapshot()
	snap[1].Name = "mutated"
	assert.Equal(t, "food", s.Snapshot()[1].Name)
}

func TestStateReplaceByIDKeepsOrder(t *testing.T) {
	s := NewState()
	s.Replace(seq(5, 3, 9))

	ok := s.ReplaceByID(models.Food{ID: 3, Name: "new"})
	assert.True(t, ok)
	assert.Equal(t, []int64{5, 3, 9}, ids(s.Snapshot()))
	assert.Equal(t, "new", s.Snapshot()[1].Name)

	before := s.Version()
	assert.False(t, s.ReplaceByID(models.Food{ID: 42}))
	assert.Equal(t, before, s.Version())
	assert.Len(t, s.Snapshot(), 3)
}

func TestStateRemoveByID(t *testing.T) {
	s := NewState()
	s.Replace(seq(5, 3, 9))

	snap := s.Snapshot()
	assert.True(t, s.RemoveByID(5))
	assert.Equal(t, []int64{3, 9}, ids(s.Snapshot()))
	assert.Equal(t, []int64{5, 3, 9}, ids(snap), "earlier snapshots are unaffected")

	assert.False(t, s.RemoveByID(5))
	assert.Equal(t, 2, s.Len())
}

func TestStateAppendAndFind(t *testing.T) {
	s := NewState()
	s.Replace(seq(1))
	s.Append(models.Food{ID: 2, Name: "Soup"})

	f, ok := s.Find(2)
	assert.True(t, ok)
	assert.Equal(t, "Soup", f.Name)
	assert.Equal(t, []int64{1, 2}, ids(s.Snapshot()))

	_, ok = s.Find(3)
	assert.False(t, ok)
}
