package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/foodboard/internal/domain/models"
	"github.com/mamadbah2/foodboard/pkg/clients/foods"
)

const journalTimeout = 5 * time.Second

// ErrOperationPending is returned when a food already has an update or delete in flight.
var ErrOperationPending = errors.New("another operation is pending for this food")

// ErrNoEditingTarget is returned by SubmitEdit when no food was selected for editing.
var ErrNoEditingTarget = errors.New("no food selected for editing")

// ErrUnknownFood is returned when an intent names an id the dashboard does not hold.
var ErrUnknownFood = errors.New("food is not on the dashboard")

// Journal receives one event per settled remote call.
type Journal interface {
	Record(ctx context.Context, event models.SyncEvent) error
}

// Controller turns user intents into foods API calls and applies the answers
// to State. State only changes after a call succeeds.
type Controller struct {
	store   foods.Store
	state   *State
	journal Journal
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	pending map[int64]models.Intent
}

// NewController wires a controller. journal may be nil.
func NewController(store foods.Store, state *State, journal Journal, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if state == nil {
		state = NewState()
	}
	return &Controller{
		store:   store,
		state:   state,
		journal: journal,
		logger:  logger,
		now:     time.Now,
		pending: make(map[int64]models.Intent),
	}
}

// State exposes the projection the controller maintains.
func (c *Controller) State() *State {
	return c.state
}

// Pending reports whether an update or delete is in flight for id.
func (c *Controller) Pending(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// Load fetches the collection and replaces the local list wholesale.
func (c *Controller) Load(ctx context.Context) error {
	list, err := c.store.List(ctx)
	if err != nil {
		c.logger.Error("failed to load foods", zap.Error(err))
		c.record(ctx, models.IntentLoad, 0, 0, err)
		return fmt.Errorf("load foods: %w", err)
	}

	c.state.Replace(list)
	c.logger.Info("foods loaded", zap.Int("count", len(list)))
	c.record(ctx, models.IntentLoad, 0, len(list), nil)
	return nil
}

// Add creates a food from the form input and appends the server's copy.
func (c *Controller) Add(ctx context.Context, input models.FoodInput) (models.Food, error) {
	created, err := c.store.Create(ctx, input.Draft())
	if err != nil {
		c.logger.Error("failed to add food", zap.String("name", input.Name), zap.Error(err))
		c.record(ctx, models.IntentAdd, 0, 0, err)
		return models.Food{}, fmt.Errorf("add food: %w", err)
	}

	c.state.Append(created)
	c.logger.Info("food added", zap.Int64("id", created.ID), zap.String("name", created.Name))
	c.record(ctx, models.IntentAdd, created.ID, 1, nil)
	return created, nil
}

// SubmitEdit sends the editing record merged with the form input.
func (c *Controller) SubmitEdit(ctx context.Context, editing models.Food, input models.FoodInput) (models.Food, error) {
	if editing.ID == 0 {
		return models.Food{}, ErrNoEditingTarget
	}
	return c.update(ctx, models.IntentEdit, editing.ID, input.MergeInto(editing))
}

// ToggleAvailable flips the availability of the food held under id.
func (c *Controller) ToggleAvailable(ctx context.Context, id int64) (models.Food, error) {
	current, ok := c.state.Find(id)
	if !ok {
		return models.Food{}, fmt.Errorf("toggle food %d: %w", id, ErrUnknownFood)
	}
	current.Available = !current.Available
	return c.update(ctx, models.IntentToggle, id, current)
}

// Delete removes the food remotely, then locally. A food the backend no longer
// knows is removed as well; any other failure leaves the list as it was.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	if err := c.acquire(id, models.IntentDelete); err != nil {
		return err
	}
	defer c.release(id)

	err := c.store.Delete(ctx, id)
	if err != nil && !foods.IsNotFound(err) {
		c.logger.Error("failed to delete food", zap.Int64("id", id), zap.Error(err))
		c.record(ctx, models.IntentDelete, id, 0, err)
		return fmt.Errorf("delete food %d: %w", id, err)
	}
	if err != nil {
		c.logger.Warn("food already gone on the server", zap.Int64("id", id))
	}

	removed := c.state.RemoveByID(id)
	c.logger.Info("food deleted", zap.Int64("id", id), zap.Bool("was_listed", removed))
	c.record(ctx, models.IntentDelete, id, 1, nil)
	return nil
}

func (c *Controller) update(ctx context.Context, intent models.Intent, id int64, body models.Food) (models.Food, error) {
	if err := c.acquire(id, intent); err != nil {
		return models.Food{}, err
	}
	defer c.release(id)

	updated, err := c.store.Update(ctx, id, body)
	if err != nil {
		c.logger.Error("failed to update food", zap.String("intent", string(intent)), zap.Int64("id", id), zap.Error(err))
		c.record(ctx, intent, id, 0, err)
		return models.Food{}, fmt.Errorf("%s food %d: %w", intent, id, err)
	}

	if !c.state.ReplaceByID(updated) {
		c.logger.Warn("updated food is no longer listed", zap.Int64("id", updated.ID))
	}
	c.logger.Info("food updated", zap.String("intent", string(intent)), zap.Int64("id", updated.ID))
	c.record(ctx, intent, updated.ID, 1, nil)
	return updated, nil
}

func (c *Controller) acquire(id int64, intent models.Intent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if running, ok := c.pending[id]; ok {
		c.logger.Debug("operation rejected while another is pending",
			zap.Int64("id", id), zap.String("intent", string(intent)), zap.String("pending", string(running)))
		return fmt.Errorf("%s food %d: %w", intent, id, ErrOperationPending)
	}
	c.pending[id] = intent
	return nil
}

func (c *Controller) release(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

func (c *Controller) record(ctx context.Context, intent models.Intent, id int64, count int, err error) {
	if c.journal == nil {
		return
	}

	event := models.SyncEvent{
		Intent:     intent,
		FoodID:     id,
		Outcome:    models.OutcomeApplied,
		Count:      count,
		OccurredAt: c.now().UTC(),
	}
	if err != nil {
		event.Outcome = models.OutcomeFailed
		event.Error = err.Error()
	}

	jctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalTimeout)
	defer cancel()

	if jerr := c.journal.Record(jctx, event); jerr != nil {
		c.logger.Warn("failed to journal sync event", zap.String("intent", string(intent)), zap.Error(jerr))
	}
}
