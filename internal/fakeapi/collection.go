// Package fakeapi serves an in-memory /foods collection over gin so the
// client, the sync core and the terminal UI can be exercised end to end.
package fakeapi

import (
	"net/http"
	"sync"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

// Request is one call observed by the fake backend.
type Request struct {
	Method string
	Path   string
	Body   models.Food
}

// Collection holds the foods, the id counter and the injected failures.
type Collection struct {
	mu       sync.Mutex
	foods    []models.Food
	nextID   int64
	failures map[string][]int
	holds    map[string]chan struct{}
	requests []*Request
}

// NewCollection seeds a collection. Seeded ids are kept; new ids continue after the highest one.
func NewCollection(seed ...models.Food) *Collection {
	c := &Collection{
		failures: make(map[string][]int),
		holds:    make(map[string]chan struct{}),
	}
	for _, f := range seed {
		c.foods = append(c.foods, f)
		if f.ID > c.nextID {
			c.nextID = f.ID
		}
	}
	return c
}

// FailNext makes the next request with the given method answer status instead of being served.
func (c *Collection) FailNext(method string, status int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[method] = append(c.failures[method], status)
}

// Hold parks every request with the given method until the returned release func is called.
func (c *Collection) Hold(method string) (release func()) {
	gate := make(chan struct{})
	c.mu.Lock()
	c.holds[method] = gate
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			if c.holds[method] == gate {
				delete(c.holds, method)
			}
			c.mu.Unlock()
			close(gate)
		})
	}
}

// Foods returns a copy of the stored collection.
func (c *Collection) Foods() []models.Food {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Food, len(c.foods))
	copy(out, c.foods)
	return out
}

// Requests returns the calls seen so far, in arrival order.
func (c *Collection) Requests() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Request, 0, len(c.requests))
	for _, req := range c.requests {
		out = append(out, *req)
	}
	return out
}

func (c *Collection) record(req *Request) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	c.mu.Unlock()
}

func (c *Collection) attachBody(req *Request, body models.Food) {
	c.mu.Lock()
	req.Body = body
	c.mu.Unlock()
}

func (c *Collection) gate(method string) <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holds[method]
}

func (c *Collection) takeFailure(method string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue := c.failures[method]
	if len(queue) == 0 {
		return 0, false
	}
	c.failures[method] = queue[1:]
	return queue[0], true
}

func (c *Collection) list() []models.Food {
	return c.Foods()
}

func (c *Collection) create(f models.Food) models.Food {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	f.ID = c.nextID
	c.foods = append(c.foods, f)
	return f
}

func (c *Collection) update(id int64, f models.Food) (models.Food, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.foods {
		if c.foods[i].ID == id {
			f.ID = id
			c.foods[i] = f
			return f, http.StatusOK
		}
	}
	return models.Food{}, http.StatusNotFound
}

func (c *Collection) remove(id int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.foods {
		if c.foods[i].ID == id {
			c.foods = append(c.foods[:i], c.foods[i+1:]...)
			return http.StatusOK
		}
	}
	return http.StatusNotFound
}
