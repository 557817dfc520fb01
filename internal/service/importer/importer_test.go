package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

type recordingAdder struct {
	mu     sync.Mutex
	inputs []models.FoodInput
	reject string
}

func (a *recordingAdder) Add(_ context.Context, input models.FoodInput) (models.Food, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if input.Name == a.reject {
		return models.Food{}, errors.New("rejected")
	}
	a.inputs = append(a.inputs, input)
	return input.Draft(), nil
}

func (a *recordingAdder) Names() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []string
	for _, in := range a.inputs {
		out = append(out, in.Name)
	}
	return out
}

func TestParseDrafts(t *testing.T) {
	src := "Price,Name,description\n19.90, Pizza ,Cheese\n,,\n9.90,Soup\n"

	drafts, err := ParseDrafts(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, []models.FoodInput{
		{Name: "Pizza", Price: "19.90", Description: "Cheese"},
		{Name: "Soup", Price: "9.90"},
	}, drafts)
}

func TestParseDraftsRequiresName(t *testing.T) {
	_, err := ParseDrafts(strings.NewReader("price,image\n1,x.png\n"))
	assert.ErrorIs(t, err, ErrMissingNameColumn)

	_, err = ParseDrafts(strings.NewReader(""))
	assert.Error(t, err)
}

func TestImportFileAddsInOrderAndSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	adder := &recordingAdder{reject: "Bad"}
	w, err := NewWatcher(dir, adder, nil)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "menu.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,price\nPizza,19.90\nBad,1\nSoup,9.90\n"), 0o600))

	res, err := w.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, Result{File: "menu.csv", Added: 2, Failed: 1}, res)
	assert.Equal(t, []string{"Pizza", "Soup"}, adder.Names())

	res, err = w.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Zero(t, res.Added+res.Failed)
	assert.Len(t, adder.Names(), 2)
}

func TestRunImportsDroppedFiles(t *testing.T) {
	dir := t.TempDir()
	adder := &recordingAdder{}
	w, err := NewWatcher(dir, adder, nil)
	require.NoError(t, err)
	defer w.Close()

	results := make(chan Result, 4)
	w.SetNotifier(func(res Result, err error) {
		if err == nil {
			results <- res
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("name\nIgnored\n"), 0o600))

	tmp := filepath.Join(dir, "drop.part")
	require.NoError(t, os.WriteFile(tmp, []byte("name,image\nTapioca,t.png\n"), 0o600))
	require.NoError(t, os.Rename(tmp, filepath.Join(dir, "drop.csv")))

	select {
	case res := <-results:
		assert.Equal(t, Result{File: "drop.csv", Added: 1}, res)
	case <-time.After(5 * time.Second):
		t.Fatal("dropped file was not imported")
	}
	assert.Equal(t, []string{"Tapioca"}, adder.Names())
}

func waitSettled(t *testing.T, d *debouncer) settled {
	t.Helper()
	select {
	case s := <-d.ready:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not fire")
		return settled{}
	}
}

func TestDebouncerSettlesOnlyLatestTouch(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)
	defer d.stop()

	d.touch("menu.csv")
	fired := waitSettled(t, d)

	// A write arriving after the timer fired but before Run handled it.
	d.touch("menu.csv")
	latest := waitSettled(t, d)

	assert.False(t, d.settle(fired), "stale timer must not import")
	assert.True(t, d.settle(latest))
	assert.False(t, d.settle(latest), "a path settles once")
}

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)
	defer d.stop()

	for i := 0; i < 5; i++ {
		d.touch("menu.csv")
	}
	s := waitSettled(t, d)
	assert.True(t, d.settle(s))

	select {
	case extra := <-d.ready:
		t.Fatalf("unexpected second fire: %+v", extra)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNewWatcherFailsForMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), &recordingAdder{}, nil)
	assert.Error(t, err)
}
