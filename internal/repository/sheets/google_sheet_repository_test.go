package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/foodboard/internal/config"
)

type sheetCall struct {
	method string
	path   string
	values [][]interface{}
}

func newTestRepository(t *testing.T, status int) (*GoogleSheetRepository, func() []sheetCall) {
	t.Helper()

	var (
		mu    sync.Mutex
		calls []sheetCall
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := sheetCall{method: r.Method, path: r.URL.Path}
		if r.Method == http.MethodPut {
			var body struct {
				Values [][]interface{} `json:"values"`
			}
			_ = json.NewDecoder(r.Body).Decode(&body)
			call.values = body.Values
		}
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	repo, err := NewGoogleSheetRepository(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-1"}, nil,
		option.WithEndpoint(srv.URL+"/"), option.WithoutAuthentication(), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	return repo, func() []sheetCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]sheetCall(nil), calls...)
	}
}

func TestReplaceRangeClearsThenWrites(t *testing.T) {
	repo, calls := newTestRepository(t, http.StatusOK)

	rows := [][]interface{}{{"ID", "Name"}, {"1", "Pizza"}}
	require.NoError(t, repo.ReplaceRange(context.Background(), "Menu!A:E", rows))

	got := calls()
	require.Len(t, got, 2)
	assert.Equal(t, http.MethodPost, got[0].method)
	assert.True(t, strings.HasSuffix(got[0].path, ":clear"), got[0].path)
	assert.Contains(t, got[0].path, "sheet-1")
	assert.Equal(t, http.MethodPut, got[1].method)
	assert.Equal(t, rows, got[1].values)
}

func TestReplaceRangeStopsWhenClearFails(t *testing.T) {
	repo, calls := newTestRepository(t, http.StatusForbidden)

	err := repo.ReplaceRange(context.Background(), "Menu!A:E", nil)
	require.Error(t, err)
	assert.Len(t, calls(), 1)
}

func TestReplaceRangeRequiresRange(t *testing.T) {
	repo, calls := newTestRepository(t, http.StatusOK)

	require.Error(t, repo.ReplaceRange(context.Background(), "", nil))
	assert.Empty(t, calls())
}
