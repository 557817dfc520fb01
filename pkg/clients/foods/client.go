package foods

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/foodboard/internal/config"
	"github.com/mamadbah2/foodboard/internal/domain/models"
)

const (
	collectionPath = "/foods"
	itemPath       = "/foods/{id}"
	maxMessageLen  = 200
)

// Store exposes the foods REST collection used by the dashboard.
type Store interface {
	List(ctx context.Context) ([]models.Food, error)
	Create(ctx context.Context, draft models.Food) (models.Food, error)
	Update(ctx context.Context, id int64, food models.Food) (models.Food, error)
	Delete(ctx context.Context, id int64) error
}

// APIClient is a resty-backed implementation of Store.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a foods API client using the provided configuration values.
func NewClient(cfg config.APIConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries)

	return &APIClient{httpClient: restyClient}
}

// List fetches the whole collection in server order.
func (c *APIClient) List(ctx context.Context) ([]models.Food, error) {
	var result []models.Food

	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&result).
		Get(collectionPath)
	if err != nil {
		return nil, &NetworkError{Op: "list", Err: err}
	}
	if resp.IsError() {
		return nil, statusError("list", resp)
	}

	if result == nil {
		result = []models.Food{}
	}
	return result, nil
}

// Create posts a new entry. The id is always left to the server and the entry
// is always sent as available.
func (c *APIClient) Create(ctx context.Context, draft models.Food) (models.Food, error) {
	draft.ID = 0
	draft.Available = true

	result := new(models.Food)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetBody(draft).
		SetResult(result).
		Post(collectionPath)
	if err != nil {
		return models.Food{}, &NetworkError{Op: "create", Err: err}
	}
	if resp.IsError() {
		return models.Food{}, statusError("create", resp)
	}
	if result.ID == 0 {
		return models.Food{}, &NetworkError{Op: "create", StatusCode: resp.StatusCode(), Err: ErrMissingID}
	}

	return *result, nil
}

// Update replaces the entry stored under id and returns the server's copy.
func (c *APIClient) Update(ctx context.Context, id int64, food models.Food) (models.Food, error) {
	food.ID = id

	result := new(models.Food)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(food).
		SetResult(result).
		Put(itemPath)
	if err != nil {
		return models.Food{}, &NetworkError{Op: "update", Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return models.Food{}, &NotFoundError{Op: "update", ID: id}
	}
	if resp.IsError() {
		return models.Food{}, statusError("update", resp)
	}
	if result.ID == 0 {
		result.ID = id
	}

	return *result, nil
}

// Delete removes the entry stored under id.
func (c *APIClient) Delete(ctx context.Context, id int64) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(itemPath)
	if err != nil {
		return &NetworkError{Op: "delete", Err: err}
	}
	if resp.StatusCode() == http.StatusNotFound {
		return &NotFoundError{Op: "delete", ID: id}
	}
	if resp.IsError() {
		return statusError("delete", resp)
	}

	return nil
}

func statusError(op string, resp *resty.Response) *NetworkError {
	message := strings.TrimSpace(resp.String())
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen]
	}
	return &NetworkError{Op: op, StatusCode: resp.StatusCode(), Message: message}
}
