package restapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/bomsquad/shoplist/internal/domain"
	"github.com/bomsquad/shoplist/internal/domain/dto"
	"github.com/bomsquad/shoplist/internal/pkg/constants"
	"github.com/bomsquad/shoplist/internal/pkg/logger"
)

// Client is the shopping-list REST surface this module consumes. JSON over
// HTTPS, cookie session plus CSRF token header.
type Client interface {
	GetShoppingList(ctx context.Context) ([]*domain.ShoppingListEntry, error)
	UpdateQuantity(ctx context.Context, componentID domain.ComponentID, req *dto.UpdateQuantityRequest) error
	DeleteModuleEntries(ctx context.Context, moduleID domain.ModuleID) error
	DeleteAnonymousEntries(ctx context.Context) error
	AddAllToInventory(ctx context.Context, req dto.MigrateAllRequest) error
	AddOneToInventory(ctx context.Context, componentID domain.ComponentID, req *dto.MigrateOneRequest) error
	ComponentTotalPrice(ctx context.Context, componentID domain.ComponentID) (*dto.TotalPriceResponse, error)
	TotalPrice(ctx context.Context) (*dto.TotalPriceResponse, error)
	ComponentQuantity(ctx context.Context, opts ComponentQuantityOpts) (int64, error)
	GetCurrency(ctx context.Context) (*domain.Currency, error)
}

// ComponentQuantityOpts scopes a quantity lookup. List selects the named
// list; BomItemPK/ModulePK narrow a shopping-list lookup to one BOM line.
type ComponentQuantityOpts struct {
	ComponentID domain.ComponentID
	List        ListName
	BomItemPK   *domain.BomItemID
	ModulePK    *domain.ModuleID
}

type ListName string

const (
	ListShoppingList          ListName = "shopping-list"
	ListAnonymousShoppingList ListName = "shopping-list-anonymous"
	ListInventory             ListName = "inventory"
)

type Options struct {
	BaseURL   string
	SessionID string
	CSRFToken string

	// HTTPClient overrides the default client, used by tests.
	HTTPClient *http.Client
}

type client struct {
	baseURL    *url.URL
	sessionID  string
	csrfToken  string
	httpClient *http.Client
}

func NewClient(opts Options) (Client, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("url.Parse base url: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &client{
		baseURL:    base,
		sessionID:  opts.SessionID,
		csrfToken:  opts.CSRFToken,
		httpClient: httpClient,
	}, nil
}

var statusMapping = map[int]error{
	http.StatusNotFound:     constants.ErrNotFound,
	http.StatusBadRequest:   constants.ErrValidation,
	http.StatusUnauthorized: constants.ErrUnauthorized,
	http.StatusForbidden:    constants.ErrUnauthorized,
}

func wrapStatus(status int, body []byte) error {
	var resp domain.ErrorResponse
	msg := http.StatusText(status)
	if err := sonic.Unmarshal(body, &resp); err == nil && resp.Message != "" {
		msg = resp.Message
	}

	if mapped, ok := statusMapping[status]; ok {
		return fmt.Errorf("%s: %w", msg, mapped)
	}
	return fmt.Errorf("status code error: %d %s", status, msg)
}

// get issues an idempotent GET with constant-backoff retries and decodes the
// JSON body into out.
func (c *client) get(ctx context.Context, path string, out interface{}) error {
	var body []byte
	err := backoff.Retry(
		func() error {
			var httpErr error
			body, httpErr = c.do(ctx, http.MethodGet, path, nil)
			if httpErr != nil {
				// Rejections never heal on retry, only transport errors do.
				var ce *constants.CodedError
				if errors.As(httpErr, &ce) {
					return backoff.Permanent(httpErr)
				}
				return httpErr
			}
			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(100*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err = sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("sonic.Unmarshal %s: %w", path, err)
	}
	return nil
}

// mutate issues a non-idempotent request exactly once and decodes into out
// when out is non-nil.
func (c *client) mutate(ctx context.Context, method, path string, in, out interface{}) error {
	var reqBody []byte
	if in != nil {
		var err error
		reqBody, err = sonic.Marshal(in)
		if err != nil {
			return fmt.Errorf("sonic.Marshal %s: %w", path, err)
		}
	}

	body, err := c.do(ctx, method, path, reqBody)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err = sonic.Unmarshal(body, out); err != nil {
		return fmt.Errorf("sonic.Unmarshal %s: %w", path, err)
	}
	return nil
}

func (c *client) do(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	u := c.baseURL.JoinPath(path)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	requestID := uuid.NewString()
	ctx = logger.WithRequestID(ctx, requestID)

	req.Header.Set(constants.HeaderRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set(constants.HeaderCSRFToken, c.csrfToken)
	}
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: constants.CookieKeySession, Value: c.sessionID})
	}
	if c.csrfToken != "" {
		req.AddCookie(&http.Cookie{Name: constants.CookieKeyCSRF, Value: c.csrfToken})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do %s %s: %w", method, path, err)
	}
	defer func() {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			logger.Warnf(ctx, "failed to close response body: %s", closeErr.Error())
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll %s: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Warnf(ctx, "%s %s: %d", method, path, resp.StatusCode)
		return nil, wrapStatus(resp.StatusCode, respBody)
	}

	return respBody, nil
}
