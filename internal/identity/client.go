package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"medical-history-server/internal/apperrors"
	"medical-history-server/internal/models"
)

// Identity is a user record owned by the external user service. Read-only
// from this service's perspective.
type Identity struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// FullName returns the display name used in enriched responses.
func (i Identity) FullName() string {
	return i.FirstName + " " + i.LastName
}

// Lookup fetches identities from the user service. Calls may fail or time
// out; callers decide how to degrade.
type Lookup interface {
	GetByID(ctx context.Context, id int64) (*Identity, error)
	GetByUsername(ctx context.Context, username string) (*Identity, error)
	GetByRole(ctx context.Context, role models.Role) ([]Identity, error)
}

type httpLookup struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewHTTPLookup creates a Lookup backed by the user service REST API.
func NewHTTPLookup(baseURL string, logger *zap.Logger) Lookup {
	return &httpLookup{
		baseURL: baseURL + "/users",
		client:  &http.Client{Timeout: 5 * time.Second},
		log:     logger,
	}
}

func (c *httpLookup) GetByID(ctx context.Context, id int64) (*Identity, error) {
	var user Identity
	if err := c.get(ctx, fmt.Sprintf("%s/%d", c.baseURL, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpLookup) GetByUsername(ctx context.Context, username string) (*Identity, error) {
	var user Identity
	if err := c.get(ctx, c.baseURL+"/username/"+url.PathEscape(username), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *httpLookup) GetByRole(ctx context.Context, role models.Role) ([]Identity, error) {
	var users []Identity
	if err := c.get(ctx, c.baseURL+"/role/"+url.PathEscape(string(role)), &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *httpLookup) get(ctx context.Context, requestURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create user service request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("user service request failed",
			zap.String("url", requestURL),
			zap.Error(err),
		)
		return fmt.Errorf("user service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFoundf("user service returned 404 for %s", requestURL)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn("user service returned unexpected status",
			zap.String("url", requestURL),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return fmt.Errorf("user service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode user service response: %w", err)
	}
	return nil
}
