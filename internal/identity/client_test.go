package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medical-history-server/internal/apperrors"
	"medical-history-server/internal/models"
)

func newUserServiceStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/42", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"username":"dana","firstName":"Dana","lastName":"Osei","email":"dana@example.com","role":"PROVIDER"}`))
	})
	mux.HandleFunc("/users/username/dana", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":42,"username":"dana","role":"PROVIDER"}`))
	})
	mux.HandleFunc("/users/role/CAREGIVER", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":30,"username":"cleo","role":"CAREGIVER"},{"id":31,"username":"iris","role":"CAREGIVER"}]`))
	})
	mux.HandleFunc("/users/username/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestGetByID(t *testing.T) {
	server := newUserServiceStub(t)
	lookup := NewHTTPLookup(server.URL, zap.NewNop())

	user, err := lookup.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "dana", user.Username)
	assert.Equal(t, "Dana Osei", user.FullName())
}

func TestGetByIDNotFound(t *testing.T) {
	server := newUserServiceStub(t)
	lookup := NewHTTPLookup(server.URL, zap.NewNop())

	_, err := lookup.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetByUsername(t *testing.T) {
	server := newUserServiceStub(t)
	lookup := NewHTTPLookup(server.URL, zap.NewNop())

	user, err := lookup.GetByUsername(context.Background(), "dana")
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.ID)

	_, err = lookup.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetByRole(t *testing.T) {
	server := newUserServiceStub(t)
	lookup := NewHTTPLookup(server.URL, zap.NewNop())

	users, err := lookup.GetByRole(context.Background(), models.RoleCaregiver)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "cleo", users[0].Username)
}

func TestUnexpectedStatusIsAnError(t *testing.T) {
	server := newUserServiceStub(t)
	lookup := NewHTTPLookup(server.URL, zap.NewNop())

	_, err := lookup.GetByUsername(context.Background(), "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUnreachableServiceIsAnError(t *testing.T) {
	lookup := NewHTTPLookup("http://127.0.0.1:1", zap.NewNop())

	_, err := lookup.GetByID(context.Background(), 42)
	assert.Error(t, err)
}
