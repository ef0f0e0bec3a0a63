package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"accountcleanup/database"
	"accountcleanup/handlers"
	"accountcleanup/models"
	"accountcleanup/services/cleanup"
	"accountcleanup/services/user"
	"accountcleanup/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var secret = []byte("event-secret")

type failingStore struct {
	*database.MemoryStore
}

func (failingStore) Delete(ctx context.Context, ref database.DocRef) error {
	return fmt.Errorf("delete %s: %w", ref.Path(), database.ErrUnavailable)
}

type fakeUserService struct {
	deleted []string
}

func (f *fakeUserService) DeleteUser(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", user.ErrEmptyUID
	}
	f.deleted = append(f.deleted, uid)
	return "evt-" + uid, nil
}

type staticHealth struct{ status utils.HealthStatus }

func (s staticHealth) Status() utils.HealthStatus { return s.status }

func newRouter(t *testing.T, store database.Store, users user.UserService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deleter, err := cleanup.NewCascadeDeleter(store, zap.NewNop())
	require.NoError(t, err)
	events := handlers.NewAuthEventHandler(cleanup.NewEventProcessor(deleter, nil, zap.NewNop()), zap.NewNop())

	hb := &handlers.HandlerBundle{
		Logger:             zap.NewNop(),
		EventSigningSecret: secret,
		UserDeletedHandler: events.UserDeletedHandler,
		AdminToken:         "admin",
		MaxRequestsPerMin:  100,
		AdminHandler:       handlers.NewAdminHandler(users, zap.NewNop()),
		HealthHandler:      handlers.HealthHandler(staticHealth{utils.HealthStatus{Redis: true}}),
		MetricsHandler:     gin.WrapH(http.NotFoundHandler()),
	}
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func postEvent(t *testing.T, r *gin.Engine, body string, withToken bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/events/auth/user-deleted", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if withToken {
		token, err := utils.GenerateEventToken(secret, "auth-trigger", time.Minute)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUserDeletedEvent(t *testing.T) {
	store := database.NewMemoryStore()
	store.Put("users", "u1", map[string]string{"uid": "u1"})
	store.Put("users/u1/notifications", "n1", nil)
	store.Put("users/u1/notifications", "n2", nil)
	r := newRouter(t, store, &fakeUserService{})

	w := postEvent(t, r, `{"eventId":"e1","data":{"uid":"u1"}}`, true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result models.CleanupResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "u1", result.UID)
	assert.Equal(t, "e1", result.EventID)
	assert.Equal(t, []string{"n1", "n2"}, result.DeletedNotifications)
	assert.Equal(t, 0, store.Count("users"))
	assert.Equal(t, 0, store.Count("users/u1/notifications"))

	// Redelivery of the same event succeeds.
	w = postEvent(t, r, `{"eventId":"e1","data":{"uid":"u1"}}`, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserDeletedEventWithUnusualTimestamps(t *testing.T) {
	store := database.NewMemoryStore()
	store.Put("users", "u1", map[string]string{"uid": "u1"})
	store.Put("users/u1/notifications", "n1", nil)
	r := newRouter(t, store, &fakeUserService{})

	body := `{"eventId":"e1","timestamp":"2024-01-01 00:00:00",` +
		`"data":{"uid":"u1","metadata":{"createdAt":1700000000000}}}`
	w := postEvent(t, r, body, true)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 0, store.Count("users"))
	assert.Equal(t, 0, store.Count("users/u1/notifications"))
}

func TestUserDeletedEventRejections(t *testing.T) {
	r := newRouter(t, database.NewMemoryStore(), &fakeUserService{})

	assert.Equal(t, http.StatusUnauthorized, postEvent(t, r, `{"uid":"u1"}`, false).Code)
	assert.Equal(t, http.StatusBadRequest, postEvent(t, r, `{`, true).Code)
	assert.Equal(t, http.StatusBadRequest, postEvent(t, r, `{"data":{}}`, true).Code)
}

func TestUserDeletedEventStoreFailure(t *testing.T) {
	r := newRouter(t, failingStore{database.NewMemoryStore()}, &fakeUserService{})

	w := postEvent(t, r, `{"uid":"u1"}`, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "User data cleanup failed")
	assert.NotContains(t, w.Body.String(), "users/u1")
	assert.NotContains(t, w.Body.String(), database.ErrUnavailable.Error())
}

func TestAdminDeleteUser(t *testing.T) {
	users := &fakeUserService{}
	r := newRouter(t, database.NewMemoryStore(), users)

	req := httptest.NewRequest(http.MethodDelete, "/admin/users/u7", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "evt-u7")
	assert.Equal(t, []string{"u7"}, users.deleted)

	req = httptest.NewRequest(http.MethodDelete, "/admin/users/u8", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthRoute(t *testing.T) {
	r := newRouter(t, database.NewMemoryStore(), &fakeUserService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"redis":true`)
}
