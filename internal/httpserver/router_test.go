package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mobilecare/internal/api"
	"mobilecare/internal/gate"
	"mobilecare/internal/httpserver/handler"
	"mobilecare/internal/notification"
	"mobilecare/internal/session"
)

// testShell builds the full router against a stub platform backend and
// returns the backend's request counter.
func testShell(t *testing.T, store session.Store) (*Router, *int64) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var backendRequests int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&backendRequests, 1)
		switch {
		case r.URL.Path == "/dashboard":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"stats": map[string]int{"totalTools": 1},
			})
		case r.URL.Path == "/notifications" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"notifications": []map[string]interface{}{
					{"_id": "1", "title": "hi", "read": false},
				},
			})
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	t.Cleanup(backend.Close)

	logger := zap.NewNop()
	client := api.NewClient(backend.URL, 2*time.Second, store, logger)
	workflow := notification.NewWorkflow(client, logger)

	router := NewRouter(
		handler.NewAuthHandler(client, store, logger),
		handler.NewDashboardHandler(client, store, logger),
		handler.NewNotificationHandler(workflow, logger),
		store,
	)
	return router, &backendRequests
}

// A visitor without a token asking for a protected view gets a
// redirect and the protected handler never runs: the backend sees zero
// requests and the response carries none of the protected payload.
func TestProtectedView_RedirectsWithoutRendering(t *testing.T) {
	store := session.NewMemoryStore()
	router, backendRequests := testShell(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != gate.SignInPath {
		t.Errorf("Location = %q, want %q", got, gate.SignInPath)
	}
	if atomic.LoadInt64(backendRequests) != 0 {
		t.Error("protected handler ran for a logged-out request")
	}
	if strings.Contains(w.Body.String(), "stats") {
		t.Error("protected payload leaked into the redirect response")
	}
}

func TestProtectedView_RendersWithToken(t *testing.T) {
	store := session.NewMemoryStore()
	if err := store.SetSession("tok-1", "user-1"); err != nil {
		t.Fatal(err)
	}
	router, _ := testShell(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "totalTools") {
		t.Errorf("dashboard payload missing stats: %s", w.Body.String())
	}
}

func TestPublicOnlyView_RedirectsSignedInUser(t *testing.T) {
	store := session.NewMemoryStore()
	if err := store.SetSession("tok-1", "user-1"); err != nil {
		t.Fatal(err)
	}
	router, backendRequests := testShell(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != gate.DashboardPath {
		t.Errorf("Location = %q, want %q", got, gate.DashboardPath)
	}
	if atomic.LoadInt64(backendRequests) != 0 {
		t.Error("splash handler ran for a signed-in request")
	}
}

func TestPublicOnlyView_RendersVisitor(t *testing.T) {
	store := session.NewMemoryStore()
	router, _ := testShell(t, store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "7 Empire Mobile Care") {
		t.Errorf("splash payload = %s", w.Body.String())
	}
}

// Once the guard wipes the store, the very next protected request
// redirects: the guard and the gate compose into scenario "signed in at
// t0, locked out after the TTL".
func TestGuardEvictionLocksOutNextRequest(t *testing.T) {
	store := session.NewMemoryStore()
	if err := store.SetSession("tok-1", "user-1"); err != nil {
		t.Fatal(err)
	}
	router, _ := testShell(t, store)

	guard := session.NewGuard(store, zap.NewNop())
	guard.TTL = 0 // any elapsed time is past the ceiling
	time.Sleep(time.Millisecond)
	guard.Check()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("status after eviction = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != gate.SignInPath {
		t.Errorf("Location = %q, want %q", got, gate.SignInPath)
	}
}

func TestHealthz(t *testing.T) {
	router, _ := testShell(t, session.NewMemoryStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.Engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", w.Code)
	}
}
