package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
)

// staticToken is a TokenSource with a fixed credential.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(baseURL string, token staticToken) *Client {
	return NewClient(baseURL, 2*time.Second, token, zap.NewNop())
}

func TestLogin_OmitsBearerAndParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/users/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("login request carried Authorization header %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if body["email"] != "a@b.c" || body["password"] != "pw" {
			t.Errorf("login body = %v", body)
		}

		json.NewEncoder(w).Encode(map[string]string{"token": "tok-1", "_id": "user-1"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL+"/api/", staticToken(""))
	res, err := c.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatal(err)
	}
	if res.Token != "tok-1" || res.UserID != "user-1" {
		t.Errorf("login response = %+v", res)
	}
}

func TestAuthenticatedRequestCarriesBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"notifications": []interface{}{}})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticToken("tok-1"))
	if _, err := c.FetchNotifications(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestAPIErrorMessageFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "notification not found"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticToken("tok-1"))
	err := c.DeleteNotification(context.Background(), "nope")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.Status)
	}
	if apiErr.Message != "notification not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestAPIErrorGenericMessageWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticToken("tok-1"))
	err := c.DeleteAllNotifications(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Message != "unknown error" {
		t.Errorf("message = %q, want generic fallback", apiErr.Message)
	}
}

func TestTransportFailureIsRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := newTestClient(srv.URL, staticToken("tok-1"))
	err := c.DeleteAllNotifications(context.Background())

	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("err = %v, want RequestError", err)
	}
}

func TestDeleteNotifications_BulkBody(t *testing.T) {
	var gotBody map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/notifications/delete-multiple" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticToken("tok-1"))
	if err := c.DeleteNotifications(context.Background(), []string{"2", "4"}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotBody["ids"], []string{"2", "4"}) {
		t.Errorf("bulk body ids = %v, want [2 4]", gotBody["ids"])
	}
}

func TestDeleteNotifications_EmptyIDsNeverSent(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticToken("tok-1"))
	err := c.DeleteNotifications(context.Background(), nil)

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if requests != 0 {
		t.Errorf("empty bulk delete hit the network %d times", requests)
	}
}

func TestDashboard_ParsesStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/dashboard" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"stats": map[string]int{
				"totalTools":    12,
				"userTools":     3,
				"problemCount":  7,
				"solutionCount": 9,
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, staticToken("tok-1"))
	stats, err := c.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalTools != 12 || stats.UserTools != 3 || stats.ProblemCount != 7 || stats.SolutionCount != 9 {
		t.Errorf("stats = %+v", stats)
	}
}
