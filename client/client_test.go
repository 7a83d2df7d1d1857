package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"reservation-api/auth"
	"reservation-api/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newClient(t *testing.T, h http.Handler) (*Client, *SessionCache) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cache := NewSessionCache(filepath.Join(t.TempDir(), "session.json"))
	return New(srv.URL, cache), cache
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLoginStoresDecodedSession(t *testing.T) {
	tokens := auth.NewTokenService(testSecret)
	token, _, err := tokens.Issue(&models.User{ID: 7, Email: "bob@x.com", Role: models.RoleUser})
	if err != nil {
		t.Fatal(err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"message": "Login successful", "token": token})
	})
	var gotAuth string
	mux.HandleFunc("POST /reservations", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var in ReservationInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.UserID != 7 {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "wrong user"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"message": "Reservation created successfully.", "id": 3})
	})
	c, cache := newClient(t, mux)

	s, err := c.Login(context.Background(), "bob@x.com", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if s.UserID != 7 || s.Role != models.RoleUser || s.Token != token {
		t.Errorf("Login() session = %+v", s)
	}
	if stored, ok, _ := cache.Load(); !ok || stored != s {
		t.Errorf("cached session = %+v, ok %v", stored, ok)
	}

	id, err := c.Reserve(context.Background(), ReservationInput{RestaurantID: 1, Date: "2025-07-01", Time: "19:30", PeopleCount: 2})
	if err != nil {
		t.Fatalf("Reserve() error = %v", err)
	}
	if id != 3 {
		t.Errorf("Reserve() id = %d, want 3", id)
	}
	if gotAuth != "Bearer "+token {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestAPIErrorCarriesServerMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signup", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "User already exists."})
	})
	c, _ := newClient(t, mux)

	_, err := c.Signup(context.Background(), "bob", "bob@x.com", "pw", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Signup() error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "User already exists." {
		t.Errorf("APIError = %+v", apiErr)
	}
}

func TestAuthenticatedCallsNeedSession(t *testing.T) {
	c, _ := newClient(t, http.NotFoundHandler())
	if _, err := c.MyReservations(context.Background()); !errors.Is(err, ErrNotLoggedIn) {
		t.Errorf("MyReservations() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, NewSessionCache(filepath.Join(t.TempDir(), "s.json")))
	_, err := c.Restaurants(context.Background())
	var connErr ConnectionError
	if !errors.As(err, &connErr) {
		t.Errorf("Restaurants() error = %v, want ConnectionError", err)
	}
}

func TestLogoutClearsSessionEvenWhenTokenRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token expired"})
	})
	c, cache := newClient(t, mux)
	if err := cache.Save(Session{UserID: 1, Role: models.RoleUser, Token: "old"}); err != nil {
		t.Fatal(err)
	}

	if err := c.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, ok, _ := cache.Load(); ok {
		t.Error("session survived Logout()")
	}
}
