package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"reservation-api/client"
	"reservation-api/models"

	flag "github.com/spf13/pflag"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		args    []string
		want    uint
		wantErr bool
	}{
		{[]string{"7"}, 7, false},
		{[]string{"0"}, 0, true},
		{[]string{"-3"}, 0, true},
		{[]string{"abc"}, 0, true},
		{nil, 0, true},
		{[]string{"1", "2"}, 0, true},
	}
	for _, tt := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		// "-3" would otherwise be read as a shorthand flag
		fs.SetInterspersed(false)
		if err := fs.Parse(append([]string{"--"}, tt.args...)); err != nil {
			t.Fatalf("Parse(%v) error = %v", tt.args, err)
		}
		got, err := parseID(fs)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseID(%v) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestRunDispatchErrors(t *testing.T) {
	session := filepath.Join(t.TempDir(), "session.json")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", []string{"--session-file", session}, "command required"},
		{"unknown command", []string{"--session-file", session, "book"}, `unknown command: "book"`},
		{"missing id", []string{"--session-file", session, "restaurant-delete"}, "exactly one ID"},
		{"bad id", []string{"--session-file", session, "cancel", "x"}, `invalid ID "x"`},
		{"unknown flag", []string{"--session-file", session, "login", "--nope"}, "unknown flag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run(%v) error = %v, want it to contain %q", tt.args, err, tt.want)
			}
		})
	}
}

func TestRunNeedsLoginForReserve(t *testing.T) {
	session := filepath.Join(t.TempDir(), "session.json")
	err := run([]string{"--session-file", session, "reserve", "--restaurant", "1",
		"--date", "2025-07-01", "--time", "19:30", "--people", "2"})
	if !errors.Is(err, client.ErrNotLoggedIn) {
		t.Errorf("run(reserve) error = %v, want ErrNotLoggedIn", err)
	}
}

func TestRunDeleteRestaurantSendsToken(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Restaurant deleted successfully."}`))
	}))
	defer srv.Close()

	session := filepath.Join(t.TempDir(), "session.json")
	if err := client.NewSessionCache(session).Save(client.Session{UserID: 1, Role: models.RoleAdmin, Token: "tok"}); err != nil {
		t.Fatal(err)
	}

	if err := run([]string{"--server", srv.URL, "--session-file", session, "restaurant-delete", "3"}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if gotPath != "DELETE /restaurants/3" {
		t.Errorf("request = %q, want DELETE /restaurants/3", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", gotAuth)
	}
}
