package config

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"reservation-api/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load("does-not-exist.env")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q, want :5000", cfg.HTTPAddr)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("JWTTTL = %v, want 1h", cfg.JWTTTL)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if cfg.RequireSessionForSelfService {
		t.Error("RequireSessionForSelfService should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("REQUIRE_SESSION_FOR_SELF_SERVICE", "true")

	cfg, err := Load("does-not-exist.env")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.JWTTTL != 15*time.Minute {
		t.Errorf("JWTTTL = %v, want 15m", cfg.JWTTTL)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
	if !cfg.RequireSessionForSelfService {
		t.Error("RequireSessionForSelfService = false, want true")
	}
}

func TestLoadRejectsBadSecrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load("does-not-exist.env"); err == nil {
		t.Fatal("Load() with empty secret should fail")
	}

	t.Setenv("JWT_SECRET", "short")
	_, err := Load("does-not-exist.env")
	if err == nil || !strings.Contains(err.Error(), "at least") {
		t.Fatalf("Load() error = %v, want length error", err)
	}
}

func TestValidateDriver(t *testing.T) {
	cfg := &Config{JWTSecret: testSecret, JWTTTL: time.Hour, DBDriver: "mysql"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate() should reject mysql driver")
	}
}

func TestOpenDBMigratesSQLite(t *testing.T) {
	db, err := OpenDB(context.Background(), DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer CloseDB(db)

	for _, table := range []string{"users", "restaurants", "reservations", "reservation_status_histories"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s was not migrated", table)
		}
	}
}

func TestNewLogger(t *testing.T) {
	if NewLogger("prod", io.Discard) == nil || NewLogger("dev", io.Discard) == nil {
		t.Fatal("NewLogger returned nil")
	}
}

func TestOpenDBLogsThroughSlogWithoutNotFoundNoise(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	db, err := OpenDB(context.Background(), DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer func() { _ = CloseDB(db) }()

	var u models.User
	if err := db.Where("email = ?", "nobody@x.com").First(&u).Error; err == nil {
		t.Fatal("First() found a user in an empty table")
	}
	if strings.Contains(buf.String(), "record not found") {
		t.Errorf("missing-row lookup was logged: %s", buf.String())
	}

	if err := db.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatal("query on missing table succeeded")
	}
	if !strings.Contains(buf.String(), "no_such_table") {
		t.Errorf("failed query not logged through slog; log = %q", buf.String())
	}
}
