package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/paraglidehq/azam"
	"github.com/paraglidehq/azam/postgres"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
		testcontainers.CustomizeRequestOption(func(req *testcontainers.GenericContainerRequest) error {
			req.ContainerRequest.WaitingFor = wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second)
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	cleanup := func() {
		db.Close()
		container.Terminate(ctx)
	}

	return db, cleanup
}

func migrated(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	db, cleanup := setupPostgres(t)
	if err := postgres.Migrate(context.Background(), db, postgres.DefaultConfig()); err != nil {
		cleanup()
		t.Fatalf("migration failed: %v", err)
	}
	return db, cleanup
}

func TestConfigValidate(t *testing.T) {
	valid := []string{"azam", "app_azam", "_x", "a1"}
	for _, p := range valid {
		if err := (postgres.Config{Prefix: p}).Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", p, err)
		}
	}
	invalid := []string{"", "1azam", "Azam", "azam;drop", "a b", strings.Repeat("a", 49)}
	for _, p := range invalid {
		err := (postgres.Config{Prefix: p}).Validate()
		if !errors.Is(err, postgres.ErrInvalidPrefix) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidPrefix", p, err)
		}
	}
}

func TestMigrate(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	cfg := postgres.DefaultConfig()

	if err := postgres.Migrate(ctx, db, cfg); err != nil {
		t.Fatalf("first migration failed: %v", err)
	}

	// Second migration should be idempotent
	if err := postgres.Migrate(ctx, db, cfg); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}

	storedCfg, err := postgres.GetConfig(ctx, db)
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if storedCfg != cfg {
		t.Errorf("stored config %+v != expected %+v", storedCfg, cfg)
	}
}

func TestMigrateConfigMismatch(t *testing.T) {
	db, cleanup := migrated(t)
	defer cleanup()

	err := postgres.Migrate(context.Background(), db, postgres.Config{Prefix: "other"})
	if err == nil {
		t.Fatal("expected error for config mismatch, got nil")
	}
	if !errors.Is(err, postgres.ErrConfigMismatch) {
		t.Errorf("expected ErrConfigMismatch, got: %v", err)
	}
}

var sqlTestIDs = []azam.ID{
	0, 1, 0x0f, 0x10, 0xff, 0x100, 0x1000, 0xfff0, 0x01000001,
	0xffffffff, 0x0123456789abcdef, 1<<63 - 1, 1 << 63, 1<<64 - 1,
}

func TestEncodeMatchesGo(t *testing.T) {
	db, cleanup := migrated(t)
	defer cleanup()

	ctx := context.Background()
	for _, id := range sqlTestIDs {
		var got string
		if err := db.QueryRowContext(ctx, "SELECT azam_encode($1)", id).Scan(&got); err != nil {
			t.Fatalf("azam_encode(%d) failed: %v", id, err)
		}
		if want := id.String(); got != want {
			t.Errorf("azam_encode(%d) = %q, want %q", id, got, want)
		}
	}
}

func TestEncodeBytea(t *testing.T) {
	db, cleanup := migrated(t)
	defer cleanup()

	ctx := context.Background()
	values := [][]byte{{}, {0x00}, {0x00, 0x00}, {0x01, 0x00}, {0xff}, {0x00, 0x0f, 0xff}}
	for _, v := range values {
		var got string
		if err := db.QueryRowContext(ctx, "SELECT azam_encode_bytea($1)", v).Scan(&got); err != nil {
			t.Fatalf("azam_encode_bytea(%x) failed: %v", v, err)
		}
		if want := azam.EncodeSection(v); got != want {
			t.Errorf("azam_encode_bytea(%x) = %q, want %q", v, got, want)
		}
	}
}

func TestDecode(t *testing.T) {
	db, cleanup := migrated(t)
	defer cleanup()

	ctx := context.Background()
	for _, id := range sqlTestIDs {
		var got azam.ID
		if err := db.QueryRowContext(ctx, "SELECT azam_decode($1)", id.String()).Scan(&got); err != nil {
			t.Fatalf("azam_decode(%q) failed: %v", id.String(), err)
		}
		if got != id {
			t.Errorf("azam_decode(%q) = %d, want %d", id.String(), got, id)
		}
	}

	// Aliases and case folding
	var got azam.ID
	if err := db.QueryRowContext(ctx, "SELECT azam_decode($1)", "HGO").Scan(&got); err != nil {
		t.Fatalf("azam_decode(HGO) failed: %v", err)
	}
	if got != 0x100 {
		t.Errorf("azam_decode(HGO) = %d, want %d", got, 0x100)
	}
}

func TestDecodeErrors(t *testing.T) {
	db, cleanup := migrated(t)
	defer cleanup()

	ctx := context.Background()
	cases := map[string]string{
		"":                   "empty input",
		"_0":                 "invalid character",
		"g0":                 "illegal leading nibble",
		"h":                  "section not terminated",
		"hhh":                "section not terminated",
		"0f":                 "trailing data",
		"hggggggggggggggggg0": "value out of range",
		"hggggggggggggggg0":   "value out of range",
		"hhhhhhhhhhhhhhhhhh":  "section not terminated",
		"hggggggggggggggggg_": "invalid character",
		"hggggggggggggggg0f":  "trailing data",
	}
	for in, want := range cases {
		var id int64
		err := db.QueryRowContext(ctx, "SELECT azam_decode($1)", in).Scan(&id)
		if err == nil {
			t.Errorf("azam_decode(%q) = %d, want error", in, id)
			continue
		}
		if !strings.Contains(err.Error(), want) {
			t.Errorf("azam_decode(%q) error = %v, want %q", in, err, want)
		}
	}
}

func TestScanNullID(t *testing.T) {
	db, cleanup := migrated(t)
	defer cleanup()

	ctx := context.Background()
	var n azam.NullID

	// Text column holding the section string
	if err := db.QueryRowContext(ctx, "SELECT azam_encode($1)", azam.ID(1<<64-1)).Scan(&n); err != nil {
		t.Fatalf("scan azam_encode: %v", err)
	}
	if !n.Valid || n.ID != 1<<64-1 {
		t.Errorf("scan azam_encode = %+v, want valid %d", n, uint64(1<<64-1))
	}

	// STRICT functions return NULL for NULL input
	if err := db.QueryRowContext(ctx, "SELECT azam_decode($1)", azam.NullID{}).Scan(&n); err != nil {
		t.Fatalf("scan azam_decode(NULL): %v", err)
	}
	if n.Valid {
		t.Errorf("scan azam_decode(NULL) = %+v, want NULL", n)
	}
}
