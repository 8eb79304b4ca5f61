package database

import (
	"context"
	"reflect"
	"testing"

	"github.com/ifplan/ifplan/internal/config"
)

func TestParseMigration(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		up, down string
	}{
		{"no markers", "CREATE TABLE a (x INT);", "CREATE TABLE a (x INT);", ""},
		{"up only", "-- +migrate Up\nCREATE TABLE a (x INT);", "CREATE TABLE a (x INT);", ""},
		{"up and down", "-- +migrate Up\nCREATE TABLE a (x INT);\n-- +migrate Down\nDROP TABLE a;", "CREATE TABLE a (x INT);", "DROP TABLE a;"},
		{"down first", "-- +migrate Down\nDROP TABLE a;\n-- +migrate Up\nCREATE TABLE a (x INT);", "CREATE TABLE a (x INT);", "DROP TABLE a;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up, down := parseMigration(tt.content)
			if up != tt.up || down != tt.down {
				t.Errorf("parseMigration() = %q, %q; want %q, %q", up, down, tt.up, tt.down)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	got := splitStatements("CREATE TABLE a (x TEXT DEFAULT ';');\n INSERT INTO a VALUES ('b;c') ;\n\nSELECT 1")
	want := []string{
		"CREATE TABLE a (x TEXT DEFAULT ';')",
		"INSERT INTO a VALUES ('b;c')",
		"SELECT 1",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitStatements() = %q, want %q", got, want)
	}
}

func TestMigrator_UpDownStatus(t *testing.T) {
	ctx := context.Background()
	db, err := Open(MemoryPath, config.DatabaseConfig{}, "")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	m, err := NewMigrator(db)
	if err != nil {
		t.Fatalf("NewMigrator: %v", err)
	}

	res, err := m.MigrateUp(ctx)
	if err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}
	if len(res.Applied) == 0 || res.TargetVersion != m.LatestVersion() {
		t.Errorf("unexpected result %+v", res)
	}

	// Idempotent.
	res, err = m.MigrateUp(ctx)
	if err != nil || len(res.Applied) != 0 {
		t.Errorf("second MigrateUp applied %d, err %v", len(res.Applied), err)
	}

	status, err := m.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range status {
		if !s.Applied {
			t.Errorf("migration %d not marked applied", s.Version)
		}
	}

	if _, err := m.MigrateDown(ctx); err != nil {
		t.Fatalf("MigrateDown: %v", err)
	}
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = 'simulations'").Scan(&n); err != nil || n != 0 {
		t.Errorf("simulations table still present after rollback: %d, %v", n, err)
	}

	pending, err := m.PendingMigrations(ctx)
	if err != nil || len(pending) != 1 {
		t.Errorf("pending after rollback = %d, %v", len(pending), err)
	}
}
