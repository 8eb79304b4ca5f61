package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ifplan/ifplan/internal/config"
)

func openFileDB(t *testing.T, cfg config.DatabaseConfig) (*DB, string) {
	t.Helper()

	dir := t.TempDir()
	backupDir := filepath.Join(dir, "backups")
	if err := os.MkdirAll(backupDir, 0750); err != nil {
		t.Fatal(err)
	}

	db, err := Open(filepath.Join(dir, "ifplan.db"), cfg, backupDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := Migrate(context.Background(), db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db, backupDir
}

func insertRow(t *testing.T, db *DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO simulations (id, name, description, created_at, updated_at, inputs_json, results_json)
		VALUES (?, 'x', '', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z', '{}', '{}')`, id)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
}

func TestOpen_Pragmas(t *testing.T) {
	db, _ := openFileDB(t, config.DatabaseConfig{})
	ctx := context.Background()

	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	if err := db.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck: %v", err)
	}
	if err := db.CheckIntegrity(ctx); err != nil {
		t.Errorf("CheckIntegrity: %v", err)
	}
}

func TestNewInMemory(t *testing.T) {
	db, err := NewInMemory(context.Background())
	if err != nil {
		t.Fatalf("NewInMemory: %v", err)
	}
	defer db.Close()

	insertRow(t, db, "a")

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM simulations").Scan(&n); err != nil || n != 1 {
		t.Errorf("count = %d, %v", n, err)
	}

	if _, err := db.Backup(context.Background()); err == nil {
		t.Error("backing up an in-memory database should fail")
	}
}

func TestSchema_RejectsInvalidJSON(t *testing.T) {
	db, err := NewInMemory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	_, err = db.Exec(`INSERT INTO simulations (id, name, created_at, updated_at, inputs_json, results_json)
		VALUES ('a', 'x', 'now', 'now', 'not json', '{}')`)
	if err == nil {
		t.Error("expected CHECK constraint failure for invalid JSON")
	}

	_, err = db.Exec(`INSERT INTO simulations (id, name, created_at, updated_at, inputs_json, results_json)
		VALUES ('b', '   ', 'now', 'now', '{}', '{}')`)
	if err == nil {
		t.Error("expected CHECK constraint failure for blank name")
	}
}

func TestWithTransaction(t *testing.T) {
	db, err := NewInMemory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	ctx := context.Background()

	boom := errors.New("boom")
	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO simulations (id, name, created_at, updated_at, inputs_json, results_json)
			VALUES ('a', 'x', 'now', 'now', '{}', '{}')`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	var n int
	_ = db.QueryRow("SELECT COUNT(*) FROM simulations").Scan(&n)
	if n != 0 {
		t.Errorf("rolled back insert is visible: %d rows", n)
	}
}

func TestClose_Idempotent(t *testing.T) {
	db, err := NewInMemory(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if !db.IsClosed() {
		t.Error("IsClosed should be true")
	}
	if _, err := db.BeginTx(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Errorf("BeginTx after Close = %v, want ErrClosed", err)
	}
}

func TestBackup_AndRetention(t *testing.T) {
	db, backupDir := openFileDB(t, config.DatabaseConfig{BackupRetentionDays: 7})
	insertRow(t, db, "a")

	stale := filepath.Join(backupDir, "ifplan-20200101-000000.000.db")
	if err := os.WriteFile(stale, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}
	old := time.Now().AddDate(0, 0, -30)
	if err := os.Chtimes(stale, old, old); err != nil {
		t.Fatal(err)
	}
	foreign := filepath.Join(backupDir, "notes.txt")
	if err := os.WriteFile(foreign, []byte("keep"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(foreign, old, old); err != nil {
		t.Fatal(err)
	}

	path, err := db.Backup(context.Background())
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Error("stale backup should have been pruned")
	}
	if _, err := os.Stat(foreign); err != nil {
		t.Error("files without the backup prefix must be left alone")
	}

	backups, err := ListBackups(backupDir)
	if err != nil || len(backups) != 1 || backups[0] != path {
		t.Errorf("ListBackups = %v, %v", backups, err)
	}
}

func TestGetStats(t *testing.T) {
	db, _ := openFileDB(t, config.DatabaseConfig{})
	insertRow(t, db, "a")
	insertRow(t, db, "b")

	stats, err := db.GetStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Simulations != 2 {
		t.Errorf("Simulations = %d, want 2", stats.Simulations)
	}
	if stats.PageSize == 0 || stats.JournalMode != "wal" {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestAttemptRecovery(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is a first run", func(t *testing.T) {
		report, err := AttemptRecovery(ctx, filepath.Join(t.TempDir(), "none.db"), "")
		if err != nil || report.Result != RecoverySuccess {
			t.Errorf("report = %+v, err = %v", report, err)
		}
	})

	t.Run("healthy file", func(t *testing.T) {
		db, _ := openFileDB(t, config.DatabaseConfig{})
		insertRow(t, db, "a")
		path := db.Path()
		db.Close()

		report, err := AttemptRecovery(ctx, path, "")
		if err != nil || report.Result != RecoverySuccess {
			t.Errorf("report = %+v, err = %v", report, err)
		}
	})

	t.Run("garbage restored from backup", func(t *testing.T) {
		db, backupDir := openFileDB(t, config.DatabaseConfig{})
		insertRow(t, db, "kept")
		backup, err := db.Backup(ctx)
		if err != nil {
			t.Fatal(err)
		}
		path := db.Path()
		db.Close()

		if err := os.WriteFile(path, []byte("this is not a database file at all, not even close"), 0600); err != nil {
			t.Fatal(err)
		}
		_ = os.Remove(path + "-wal")

		report, err := AttemptRecovery(ctx, path, backupDir)
		if err != nil {
			t.Fatalf("AttemptRecovery: %v (%+v)", err, report.Steps)
		}
		if report.Result != RecoveryFromBackup || report.BackupUsed != backup {
			t.Errorf("report = %+v", report)
		}

		restored, err := Open(path, config.DatabaseConfig{}, "")
		if err != nil {
			t.Fatal(err)
		}
		defer restored.Close()
		var id string
		if err := restored.QueryRow("SELECT id FROM simulations").Scan(&id); err != nil || id != "kept" {
			t.Errorf("restored row = %q, %v", id, err)
		}
	})

	t.Run("garbage without backups fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.db")
		if err := os.WriteFile(path, []byte("this is not a database file at all, not even close"), 0600); err != nil {
			t.Fatal(err)
		}
		report, err := AttemptRecovery(ctx, path, t.TempDir())
		if err == nil || report.Result != RecoveryFailed {
			t.Errorf("expected failure, got %+v", report)
		}
	})
}

func TestRecoveryResult_String(t *testing.T) {
	if RecoveryFromBackup.String() != "restored_from_backup" {
		t.Error("unexpected string")
	}
	if RecoveryResult(42).String() != "unknown" {
		t.Error("unexpected string for unknown value")
	}
}
