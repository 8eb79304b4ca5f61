package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// RecoveryResult is the outcome of AttemptRecovery.
type RecoveryResult int

const (
	// RecoverySuccess means the file was healthy or repaired in place.
	RecoverySuccess RecoveryResult = iota
	// RecoveryFromBackup means the file was replaced by a backup.
	RecoveryFromBackup
	// RecoveryFailed means nothing worked.
	RecoveryFailed
)

func (r RecoveryResult) String() string {
	switch r {
	case RecoverySuccess:
		return "success"
	case RecoveryFromBackup:
		return "restored_from_backup"
	case RecoveryFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RecoveryReport details a recovery attempt.
type RecoveryReport struct {
	Result       RecoveryResult
	DatabasePath string
	BackupUsed   string
	Steps        []RecoveryStep
}

// RecoveryStep is one phase of a recovery attempt.
type RecoveryStep struct {
	Name      string
	Succeeded bool
	Message   string
	Duration  time.Duration
}

// AttemptRecovery checks the database at dbPath before it is opened. If the
// integrity check fails it replays the WAL, and if that does not help it
// restores the newest backup that passes its own integrity check. The damaged
// file is kept next to the original with a ".corrupted.<timestamp>" suffix.
// A missing file is a healthy first run.
func AttemptRecovery(ctx context.Context, dbPath, backupDir string) (*RecoveryReport, error) {
	report := &RecoveryReport{DatabasePath: dbPath}

	if dbPath == MemoryPath {
		report.Result = RecoverySuccess
		return report, nil
	}

	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		report.Result = RecoverySuccess
		report.Steps = append(report.Steps, RecoveryStep{
			Name:      "check_exists",
			Succeeded: true,
			Message:   "database does not exist (first run)",
		})
		return report, nil
	}

	step := runRecoveryStep("integrity_check", func() (string, error) {
		return checkFileIntegrity(ctx, dbPath)
	})
	report.Steps = append(report.Steps, step)
	if step.Succeeded {
		report.Result = RecoverySuccess
		return report, nil
	}
	log.Warn().Str("path", dbPath).Str("error", step.Message).Msg("database integrity check failed")

	if _, err := os.Stat(dbPath + "-wal"); err == nil {
		step = runRecoveryStep("wal_recovery", func() (string, error) {
			if err := replayWAL(ctx, dbPath); err != nil {
				return "", err
			}
			return checkFileIntegrity(ctx, dbPath)
		})
		report.Steps = append(report.Steps, step)
		if step.Succeeded {
			report.Result = RecoverySuccess
			log.Info().Str("path", dbPath).Msg("database recovered via WAL replay")
			return report, nil
		}
	}

	if backupDir != "" {
		step = runRecoveryStep("backup_restoration", func() (string, error) {
			return restoreFromBackup(ctx, dbPath, backupDir)
		})
		report.Steps = append(report.Steps, step)
		if step.Succeeded {
			report.Result = RecoveryFromBackup
			report.BackupUsed = step.Message
			log.Warn().Str("path", dbPath).Str("backup", step.Message).Msg("database restored from backup")
			return report, nil
		}
	}

	report.Result = RecoveryFailed
	return report, errors.New("all recovery attempts failed")
}

func runRecoveryStep(name string, fn func() (string, error)) RecoveryStep {
	start := time.Now()
	msg, err := fn()

	step := RecoveryStep{Name: name, Duration: time.Since(start), Succeeded: err == nil, Message: msg}
	if err != nil {
		step.Message = err.Error()
	}
	return step
}

func checkFileIntegrity(ctx context.Context, dbPath string) (string, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", dbPath))
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	results, err := integrityRows(ctx, db)
	if err != nil {
		return "", err
	}
	if len(results) == 1 && results[0] == "ok" {
		return "ok", nil
	}
	return "", fmt.Errorf("integrity check failed: %s", strings.Join(results, "; "))
}

func replayWAL(ctx context.Context, dbPath string) error {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_txlock=immediate", dbPath))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA wal_checkpoint(RESTART)"); err != nil {
		return fmt.Errorf("WAL checkpoint: %w", err)
	}
	return nil
}

// ListBackups returns backup files in dir, newest first.
func ListBackups(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	type backup struct {
		path    string
		modTime time.Time
	}
	var backups []backup
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) || filepath.Ext(entry.Name()) != ".db" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{filepath.Join(dir, entry.Name()), info.ModTime()})
	}

	sort.Slice(backups, func(i, j int) bool {
		if backups[i].modTime.Equal(backups[j].modTime) {
			return backups[i].path > backups[j].path
		}
		return backups[i].modTime.After(backups[j].modTime)
	})

	paths := make([]string, len(backups))
	for i, b := range backups {
		paths[i] = b.path
	}
	return paths, nil
}

func restoreFromBackup(ctx context.Context, dbPath, backupDir string) (string, error) {
	backups, err := ListBackups(backupDir)
	if err != nil {
		return "", err
	}
	if len(backups) == 0 {
		return "", errors.New("no backup files found")
	}

	for _, b := range backups {
		if _, err := checkFileIntegrity(ctx, b); err != nil {
			log.Debug().Err(err).Str("path", b).Msg("backup failed integrity check")
			continue
		}

		corrupted := dbPath + ".corrupted." + time.Now().Format("20060102-150405")
		if err := os.Rename(dbPath, corrupted); err != nil {
			log.Warn().Err(err).Str("path", dbPath).Msg("failed to preserve corrupted database")
		}
		_ = os.Remove(dbPath + "-wal")
		_ = os.Remove(dbPath + "-shm")

		if err := copyFile(b, dbPath); err != nil {
			return "", fmt.Errorf("copying backup: %w", err)
		}
		return b, nil
	}

	return "", errors.New("no valid backup found")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0640)
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return out.Sync()
}
