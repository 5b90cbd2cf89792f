package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Backup duplicates the database file to a timestamped copy under backupDir
// (created if absent) and returns the backup path.
func Backup(dbPath, backupDir string) (string, error) {
	if backupDir == "" {
		backupDir = "backups"
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	dst := filepath.Join(backupDir, fmt.Sprintf("bookkeeper_backup_%s.db", stamp()))
	if err := copyFile(dbPath, dst); err != nil {
		return "", fmt.Errorf("backup %s: %w", dbPath, err)
	}

	log.Info().Str("path", dst).Msg("database backed up")
	return dst, nil
}

// Restore overwrites the database file with backupPath's contents. The
// current database, if present, is first copied aside to a timestamped
// .before_restore file so a bad restore loses nothing. Returns
// ErrFileNotFound when backupPath does not exist.
//
// The store must be closed before restoring; Restore replaces the file the
// open handle points at.
func Restore(backupPath, dbPath string) error {
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, backupPath)
		}
		return fmt.Errorf("stat %s: %w", backupPath, err)
	}

	if _, err := os.Stat(dbPath); err == nil {
		safety := fmt.Sprintf("%s.before_restore_%s.bak", dbPath, stamp())
		if err := copyFile(dbPath, safety); err != nil {
			return fmt.Errorf("safety copy: %w", err)
		}
		log.Info().Str("path", safety).Msg("current database preserved")
	}

	if err := ensureParent(dbPath); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := copyFile(backupPath, dbPath); err != nil {
		return fmt.Errorf("restore %s: %w", backupPath, err)
	}

	log.Info().Str("from", backupPath).Str("to", dbPath).Msg("database restored")
	return nil
}
