package kv

import (
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// MaxBackupCount is the maximum number of backup files to keep
	MaxBackupCount = 3
)

// BackupInfo describes one backup slot on disk.
type BackupInfo struct {
	Number int    // 1 is the most recent
	Path   string // full path to the backup file
}

// GetBackupPath returns the path of backup slot n for the store at storePath,
// e.g. store.json.bak.1.
func GetBackupPath(storePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storePath, BackupSuffix, n)
}

// rotateBackups drops the oldest slot and shifts .bak.1 -> .bak.2 -> .bak.3.
// Missing slots are skipped.
func rotateBackups(storePath string) error {
	if err := os.Remove(GetBackupPath(storePath, MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(GetBackupPath(storePath, i), GetBackupPath(storePath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// CreateBackup copies the store file into .bak.1 after rotating older slots.
// A missing store file is not an error; there is nothing to back up.
func CreateBackup(storePath string) error {
	if _, err := os.Stat(storePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storePath); err != nil {
		return err
	}

	return copyFile(storePath, GetBackupPath(storePath, 1))
}

// ListBackups returns the existing backup slots, most recent first.
func ListBackups(storePath string) ([]BackupInfo, error) {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		p := GetBackupPath(storePath, i)
		if _, err := os.Stat(p); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: p})
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return backups, nil
}

// RestoreBackup replaces the store file with backup slot n. The current file
// is backed up first, so a restore can itself be undone.
func RestoreBackup(storePath string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	backupPath := GetBackupPath(storePath, n)
	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	// Rotation shifts slot n to n+1, so read the chosen backup before it moves.
	content, err := os.ReadFile(backupPath)
	if err != nil {
		return err
	}

	if err := CreateBackup(storePath); err != nil {
		return err
	}

	tmpFile := storePath + ".tmp"
	if err := os.WriteFile(tmpFile, content, 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, storePath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
