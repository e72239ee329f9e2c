package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xolan/clientclock/internal/kv"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore from a backup file",
	Long: `Restore the store from a backup.

Backups are taken before deleting a client, clearing timings and restoring.
By default, restores from the most recent backup (.bak.1).
Optionally specify a backup number to restore from (1-3).

Examples:
  clientclock restore       Restore from most recent backup
  clientclock restore 2     Restore from backup #2`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		restoreFromBackup(args)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(args []string) {
	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			fail(fmt.Sprintf("Invalid backup number '%s'", args[0]), nil, "")
			return
		}
		if num < 1 || num > kv.MaxBackupCount {
			fail(fmt.Sprintf("Backup number must be between 1 and %d (got %d)", kv.MaxBackupCount, num), nil, "")
			return
		}
		backupNum = num
	}

	// The store itself is not opened: it may be the corrupt file being replaced
	storePath, ok := locateStore()
	if !ok {
		return
	}

	backups, err := kv.ListBackups(storePath)
	if err != nil {
		fail("Failed to list backups", err, "")
		return
	}
	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	for _, backup := range backups {
		if backup.Number == 1 {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s (most recent)\n", backup.Number, backup.Path)
		} else {
			_, _ = fmt.Fprintf(deps.Stdout, "  %d: %s\n", backup.Number, backup.Path)
		}
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	backupExists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			backupExists = true
			break
		}
	}
	if !backupExists {
		fail(fmt.Sprintf("Backup %d does not exist", backupNum), nil, "")
		return
	}

	if err := kv.RestoreBackup(storePath, backupNum); err != nil {
		fail("Failed to restore backup", err, "")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
}

// locateStore returns the store file path or reports why there is none.
func locateStore() (string, bool) {
	path, err := deps.StorePath()
	if err != nil {
		if errors.Is(err, errNoStoreFile) {
			fail("Backups are only available for the file store", nil, "Run without --ephemeral")
			return "", false
		}
		fail("Failed to locate store file", err, "Check that your config directory is accessible and writable")
		return "", false
	}
	return path, true
}
