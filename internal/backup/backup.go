package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/garden/internal/constants"
)

const (
	// MaxBackups is the number of backups kept after rotation
	MaxBackups = 14
	// BackupDirName is the subdirectory backups live in
	BackupDirName = "backups"

	timestampMinute = "20060102-1504"
	timestampSecond = "20060102-150405"
)

// Info describes one backup file.
type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the local store file, either the SQLite database or the
// JSON document, into a sibling backups directory. Remote backends are out
// of scope; their backups belong to the database host.
type Manager struct {
	storePath string
	backupDir string
	suffix    string
}

// NewManager creates a manager for the store file at storePath. The backup
// file extension follows the source so restores cannot cross backends.
func NewManager(storePath string) *Manager {
	suffix := filepath.Ext(storePath)
	if suffix == "" {
		suffix = ".db"
	}
	return &Manager{
		storePath: storePath,
		backupDir: filepath.Join(filepath.Dir(storePath), BackupDirName),
		suffix:    suffix,
	}
}

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// Create snapshots the store file and rotates old backups. Returns the path
// of the new backup.
func (m *Manager) Create() (string, error) {
	path, err := m.create()
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to rotate old backups: %v\n", err)
	}
	return path, nil
}

func (m *Manager) create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.storePath); os.IsNotExist(err) {
		return "", fmt.Errorf("store file does not exist: %s", m.storePath)
	}

	path := m.freshBackupPath()
	if m.suffix == ".db" {
		if err := m.snapshotDatabase(path); err != nil {
			return "", fmt.Errorf("failed to back up database: %w", err)
		}
	} else {
		if err := copyFile(m.storePath, path); err != nil {
			return "", fmt.Errorf("failed to back up store file: %w", err)
		}
	}
	return path, nil
}

// freshBackupPath picks a timestamped filename that does not collide with an
// existing backup, escalating from minute precision to seconds to a counter.
func (m *Manager) freshBackupPath() string {
	now := time.Now()
	path := m.pathFor(now.Format(timestampMinute))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	path = m.pathFor(now.Format(timestampSecond))
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
		path = m.pathFor(fmt.Sprintf("%s-%d", now.Format(timestampSecond), counter))
	}
}

func (m *Manager) pathFor(stamp string) string {
	return filepath.Join(m.backupDir, constants.AppName+"-"+stamp+m.suffix)
}

// snapshotDatabase copies the SQLite database via VACUUM INTO, which yields
// a consistent copy even if another handle is open. Falls back to a plain
// file copy when VACUUM INTO is unavailable.
func (m *Manager) snapshotDatabase(destPath string) error {
	db, err := sql.Open("sqlite", m.storePath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := db.Exec("VACUUM INTO ?", destPath); err != nil {
		return copyFile(m.storePath, destPath)
	}
	return nil
}

// List returns the available backups, newest first.
func (m *Manager) List() ([]Info, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []Info{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	prefix := constants.AppName + "-"
	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, m.suffix) {
			continue
		}

		stamp := strings.TrimSuffix(strings.TrimPrefix(name, prefix), m.suffix)
		ts, ok := parseStamp(stamp)
		if !ok {
			continue
		}

		path := filepath.Join(m.backupDir, name)
		fi, err := os.Stat(path)
		if err != nil {
			continue
		}
		backups = append(backups, Info{Path: path, Timestamp: ts, Size: fi.Size()})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseStamp parses a backup filename timestamp, tolerating the collision
// counter suffix.
func parseStamp(stamp string) (time.Time, bool) {
	if parts := strings.Split(stamp, "-"); len(parts) == 3 {
		stamp = parts[0] + "-" + parts[1]
	}
	if ts, err := time.Parse(timestampMinute, stamp); err == nil {
		return ts, true
	}
	if ts, err := time.Parse(timestampSecond, stamp); err == nil {
		return ts, true
	}
	return time.Time{}, false
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the store file with the given backup. The current store
// file is snapshotted first, then the backup is copied into place via a
// temp file and atomic rename.
func (m *Manager) Restore(backupPath string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if filepath.Ext(backupPath) != m.suffix {
		return fmt.Errorf("backup %s does not match the configured store type (%s)", backupPath, m.suffix)
	}
	if m.suffix == ".db" {
		if err := verifyDatabase(backupPath); err != nil {
			return fmt.Errorf("backup file is corrupted or invalid: %w", err)
		}
	}

	if _, err := os.Stat(m.storePath); err == nil {
		current, err := m.create()
		if err != nil {
			return fmt.Errorf("failed to back up current store before restore: %w", err)
		}
		fmt.Printf("Created backup of current store: %s\n", filepath.Base(current))
	}

	tempPath := m.storePath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.storePath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to restore store file: %w", err)
	}
	return nil
}

func verifyDatabase(path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
