package test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

// TmpFile returns a unique path for a throwaway SQLite database. The file
// lives in a per-test temp directory, so every test gets a fresh database
// and cleanup happens automatically.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.New().String()+".db")
}
