package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalReportStore_SaveReport(t *testing.T) {
	t.Run("writes the file and returns its path", func(t *testing.T) {
		dir := t.TempDir()
		store := NewLocalReportStore(dir, nil)

		path, err := store.SaveReport("reporte_solicitudes_full.xlsx", []byte("workbook bytes"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "reporte_solicitudes_full.xlsx"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, []byte("workbook bytes"), content)
	})

	t.Run("creates the base directory if missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports")
		store := NewLocalReportStore(dir, nil)

		path, err := store.SaveReport("r.xlsx", []byte{1})
		require.NoError(t, err)
		assert.FileExists(t, path)
	})

	t.Run("overwrites an existing report", func(t *testing.T) {
		dir := t.TempDir()
		store := NewLocalReportStore(dir, nil)

		_, err := store.SaveReport("r.xlsx", []byte("old"))
		require.NoError(t, err)
		path, err := store.SaveReport("r.xlsx", []byte("new"))
		require.NoError(t, err)

		content, _ := os.ReadFile(path)
		assert.Equal(t, []byte("new"), content)
	})

	t.Run("rejects names escaping the base directory", func(t *testing.T) {
		store := NewLocalReportStore(t.TempDir(), nil)

		_, err := store.SaveReport(filepath.Join("..", "evil.xlsx"), []byte{1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "escapes report directory")
	})
}
