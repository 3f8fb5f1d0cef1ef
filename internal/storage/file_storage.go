package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ReportStore persists downloaded report files. It is the host-side
// counterpart of a browser's save-file primitive: the download flow hands it
// bytes and a suggested name, and it returns the final location.
type ReportStore interface {
	// SaveReport writes content under the store's base directory using the
	// suggested file name, creating the directory if needed.
	SaveReport(fileName string, content []byte) (string, error)
}

// LocalReportStore implements ReportStore on the local filesystem.
type LocalReportStore struct {
	baseDir string
	logger  *zap.Logger
}

// NewLocalReportStore creates a store rooted at baseDir.
func NewLocalReportStore(baseDir string, logger *zap.Logger) *LocalReportStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalReportStore{baseDir: baseDir, logger: logger}
}

// SaveReport writes content to baseDir/fileName. The file name must be a
// bare name; anything resolving outside the base directory is rejected.
func (s *LocalReportStore) SaveReport(fileName string, content []byte) (string, error) {
	fullPath := filepath.Join(s.baseDir, fileName)
	if err := s.validatePath(fullPath); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		s.logger.Error("failed to create report directory",
			zap.String("path", s.baseDir),
			zap.Error(err))
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		s.logger.Error("failed to write report file",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("writing report file: %w", err)
	}

	s.logger.Debug("report file saved",
		zap.String("path", fullPath),
		zap.Int("size", len(content)))
	return fullPath, nil
}

// validatePath ensures the resolved path stays inside the base directory.
func (s *LocalReportStore) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return fmt.Errorf("resolving base path: %w", err)
	}
	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes report directory: %s", fullPath)
	}
	return nil
}
