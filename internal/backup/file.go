package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"taskpad/internal/model"
)

// WriteFile exports the store in the given format and writes it under
// dir. If the write fails there, fallbackDir is tried before giving up
// with ErrIO. The written path is recorded in the backup audit log and
// returned so callers can tell the user where the file landed.
func (s *Serializer) WriteFile(ctx context.Context, dir, fallbackDir, format string) (string, error) {
	var content string
	var err error

	switch format {
	case model.BackupTypeJSON:
		content, err = s.ExportJSON(ctx)
	case model.BackupTypeCSV:
		content, err = s.ExportCSV(ctx)
	default:
		return "", fmt.Errorf("unknown backup format %q", format)
	}
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("taskpad-backup-%s.%s",
		time.Now().UTC().Format("20060102-150405"), format)

	path, err := writeTo(dir, name, content)
	if err != nil && fallbackDir != "" && fallbackDir != dir {
		s.log.Warn().Err(err).Str("dir", dir).Str("fallback", fallbackDir).
			Msg("backup write failed, trying fallback location")
		path, err = writeTo(fallbackDir, name, content)
	}
	if err != nil {
		return "", fmt.Errorf("writing backup %s: %w: %v", name, ErrIO, err)
	}

	if err := s.store.RecordBackup(ctx, model.BackupRecord{Path: path, Type: format}); err != nil {
		// The file is on disk; a missing audit row is not worth
		// failing the export over.
		s.log.Error().Err(err).Str("path", path).Msg("recording backup failed")
	}

	s.log.Info().Str("path", path).Str("format", format).Msg("backup written")
	return path, nil
}

// ReadFile loads an exported file from disk for import.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading backup %s: %w: %v", path, ErrIO, err)
	}
	return string(data), nil
}

func writeTo(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
