package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFiles stores both artifacts under dir. Each file is staged as a temp
// file and renamed into place; if any step fails, staged and already placed
// files are removed so a failed run leaves no artifacts behind.
func WriteFiles(rep Report, dir, pdfName, workbookName string) error {
	if len(rep.PDF) == 0 || len(rep.Workbook) == 0 {
		return errors.New("report has no rendered artifacts")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	targets := []struct {
		name string
		data []byte
	}{
		{pdfName, rep.PDF},
		{workbookName, rep.Workbook},
	}

	staged := make([]string, 0, len(targets))
	removeAll := func(paths []string) {
		for _, p := range paths {
			_ = os.Remove(p)
		}
	}

	for _, t := range targets {
		path, err := stage(dir, t.name, t.data)
		if err != nil {
			removeAll(staged)
			return err
		}
		staged = append(staged, path)
	}

	placed := make([]string, 0, len(targets))
	for i, t := range targets {
		final := filepath.Join(dir, t.name)
		if err := os.Rename(staged[i], final); err != nil {
			removeAll(staged[i:])
			removeAll(placed)
			return fmt.Errorf("place %s: %w", t.name, err)
		}
		placed = append(placed, final)
	}
	return nil
}

func stage(dir, name string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", name, err)
	}
	path := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}
