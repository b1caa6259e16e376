package gen

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes content to filePath through a temporary file in the same
// directory, so readers never observe a partially written artifact.
func WriteFile(filePath string, content string) error {
	dir := filepath.Dir(filePath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf(`failed to create output directory "%s": %w`, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*")
	if err != nil {
		return fmt.Errorf(`failed to create temporary file for "%s": %w`, filePath, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(`failed to write "%s": %w`, tmp.Name(), err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf(`failed to write "%s": %w`, tmp.Name(), err)
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf(`failed to move output into "%s": %w`, filePath, err)
	}

	return nil
}
