package gen

import (
	"os"
	"path/filepath"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	filePath := filepath.Join(dir, "types", "directus-schema.ts")

	assert.NoError(t, WriteFile(filePath, "export interface Schema {\n}\n"))

	data, err := os.ReadFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, "export interface Schema {\n}\n", string(data))

	assert.NoError(t, WriteFile(filePath, "replaced\n"))

	data, err = os.ReadFile(filePath)
	assert.NoError(t, err)
	assert.Equal(t, "replaced\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(filePath))
	assert.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}
