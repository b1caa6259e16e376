package test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielroe/directus-typegen/internal/cmd"
	assert "github.com/stretchr/testify/require"
)

func getWd(t *testing.T, folder string) string {
	wd, err := os.Getwd()
	assert.NoError(t, err, "failed to get working directory")
	return filepath.Join(wd, folder)
}

// generate runs the command in a fixture folder and returns what it wrote
// to stdout.
func generate(t *testing.T, folder string, args ...string) string {
	var stdout, stderr bytes.Buffer

	err := cmd.Run(context.Background(), cmd.Settings{
		WorkingDir: getWd(t, folder),
		Args:       args,
		Stdout:     &stdout,
		Stderr:     &stderr,
	})

	assert.NoError(t, err, stderr.String())
	return stdout.String()
}

func readExpected(t *testing.T, folder string, file string) string {
	data, err := os.ReadFile(filepath.Join(getWd(t, folder), file))
	assert.NoError(t, err)
	return string(data)
}
