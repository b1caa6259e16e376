package cmd

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielroe/directus-typegen/internal/gen"
	"github.com/danielroe/directus-typegen/internal/source"
	assert "github.com/stretchr/testify/require"
)

const testSnapshot = `
version: 1
collections:
  - collection: articles
    meta: {singleton: false}
    schema: {name: articles}
  - collection: settings
    meta: {singleton: true}
    schema: {name: settings}
fields:
  - collection: articles
    field: id
    type: integer
    meta: {hidden: true, sort: 1}
    schema: {data_type: integer, is_primary_key: true}
  - collection: articles
    field: author
    type: uuid
    meta: {interface: select-dropdown-m2o, note: Person who wrote the article, sort: 2}
    schema: {data_type: uuid, is_nullable: true}
  - collection: settings
    field: site_name
    type: string
    meta: {required: true}
    schema: {data_type: text, is_nullable: true}
`

const expectedTypeScript = "export interface Article {\n" +
	"\tid: number;\n" +
	"\t/** Person who wrote the article */\n" +
	"\tauthor?: string | null;\n" +
	"}\n" +
	"\n" +
	"export interface Settings {\n" +
	"\tsite_name: string;\n" +
	"}\n" +
	"\n" +
	"export interface Schema {\n" +
	"\tarticles: Article[];\n" +
	"\tsettings: Settings;\n" +
	"}\n"

func snapshotDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.yaml"), []byte(testSnapshot), 0600))
	return dir
}

func run(t *testing.T, ctx context.Context, dir string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := Run(ctx, Settings{
		WorkingDir: dir,
		Args:       args,
		Stdout:     &stdout,
		Stderr:     &stderr,
	})

	return stdout.String(), stderr.String(), err
}

func TestRunToStdout(t *testing.T) {
	stdout, _, err := run(t, context.Background(), snapshotDir(t), "-source", "snapshot", "-snapshot", "snapshot.yaml", "-output", "-")
	assert.NoError(t, err)
	assert.Equal(t, expectedTypeScript, stdout)
}

func TestRunWritesFile(t *testing.T) {
	dir := snapshotDir(t)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "directus-typegen.yaml"), []byte(`
source: snapshot
snapshot:
  path: snapshot.yaml
output: types/schema.ts
`), 0600))

	stdout, _, err := run(t, context.Background(), dir)
	assert.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(filepath.Join(dir, "types", "schema.ts"))
	assert.NoError(t, err)
	assert.Equal(t, expectedTypeScript, string(data))
}

func TestRunGo(t *testing.T) {
	stdout, _, err := run(t, context.Background(), snapshotDir(t),
		"-source", "snapshot", "-snapshot", "snapshot.yaml", "-output", "-", "-format", "go", "-package", "cms")
	assert.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "// Code generated by directus-typegen. DO NOT EDIT.\n"))
	assert.Contains(t, stdout, "package cms")
	assert.Contains(t, stdout, "type Article struct")
	assert.Contains(t, stdout, "type Schema struct")
}

func TestRunSkipWriting(t *testing.T) {
	dir := snapshotDir(t)

	stdout, _, err := run(t, context.Background(), dir, "-source", "snapshot", "-snapshot", "snapshot.yaml", "-output=")
	assert.NoError(t, err)
	assert.Empty(t, stdout)

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunFailureKeepsPreviousOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "schema.ts")
	assert.NoError(t, os.WriteFile(out, []byte("previous"), 0600))

	_, _, err := run(t, context.Background(), dir, "-source", "snapshot", "-snapshot", "missing.yaml", "-output", "schema.ts")
	assert.ErrorContains(t, err, "failed to fetch collections")

	var fetchErr *source.FetchError
	assert.True(t, errors.As(err, &fetchErr))

	data, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}

func TestRunCollision(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.yaml"), []byte(`
collections:
  - collection: blog_posts
    schema: {name: blog_posts}
  - collection: blogPosts
    schema: {name: blogPosts}
fields: []
`), 0600))

	_, _, err := run(t, context.Background(), dir, "-source", "snapshot", "-snapshot", "snapshot.yaml", "-output", "-")

	var collisionErr *gen.CollisionError
	assert.True(t, errors.As(err, &collisionErr))
	assert.Equal(t, "BlogPost", collisionErr.TypeName)
}

func TestRunApiUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Invalid user credentials."}]}`))
	}))
	t.Cleanup(srv.Close)

	_, stderr, err := run(t, context.Background(), t.TempDir(), "-url", srv.URL, "-token", "nope", "-output", "-")

	var fetchErr *source.FetchError
	assert.True(t, errors.As(err, &fetchErr))
	assert.True(t, fetchErr.Unauthorized())
	assert.Contains(t, stderr, "directus rejected the token")
}

func TestRunLogsRunId(t *testing.T) {
	_, stderr, err := run(t, context.Background(), snapshotDir(t),
		"-source", "snapshot", "-snapshot", "snapshot.yaml", "-output", "-", "-log-format", "json")
	assert.NoError(t, err)

	assert.Contains(t, stderr, `"msg":"generated types"`)
	assert.Contains(t, stderr, `"run":"`)
	assert.Contains(t, stderr, `"collections":2`)
}

func TestRunHelp(t *testing.T) {
	_, stderr, err := run(t, context.Background(), t.TempDir(), "-h")
	assert.NoError(t, err)
	assert.Contains(t, stderr, "Usage: directus-typegen")
	assert.Contains(t, stderr, "-source")
}

func TestRunInvalidConfig(t *testing.T) {
	_, _, err := run(t, context.Background(), t.TempDir(), "-format", "rust")
	assert.ErrorContains(t, err, "invalid config")
}

func TestRunWatch(t *testing.T) {
	dir := snapshotDir(t)
	out := filepath.Join(dir, "schema.ts")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, _, err := run(t, ctx, dir, "-source", "snapshot", "-snapshot", "snapshot.yaml", "-output", "schema.ts", "-watch")
		done <- err
	}()

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && string(data) == expectedTypeScript
	}, 5*time.Second, 20*time.Millisecond)

	// Give the watcher time to register.
	time.Sleep(200 * time.Millisecond)

	// A broken snapshot is logged and leaves the previous output alone.
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.yaml"), []byte("collections: ["), 0600))
	time.Sleep(500 * time.Millisecond)

	data, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Equal(t, expectedTypeScript, string(data))

	updated := strings.Replace(testSnapshot, "collection: settings\n    meta: {singleton: true}", "collection: settings\n    meta: {singleton: false}", 1)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.yaml"), []byte(updated), 0600))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "\tsettings: Setting[];\n")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRunWatchNewMigration(t *testing.T) {
	dir := t.TempDir()
	migrations := filepath.Join(dir, "migrations")
	out := filepath.Join(dir, "schema.ts")
	assert.NoError(t, os.MkdirAll(migrations, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(migrations, "00001_articles.sql"), []byte("CREATE TABLE articles (id INT PRIMARY KEY);"), 0600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, _, err := run(t, ctx, dir, "-source", "sql", "-migrations", "migrations/*.sql", "-output", "schema.ts", "-watch")
		done <- err
	}()

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "export interface Article {")
	}, 5*time.Second, 20*time.Millisecond)

	// Give the watcher time to register.
	time.Sleep(200 * time.Millisecond)

	assert.NoError(t, os.WriteFile(filepath.Join(migrations, "00002_authors.sql"), []byte("CREATE TABLE authors (id INT PRIMARY KEY);"), 0600))

	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(data), "export interface Author {\n\tid: number;\n}\n") &&
			strings.Contains(string(data), "\tauthors: Author[];\n")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
