package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/waio"
	main "github.com/fwojciec/waio/cmd/waio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const annotatedPage = `<!DOCTYPE html>
<html>
<head><title>Fallback Title</title></head>
<body>
<main>
  <h1 data-ai-title="Marked Title">Marked Title</h1>
  <p data-ai-summary="A short marked summary.">A short marked summary.</p>
  <article data-ai-content="" data-importance="critical">
    <p>The marked article body explains how annotated pages are read.</p>
  </article>
</main>
</body>
</html>`

const plainPage = `<!DOCTYPE html>
<html>
<head>
<title>Plain Page</title>
<meta name="description" content="A page without markers.">
</head>
<body><article><h1>Plain Page</h1><p>Nothing on this page is annotated, so every field is inferred.</p></article></body>
</html>`

func writePage(t *testing.T, name, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))
	return path
}

func runMain(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := main.NewMain().Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runMain(t)

		require.Error(t, err)
		assert.Contains(t, stdout, "Usage: waio")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runMain(t, "--help")

		require.NoError(t, err)
		assert.Contains(t, stdout, "bench")
		assert.Contains(t, stdout, "history")
	})

	t.Run("bots needs no database", func(t *testing.T) {
		t.Parallel()

		stdout, _, err := runMain(t, "bots", "--db", "/nonexistent/dir/waio.db")

		require.NoError(t, err)
		assert.Contains(t, stdout, "ClaudeBot")
	})

	t.Run("extract resolves markers from a local file", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "annotated.html", annotatedPage)

		stdout, _, err := runMain(t, "extract", path, "--no-warm-up")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Title [structured]: Marked Title")
		assert.Contains(t, stdout, "Summary [structured]: A short marked summary.")
		assert.Contains(t, stdout, "Integrity: 100.0%")
		assert.Contains(t, stdout, "Speedup:")
	})

	t.Run("extract backfills unannotated pages", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "plain.html", plainPage)

		stdout, _, err := runMain(t, "extract", path, "--json", "--engine", "readability", "--no-warm-up")

		require.NoError(t, err)
		var got struct {
			Structured struct {
				Result waio.ExtractionResult `json:"result"`
			} `json:"structured"`
		}
		require.NoError(t, json.Unmarshal([]byte(stdout), &got))
		r := got.Structured.Result
		assert.False(t, r.MarkersDetected)
		assert.Equal(t, "Plain Page", r.Title)
		assert.Equal(t, waio.ProvenanceHeuristic, r.Provenance[waio.FieldTitle])
		assert.Zero(t, r.IntegrityScore())
	})

	t.Run("saved reports show up in history", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "annotated.html", annotatedPage)
		db := filepath.Join(t.TempDir(), "waio.db")

		stdout, _, err := runMain(t, "extract", path, "--save", "--db", db, "--bot", "claudebot", "--no-warm-up")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Saved report")

		stdout, _, err = runMain(t, "history", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, stdout, path)
		assert.Contains(t, stdout, "ClaudeBot")
	})

	t.Run("profiles file changes the modifier", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "annotated.html", annotatedPage)
		profiles := writePage(t, "profiles.yaml", "bots:\n  GPTBot:\n    categories: [data-ai-title]\n")

		stdout, _, err := runMain(t, "extract", path, "--profiles", profiles, "--no-warm-up")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Title [structured]: Marked Title")
	})

	t.Run("missing profiles file fails", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "annotated.html", annotatedPage)

		_, _, err := runMain(t, "extract", path, "--profiles", filepath.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, waio.ENOTFOUND, waio.ErrorCode(err))
	})

	t.Run("unknown bot fails", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "annotated.html", annotatedPage)

		_, stderr, err := runMain(t, "extract", path, "--bot", "NopeBot")

		assert.Equal(t, waio.EINVALID, waio.ErrorCode(err))
		assert.Contains(t, stderr, "invalid bot type")
	})

	t.Run("missing file fails with ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, _, err := runMain(t, "extract", filepath.Join(t.TempDir(), "missing.html"))

		assert.Equal(t, waio.ENOTFOUND, waio.ErrorCode(err))
	})
}
