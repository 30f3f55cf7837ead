package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/waio"
)

// ComparisonStore exports comparisons as JSON files with atomic update
// semantics. Files are written to a temporary directory, then moved into
// place on Commit.
type ComparisonStore struct {
	baseDir string
	name    string
}

// NewComparisonStore creates a new ComparisonStore.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewComparisonStore(baseDir, name string) *ComparisonStore {
	return &ComparisonStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ComparisonStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ComparisonStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes the comparison under a path derived from its URL and bot.
func (s *ComparisonStore) Save(ctx context.Context, c *waio.Comparison) error {
	relPath, err := ComparisonPath(c.URL, c.Bot)
	if err != nil {
		return err
	}

	root := s.tempDir()
	fullPath := filepath.Join(root, relPath)
	if !strings.HasPrefix(fullPath, root+string(filepath.Separator)) {
		return waio.Errorf(waio.EINVALID, "path traversal in %q", c.URL)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode comparison: %w", err)
	}
	return os.WriteFile(fullPath, append(data, '\n'), 0644)
}

// Commit replaces the final directory with everything saved so far.
func (s *ComparisonStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards everything saved so far.
func (s *ComparisonStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// ComparisonPath converts a page URL and bot to a relative file path.
// Example: https://example.com/docs/api, GPTBot → example.com/docs/api.GPTBot.json
func ComparisonPath(rawURL string, bot waio.Bot) (string, error) {
	if bot == "" {
		return "", waio.Errorf(waio.EINVALID, "bot required")
	}

	var host, path string
	if IsLocal(rawURL) {
		p, err := localPath(rawURL)
		if err != nil {
			return "", err
		}
		host, path = "local", strings.TrimSuffix(filepath.ToSlash(p), filepath.Ext(p))
	} else {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", waio.Errorf(waio.EINVALID, "invalid URL %q: %v", rawURL, err)
		}
		host, path = u.Host, u.Path
	}

	if strings.Contains(path, "..") {
		return "", waio.Errorf(waio.EINVALID, "path traversal in %q", rawURL)
	}

	path = strings.TrimPrefix(path, "/")
	if path == "" || strings.HasSuffix(path, "/") {
		path += "index"
	}
	return filepath.Join(host, filepath.FromSlash(path)) + "." + string(bot) + ".json", nil
}
