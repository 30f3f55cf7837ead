// Package fs provides file-based page sources and comparison exports.
package fs

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/waio"
	"golang.org/x/net/html"
)

// Ensure Fetcher implements waio.Fetcher at compile time.
var _ waio.Fetcher = (*Fetcher)(nil)

// Fetcher reads saved HTML from disk so pages can be compared offline.
// Reading the file counts as network time.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// IsLocal reports whether target names a local file rather than a web URL.
func IsLocal(target string) bool {
	if strings.HasPrefix(target, "file://") {
		return true
	}
	u, err := url.Parse(target)
	// Single-letter schemes are Windows drive letters.
	return err != nil || u.Scheme == "" || len(u.Scheme) == 1
}

// Fetch reads the file at target, a path or a file:// URL.
// Returns ENOTFOUND if the file does not exist.
func (f *Fetcher) Fetch(ctx context.Context, target string, _ waio.BotConfig) (*waio.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := localPath(target)
	if err != nil {
		return nil, err
	}

	begin := time.Now()
	body, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, waio.Errorf(waio.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return nil, err
	}
	network := time.Since(begin)

	begin = time.Now()
	if _, err := html.Parse(bytes.NewReader(body)); err != nil {
		return nil, waio.Errorf(waio.EINVALID, "failed to parse HTML: %v", err)
	}
	parse := time.Since(begin)

	return &waio.Page{
		URL:         target,
		HTML:        string(body),
		NetworkTime: network,
		ParseTime:   parse,
		StatusCode:  http.StatusOK,
		Size:        len(body),
	}, nil
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

func localPath(target string) (string, error) {
	if !strings.HasPrefix(target, "file://") {
		return target, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", waio.Errorf(waio.EINVALID, "invalid file URL %q: %v", target, err)
	}
	return u.Path, nil
}
