package covers

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mrlokans/bookshelf/internal/views"
)

// Image owners.
const (
	KindBook   = "books"
	KindAuthor = "authors"
)

// maxImageBytes caps a single downloaded image.
const maxImageBytes = 10 << 20

var (
	ErrUnknownKind   = errors.New("unknown image kind")
	ErrImageTooLarge = errors.New("image exceeds size limit")
)

// Cache keeps local copies of book covers and author portraits.
type Cache struct {
	cacheDir   string
	httpClient *http.Client
	maxBytes   int64
}

// Entry is one cached image on disk.
type Entry struct {
	Kind string
	ID   string
	Path string
}

// NewCache creates a new image cache at the specified directory.
func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}

	return &Cache{
		cacheDir: cacheDir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxBytes: maxImageBytes,
	}, nil
}

// Get returns the cached image for an owner, fetching it first if needed.
// Returns an empty path when imageURL is empty.
func (c *Cache) Get(ctx context.Context, kind, id, imageURL string) (string, error) {
	if imageURL == "" {
		return "", nil
	}
	if err := checkKind(kind); err != nil {
		return "", err
	}

	cachePath := filepath.Join(c.cacheDir, c.filename(kind, id, imageURL))

	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	if err := c.fetchAndCache(ctx, imageURL, cachePath); err != nil {
		return "", err
	}

	return cachePath, nil
}

// Invalidate removes every cached image of an owner.
func (c *Cache) Invalidate(kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	pattern := filepath.Join(c.cacheDir, fmt.Sprintf("cover_%s_%s_*", kind, id))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return err
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// ViewInvalidated drops the images of a changed author or book.
// Collection keys are ignored.
func (c *Cache) ViewInvalidated(_ context.Context, key string) error {
	kind, id, ok := views.ParseEntityKey(key)
	if !ok {
		return nil
	}
	return c.Invalidate(kind, id)
}

// Entries lists every cached image.
func (c *Cache) Entries() ([]Entry, error) {
	matches, err := filepath.Glob(filepath.Join(c.cacheDir, "cover_*"))
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(matches))
	for _, match := range matches {
		parts := strings.SplitN(filepath.Base(match), "_", 4)
		if len(parts) != 4 || checkKind(parts[1]) != nil {
			continue
		}
		entries = append(entries, Entry{Kind: parts[1], ID: parts[2], Path: match})
	}
	return entries, nil
}

// Remove deletes a single cached image.
func (c *Cache) Remove(e Entry) error {
	if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// filename is unique per owner and URL, so a changed URL never hits a stale file.
func (c *Cache) filename(kind, id, imageURL string) string {
	hash := sha256.Sum256([]byte(imageURL))
	return fmt.Sprintf("cover_%s_%s_%x", kind, id, hash[:8])
}

func (c *Cache) fetchAndCache(ctx context.Context, url, cachePath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Bookshelf/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	// Temp file in the same directory so the rename is atomic
	tmpFile, err := os.CreateTemp(c.cacheDir, "tmp_")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		os.Remove(tmpPath)
	}()

	written, err := io.Copy(tmpFile, io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return err
	}
	if written > c.maxBytes {
		return fmt.Errorf("%w: more than %d bytes at %s", ErrImageTooLarge, c.maxBytes, url)
	}

	tmpFile.Close()

	return os.Rename(tmpPath, cachePath)
}

// CacheDir returns the cache directory path.
func (c *Cache) CacheDir() string {
	return c.cacheDir
}

func checkKind(kind string) error {
	if kind != KindBook && kind != KindAuthor {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	return nil
}
