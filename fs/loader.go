// Package fs loads saved listing pages from disk and writes exports to it.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"

	"github.com/fwojciec/carlot"
	"golang.org/x/net/html/charset"
)

// Ensure PageLoader implements carlot.PageLoader at compile time.
var _ carlot.PageLoader = (*PageLoader)(nil)

// savedFromRe matches the comment browsers insert when saving a page,
// e.g. <!-- saved from url=(0042)https://www.cars.com/shopping/results/ -->.
var savedFromRe = regexp.MustCompile(`<!--\s*saved from url=\(\d+\)(\S+?)\s*-->`)

// maxSniff bounds how much of a file is searched for the saved-from comment.
const maxSniff = 4096

// PageLoader reads saved HTML files. The file's charset is detected from
// its byte order mark or meta tags and the content decoded to UTF-8.
type PageLoader struct {
	// PageURL is the URL the page was saved from. When empty, the URL is
	// taken from the browser's saved-from comment in the file.
	PageURL string
}

// NewPageLoader creates a PageLoader for pages saved from pageURL.
// Pass an empty pageURL to rely on the saved-from comment.
func NewPageLoader(pageURL string) *PageLoader {
	return &PageLoader{PageURL: pageURL}
}

// Load reads the file at path. Returns ENOTFOUND if the file does not exist
// and EINVALID if no page URL can be determined.
func (l *PageLoader) Load(ctx context.Context, path string) (*carlot.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, carlot.Errorf(carlot.ENOTFOUND, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer f.Close()

	r, err := charset.NewReader(f, "text/html")
	if err != nil {
		return nil, fmt.Errorf("detect charset of %s: %w", path, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	html := string(data)

	pageURL := l.PageURL
	if pageURL == "" {
		pageURL = SavedFromURL(html)
	}
	if pageURL == "" {
		return nil, carlot.Errorf(carlot.EINVALID, "page URL required for %s", path)
	}

	return carlot.NewPage(pageURL, html)
}

// SavedFromURL returns the URL recorded in a saved page's saved-from
// comment, or "" if there is none near the top of the document.
func SavedFromURL(html string) string {
	if len(html) > maxSniff {
		html = html[:maxSniff]
	}
	m := savedFromRe.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return m[1]
}
