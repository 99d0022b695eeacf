package feeds

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/adrg/xdg"
	"github.com/miku/ucsjson"
	"github.com/miku/ucsjson/atomicfile"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultIndexURL is the page linking to the current database files.
	DefaultIndexURL = "http://www.ucsusa.org/nuclear-weapons/space-weapons/satellite-database"
	// DefaultFileHost serves the database files.
	DefaultFileHost = "s3.amazonaws.com"
	// DefaultFilePrefix is the path under which all database files live.
	DefaultFilePrefix = "ucs-documents/nuclear-weapons/sat-database/"
)

// Doer abstracts https://pkg.go.dev/net/http#Client.Do.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// UCSFetcher finds database files linked from the UCS satellite database
// page and downloads the ones we do not have yet.
type UCSFetcher struct {
	Client     Doer
	IndexURL   string
	FileHost   string
	FilePrefix string
	// Dir is where downloaded files go.
	Dir string
	// CacheTTL for the index page, zero disables caching.
	CacheTTL time.Duration
	CacheDir string
}

// NewUCSFetcher creates a fetcher with default settings, downloading into
// the current directory. The cache directory is only created once the index
// page is cached.
func NewUCSFetcher(client Doer) *UCSFetcher {
	return &UCSFetcher{
		Client:     client,
		IndexURL:   DefaultIndexURL,
		FileHost:   DefaultFileHost,
		FilePrefix: DefaultFilePrefix,
		Dir:        ".",
		CacheDir:   filepath.Join(xdg.CacheHome, ucsjson.AppName, "ucs"),
	}
}

// quotedPattern matches quoted file links anywhere in the page.
func (f *UCSFetcher) quotedPattern() *regexp.Regexp {
	return regexp.MustCompile(`["'](https?://` + regexp.QuoteMeta(f.FileHost) + `/` +
		regexp.QuoteMeta(f.FilePrefix) + `.+?\.txt)["']`)
}

// linkPattern matches a single, absolute file link.
func (f *UCSFetcher) linkPattern() *regexp.Regexp {
	return regexp.MustCompile(`^https?://` + regexp.QuoteMeta(f.FileHost) + `/` +
		regexp.QuoteMeta(f.FilePrefix) + `.+\.txt$`)
}

func (f *UCSFetcher) cacheFile() string {
	return filepath.Join(f.CacheDir, "ucs_index.html")
}

// getCachedIndex returns the cached content if it exists and is not expired
func (f *UCSFetcher) getCachedIndex() ([]byte, error) {
	if f.CacheTTL <= 0 || f.CacheDir == "" {
		return nil, nil
	}
	info, err := os.Stat(f.cacheFile())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if time.Since(info.ModTime()) > f.CacheTTL {
		return nil, nil
	}
	return os.ReadFile(f.cacheFile())
}

// fetchIndex fetches the index page or uses cached content if available
func (f *UCSFetcher) fetchIndex() ([]byte, error) {
	b, err := f.getCachedIndex()
	if err != nil {
		return nil, err
	}
	if b != nil {
		log.Debugf("using cached index page: %s", f.cacheFile())
		return b, nil
	}
	req, err := http.NewRequest("GET", f.IndexURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s, status code: %d", f.IndexURL, resp.StatusCode)
	}
	b, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if f.CacheTTL > 0 && f.CacheDir != "" {
		if err := os.MkdirAll(f.CacheDir, 0755); err != nil {
			return nil, err
		}
		if err := atomicfile.WriteFile(f.cacheFile(), b, 0644); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Links extracts database file links from an index page, quoted links first,
// then anchors, which may be relative. Duplicates are removed.
func (f *UCSFetcher) Links(page []byte) ([]string, error) {
	var (
		seen   = make(map[string]bool)
		result []string
	)
	add := func(link string) {
		if !seen[link] {
			seen[link] = true
			result = append(result, link)
		}
	}
	for _, m := range f.quotedPattern().FindAllSubmatch(page, -1) {
		add(string(m[1]))
	}
	base, err := url.Parse(f.IndexURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	pattern := f.linkPattern()
	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		if link := base.ResolveReference(ref).String(); pattern.MatchString(link) {
			add(link)
		}
	})
	return result, nil
}

// download writes the content behind link to dst. The file only appears if
// the download completed.
func (f *UCSFetcher) download(link, dst string) error {
	req, err := http.NewRequest("GET", link, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	af, err := atomicfile.New(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(af, resp.Body); err != nil {
		af.Abort()
		return err
	}
	return af.Close()
}

// Download fetches the index page and every linked database file that is
// not already in Dir. It returns the base names of all linked files. Failed
// downloads are logged and skipped; only a failure to get the index page is
// an error.
func (f *UCSFetcher) Download() ([]string, error) {
	page, err := f.fetchIndex()
	if err != nil {
		return nil, err
	}
	links, err := f.Links(page)
	if err != nil {
		return nil, err
	}
	var filenames []string
	for _, link := range links {
		u, err := url.Parse(link)
		if err != nil {
			log.Warnf("skipping unparsable link: %s", link)
			continue
		}
		var (
			filename = path.Base(u.Path)
			dst      = filepath.Join(f.Dir, filename)
		)
		filenames = append(filenames, filename)
		if _, err := os.Stat(dst); err == nil {
			log.Infof("%s is already downloaded", filename)
			continue
		}
		log.Info(link)
		if err := f.download(link, dst); err != nil {
			log.Warnf("skipping %s: %v", link, err)
		}
	}
	return filenames, nil
}
