package config

import (
	"path/filepath"
	"time"

	"github.com/miku/ucsjson/feeds"
)

// Config for a conversion run, TODO(martin): read proxy settings from the
// environment as well.
type Config struct {
	// DataDir is where database files are downloaded to and read from.
	DataDir string
	// IndexURL is the page linking to the database files.
	IndexURL string
	// Proxy is used for http and https, if set.
	Proxy string
	// Output is the JSON file to write, ".gz" and ".zst" are compressed.
	Output string
	// Encoding of the tab separated input files.
	Encoding    string
	NoDownload  bool
	EnsureASCII bool
	MaxRetries  int
	Timeout     time.Duration
	// CacheTTL for the index page, zero disables the cache.
	CacheTTL time.Duration
	Verbose  bool
}

// Proxies returns the proxy mapping for the HTTP client.
func (c *Config) Proxies() map[string]string {
	if c.Proxy == "" {
		return nil
	}
	return map[string]string{"http": c.Proxy, "https": c.Proxy}
}

// ClientOptions returns the HTTP client settings.
func (c *Config) ClientOptions() feeds.ClientOptions {
	return feeds.ClientOptions{
		Proxies:    c.Proxies(),
		MaxRetries: c.MaxRetries,
		Timeout:    c.Timeout,
	}
}

// OfficialNamePath returns the path to an official name file in DataDir.
func (c *Config) OfficialNamePath(name string) string {
	return filepath.Join(c.DataDir, name)
}

// PrimaryPath returns the path to the alias version of an official name
// file in DataDir.
func (c *Config) PrimaryPath(officialName string) string {
	return filepath.Join(c.DataDir, feeds.PrimaryName(officialName))
}
