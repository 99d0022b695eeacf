// ucs2json converts the UCS satellite database into a single JSON file,
// downloading the current tables first.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/miku/ucsjson"
	"github.com/miku/ucsjson/config"
	"github.com/miku/ucsjson/convert"
	"github.com/miku/ucsjson/export"
	"github.com/miku/ucsjson/feeds"
	"github.com/miku/ucsjson/names"
	"github.com/miku/ucsjson/table"
	log "github.com/sirupsen/logrus"
)

var docs = strings.TrimLeft(`
# ucs2json - UCS satellite database as JSON

Downloads the tab separated versions of the UCS satellite database into a
data directory, skipping files that are already there. The most recent
official name file provides official names, the matching alias file provides
all other fields. Rows without an official name are dropped.

## convert

$ ucs2json -d data -o ucs_database.json

## offline, compressed

$ ucs2json -n -d data -o ucs_database.json.zst

## flags

`, "\n")

var (
	proxy       = flag.String("p", "", "proxy URL for http and https")
	output      = flag.String("o", "ucs_database.json", "output file, .gz and .zst are compressed")
	noDownload  = flag.Bool("n", false, "do not download, use files in data directory")
	dataDir     = flag.String("d", ".", "data directory for database files")
	indexURL    = flag.String("u", feeds.DefaultIndexURL, "page linking to the database files")
	encoding    = flag.String("e", table.DefaultEncoding, "encoding of the database files")
	ensureASCII = flag.Bool("a", true, "escape non-ASCII characters in output")
	maxRetries  = flag.Int("r", 1, "max attempts per request")
	timeout     = flag.Duration("T", 0, "request timeout, zero means none")
	cacheTTL    = flag.Duration("cache-ttl", 0, "cache index page for this long, zero disables caching")
	verbose     = flag.Bool("v", false, "debug logging")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		io.WriteString(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(ucsjson.Version)
		os.Exit(0)
	}
	cfg := &config.Config{
		DataDir:     *dataDir,
		IndexURL:    *indexURL,
		Proxy:       *proxy,
		Output:      *output,
		Encoding:    *encoding,
		NoDownload:  *noDownload,
		EnsureASCII: *ensureASCII,
		MaxRetries:  *maxRetries,
		Timeout:     *timeout,
		CacheTTL:    *cacheTTL,
		Verbose:     *verbose,
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if !cfg.NoDownload {
		if err := download(cfg); err != nil {
			log.Fatal(err)
		}
	}
	stats, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{
		"read":    stats.Read,
		"written": stats.Written,
		"dropped": stats.Dropped,
	}).Infof("wrote %s", cfg.Output)
}

// download fetches any database file not yet in the data directory.
func download(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return err
	}
	client, err := feeds.NewClient(cfg.ClientOptions())
	if err != nil {
		return err
	}
	fetcher := feeds.NewUCSFetcher(client)
	fetcher.IndexURL = cfg.IndexURL
	fetcher.Dir = cfg.DataDir
	fetcher.CacheTTL = cfg.CacheTTL
	filenames, err := fetcher.Download()
	if err != nil {
		return fmt.Errorf("index %s: %w", cfg.IndexURL, err)
	}
	log.Debugf("index lists %d files", len(filenames))
	return nil
}

// run converts the most recent database in the data directory.
func run(cfg *config.Config) (convert.Stats, error) {
	var stats convert.Stats
	official, err := feeds.LatestOfficialName(cfg.DataDir)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", cfg.DataDir, err)
	}
	log.Infof("using %s", official)
	lookup, err := names.Load(cfg.OfficialNamePath(official), cfg.Encoding)
	if err != nil {
		return stats, err
	}
	log.Debugf("loaded %d official names", lookup.Len())
	primary := cfg.PrimaryPath(official)
	f, err := os.Open(primary)
	if err != nil {
		return stats, err
	}
	defer f.Close()
	r, err := table.Decode(f, cfg.Encoding)
	if err != nil {
		return stats, err
	}
	records, stats, err := convert.Database(r, lookup)
	if err != nil {
		return stats, fmt.Errorf("%s: %w", primary, err)
	}
	opts := export.Options{Indent: export.DefaultOptions.Indent, EnsureASCII: cfg.EnsureASCII}
	if err := export.WriteFile(cfg.Output, records, opts); err != nil {
		return stats, fmt.Errorf("%s: %w", cfg.Output, err)
	}
	return stats, nil
}
