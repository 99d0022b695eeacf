package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/miku/ucsjson/feeds"
)

func TestClientOptions(t *testing.T) {
	c := &Config{Proxy: "http://proxy:3128", MaxRetries: 3, Timeout: time.Minute}
	want := feeds.ClientOptions{
		Proxies:    map[string]string{"http": "http://proxy:3128", "https": "http://proxy:3128"},
		MaxRetries: 3,
		Timeout:    time.Minute,
	}
	if diff := cmp.Diff(want, c.ClientOptions()); diff != "" {
		t.Errorf("ClientOptions mismatch (-want +got):\n%s", diff)
	}
	c.Proxy = ""
	if p := c.Proxies(); p != nil {
		t.Errorf("got %v, want nil", p)
	}
}

func TestPaths(t *testing.T) {
	c := &Config{DataDir: "data"}
	official := "UCS_Satellite_Database_officialname_1-1-17.txt"
	if got, want := c.OfficialNamePath(official), filepath.Join("data", official); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if got, want := c.PrimaryPath(official), filepath.Join("data", "UCS_Satellite_Database_1-1-17.txt"); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
