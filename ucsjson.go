// Package ucsjson turns the UCS satellite database into a single JSON document.
package ucsjson

const (
	// AppName is used for cache and data directories.
	AppName = "ucsjson"
	// Version of the tools.
	Version = "0.1.0"
)
