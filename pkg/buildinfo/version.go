// Package buildinfo carries version details stamped at build time.
package buildinfo

import "fmt"

// Set via ldflags, e.g.:
//
//	go build -ldflags "-X github.com/nodedoc/nodedoc/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/nodedoc/nodedoc/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/nodedoc/nodedoc/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template renders the cobra --version output, one line per field.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
