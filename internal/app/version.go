// Package app wires configuration, logging and the service together and
// dispatches to the CLI modes, the REPL and the HTTP server.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/seqcalc/pkg/models"
)

// Set with -ldflags "-X github.com/agbru/seqcalc/internal/app.Version=v0.3.0".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that -version wins over any other mode.
func HasVersionFlag(args []string) bool {
	return hasAnyFlag(args, "-version", "--version", "-V")
}

// HasJSONFlag reports whether args ask for JSON output.
func HasJSONFlag(args []string) bool {
	return hasAnyFlag(args, "-json", "--json")
}

func hasAnyFlag(args []string, names ...string) bool {
	for _, arg := range args {
		for _, name := range names {
			if arg == name || arg == name+"=true" {
				return true
			}
		}
	}
	return false
}

// BuildInfo describes the running binary.
func BuildInfo() models.BuildInfo {
	return models.BuildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// PrintVersion writes the build information, as one JSON object when
// asJSON is set.
func PrintVersion(out io.Writer, asJSON bool) error {
	info := BuildInfo()
	if asJSON {
		return json.NewEncoder(out).Encode(info)
	}
	_, err := fmt.Fprintf(out, "seqcalc %s (commit %s, built %s, %s %s)\n",
		info.Version, info.Commit, info.BuildDate, info.GoVersion, info.Platform)
	return err
}
