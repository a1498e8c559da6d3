// Package internal has logging helpers shared by the command and core layers.
package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/tweetstats/internal/contract"
)

// headerOut is where run headers and progress lines go. Stdout may carry CSV or JSON.
var headerOut io.Writer = os.Stderr

// LogRunHeader prints a concise, 2-line header for a scoring run.
func LogRunHeader(cfg *contract.Config, companies int) {
	rosterName := filepath.Base(cfg.RosterPath)
	if rosterName == "" || rosterName == "." {
		rosterName = "roster"
	}

	// Line 1: The run summary (Roster and Output)
	_, _ = fmt.Fprintf(headerOut, "🔎 Roster: %s (%d companies, Output: %s)\n", rosterName, companies, cfg.Output)

	// Line 2: Where the archives are read from
	_, _ = fmt.Fprintf(headerOut, "📂 Tweets: %s (missing text: %s)\n", cfg.TweetsDir, cfg.MissingText)
}

// LogCompanyHeader prints a one-line header for a single company lookup.
func LogCompanyHeader(cfg *contract.Config, handle string) {
	_, _ = fmt.Fprintf(headerOut, "🔎 Company: %s (Tweets: %s)\n", handle, cfg.TweetsDir)
}
