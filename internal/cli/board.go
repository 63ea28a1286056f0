// internal/cli/board.go
package lrmeval

import (
	"context"
	"net/http"

	"github.com/mwiater/lrmeval/internal/appconfig"
	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/logging"
)

// newLoader builds a loader from the merged configuration. A broken catalog
// override file is logged and the built-in catalog is used instead.
func newLoader(cfg *appconfig.Config) leaderboard.Loader {
	file, err := catalog.WithOverrides(cfg.ModelsFile)
	if err != nil {
		logging.LogEvent("[CATALOG] %v; using built-in catalog", err)
	}
	return leaderboard.Loader{
		Client:        &http.Client{Timeout: cfg.FetchTimeout()},
		TextCatalog:   file.Text,
		VisualCatalog: file.Visual,
	}
}

// loadBoard reads both result sources. It never fails; unreadable sources
// show up as empty tabs.
func loadBoard(ctx context.Context, cfg *appconfig.Config) *leaderboard.Board {
	return newLoader(cfg).Load(ctx, cfg.TextResultsSource(), cfg.VisualResultsSource())
}
