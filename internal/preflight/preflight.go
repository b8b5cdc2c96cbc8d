package preflight

import (
	"context"
	"path/filepath"

	"github.com/andrzejandrzej/rabbit-tools/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Broker is the management API surface the checks need.
type Broker interface {
	Pinger
	Lister
}

// RunAll executes every readiness check for cfg. configPath is the file the
// config was loaded from. Vhost listing is skipped when the API is unreachable.
func RunAll(ctx context.Context, cfg *config.Config, configPath string, client Broker) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if configPath != "" {
		results = append(results, CheckDirectoryReadable("Config directory", filepath.Dir(configPath)))
	}

	if cfg.Logging.File != "" {
		results = append(results, CheckLogFile(cfg.Logging.File))
	}

	if client == nil {
		return results
	}
	api := CheckManagementAPI(ctx, cfg.ManagementURL(), client)
	results = append(results, api)
	if api.Passed {
		results = append(results, CheckVhost(ctx, cfg.RabbitTools.Vhost, client))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
