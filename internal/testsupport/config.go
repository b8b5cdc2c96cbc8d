package testsupport

import (
	"net/url"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/andrzejandrzej/rabbit-tools/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// IsolateConfigDirs points HOME and the system config directory at fresh
// temp directories so config search paths never see the real machine. The
// system directory is returned; it does not exist yet.
func IsolateConfigDirs(t testing.TB) string {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	original := config.SystemDir
	config.SystemDir = filepath.Join(base, "etc", "rabbit_tools")
	t.Cleanup(func() { config.SystemDir = original })
	return config.SystemDir
}

// NewConfig produces a config with a per-test log file. It defaults common
// fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Logging.File = filepath.Join(base, "logs", "rabbit-tools.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithManagementAPI points the config at the given base URL.
func WithManagementAPI(rawURL string) ConfigOption {
	return func(b *configBuilder) {
		u, err := url.Parse(rawURL)
		if err != nil {
			b.t.Fatalf("parse management url: %v", err)
		}
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			b.t.Fatalf("parse management port: %v", err)
		}
		b.cfg.RabbitTools.Scheme = u.Scheme
		b.cfg.RabbitTools.Host = u.Hostname()
		b.cfg.RabbitTools.Port = port
	}
}

// WithVhost overrides the vhost on the test config.
func WithVhost(vhost string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.RabbitTools.Vhost = vhost
	}
}

// WriteConfig stores cfg in a temp directory and returns the file path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), config.FileName)
	if err := config.Write(path, *cfg, false); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
