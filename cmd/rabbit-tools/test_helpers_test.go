package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/andrzejandrzej/rabbit-tools/internal/testsupport"
)

type cliTestEnv struct {
	api        *testsupport.ManagementAPI
	configPath string
	logPath    string
}

func setupCLITestEnv(t *testing.T, queues ...string) *cliTestEnv {
	t.Helper()

	testsupport.IsolateConfigDirs(t)
	api := testsupport.NewManagementAPI(t, "test", queues...)
	cfg := testsupport.NewConfig(t, testsupport.WithManagementAPI(api.URL), testsupport.WithVhost("test"))

	return &cliTestEnv{
		api:        api,
		configPath: testsupport.WriteConfig(t, cfg),
		logPath:    cfg.Logging.File,
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
