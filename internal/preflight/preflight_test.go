package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrzejandrzej/rabbit-tools/internal/broker"
	"github.com/andrzejandrzej/rabbit-tools/internal/config"
	"github.com/andrzejandrzej/rabbit-tools/internal/testsupport"
)

type stubBroker struct {
	pingErr error
	listErr error
	queues  []string
	lists   int
}

func (s *stubBroker) Ping(context.Context) error { return s.pingErr }

func (s *stubBroker) ListQueues(context.Context, string) ([]string, error) {
	s.lists++
	return s.queues, s.listErr
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryReadable_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryReadable("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckLogFile_MissingDirPasses(t *testing.T) {
	result := CheckLogFile(filepath.Join(t.TempDir(), "logs", "rabbit-tools.log"))
	if !result.Passed {
		t.Fatalf("expected pass for creatable dir, got: %s", result.Detail)
	}
}

func TestCheckManagementAPI(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		passed bool
		detail string
	}{
		{"reachable", nil, true, "reachable"},
		{"bad credentials", fmt.Errorf("%w: fetch overview", broker.ErrUnauthorized), false, "auth failed"},
		{"down", errors.New("connection refused"), false, "unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckManagementAPI(context.Background(), "http://mq:15672", &stubBroker{pingErr: tt.err})
			if result.Passed != tt.passed {
				t.Fatalf("Passed = %v, want %v (%s)", result.Passed, tt.passed, result.Detail)
			}
			if !strings.Contains(result.Detail, tt.detail) {
				t.Fatalf("detail %q missing %q", result.Detail, tt.detail)
			}
		})
	}
}

func TestCheckManagementAPI_RejectedCredentials(t *testing.T) {
	api := testsupport.NewManagementAPI(t, "/")
	client, err := broker.New(broker.Options{URL: api.URL, User: "intruder", Password: "guest"})
	if err != nil {
		t.Fatalf("broker.New: %v", err)
	}
	result := CheckManagementAPI(context.Background(), api.URL, client)
	if result.Passed || !strings.Contains(result.Detail, "auth failed") {
		t.Fatalf("expected auth failure, got %+v", result)
	}
}

func TestCheckVhost_MissingVhost(t *testing.T) {
	stub := &stubBroker{listErr: fmt.Errorf("%w: list queues", broker.ErrNotFound)}
	result := CheckVhost(context.Background(), "ghost", stub)
	if result.Passed || result.Detail != "vhost does not exist" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil, "", nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_ReportsEveryCheck(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "rabbit-tools.log")
	configPath := filepath.Join(t.TempDir(), config.FileName)
	stub := &stubBroker{queues: []string{"a", "b"}}

	results := RunAll(context.Background(), &cfg, configPath, stub)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d: %+v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if results[3].Detail != "2 queues" {
		t.Fatalf("unexpected vhost detail %q", results[3].Detail)
	}
	if !Passed(results) {
		t.Fatal("expected Passed to be true")
	}
}

func TestRunAll_SkipsVhostWhenAPIDown(t *testing.T) {
	cfg := config.Default()
	stub := &stubBroker{pingErr: errors.New("dial tcp: connection refused")}

	results := RunAll(context.Background(), &cfg, "", stub)
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("expected a single failed API check, got %+v", results)
	}
	if stub.lists != 0 {
		t.Fatalf("expected no listing, got %d", stub.lists)
	}
	if Passed(results) {
		t.Fatal("expected Passed to be false")
	}
}
