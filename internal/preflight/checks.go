package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/andrzejandrzej/rabbit-tools/internal/broker"
)

const checkTimeout = 5 * time.Second

// Pinger is satisfied by broker.Client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Lister is satisfied by broker.Client.
type Lister interface {
	ListQueues(ctx context.Context, vhost string) ([]string, error)
}

// CheckManagementAPI verifies that the management API answers with the
// configured credentials. It uses a single attempt (no retries).
func CheckManagementAPI(ctx context.Context, url string, pinger Pinger) Result {
	const name = "Management API"

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	if err := pinger.Ping(checkCtx); err != nil {
		if errors.Is(err, broker.ErrUnauthorized) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (auth failed: invalid credentials)", url)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (unreachable: %v)", url, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (reachable)", url)}
}

// CheckVhost verifies that queues in vhost can be listed.
func CheckVhost(ctx context.Context, vhost string, lister Lister) Result {
	name := fmt.Sprintf("Vhost %q", vhost)

	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	names, err := lister.ListQueues(checkCtx, vhost)
	if err != nil {
		if errors.Is(err, broker.ErrNotFound) {
			return Result{Name: name, Detail: "vhost does not exist"}
		}
		return Result{Name: name, Detail: fmt.Sprintf("list failed (%v)", err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d queues", len(names))}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.W_OK|unix.X_OK, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, unix.R_OK|unix.X_OK, "read ok")
}

func checkDirectory(name, path string, mode uint32, ok string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, ok)}
}

// CheckLogFile verifies that the log file's directory accepts writes. The
// directory is created on first use, so a missing one is reported but passes.
func CheckLogFile(path string) Result {
	const name = "Log file"

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (directory will be created)", path)}
	}
	result := CheckDirectoryAccess(name, dir)
	if result.Passed {
		result.Detail = fmt.Sprintf("%s (writable)", path)
	}
	return result
}
