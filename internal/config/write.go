package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sys/unix"
)

// ErrConfigExists is returned by Write when the target exists and overwrite
// was not requested.
var ErrConfigExists = errors.New("config file already exists")

const sampleHeader = `# rabbit-tools configuration
#
# Connection settings for the RabbitMQ management API. Every value can be
# overridden with a RABBIT_TOOLS_* environment variable.

`

// Write stores cfg as TOML at path. Concurrent writers are serialized through
// an advisory lock next to the file.
func Write(path string, cfg Config, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire config lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("config %s is being written by another process", path)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(path + ".lock")
	}()

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config: %w", err)
		}
	}

	body, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(sampleHeader)
	buf.Write(body)

	return replaceFile(path, buf.Bytes())
}

// replaceFile writes data to a private temp file next to path and renames it
// into place, so the result is 0600 even when an older file was not.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// Writable reports whether a file could be created in dir. Missing
// directories are judged by their nearest existing ancestor.
func Writable(dir string) bool {
	current := filepath.Clean(dir)
	for {
		info, err := os.Stat(current)
		if err == nil {
			return info.IsDir() && unix.Access(current, unix.W_OK|unix.X_OK) == nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return false
		}
		current = parent
	}
}

// InitPath picks where `config init` should write. An explicit path wins;
// otherwise the system directory is used when writable, falling back to the
// user directory.
func InitPath(explicit string) (string, error) {
	if explicit != "" {
		return expandPath(explicit)
	}
	if Writable(SystemDir) {
		return filepath.Join(SystemDir, FileName), nil
	}
	userDir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, FileName), nil
}
