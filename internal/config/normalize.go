package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeRabbitTools(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeRabbitTools() error {
	rt := &c.RabbitTools
	rt.Scheme = strings.ToLower(strings.TrimSpace(rt.Scheme))
	rt.Host = strings.TrimSpace(rt.Host)
	rt.User = strings.TrimSpace(rt.User)
	rt.Vhost = strings.TrimSpace(rt.Vhost)

	// Older config files stored the host as a URL.
	if strings.Contains(rt.Host, "://") {
		u, err := url.Parse(rt.Host)
		if err != nil {
			return fmt.Errorf("rabbit_tools.host: %w", err)
		}
		rt.Scheme = strings.ToLower(u.Scheme)
		rt.Host = u.Hostname()
		if p := u.Port(); p != "" {
			port, err := strconv.Atoi(p)
			if err != nil {
				return fmt.Errorf("rabbit_tools.host: invalid port %q", p)
			}
			rt.Port = port
		}
	}

	if rt.Scheme == "" {
		rt.Scheme = defaultScheme
	}
	if rt.Port == 0 {
		rt.Port = defaultPort
	}
	if rt.Vhost == "" {
		rt.Vhost = defaultVhost
	}
	if rt.TimeoutSeconds <= 0 {
		rt.TimeoutSeconds = defaultTimeoutSeconds
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if file := strings.TrimSpace(c.Logging.File); file != "" {
		expanded, err := expandPath(file)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
