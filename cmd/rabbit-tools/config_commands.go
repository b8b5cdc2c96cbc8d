package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrzejandrzej/rabbit-tools/internal/broker"
	"github.com/andrzejandrzej/rabbit-tools/internal/config"
	"github.com/andrzejandrzej/rabbit-tools/internal/preflight"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand(ctx))

	return configCmd
}

type initOptions struct {
	path      string
	overwrite bool
	host      string
	port      int
	user      string
	password  string
	scheme    string
	logFile   string
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	defaults := config.Default()
	opts := initOptions{
		host:     defaults.RabbitTools.Host,
		port:     defaults.RabbitTools.Port,
		user:     defaults.RabbitTools.User,
		password: defaults.RabbitTools.Password,
		scheme:   defaults.RabbitTools.Scheme,
	}

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Long: `Write a configuration file for rabbit-tools.

Without --path the file goes to /etc/rabbit_tools when that directory is
writable, otherwise to ~/.rabbit_tools. The global --vhost, --log-level, and
--log-format flags are stored as well.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.build(ctx.flags)
			if err != nil {
				return err
			}

			targets, err := initTargets(opts.path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var lastErr error
			for _, target := range targets {
				err := writeConfig(cmd, target, cfg, opts.overwrite)
				if err == nil {
					fmt.Fprintf(out, "Wrote configuration to %s\n", target)
					return nil
				}
				if errors.Is(err, errDeclined) {
					fmt.Fprintf(out, "Kept existing configuration at %s\n", target)
					return nil
				}
				if !errors.Is(err, fs.ErrPermission) {
					return err
				}
				lastErr = err
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not write %s, trying the next location\n", target)
			}
			return fmt.Errorf("failed to write a config file: %w", lastErr)
		},
	}

	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&opts.overwrite, "overwrite", false, "Overwrite existing configuration if present")
	cmd.Flags().StringVarP(&opts.host, "host", "a", opts.host, "Hostname of the RabbitMQ management API")
	cmd.Flags().IntVar(&opts.port, "port", opts.port, "Port of the RabbitMQ management API")
	cmd.Flags().StringVarP(&opts.user, "user", "u", opts.user, "Management API user")
	cmd.Flags().StringVarP(&opts.password, "password", "s", opts.password, "Management API password")
	cmd.Flags().StringVar(&opts.scheme, "scheme", opts.scheme, "Management API scheme (http or https)")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Also write logs to this file")
	return cmd
}

func (o initOptions) build(flags *globalFlags) (config.Config, error) {
	cfg := config.Default()
	cfg.RabbitTools.Host = strings.TrimSpace(o.host)
	cfg.RabbitTools.Port = o.port
	cfg.RabbitTools.User = strings.TrimSpace(o.user)
	cfg.RabbitTools.Password = o.password
	cfg.RabbitTools.Scheme = strings.ToLower(strings.TrimSpace(o.scheme))
	cfg.Logging.File = strings.TrimSpace(o.logFile)
	if vhost := strings.TrimSpace(flags.vhost); vhost != "" {
		cfg.RabbitTools.Vhost = vhost
	}
	if level := strings.TrimSpace(flags.logLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if format := strings.TrimSpace(flags.logFormat); format != "" {
		cfg.Logging.Format = strings.ToLower(format)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func initTargets(explicit string) ([]string, error) {
	if strings.TrimSpace(explicit) != "" {
		target, err := config.InitPath(strings.TrimSpace(explicit))
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		return []string{target}, nil
	}
	first, err := config.InitPath("")
	if err != nil {
		return nil, fmt.Errorf("determine config path: %w", err)
	}
	userDir, err := config.UserDir()
	if err != nil {
		return nil, fmt.Errorf("determine config path: %w", err)
	}
	userPath := filepath.Join(userDir, config.FileName)
	if first == userPath {
		return []string{first}, nil
	}
	return []string{first, userPath}, nil
}

var errDeclined = errors.New("overwrite declined")

// writeConfig asks before replacing an existing file when stdin is a
// terminal; otherwise --overwrite is required.
func writeConfig(cmd *cobra.Command, target string, cfg config.Config, overwrite bool) error {
	err := config.Write(target, cfg, overwrite)
	if !errors.Is(err, config.ErrConfigExists) {
		return err
	}
	if !isInteractive(cmd.InOrStdin()) {
		return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
	}
	if !answerYesNo(cmd.InOrStdin(), cmd.OutOrStdout(), "Config file already exists, do you want to overwrite it?") {
		return errDeclined
	}
	return config.Write(target, cfg, true)
}

func answerYesNo(in io.Reader, out io.Writer, question string) bool {
	reader := bufio.NewReader(in)
	for {
		fmt.Fprintf(out, "%s [y/n] ", question)
		line, err := reader.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		if err != nil {
			return false
		}
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration and check the management API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)

			var client preflight.Broker
			if !offline {
				c, err := broker.NewFromConfig(cfg)
				if err != nil {
					return err
				}
				client = c
			}

			results := preflight.RunAll(cmd.Context(), cfg, ctx.configPath, client)
			checks := summaryTable{
				headers:   []string{"Check", "OK", "Detail"},
				statusCol: 1,
				ok:        func(status string) bool { return status == yesNo(true) },
				colorize:  shouldColorize(out),
			}
			for _, r := range results {
				checks.add(r.Name, yesNo(r.Passed), r.Detail)
			}
			if rendered := checks.render(); rendered != "" {
				fmt.Fprintln(out, rendered)
			}
			if !preflight.Passed(results) {
				return errors.New("configuration checks failed")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Skip management API checks")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
