package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andrzejandrzej/rabbit-tools/internal/broker"
	"github.com/andrzejandrzej/rabbit-tools/internal/selection"
)

type queueCommandSpec struct {
	name      string
	alias     string
	short     string
	newAction func(*broker.Client) selection.QueueAction
}

var deleteCommandSpec = queueCommandSpec{
	name:  "delete",
	alias: "rabdel",
	short: "Delete queues interactively or by name",
	newAction: func(c *broker.Client) selection.QueueAction {
		return broker.NewDeleteAction(c)
	},
}

var purgeCommandSpec = queueCommandSpec{
	name:  "purge",
	alias: "rabpurge",
	short: "Purge queues interactively or by name",
	newAction: func(c *broker.Client) selection.QueueAction {
		return broker.NewPurgeAction(c)
	},
}

func newQueueActionCommand(ctx *commandContext, spec queueCommandSpec) *cobra.Command {
	return &cobra.Command{
		Use:     spec.name + " [queue...]",
		Aliases: []string{spec.alias},
		Short:   spec.short,
		Long: fmt.Sprintf(`%s queues in the configured vhost.

Without arguments the queues are listed with numbers and you choose which to
%s: a single number, a range (2-5), a list (1, 3 7), 'a' for all, or 'q' to
quit. With arguments each one is taken as a queue name; a lone 'all' selects
every queue in the vhost.`, cases.Title(language.English).String(spec.name), spec.name),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, logFiles, err := ctx.logger(spec.name)
			if err != nil {
				return err
			}
			defer logFiles.Close()
			client, err := broker.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			loop := selection.NewLoop(client, spec.newAction(client), selection.Options{
				Vhost:    cfg.RabbitTools.Vhost,
				In:       cmd.InOrStdin(),
				Out:      out,
				Colorize: shouldColorize(out),
				Logger:   logger,
			})

			if len(args) == 0 {
				return loop.Run(runCtx)
			}

			report, err := loop.RunNamed(runCtx, args)
			if err != nil {
				return err
			}
			if len(report.Results) > 0 {
				fmt.Fprintln(out, renderReport(spec.name, report, shouldColorize(out)))
			}
			return nil
		},
	}
}

func renderReport(action string, report selection.Report, colorize bool) string {
	title := cases.Title(language.English)
	affectedLabel := outcomeLabel(title, action, selection.OutcomeAffected)
	summary := summaryTable{
		headers:   []string{"Queue", "Result", "Detail"},
		statusCol: 1,
		ok:        func(status string) bool { return status == affectedLabel },
		colorize:  colorize,
		footer: fmt.Sprintf("%d of %d %s", len(report.Affected), len(report.Results),
			strings.ToLower(affectedLabel)),
	}
	for _, result := range report.Results {
		summary.add(result.Queue, outcomeLabel(title, action, result.Outcome), errorDetail(result.Err))
	}
	return summary.render()
}

func outcomeLabel(title cases.Caser, action string, outcome selection.Outcome) string {
	switch outcome {
	case selection.OutcomeAffected:
		return title.String(strings.TrimSuffix(action, "e") + "ed")
	case selection.OutcomeNotFound:
		return title.String(strings.ReplaceAll(outcome.String(), "_", " "))
	default:
		return title.String(outcome.String())
	}
}

func errorDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
