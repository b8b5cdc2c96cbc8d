package selection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/andrzejandrzej/rabbit-tools/internal/logging"
)

const farewell = "Bye"

// Lister supplies the live queue names of a vhost.
type Lister interface {
	ListQueues(ctx context.Context, vhost string) ([]string, error)
}

// Options configures a Loop. Zero values fall back to stdin/stdout, the
// default tokens and a no-op logger.
type Options struct {
	Vhost    string
	Tokens   Tokens
	In       io.Reader
	Out      io.Writer
	Colorize bool
	Logger   *slog.Logger
}

type loopState int

const (
	statePrompting loopState = iota
	stateActing
	stateDone
)

// Loop drives the interactive selection rounds for one action. The retired
// ordinal set lives as long as the Loop and is only touched between rounds.
type Loop struct {
	lister   Lister
	executor *Executor
	parser   *Parser
	vhost    string
	in       *lineReader
	out      io.Writer
	colorize bool
	logger   *slog.Logger
	retired  Retired
}

// NewLoop wires a lister and an action into an interaction loop.
func NewLoop(lister Lister, action QueueAction, opts Options) *Loop {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	tokens := opts.Tokens
	if len(tokens.Quit) == 0 && len(tokens.All) == 0 {
		tokens = DefaultTokens()
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	return &Loop{
		lister:   lister,
		executor: NewExecutor(action, opts.Vhost, logger),
		parser:   NewParser(tokens),
		vhost:    opts.Vhost,
		in:       newLineReader(in),
		out:      out,
		colorize: opts.Colorize,
		logger:   logger,
		retired:  make(Retired),
	}
}

// Retired returns the ordinals retired so far, ascending.
func (l *Loop) Retired() []int {
	return l.retired.Sorted()
}

// Run executes rounds until the user quits, input ends, the context is
// cancelled, or the broker lists no queues. Only a failure to list queues or
// to read input is returned as an error.
func (l *Loop) Run(ctx context.Context) error {
	defer l.in.close()

	var (
		mapping Mapping
		intent  Intent
	)
	state := statePrompting
	for state != stateDone {
		switch state {
		case statePrompting:
			next, m, i, err := l.prompt(ctx)
			if err != nil {
				return err
			}
			state, mapping, intent = next, m, i
		case stateActing:
			l.act(ctx, mapping, intent)
			state = statePrompting
		}
	}

	fmt.Fprintln(l.out, farewell)
	return nil
}

func (l *Loop) prompt(ctx context.Context) (loopState, Mapping, Intent, error) {
	if ctx.Err() != nil {
		return stateDone, nil, Intent{}, nil
	}

	names, err := l.lister.ListQueues(ctx, l.vhost)
	if err != nil {
		if ctx.Err() != nil {
			return stateDone, nil, Intent{}, nil
		}
		return stateDone, nil, Intent{}, fmt.Errorf("list queues: %w", err)
	}

	mapping, err := Assign(names, l.retired)
	if errors.Is(err, ErrNoQueuesLeft) {
		l.logger.Info("no more queues to choose", logging.String("vhost", l.vhost))
		return stateDone, nil, Intent{}, nil
	}

	l.render(mapping)
	line, err := l.in.next(ctx)
	if err != nil {
		fmt.Fprintln(l.out)
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return stateDone, nil, Intent{}, nil
		}
		return stateDone, nil, Intent{}, fmt.Errorf("read input: %w", err)
	}

	intent := l.parser.Parse(line)
	if intent.Kind == IntentQuit {
		return stateDone, nil, Intent{}, nil
	}
	return stateActing, mapping, intent, nil
}

func (l *Loop) act(ctx context.Context, mapping Mapping, intent Intent) {
	sel, err := Resolve(mapping, intent)
	if len(sel.Invalid) > 0 {
		l.logger.Error("wrong choice", logging.String("numbers", formatSpans(sel.Invalid)))
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrUnparseable):
			l.logger.Error("input could not be parsed")
		case len(sel.Invalid) == 0:
			l.logger.Warn("no queues selected")
		}
		return
	}

	report := l.executor.Execute(ctx, sel.Targets)
	l.retired.Add(report.Retired...)
}

func (l *Loop) render(mapping Mapping) {
	var b strings.Builder
	for _, entry := range mapping {
		label := fmt.Sprintf("[%d]", entry.Ordinal)
		if l.colorize {
			label = text.FgCyan.Sprint(label)
		}
		fmt.Fprintf(&b, "%s %s\n", label, entry.Queue)
	}
	b.WriteString(l.promptText())
	fmt.Fprint(l.out, b.String())
}

func (l *Loop) promptText() string {
	tokens := l.parser.Tokens()
	hints := make([]string, 0, 2)
	if len(tokens.All) > 0 {
		hints = append(hints, fmt.Sprintf("'%s' to choose all", tokens.All[0]))
	}
	if len(tokens.Quit) > 0 {
		hints = append(hints, fmt.Sprintf("'%s' to quit", tokens.Quit[0]))
	}
	if len(hints) == 0 {
		return "Queue number: "
	}
	return fmt.Sprintf("Queue number (%s): ", strings.Join(hints, " / "))
}

// RunNamed applies the action to queues given by name, bypassing ordinals.
// A single select-all token expands to every queue currently listed.
func (l *Loop) RunNamed(ctx context.Context, names []string) (Report, error) {
	if len(names) == 0 {
		return Report{}, errors.New("no queue names given")
	}
	targets := names
	if len(names) == 1 && l.parser.Tokens().IsAll(names[0]) {
		live, err := l.lister.ListQueues(ctx, l.vhost)
		if err != nil {
			return Report{}, fmt.Errorf("list queues: %w", err)
		}
		if len(live) == 0 {
			l.logger.Info("no queues to act on", logging.String("vhost", l.vhost))
			return Report{}, nil
		}
		targets = live
	}
	return l.executor.ExecuteNames(ctx, targets), nil
}

type lineResult struct {
	text string
	err  error
}

// lineReader reads input lines on a helper goroutine so a pending read can be
// abandoned when the context is cancelled.
type lineReader struct {
	src       io.Reader
	startOnce sync.Once
	closeOnce sync.Once
	lines     chan lineResult
	done      chan struct{}
}

func newLineReader(src io.Reader) *lineReader {
	return &lineReader{
		src:   src,
		lines: make(chan lineResult),
		done:  make(chan struct{}),
	}
}

func (r *lineReader) next(ctx context.Context) (string, error) {
	r.startOnce.Do(r.start)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.text, res.err
	}
}

func (r *lineReader) start() {
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(r.src)
		for scanner.Scan() {
			select {
			case r.lines <- lineResult{text: scanner.Text()}:
			case <-r.done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case r.lines <- lineResult{err: err}:
			case <-r.done:
			}
		}
	}()
}

func (r *lineReader) close() {
	r.closeOnce.Do(func() { close(r.done) })
}
