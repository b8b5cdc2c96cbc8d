package selection

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrQuit is returned when a quit intent reaches the resolver.
	ErrQuit = errors.New("quit requested")
	// ErrUnparseable marks input that matched none of the selection forms.
	ErrUnparseable = errors.New("input could not be parsed")
	// ErrNoneSelected means the intent matched no queue in the current mapping.
	ErrNoneSelected = errors.New("no queues selected")
	// ErrNoQueuesLeft ends the interactive loop when the broker lists nothing.
	ErrNoQueuesLeft = errors.New("no more queues to choose")
	// ErrQueueNotFound is returned by a QueueAction when the target queue does
	// not exist on the broker.
	ErrQueueNotFound = errors.New("queue not found")
)

// ChoiceError lists requested ordinals that are absent from the mapping, as
// ascending non-adjacent spans.
type ChoiceError struct {
	Invalid []Span
}

func (e *ChoiceError) Error() string {
	return "wrong choice: " + formatSpans(e.Invalid)
}

// Selection is the resolved subset of a mapping to act on. Invalid carries
// requested ordinals that were not offered this round, merged into ascending
// spans.
type Selection struct {
	Targets []Entry
	Invalid []Span
}

// Resolve applies an intent to a mapping. A numbers intent that only partly
// matches still resolves; the misses are reported in Selection.Invalid. When
// nothing matches the error wraps ErrNoneSelected and, if any requested
// ordinal was unknown, a *ChoiceError.
func Resolve(mapping Mapping, intent Intent) (Selection, error) {
	switch intent.Kind {
	case IntentQuit:
		return Selection{}, ErrQuit
	case IntentAll:
		if len(mapping) == 0 {
			return Selection{}, ErrNoneSelected
		}
		targets := make([]Entry, len(mapping))
		copy(targets, mapping)
		return Selection{Targets: targets}, nil
	case IntentNumbers:
		return resolveNumbers(mapping, intent)
	default:
		return Selection{}, ErrUnparseable
	}
}

func resolveNumbers(mapping Mapping, intent Intent) (Selection, error) {
	requested := make([]Span, 0, len(intent.Numbers)+len(intent.Ranges))
	for _, n := range intent.Numbers {
		requested = append(requested, Span{Lo: n, Hi: n})
	}
	requested = mergeSpans(append(requested, intent.Ranges...))

	var sel Selection
	for _, entry := range mapping {
		if spansContain(requested, entry.Ordinal) {
			sel.Targets = append(sel.Targets, entry)
		}
	}
	sel.Invalid = subtractOrdinals(requested, mapping.Ordinals())

	if len(sel.Targets) == 0 {
		if len(sel.Invalid) > 0 {
			return sel, fmt.Errorf("%w: %w", ErrNoneSelected, &ChoiceError{Invalid: sel.Invalid})
		}
		return sel, ErrNoneSelected
	}
	return sel, nil
}

// mergeSpans sorts spans and joins overlapping or adjacent ones.
func mergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].Lo < spans[j].Lo })
	out := []Span{spans[0]}
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if last.Hi == math.MaxInt || s.Lo <= last.Hi+1 {
			last.Hi = max(last.Hi, s.Hi)
			continue
		}
		out = append(out, s)
	}
	return out
}

func spansContain(spans []Span, n int) bool {
	for _, s := range spans {
		if s.Contains(n) {
			return true
		}
	}
	return false
}

// subtractOrdinals removes the ascending ordinals from merged spans.
func subtractOrdinals(spans []Span, ordinals []int) []Span {
	var out []Span
	for _, s := range spans {
		lo := s.Lo
		done := false
		for _, n := range ordinals {
			if n < lo || n > s.Hi {
				continue
			}
			if n > lo {
				out = append(out, Span{Lo: lo, Hi: n - 1})
			}
			if n == s.Hi {
				done = true
				break
			}
			lo = n + 1
		}
		if !done {
			out = append(out, Span{Lo: lo, Hi: s.Hi})
		}
	}
	return out
}

// formatSpans renders ascending spans. Spans of three or more ordinals are
// shown as "lo-hi", shorter ones as single numbers.
func formatSpans(spans []Span) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		switch {
		case s.Hi-s.Lo >= 2:
			parts = append(parts, strconv.Itoa(s.Lo)+"-"+strconv.Itoa(s.Hi))
		case s.Hi > s.Lo:
			parts = append(parts, strconv.Itoa(s.Lo), strconv.Itoa(s.Hi))
		default:
			parts = append(parts, strconv.Itoa(s.Lo))
		}
	}
	return strings.Join(parts, ", ")
}
