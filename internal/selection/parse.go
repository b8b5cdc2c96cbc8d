package selection

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	singleChoicePattern = regexp.MustCompile(`^\d+$`)
	rangeChoicePattern  = regexp.MustCompile(`^(\d+) *- *(\d+)$`)
	listChoicePattern   = regexp.MustCompile(`^\d+(?:(?: *, *| +)\d+)+ *,?$`)
	listNumberPattern   = regexp.MustCompile(`\d+`)
)

// Tokens holds the reserved words recognised at the prompt.
type Tokens struct {
	Quit []string
	All  []string
}

// DefaultTokens returns the quit and select-all words used by the CLI.
func DefaultTokens() Tokens {
	return Tokens{
		Quit: []string{"q", "quit", "exit", "e"},
		All:  []string{"a", "all"},
	}
}

// IsQuit reports whether value is a quit token, ignoring case and padding.
func (t Tokens) IsQuit(value string) bool {
	return containsToken(t.Quit, value)
}

// IsAll reports whether value is a select-all token, ignoring case and padding.
func (t Tokens) IsAll(value string) bool {
	return containsToken(t.All, value)
}

func (t Tokens) normalized() Tokens {
	return Tokens{Quit: normalizeTokens(t.Quit), All: normalizeTokens(t.All)}
}

func containsToken(tokens []string, value string) bool {
	value = normalizeInput(value)
	if value == "" {
		return false
	}
	for _, token := range tokens {
		if normalizeInput(token) == value {
			return true
		}
	}
	return false
}

func normalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token = normalizeInput(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

func normalizeInput(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// IntentKind tags the variant carried by an Intent.
type IntentKind int

const (
	IntentUnparseable IntentKind = iota
	IntentQuit
	IntentAll
	IntentNumbers
)

func (k IntentKind) String() string {
	switch k {
	case IntentQuit:
		return "quit"
	case IntentAll:
		return "all"
	case IntentNumbers:
		return "numbers"
	default:
		return "unparseable"
	}
}

// Span is an inclusive ordinal range.
type Span struct {
	Lo, Hi int
}

// Contains reports whether n lies within the span.
func (s Span) Contains(n int) bool {
	return s.Lo <= n && n <= s.Hi
}

// Intent is the parsed meaning of one line of user input. Numbers and Ranges
// are only set for IntentNumbers. Numbers is deduplicated and keeps
// first-seen order. A range is kept as its bounds and never expanded, so any
// width is accepted. A numbers intent with neither set is a valid selection
// that matches nothing (e.g. "10-3").
type Intent struct {
	Kind    IntentKind
	Numbers []int
	Ranges  []Span
}

// Parser turns raw prompt input into an Intent. It is stateless apart from
// the token lists fixed at construction.
type Parser struct {
	tokens Tokens
}

// NewParser builds a parser for the given token set.
func NewParser(tokens Tokens) *Parser {
	return &Parser{tokens: tokens.normalized()}
}

// Tokens returns the parser's normalized token set.
func (p *Parser) Tokens() Tokens {
	return p.tokens
}

// Parse classifies raw input. It never fails; unrecognised input yields
// IntentUnparseable.
func (p *Parser) Parse(raw string) Intent {
	input := normalizeInput(raw)
	switch {
	case input == "":
		return Intent{Kind: IntentUnparseable}
	case p.tokens.IsQuit(input):
		return Intent{Kind: IntentQuit}
	case p.tokens.IsAll(input):
		return Intent{Kind: IntentAll}
	}
	intent, ok := parseNumbers(input)
	if !ok {
		return Intent{Kind: IntentUnparseable}
	}
	return intent
}

// parseNumbers matches already-normalized input against the single, range
// and list forms, in that order.
func parseNumbers(input string) (Intent, bool) {
	if singleChoicePattern.MatchString(input) {
		n, err := strconv.Atoi(input)
		if err != nil {
			return Intent{}, false
		}
		return Intent{Kind: IntentNumbers, Numbers: []int{n}}, true
	}

	if m := rangeChoicePattern.FindStringSubmatch(input); m != nil {
		lo, err := strconv.Atoi(m[1])
		if err != nil {
			return Intent{}, false
		}
		hi, err := strconv.Atoi(m[2])
		if err != nil {
			return Intent{}, false
		}
		if lo > hi {
			return Intent{Kind: IntentNumbers}, true
		}
		return Intent{Kind: IntentNumbers, Ranges: []Span{{Lo: lo, Hi: hi}}}, true
	}

	if listChoicePattern.MatchString(input) {
		raw := listNumberPattern.FindAllString(input, -1)
		out := make([]int, 0, len(raw))
		seen := make(map[int]struct{}, len(raw))
		for _, value := range raw {
			n, err := strconv.Atoi(value)
			if err != nil {
				return Intent{}, false
			}
			if _, dup := seen[n]; dup {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
		return Intent{Kind: IntentNumbers, Numbers: out}, true
	}

	return Intent{}, false
}
