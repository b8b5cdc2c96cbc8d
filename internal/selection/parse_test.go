package selection

import (
	"reflect"
	"testing"
)

func TestParserTokens(t *testing.T) {
	p := NewParser(DefaultTokens())

	for _, input := range []string{"q", "Q", "QUIT", "quit", "QuIt", "  eXit    ", " e", "E  "} {
		if got := p.Parse(input); got.Kind != IntentQuit {
			t.Errorf("Parse(%q) = %v, want quit", input, got.Kind)
		}
	}
	for _, input := range []string{"a", "all", "ALL", "  AlL      "} {
		if got := p.Parse(input); got.Kind != IntentAll {
			t.Errorf("Parse(%q) = %v, want all", input, got.Kind)
		}
	}
}

func TestParserCustomTokens(t *testing.T) {
	p := NewParser(Tokens{Quit: []string{" Stop "}, All: []string{"EVERY"}})

	if got := p.Parse("stop"); got.Kind != IntentQuit {
		t.Fatalf("expected custom quit token, got %v", got.Kind)
	}
	if got := p.Parse("every"); got.Kind != IntentAll {
		t.Fatalf("expected custom select-all token, got %v", got.Kind)
	}
	if got := p.Parse("q"); got.Kind != IntentUnparseable {
		t.Fatalf("default quit token should not apply, got %v", got.Kind)
	}
}

func TestParserNumbers(t *testing.T) {
	p := NewParser(DefaultTokens())

	tests := []struct {
		name   string
		input  string
		want   []int
		ranges []Span
	}{
		{"single", "123", []int{123}, nil},
		{"single padded", "  7 ", []int{7}, nil},
		{"zero", "0", []int{0}, nil},
		{"range", "12-13", nil, []Span{{12, 13}}},
		{"range with spaces", "12   -   18", nil, []Span{{12, 18}}},
		{"range reversed", "10-3", nil, nil},
		{"range single", "4-4", nil, []Span{{4, 4}}},
		{"range wide", "1-100000", nil, []Span{{1, 100000}}},
		{"range huge", "0-999999999", nil, []Span{{0, 999999999}}},
		{"list", "1, 0,  4,   9,   128", []int{1, 0, 4, 9, 128}, nil},
		{"list duplicates", "3,3,1,3", []int{3, 1}, nil},
		{"list trailing comma", "1,2,", []int{1, 2}, nil},
		{"list spaces only", "5 6 7", []int{5, 6, 7}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input)
			if got.Kind != IntentNumbers {
				t.Fatalf("Parse(%q) kind = %v, want numbers", tt.input, got.Kind)
			}
			if !reflect.DeepEqual(got.Numbers, tt.want) || !reflect.DeepEqual(got.Ranges, tt.ranges) {
				t.Fatalf("Parse(%q) = %v %v, want %v %v", tt.input, got.Numbers, got.Ranges, tt.want, tt.ranges)
			}
		})
	}
}

func TestParserUnparseable(t *testing.T) {
	p := NewParser(DefaultTokens())

	inputs := []string{
		"",
		"   ",
		"abc",
		"3a",
		"a3",
		"a1",
		"-123",
		"-1-3",
		"1-2-8",
		"1-32-",
		"3-8-9",
		"123-",
		"1,,2",
		",1,2",
		"1,",
		"99999999999999999999999",
		"1-99999999999999999999999",
	}
	for _, input := range inputs {
		if got := p.Parse(input); got.Kind != IntentUnparseable {
			t.Errorf("Parse(%q) = %+v, want unparseable", input, got)
		}
	}
}

func TestParseNumbersRejectsUntrimmedInput(t *testing.T) {
	for _, input := range []string{" 1 ", "  12-19   ", " 1,2"} {
		if got, ok := parseNumbers(input); ok {
			t.Errorf("parseNumbers(%q) = %v, want no match", input, got)
		}
	}
}

func TestTokensIgnoreEmptyInput(t *testing.T) {
	tokens := Tokens{Quit: []string{""}, All: []string{"  "}}
	if tokens.IsQuit("") || tokens.IsAll(" ") {
		t.Fatal("empty input must not match empty tokens")
	}
}
