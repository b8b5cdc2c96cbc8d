package main

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/andrzejandrzej/rabbit-tools/internal/selection"
)

func TestInteractiveDeleteRenumbersAfterRemoval(t *testing.T) {
	env := setupCLITestEnv(t, "queue1", "queue2", "queue3")

	out, _, err := runCLI(t, []string{"delete"}, env.configPath, "2\nq\n")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	prompt := "Queue number ('a' to choose all / 'q' to quit): "
	want := "[1] queue1\n[2] queue2\n[3] queue3\n" + prompt +
		"[1] queue1\n[3] queue3\n" + prompt +
		"Bye\n"
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
	if got := env.api.Deletes(); !reflect.DeepEqual(got, []string{"DELETE /api/queues/test/queue2"}) {
		t.Fatalf("unexpected deletes %v", got)
	}
	requireContains(t, readLog(t, env.logPath), "Successfully deleted queues")
}

func TestInteractiveRangeAndEndOfInput(t *testing.T) {
	env := setupCLITestEnv(t, "queue1", "queue2", "queue3")

	out, _, err := runCLI(t, []string{"rabdel"}, env.configPath, "1-2\n")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	requireContains(t, out, "[3] queue3\n")
	if !strings.HasSuffix(out, "Bye\n") {
		t.Fatalf("expected farewell at end of %q", out)
	}
	want := []string{"DELETE /api/queues/test/queue1", "DELETE /api/queues/test/queue2"}
	if got := env.api.Deletes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("deletes = %v, want %v", got, want)
	}
}

func TestInteractivePurgeKeepsNumbering(t *testing.T) {
	env := setupCLITestEnv(t, "orders", "events")

	out, _, err := runCLI(t, []string{"purge"}, env.configPath, "a\n7\nq\n")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if strings.Count(out, "[1] orders\n[2] events\n") != 3 {
		t.Fatalf("expected stable numbering across rounds, got %q", out)
	}
	want := []string{"DELETE /api/queues/test/orders/contents", "DELETE /api/queues/test/events/contents"}
	if got := env.api.Deletes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("deletes = %v, want %v", got, want)
	}
	logs := readLog(t, env.logPath)
	requireContains(t, logs, "Successfully purged queues")
	requireContains(t, logs, "wrong choice")
}

func TestInteractiveStopsWhenNoQueuesLeft(t *testing.T) {
	env := setupCLITestEnv(t, "only")

	out, _, err := runCLI(t, []string{"delete"}, env.configPath, "all\n")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if strings.Count(out, "[1] only") != 1 {
		t.Fatalf("expected a single round, got %q", out)
	}
	requireContains(t, out, "Bye")
}

func TestNamedPurgeRendersSummary(t *testing.T) {
	env := setupCLITestEnv(t, "queue1")

	out, _, err := runCLI(t, []string{"purge", "queue1", "ghost"}, env.configPath, "")
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	requireContains(t, out, "Purged")
	requireContains(t, out, "Not Found")
	requireContains(t, out, "ghost")

	logs := readLog(t, env.logPath)
	requireContains(t, logs, "queue does not exist")
	requireContains(t, logs, "Successfully purged queues")
}

func TestNamedDeleteAllExpandsListing(t *testing.T) {
	env := setupCLITestEnv(t, "queue1", "queue2")

	out, _, err := runCLI(t, []string{"delete", "ALL", "--vhost", "test"}, env.configPath, "")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if strings.Count(out, "Deleted") != 2 {
		t.Fatalf("expected two deleted rows, got %q", out)
	}
	want := []string{"DELETE /api/queues/test/queue1", "DELETE /api/queues/test/queue2"}
	if got := env.api.Deletes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("deletes = %v, want %v", got, want)
	}
}

func TestDeleteWithoutConfigReportsMissing(t *testing.T) {
	setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"delete"}, "", "")
	if err == nil {
		t.Fatal("expected error without a config file")
	}
	requireContains(t, err.Error(), "config init")
}

func TestOutcomeLabel(t *testing.T) {
	title := cases.Title(language.English)
	tests := []struct {
		action  string
		outcome selection.Outcome
		want    string
	}{
		{"delete", selection.OutcomeAffected, "Deleted"},
		{"purge", selection.OutcomeAffected, "Purged"},
		{"purge", selection.OutcomeNotFound, "Not Found"},
		{"delete", selection.OutcomeFailed, "Failed"},
	}
	for _, tt := range tests {
		if got := outcomeLabel(title, tt.action, tt.outcome); got != tt.want {
			t.Errorf("outcomeLabel(%s, %v) = %q, want %q", tt.action, tt.outcome, got, tt.want)
		}
	}
}

func TestRenderReportIncludesErrorDetail(t *testing.T) {
	report := selection.Report{
		Results: []selection.Result{
			{Queue: "orders", Outcome: selection.OutcomeAffected},
			{Queue: "busy", Outcome: selection.OutcomeFailed, Err: errors.New("status 500")},
		},
		Affected: []string{"orders"},
	}
	out := renderReport("delete", report, false)
	requireContains(t, out, "busy")
	requireContains(t, out, "status 500")
	requireContains(t, out, "1 of 2 deleted")
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain report must not carry color codes:\n%s", out)
	}

	colored := renderReport("delete", report, true)
	requireContains(t, colored, text.FgGreen.Sprint("Deleted"))
	requireContains(t, colored, text.FgRed.Sprint("Failed"))
}

func TestSummaryTableSkipsEmpty(t *testing.T) {
	empty := summaryTable{headers: []string{"Check", "OK"}}
	if got := empty.render(); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}

func TestInvocationArgs(t *testing.T) {
	tests := []struct {
		program string
		args    []string
		want    []string
	}{
		{"rabbit-tools", []string{"purge"}, []string{"purge"}},
		{"rabdel", []string{"q1"}, []string{"delete", "q1"}},
		{"rabpurge", nil, []string{"purge"}},
		{"rabbit_tools_config", []string{"--overwrite"}, []string{"config", "init", "--overwrite"}},
	}
	for _, tt := range tests {
		if got := invocationArgs(tt.program, tt.args); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("invocationArgs(%q, %v) = %v, want %v", tt.program, tt.args, got, tt.want)
		}
	}
}
