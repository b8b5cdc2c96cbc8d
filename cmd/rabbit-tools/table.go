package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// summaryTable is printed after a named batch or a config check. One column
// holds a status label which is colored on terminals.
type summaryTable struct {
	headers   []string
	statusCol int
	ok        func(status string) bool
	colorize  bool
	rows      [][]string
	footer    string
}

func (s *summaryTable) add(cells ...string) {
	s.rows = append(s.rows, cells)
}

func (s *summaryTable) render() string {
	columns := len(s.headers)
	if columns == 0 || len(s.rows) == 0 {
		return ""
	}

	tw := table.NewWriter()
	style := table.StyleRounded
	style.Format.Footer = text.FormatDefault
	tw.SetStyle(style)

	header := make(table.Row, columns)
	for i, h := range s.headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, cells := range s.rows {
		row := make(table.Row, columns)
		for i := range columns {
			value := ""
			if i < len(cells) {
				value = cells[i]
			}
			if i == s.statusCol {
				value = s.paint(value)
			}
			row[i] = value
		}
		tw.AppendRow(row)
	}

	if s.footer != "" {
		tw.AppendFooter(table.Row{s.footer})
	}
	return tw.Render()
}

func (s *summaryTable) paint(status string) string {
	if !s.colorize || status == "" || s.ok == nil {
		return status
	}
	if s.ok(status) {
		return text.FgGreen.Sprint(status)
	}
	return text.FgRed.Sprint(status)
}
