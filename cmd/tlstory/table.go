package main

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	models "tlstory/internal/domain/models/timeline"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func renderEvents(events []models.Event) string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			formatDate(e.StartYear, e.StartMonth, e.StartDay),
			formatDate(e.EndYear, e.EndMonth, e.EndDay),
			e.Headline,
			stringOr(e.EventGroup, ""),
			activeMark(e.IsActive),
		})
	}
	return renderTable(
		[]string{"ID", "Start", "End", "Headline", "Group", "Active"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight},
	)
}

func renderEras(eras []models.Era) string {
	rows := make([][]string, 0, len(eras))
	for _, e := range eras {
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			formatDate(&e.StartYear, e.StartMonth, e.StartDay),
			formatDate(&e.EndYear, e.EndMonth, e.EndDay),
			e.Headline,
			activeMark(e.IsActive),
		})
	}
	return renderTable(
		[]string{"ID", "Start", "End", "Headline", "Active"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight},
	)
}

// formatDate renders year[-month[-day]], or "-" without a year.
func formatDate(year, month, day *int64) string {
	if year == nil {
		return "-"
	}
	out := strconv.FormatInt(*year, 10)
	if month == nil || *month == 0 {
		return out
	}
	out += fmt.Sprintf("-%02d", *month)
	if day == nil || *day == 0 {
		return out
	}
	return out + fmt.Sprintf("-%02d", *day)
}

func stringOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func activeMark(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}
