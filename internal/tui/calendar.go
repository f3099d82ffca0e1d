package tui

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

var weekdayLabels = [...]string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sáb", "Dom"}

// monthTitle renders a month heading like "Agosto 2026".
func monthTitle(ref time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[ref.Month()-1], ref.Year())
}

// monthGrid returns the weeks covering ref's month, Monday first. Leading and
// trailing cells belong to the adjacent months so every week has seven days.
func monthGrid(ref time.Time) [][]time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	start := first
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, -1)
	}
	end := last
	for end.Weekday() != time.Sunday {
		end = end.AddDate(0, 0, 1)
	}

	var weeks [][]time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		week := make([]time.Time, 7)
		for i := 0; i < 7; i++ {
			week[i] = d.AddDate(0, 0, i)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
