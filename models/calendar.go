package models

import (
	"fmt"
	"time"

	"github.com/crovdigital/gerente_backend/utils"
)

var monthShortES = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

var monthLongES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

func MonthShortName(m time.Month) string {
	return monthShortES[int(m)-1]
}

func MonthLongName(m time.Month) string {
	return monthLongES[int(m)-1]
}

// MonthLabel renders "Enero 2024" for a month-key date.
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", utils.UppercaseFirst(MonthLongName(t.Month())), t.Year())
}

// StartOfWeek returns the Monday of the calendar week containing t.
// Weeks run Monday through Sunday.
func StartOfWeek(t time.Time) time.Time {
	t = DateOnly(t)
	weekday := int(t.Weekday())

	// Sunday belongs to the week that started six days earlier.
	diff := 1 - weekday
	if weekday == 0 {
		diff = -6
	}
	return t.AddDate(0, 0, diff)
}

// EndOfWeek returns the Sunday of the calendar week containing t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// weekIndexForMonth computes the 1-based index of the week containing
// weekStart within the given month. Week 1 is the calendar week containing
// the 1st of the month, so its Monday may fall in the previous month.
func weekIndexForMonth(weekStart time.Time, year int, month time.Month) int {
	firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	firstWeekStart := StartOfWeek(firstOfMonth)

	days := int(weekStart.Sub(firstWeekStart).Hours() / 24)
	return days/7 + 1
}

// CalendarWeek identifies one bucket of the weekly comparison series.
type CalendarWeek struct {
	// Key is "YYYY-MM-Wn" where YYYY-MM comes from the displayed end date.
	Key   string `json:"key"`
	Label string `json:"label"`
	// Detail renders the displayed span, e.g. "04 mar - 08 mar".
	Detail    string `json:"detail"`
	MonthKey  string `json:"monthKey"`
	WeekIndex int    `json:"weekIndex"`
	// Order is the Monday of the underlying calendar week and drives
	// chronological sorting even when the displayed span is clamped.
	Order      time.Time `json:"order"`
	RangeStart time.Time `json:"rangeStart"`
	RangeEnd   time.Time `json:"rangeEnd"`
}

// WeekInfo builds the calendar week containing reference. When rangeStart or
// rangeEnd fall inside that week (Monday through Sunday), the displayed span
// is clamped to them.
func WeekInfo(reference, rangeStart, rangeEnd time.Time) CalendarWeek {
	monday := StartOfWeek(reference)
	sunday := monday.AddDate(0, 0, 6)

	displayStart := monday
	if !rangeStart.IsZero() && !rangeStart.Before(monday) && !rangeStart.After(sunday) {
		displayStart = DateOnly(rangeStart)
	}

	displayEnd := sunday
	if !rangeEnd.IsZero() && !rangeEnd.Before(monday) && !rangeEnd.After(sunday) {
		displayEnd = DateOnly(rangeEnd)
	}
	if displayEnd.Before(displayStart) {
		displayEnd = displayStart
	}

	year, month := displayEnd.Year(), displayEnd.Month()
	weekIndex := weekIndexForMonth(monday, year, month)

	return CalendarWeek{
		Key:        fmt.Sprintf("%04d-%02d-W%d", year, int(month), weekIndex),
		Label:      fmt.Sprintf("Semana %d %s", weekIndex, utils.UppercaseFirst(MonthShortName(month))),
		Detail:     fmt.Sprintf("%02d %s - %02d %s", displayStart.Day(), MonthShortName(displayStart.Month()), displayEnd.Day(), MonthShortName(displayEnd.Month())),
		MonthKey:   fmt.Sprintf("%04d-%02d", year, int(month)),
		WeekIndex:  weekIndex,
		Order:      monday,
		RangeStart: displayStart,
		RangeEnd:   displayEnd,
	}
}

// WeekSlice partitions the days of any month into four fixed slices:
// slice 0 covers days 1-7, slice 1 days 8-14, slice 2 days 15-21 and
// slice 3 days 22-31. This is the record-level week checkbox filter and is
// deliberately independent of the calendar-week bucketing above.
type WeekSlice int

func WeekSliceForDay(day int) WeekSlice {
	idx := (day - 1) / 7
	if idx > 3 {
		idx = 3
	}
	return WeekSlice(idx)
}

func (w WeekSlice) Contains(day int) bool {
	start := int(w)*7 + 1
	end := (int(w) + 1) * 7
	if w == 3 {
		end = 31
	}
	return day >= start && day <= end
}
