package fitness

import (
	"fmt"
	"strconv"
	"time"
)

// DateGroup holds the sessions that fall on one calendar day.
type DateGroup struct {
	Date     string           `json:"date"`
	Sessions []SessionSummary `json:"sessions"`
}

// MonthGroup holds the sessions of one calendar month.
type MonthGroup struct {
	Month    string           `json:"month"`
	Label    string           `json:"label"`
	Sessions []SessionSummary `json:"sessions"`
}

// MonthLabelFunc renders a display label for a year and month.
type MonthLabelFunc func(year int, month time.Month) string

// ChineseMonthLabel renders "2024年6月".
func ChineseMonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%d年%d月", year, int(month))
}

// EnglishMonthLabel renders "June 2024".
func EnglishMonthLabel(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month.String(), year)
}

// MonthLabeler picks a label function by locale. Unknown locales get English.
func MonthLabeler(locale string) MonthLabelFunc {
	switch locale {
	case "zh", "zh-CN", "zh_CN":
		return ChineseMonthLabel
	default:
		return EnglishMonthLabel
	}
}

// GroupByDay buckets sessions by their exact date. Groups appear in the order
// their date is first seen; sessions keep their input order within a group.
func GroupByDay(sessions []SessionSummary) []DateGroup {
	groups := make([]DateGroup, 0)
	index := make(map[string]int)
	for _, s := range sessions {
		i, ok := index[s.Date]
		if !ok {
			i = len(groups)
			index[s.Date] = i
			groups = append(groups, DateGroup{Date: s.Date})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}
	return groups
}

// GroupByMonth buckets sessions by the YYYY-MM prefix of their date.
// A nil label uses EnglishMonthLabel.
func GroupByMonth(sessions []SessionSummary, label MonthLabelFunc) []MonthGroup {
	if label == nil {
		label = EnglishMonthLabel
	}
	groups := make([]MonthGroup, 0)
	index := make(map[string]int)
	for _, s := range sessions {
		key := monthKey(s.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{Month: key, Label: monthLabel(key, label)})
		}
		groups[i].Sessions = append(groups[i].Sessions, s)
	}
	return groups
}

func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// monthLabel falls back to the raw key when it is not a YYYY-MM value.
func monthLabel(key string, label MonthLabelFunc) string {
	if len(key) != 7 || key[4] != '-' {
		return key
	}
	year, err := strconv.Atoi(key[:4])
	if err != nil {
		return key
	}
	month, err := strconv.Atoi(key[5:])
	if err != nil || month < 1 || month > 12 {
		return key
	}
	return label(year, time.Month(month))
}
