package portfolio

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TitleDateParser extracts an end date from a market title. The heuristic
// implementation is best-effort and deliberately isolated behind this
// interface so it can be replaced with a stricter parser.
type TitleDateParser interface {
	ExtractDate(title string) string
}

// defaultYear is assumed when a title names a month and day but no year.
const defaultYear = 2025

var (
	datePrefixRe = regexp.MustCompile(`(?i)(before|after|by)\s*([A-Za-z]+)\s*(\d{1,2})`)
	dateSuffixRe = regexp.MustCompile(`(?i)([A-Za-z]+)\s*(\d{1,2})\s*(before|after|by)`)
	bareYearRe   = regexp.MustCompile(`(\d{4})`)
)

var monthNames = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// HeuristicDateParser pattern-matches phrases like "before May 31" or a bare
// 4-digit year (defaulting to Dec 31 of that year). Titles with no
// recognizable pattern yield an empty string.
type HeuristicDateParser struct {
	// Year used for month/day matches without an explicit year.
	Year int
}

// NewHeuristicDateParser returns a parser using the default assumed year.
func NewHeuristicDateParser() *HeuristicDateParser {
	return &HeuristicDateParser{Year: defaultYear}
}

// ExtractDate returns a YYYY-MM-DD string, or "" when no pattern matches.
func (p *HeuristicDateParser) ExtractDate(title string) string {
	if m := datePrefixRe.FindStringSubmatch(title); m != nil {
		return p.format(m[2], m[3])
	}
	if m := dateSuffixRe.FindStringSubmatch(title); m != nil {
		return p.format(m[1], m[2])
	}
	if m := bareYearRe.FindStringSubmatch(title); m != nil {
		year, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("%d-12-31", year)
	}
	return ""
}

func (p *HeuristicDateParser) format(monthStr, dayStr string) string {
	month := matchMonth(monthStr)
	if month == 0 {
		return ""
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%d-%02d-%02d", p.Year, month, day)
}

// matchMonth resolves a month name by its first three letters; returns 0 for
// words that are not months.
func matchMonth(s string) int {
	if len(s) < 3 {
		return 0
	}
	prefix := strings.ToLower(s[:3])
	for i, name := range monthNames {
		if prefix == name {
			return i + 1
		}
	}
	return 0
}
