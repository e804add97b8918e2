package metadata

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ResolvedDate is a parsed calendar date with explicit unknown components.
// A zero Month means the month is unknown; a zero Day means the day is
// unknown. Day is never set without Month.
type ResolvedDate struct {
	Year       int
	Month      time.Month
	Day        int
	Confidence float64
}

// FullySpecified reports whether both month and day are known.
func (d ResolvedDate) FullySpecified() bool {
	return d.Month != 0 && d.Day != 0
}

// Format renders the date as YYYY/MM/DD. Unknown components render as the
// literal token NA. Below 0.8 confidence both month and day are reported as
// NA regardless of what was parsed; in [0.8, 0.9) only the month is kept.
func (d ResolvedDate) Format() string {
	month, day := "NA", "NA"
	if d.Confidence >= 0.8 && d.Month != 0 {
		month = fmt.Sprintf("%02d", int(d.Month))
	}
	if d.Confidence >= 0.9 && d.Day != 0 {
		day = fmt.Sprintf("%02d", d.Day)
	}
	return fmt.Sprintf("%d/%s/%s", d.Year, month, day)
}

// resolveDate scans the joined text with every pattern eligible for the
// language hint and returns the best-scoring match. Patterns tagged "en"
// are always eligible as the cross-language default; an "any" hint accepts
// every pattern. Ties resolve to the earliest-registered pattern, then the
// earliest text position.
func resolveDate(joined string, lines []string, language string) (ResolvedDate, bool) {
	head := headBoundary(joined, lines)

	var best ResolvedDate
	found := false

	for _, pattern := range datePatterns {
		if language != "any" && pattern.Language != language && pattern.Language != "en" {
			continue
		}

		for _, loc := range pattern.Regexp.FindAllStringSubmatchIndex(joined, -1) {
			resolved, err := parseMatch(joined, pattern, loc)
			if err != nil {
				slog.Debug("Discarding malformed date candidate", "match", joined[loc[0]:loc[1]], "err", err)
				continue
			}

			confidence := pattern.Confidence
			if loc[0] < head {
				confidence = min(1.0, confidence+0.1)
			}
			if resolved.FullySpecified() {
				confidence = min(1.0, confidence+0.1)
			}
			resolved.Confidence = confidence

			if !found || confidence > best.Confidence {
				best = resolved
				found = true
			}
		}
	}

	return best, found
}

// headBoundary returns the length of the joined-text prefix covering the
// first five non-blank lines. Matches starting inside it get the position
// boost.
func headBoundary(joined string, lines []string) int {
	if len(lines) <= 5 {
		return len(joined)
	}
	n := 0
	for _, line := range lines[:5] {
		n += len(line) + 1 // plus the joining space
	}
	return n
}

// parseMatch converts one regex match into a ResolvedDate according to the
// pattern's layout. Capture groups that cannot form a valid calendar date
// yield an error and the candidate is discarded.
func parseMatch(text string, pattern DatePattern, loc []int) (ResolvedDate, error) {
	group := func(i int) string {
		start, end := loc[2*i], loc[2*i+1]
		if start < 0 {
			return ""
		}
		return text[start:end]
	}

	var d ResolvedDate
	var err error

	switch pattern.Layout {
	case LayoutNumericYMD:
		d.Year, _ = strconv.Atoi(group(1))
		var month, day int
		month, err = strconv.Atoi(group(2))
		if err == nil {
			day, err = strconv.Atoi(group(3))
		}
		if err != nil {
			return ResolvedDate{}, err
		}
		if month < 1 || month > 12 {
			return ResolvedDate{}, fmt.Errorf("month %d out of range", month)
		}
		d.Month = time.Month(month)
		d.Day = day
	case LayoutMonthDayYear:
		d.Month, err = monthByName(group(1))
		if err != nil {
			return ResolvedDate{}, err
		}
		d.Day, _ = strconv.Atoi(group(2))
		d.Year, _ = strconv.Atoi(group(3))
	case LayoutDayMonthYear:
		d.Day, _ = strconv.Atoi(group(1))
		d.Month, err = monthByName(group(2))
		if err != nil {
			return ResolvedDate{}, err
		}
		d.Year, _ = strconv.Atoi(group(3))
	case LayoutMonthYear:
		d.Month, err = monthByName(group(1))
		if err != nil {
			return ResolvedDate{}, err
		}
		d.Year, _ = strconv.Atoi(group(2))
	case LayoutYearOnly:
		d.Year, _ = strconv.Atoi(group(1))
	default:
		return ResolvedDate{}, fmt.Errorf("unknown date layout %d", pattern.Layout)
	}

	if pattern.Layout == LayoutNumericYMD || pattern.Layout == LayoutMonthDayYear || pattern.Layout == LayoutDayMonthYear {
		if d.Day < 1 || d.Day > 31 {
			return ResolvedDate{}, fmt.Errorf("day %d out of range", d.Day)
		}
	}

	if d.Day != 0 {
		// Round-trip through time.Date to catch impossible days (Feb 30).
		candidate := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
		if candidate.Year() != d.Year || candidate.Month() != d.Month || candidate.Day() != d.Day {
			return ResolvedDate{}, fmt.Errorf("invalid calendar date %d-%02d-%02d", d.Year, d.Month, d.Day)
		}
	}

	return d, nil
}

// monthByName maps a localized month name or abbreviation to its calendar
// month. English and Spanish names are both supported.
func monthByName(name string) (time.Month, error) {
	key := strings.ToLower(strings.TrimSuffix(name, "."))
	if m, ok := monthsByName[key]; ok {
		return m, nil
	}
	if len(key) > 3 {
		if m, ok := monthsByName[key[:3]]; ok {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown month name %q", name)
}
