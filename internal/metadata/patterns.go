package metadata

import (
	"regexp"
	"time"
)

// DateLayout describes how a date pattern's capture groups map onto
// calendar components.
type DateLayout int

const (
	// LayoutNumericYMD captures year, month, day as digit groups.
	LayoutNumericYMD DateLayout = iota
	// LayoutMonthDayYear captures month name, day, year ("October 15, 1984").
	LayoutMonthDayYear
	// LayoutDayMonthYear captures day, month name, year ("15 de octubre de 1984").
	LayoutDayMonthYear
	// LayoutMonthYear captures month name and year, day unknown.
	LayoutMonthYear
	// LayoutYearOnly captures a bare year, month and day unknown.
	LayoutYearOnly
)

// DatePattern is an immutable date-matching rule. The registry is scanned
// in order and every non-overlapping match of every eligible pattern is
// considered; the resolver keeps the globally best-scoring match rather
// than the first one.
type DatePattern struct {
	Regexp     *regexp.Regexp
	Layout     DateLayout
	Language   string
	Confidence float64
}

// VolumeIssuePattern is an immutable volume/issue rule. Unlike dates,
// the first matching pattern in registry order wins outright.
type VolumeIssuePattern struct {
	Regexp     *regexp.Regexp
	Confidence float64
}

const (
	monthNamesEN = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`
	monthNamesES = `Ene(?:ro)?|Feb(?:rero)?|Mar(?:zo)?|Abr(?:il)?|May(?:o)?|Jun(?:io)?|Jul(?:io)?|Ago(?:sto)?|Sep(?:tiembre)?|Oct(?:ubre)?|Nov(?:iembre)?|Dic(?:iembre)?`
)

// datePatterns is the process-wide date registry. Ordering matters: ties in
// confidence resolve to the earliest-registered pattern.
var datePatterns = []DatePattern{
	// ISO-ish numeric dates (YYYY-MM-DD, YYYY/MM/DD)
	{
		Regexp:     regexp.MustCompile(`\b(\d{4})[-/](\d{1,2})[-/](\d{1,2})\b`),
		Layout:     LayoutNumericYMD,
		Language:   "en",
		Confidence: 0.9,
	},
	// English dates (Month Day, Year)
	{
		Regexp:     regexp.MustCompile(`(?i)\b(` + monthNamesEN + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`),
		Layout:     LayoutMonthDayYear,
		Language:   "en",
		Confidence: 0.9,
	},
	// English dates, day-first (15 October 1984)
	{
		Regexp:     regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthNamesEN + `)\.?,?\s+(\d{4})\b`),
		Layout:     LayoutDayMonthYear,
		Language:   "en",
		Confidence: 0.85,
	},
	// Spanish dates (DD de MES de YYYY)
	{
		Regexp:     regexp.MustCompile(`(?i)\b(\d{1,2})\s+de\s+(` + monthNamesES + `)\s+de\s+(\d{4})\b`),
		Layout:     LayoutDayMonthYear,
		Language:   "es",
		Confidence: 0.9,
	},
	// Month and year only (October 1984)
	{
		Regexp:     regexp.MustCompile(`(?i)\b(` + monthNamesEN + `)\.?,?\s+(\d{4})\b`),
		Layout:     LayoutMonthYear,
		Language:   "en",
		Confidence: 0.8,
	},
	// Spanish month and year (octubre de 1984)
	{
		Regexp:     regexp.MustCompile(`(?i)\b(` + monthNamesES + `)\s+de\s+(\d{4})\b`),
		Layout:     LayoutMonthYear,
		Language:   "es",
		Confidence: 0.8,
	},
	// Bare year (lowest confidence)
	{
		Regexp:     regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`),
		Layout:     LayoutYearOnly,
		Language:   "en",
		Confidence: 0.7,
	},
}

// volumeIssuePatterns is scanned first-match-wins. The abbreviated "Vol."
// forms are registered ahead of the spelled-out "Volume" forms so the most
// common print convention takes priority on pages carrying both.
var volumeIssuePatterns = []VolumeIssuePattern{
	{regexp.MustCompile(`(?i)\bVol\.?\s*\d+\s*,\s*No\.?\s*\d+\b`), 0.9},
	{regexp.MustCompile(`(?i)\bVol\.?\s*\d+\s*\(\s*No\.?\s*\d+\s*\)`), 0.9},
	{regexp.MustCompile(`(?i)\bVolume\s+[IVXLC\d]+\s*,\s*No\.?\s*\d+\b`), 0.9},
	{regexp.MustCompile(`(?i)\bVolume\s+\d+\s*[,-]?\s*Issue\s+\d+\b`), 0.9},
	{regexp.MustCompile(`(?i)\bVol\.?\s*\d+\s*[,-]?\s*Iss?\.?\s*\d+\b`), 0.85},
	{regexp.MustCompile(`(?i)\bTomo\s+[IVXLC\d]+\s*,\s*N[úu]m\.?\s*\d+\b`), 0.85},
	{regexp.MustCompile(`(?i)\bV\.?\s*\d+\s*[,-]?\s*N[o°]\.?\s*\d+\b`), 0.8},
}

// mastheadPattern matches recurring publication names that identify the
// periodical itself, not a page headline. Case-insensitive.
var mastheadPattern = regexp.MustCompile(`(?i)\b(Newsweek|Time|The Economist|The International Newsmagazine|El Diario de Hoy|La Prensa Gráfica|Diario El Mundo)\b`)

// monthsByName maps lowercased English and Spanish month names, including
// their three-letter abbreviations, to calendar months.
var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,

	"enero": time.January, "febrero": time.February, "marzo": time.March,
	"abril": time.April, "mayo": time.May, "junio": time.June,
	"julio": time.July, "agosto": time.August, "septiembre": time.September,
	"octubre": time.October, "noviembre": time.November, "diciembre": time.December,

	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "jun": time.June, "jul": time.July,
	"aug": time.August, "sep": time.September, "oct": time.October,
	"nov": time.November, "dec": time.December,

	"ene": time.January, "abr": time.April, "ago": time.August,
	"dic": time.December,
}
