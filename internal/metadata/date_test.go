package metadata

import (
	"math"
	"strings"
	"testing"
	"time"
)

func joinLines(lines []string) string {
	return strings.Join(lines, " ")
}

func TestResolveDateBestMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		language string
		want     string
		wantConf float64
	}{
		{
			name:     "iso numeric date",
			text:     "Boletín Informativo 1984/10/15 edición especial",
			language: "en",
			want:     "1984/10/15",
			wantConf: 1.0,
		},
		{
			name:     "english month day year",
			text:     "The Gazette\nOctober 15, 1984",
			language: "en",
			want:     "1984/10/15",
			wantConf: 1.0,
		},
		{
			name:     "abbreviated english month",
			text:     "Oct. 3, 1991",
			language: "en",
			want:     "1991/10/03",
			wantConf: 1.0,
		},
		{
			name:     "spanish day month year",
			text:     "15 de octubre de 1984",
			language: "es",
			want:     "1984/10/15",
			wantConf: 1.0,
		},
		{
			name:     "full date beats bare year",
			text:     "founded in 1952\nedition of October 15, 1984",
			language: "en",
			want:     "1984/10/15",
			wantConf: 1.0,
		},
		{
			name:     "month year keeps month only",
			text:     "one\ntwo\nthree\nfour\nfive\nsix\nreport for October 1984",
			language: "en",
			want:     "1984/10/NA",
			wantConf: 0.8,
		},
		{
			name:     "bare year in head",
			text:     "annual report 1975",
			language: "en",
			want:     "1975/NA/NA",
			wantConf: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := normalizeLines(tt.text)
			joined := joinLines(lines)

			resolved, ok := resolveDate(joined, lines, tt.language)
			if !ok {
				t.Fatal("expected a date match")
			}
			if got := resolved.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
			// The boosts are float sums (0.7+0.1 is not exactly 0.8), so
			// compare with a tolerance.
			if math.Abs(resolved.Confidence-tt.wantConf) > 1e-9 {
				t.Errorf("confidence = %f, want %f", resolved.Confidence, tt.wantConf)
			}
		})
	}
}

func TestResolveDateNoMatch(t *testing.T) {
	lines := normalizeLines("no dates anywhere on this page")
	if _, ok := resolveDate(joinLines(lines), lines, "any"); ok {
		t.Error("expected no date match")
	}
}

func TestResolveDateDiscardsImpossibleDates(t *testing.T) {
	// month 13 and Feb 30 are silently discarded; the bare year survives.
	tests := []string{
		"minutes of 2020-13-01",
		"minutes of 2020-02-30",
	}

	for _, text := range tests {
		lines := normalizeLines(text)
		resolved, ok := resolveDate(joinLines(lines), lines, "en")
		if !ok {
			t.Fatalf("expected year fallback for %q", text)
		}
		if got := resolved.Format(); got != "2020/NA/NA" {
			t.Errorf("Format() = %q for %q, want 2020/NA/NA", got, text)
		}
	}
}

func TestResolveDateHeadBoostOnlyInFirstFiveLines(t *testing.T) {
	filler := "line one\nline two\nline three\nline four\nline five\n"
	lines := normalizeLines(filler + "dated 15 de octubre de 1984")

	resolved, ok := resolveDate(joinLines(lines), lines, "es")
	if !ok {
		t.Fatal("expected a date match")
	}
	// 0.9 prior + 0.1 full-date boost, no position boost.
	if resolved.Confidence != 1.0 {
		t.Errorf("confidence = %f, want 1.0", resolved.Confidence)
	}

	// The same date inside the head caps at 1.0 as well; a month-year match
	// outside the head stays at its prior.
	lines = normalizeLines(filler + "report for octubre de 1984")
	resolved, ok = resolveDate(joinLines(lines), lines, "es")
	if !ok {
		t.Fatal("expected a date match")
	}
	if resolved.Confidence != 0.8 {
		t.Errorf("confidence = %f, want 0.8 without position boost", resolved.Confidence)
	}
}

func TestResolvedDateFormatGates(t *testing.T) {
	tests := []struct {
		name string
		date ResolvedDate
		want string
	}{
		{"full date high confidence", ResolvedDate{1984, time.October, 15, 1.0}, "1984/10/15"},
		{"full date mid confidence drops day", ResolvedDate{1984, time.October, 15, 0.85}, "1984/10/NA"},
		{"full date low confidence drops both", ResolvedDate{1984, time.October, 15, 0.75}, "1984/NA/NA"},
		{"unknown day stays NA at high confidence", ResolvedDate{1984, time.October, 0, 0.95}, "1984/10/NA"},
		{"unknown month and day", ResolvedDate{1984, 0, 0, 0.95}, "1984/NA/NA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.date.Format(); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonthByName(t *testing.T) {
	tests := []struct {
		in   string
		want time.Month
	}{
		{"October", time.October},
		{"oct", time.October},
		{"Oct.", time.October},
		{"enero", time.January},
		{"Dic", time.December},
		{"septiembre", time.September},
	}

	for _, tt := range tests {
		got, err := monthByName(tt.in)
		if err != nil {
			t.Errorf("monthByName(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("monthByName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := monthByName("notamonth"); err == nil {
		t.Error("expected error for unknown month name")
	}
}
