package metadata

import (
	"math"
	"strings"
	"testing"
)

func TestScoreTitleLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		index    int
		want     float64
		rejected bool
	}{
		{
			name:  "ideal headline on first line",
			line:  "The Economy Turns a Corner at Last",
			index: 0,
			// 0.5 +0.75 (clamped to 1.0) +0.2 (clamped) +0.1 (clamped)
			want: 1.0,
		},
		{
			name:  "all caps gets no typographic boost",
			line:  "AGRARIAN REFORM DEBATED",
			index: 10,
			// 0.5 +0.25 = 0.75, +0.1 length = 0.85
			want: 0.85,
		},
		{
			name:     "too short",
			line:     "Newsweek",
			index:    0,
			rejected: true,
		},
		{
			name:     "too long",
			line:     strings.Repeat("x", 201),
			index:    0,
			rejected: true,
		},
		{
			name:  "masthead penalty applies after saturation",
			line:  "El Diario de Hoy Extra",
			index: 0,
			// saturates at 1.0 before the -0.3 exclusion penalty
			want: 0.7,
		},
		{
			name:  "volume marker penalized",
			line:  "Vol. 3, No. 2 quarterly bulletin",
			index: 2,
			// 0.5 +0.65 (clamp 1.0) +0.2 (clamp) +0.1 (clamp) -0.3
			want: 0.7,
		},
		{
			name:  "late lowercase line barely survives",
			line:  "continued from the previous page",
			index: 14,
			// 0.5 +0.05, no case boost, +0.1 length
			want: 0.65,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate, ok := scoreTitleLine(tt.line, tt.index)
			if tt.rejected {
				if ok {
					t.Errorf("expected rejection, got %+v", candidate)
				}
				return
			}
			if !ok {
				t.Fatal("expected a candidate")
			}
			if math.Abs(candidate.Confidence-tt.want) > 1e-9 {
				t.Errorf("confidence = %f, want %f", candidate.Confidence, tt.want)
			}
		})
	}
}

func TestSelectTitleTieBreaksToEarlierLine(t *testing.T) {
	// Both lines saturate to identical confidence; the earlier one wins.
	lines := []string{
		"The Harvest Season Begins in the North",
		"A Second Equally Plausible Headline Here",
	}

	field := selectTitle(lines)
	if field.Value != lines[0] {
		t.Errorf("expected earlier line to win the tie, got %q", field.Value)
	}
	if field.Source != SourceHeuristic {
		t.Errorf("expected heuristic source, got %q", field.Source)
	}
}

func TestSelectTitleScansOnlyFifteenLines(t *testing.T) {
	var lines []string
	for i := 0; i < 15; i++ {
		lines = append(lines, "x y z") // too short to be candidates
	}
	lines = append(lines, "A Perfectly Good Headline Past the Cutoff")

	field := selectTitle(lines)
	if field.Source != SourceFirstLineFallback {
		t.Errorf("line 16 must not be scanned; got source %q value %q", field.Source, field.Value)
	}
	if field.Value != "x y z" {
		t.Errorf("fallback should be the first non-blank line, got %q", field.Value)
	}
}

func TestSelectTitleEmpty(t *testing.T) {
	field := selectTitle(nil)
	if field.Source != SourceNone || field.Value != "" || field.Confidence != 0 {
		t.Errorf("expected None-sourced empty field, got %+v", field)
	}
}

func TestLooksLikeTitleCase(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"The Quiet Revolution", true},
		{"Prices rise again in the capital", true}, // mixed case, capital start
		{"ALL CAPS HEADLINE", false},
		{"all lowercase line", false},
		{"1984 and all that", false}, // starts with a digit
	}

	for _, tt := range tests {
		if got := looksLikeTitleCase(tt.line); got != tt.want {
			t.Errorf("looksLikeTitleCase(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
