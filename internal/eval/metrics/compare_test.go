package metrics

import (
	"math"
	"testing"
)

func TestCompareField(t *testing.T) {
	tests := []struct {
		name       string
		expected   string
		actual     string
		wantScore  float64
		wantMethod string
	}{
		{
			name:       "exact match after normalization",
			expected:   "The Harvest Begins",
			actual:     "the harvest begins.",
			wantScore:  1.0,
			wantMethod: "exact",
		},
		{
			name:       "substring match",
			expected:   "Harvest Begins",
			actual:     "The Harvest Begins in Chalatenango",
			wantScore:  0.8,
			wantMethod: "substring",
		},
		{
			name:       "both missing",
			expected:   "",
			actual:     "",
			wantScore:  0.5,
			wantMethod: "both_missing",
		},
		{
			name:       "actual missing",
			expected:   "Vol. 3, No. 2",
			actual:     "",
			wantScore:  0.0,
			wantMethod: "actual_missing",
		},
		{
			name:       "expected missing",
			expected:   "",
			actual:     "Vol. 3, No. 2",
			wantScore:  0.0,
			wantMethod: "expected_missing",
		},
		{
			name:       "unrelated strings",
			expected:   "La reforma agraria",
			actual:     "Weather report for Tuesday",
			wantMethod: "no_match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := compareField(tt.expected, tt.actual)
			if match.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", match.Method, tt.wantMethod)
			}
			if tt.wantMethod != "no_match" && math.Abs(match.Score-tt.wantScore) > 1e-9 {
				t.Errorf("score = %f, want %f", match.Score, tt.wantScore)
			}
		})
	}
}

func TestCompareFieldFuzzyTiers(t *testing.T) {
	// One character off over a long string scores high
	match := compareField("el diario de hoy octubre", "el diario de hoy octubrr")
	if match.Method != "fuzzy_high" {
		t.Errorf("method = %q, want fuzzy_high (score %f)", match.Method, match.Score)
	}
}

func TestComparePageFieldsWeighting(t *testing.T) {
	comparison := ComparePageFields(
		"The Harvest Begins", "The Harvest Begins",
		"1984/10/15", "1984/10/15",
		"Vol. 3, No. 2", "",
	)

	// title 1.0*0.4 + date 1.0*0.4 + volume 0.0*0.2
	want := 0.8
	if math.Abs(comparison.OverallScore-want) > 1e-9 {
		t.Errorf("overall = %f, want %f", comparison.OverallScore, want)
	}
	if comparison.VolumeIssueMatch.Method != "actual_missing" {
		t.Errorf("volume method = %q", comparison.VolumeIssueMatch.Method)
	}
}

func TestNormalizeForComparison(t *testing.T) {
	got := normalizeForComparison("  Vol. 3,  No. 2! ")
	if got != "vol 3 no 2" {
		t.Errorf("normalizeForComparison() = %q", got)
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"same", "same", 0},
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}
