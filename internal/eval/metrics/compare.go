// Package metrics scores extracted metadata against ground truth labels.
package metrics

import (
	"fmt"
	"regexp"
	"strings"
)

// PageComparison holds field-level comparison results for one page.
type PageComparison struct {
	TitleMatch       FieldMatch
	DateMatch        FieldMatch
	VolumeIssueMatch FieldMatch

	FieldLevelScores map[string]float64
	OverallScore     float64
}

// FieldMatch is the comparison result for a single field.
type FieldMatch struct {
	Expected string
	Actual   string
	Score    float64 // 0.0 to 1.0
	Method   string  // "exact", "substring", "fuzzy_high", "fuzzy_medium", "no_match", "both_missing", ...
	Notes    string
}

// ComparePageFields compares extracted values against the labeled page.
func ComparePageFields(expectedTitle, actualTitle, expectedDate, actualDate, expectedVolume, actualVolume string) *PageComparison {
	comparison := &PageComparison{
		FieldLevelScores: make(map[string]float64),
	}

	comparison.TitleMatch = compareField(expectedTitle, actualTitle)
	comparison.FieldLevelScores["title"] = comparison.TitleMatch.Score

	comparison.DateMatch = compareField(expectedDate, actualDate)
	comparison.FieldLevelScores["date"] = comparison.DateMatch.Score

	comparison.VolumeIssueMatch = compareField(expectedVolume, actualVolume)
	comparison.FieldLevelScores["volume_issue"] = comparison.VolumeIssueMatch.Score

	// Weighted average. Title and date carry most of the weight.
	weights := map[string]float64{
		"title":        0.40,
		"date":         0.40,
		"volume_issue": 0.20,
	}

	totalScore := 0.0
	for field, weight := range weights {
		totalScore += comparison.FieldLevelScores[field] * weight
	}
	comparison.OverallScore = totalScore

	return comparison
}

// compareField performs detailed field comparison with fuzzy matching
func compareField(expected, actual string) FieldMatch {
	match := FieldMatch{
		Expected: expected,
		Actual:   actual,
	}

	expNorm := normalizeForComparison(expected)
	actNorm := normalizeForComparison(actual)

	if expected == "" && actual == "" {
		match.Score = 0.5
		match.Method = "both_missing"
		match.Notes = "Both fields are empty"
		return match
	}

	if expected == "" {
		match.Score = 0.0
		match.Method = "expected_missing"
		match.Notes = "Expected value is empty (no ground truth)"
		return match
	}

	if actual == "" {
		match.Score = 0.0
		match.Method = "actual_missing"
		match.Notes = "Extraction missing this field"
		return match
	}

	if expNorm == actNorm {
		match.Score = 1.0
		match.Method = "exact"
		match.Notes = "Exact match"
		return match
	}

	if strings.Contains(actNorm, expNorm) || strings.Contains(expNorm, actNorm) {
		match.Score = 0.8
		match.Method = "substring"
		match.Notes = "Partial match (substring found)"
		return match
	}

	similarity := calculateSimilarity(expNorm, actNorm)
	match.Score = similarity
	if similarity > 0.7 {
		match.Method = "fuzzy_high"
		match.Notes = fmt.Sprintf("High similarity (%.2f)", similarity)
	} else if similarity > 0.4 {
		match.Method = "fuzzy_medium"
		match.Notes = fmt.Sprintf("Medium similarity (%.2f)", similarity)
	} else {
		match.Method = "no_match"
		match.Notes = fmt.Sprintf("Low similarity (%.2f)", similarity)
	}

	return match
}

// normalizeForComparison normalizes text for comparison
func normalizeForComparison(text string) string {
	text = strings.ToLower(text)

	re := regexp.MustCompile(`[^\w\s]`)
	text = re.ReplaceAllString(text, "")

	text = strings.Join(strings.Fields(text), " ")

	return strings.TrimSpace(text)
}

// calculateSimilarity calculates similarity ratio (0.0 to 1.0) using Levenshtein distance
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}

	distance := levenshteinDistance(s1, s2)
	maxLen := len(s1)
	if len(s2) > maxLen {
		maxLen = len(s2)
	}

	return 1.0 - (float64(distance) / float64(maxLen))
}

// levenshteinDistance calculates the Levenshtein distance between two strings
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	if len(s1) == 0 {
		return len(s2)
	}

	if len(s2) == 0 {
		return len(s1)
	}

	rows := len(s1) + 1
	cols := len(s2) + 1
	matrix := make([][]int, rows)
	for i := range matrix {
		matrix[i] = make([]int, cols)
	}

	for i := 0; i < rows; i++ {
		matrix[i][0] = i
	}
	for j := 0; j < cols; j++ {
		matrix[0][j] = j
	}

	for i := 1; i < rows; i++ {
		for j := 1; j < cols; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			deletion := matrix[i-1][j] + 1
			insertion := matrix[i][j-1] + 1
			substitution := matrix[i-1][j-1] + cost

			minVal := deletion
			if insertion < minVal {
				minVal = insertion
			}
			if substitution < minVal {
				minVal = substitution
			}

			matrix[i][j] = minVal
		}
	}

	return matrix[rows-1][cols-1]
}
