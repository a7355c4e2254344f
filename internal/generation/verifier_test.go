package generation

import (
	"fmt"
	"testing"
)

func quizCritique(v int) string {
	return fmt.Sprintf(
		"Looks reasonable overall. [[[REVIEW_SCHEME]]] = { 'coverage': %d, 'correctness': %d, 'clarity': %d, 'difficulty_balance': %d, 'formatting': %d, 'feedback': %d }",
		v, v, v, v, v, v,
	)
}

func TestRubricWeightsSumToOne(t *testing.T) {
	for _, r := range []Rubric{AssignmentRubricV1, QuizRubricV1} {
		if err := r.validate(); err != nil {
			t.Fatalf("rubric %s: %v", r.Name, err)
		}
	}
}

func TestExtractScoreAllTensIsExactlyHundred(t *testing.T) {
	got := extractScore(quizCritique(10), QuizRubricV1)
	if got != 100.0 {
		t.Fatalf("extractScore = %v, want 100.0", got)
	}
}

func TestExtractScoreWeighting(t *testing.T) {
	text := "review [[[REVIEW_SCHEME]]] = { 'coverage': 10, 'correctness': 0, 'clarity': 10, 'difficulty_balance': 0, 'formatting': 10, 'feedback': 0 }"
	// 10*0.25 + 10*0.15 + 10*0.05 = 4.5, scaled x10 = 45.
	got := extractScore(text, QuizRubricV1)
	if got != 45.0 {
		t.Fatalf("extractScore = %v, want 45.0", got)
	}
}

func TestExtractScoreParseFailureIsZero(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{name: "empty", text: ""},
		{name: "no_marker", text: "great quiz, 10/10 across the board"},
		{name: "marker_without_block", text: "[[[REVIEW_SCHEME]]] = nothing here"},
		{name: "empty_block", text: "[[[REVIEW_SCHEME]]] = {}"},
		{name: "missing_criteria", text: "[[[REVIEW_SCHEME]]] = { 'coverage': 9 }"},
		{name: "garbage_block", text: "[[[REVIEW_SCHEME]]] = { what even is this }"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractScore(tc.text, QuizRubricV1); got != 0.0 {
				t.Fatalf("extractScore(%q) = %v, want 0.0", tc.text, got)
			}
		})
	}
}

func TestExtractScoreAcceptsDoubleQuotedKeys(t *testing.T) {
	text := `[[[REVIEW_SCHEME]]] = { "coverage": 10, "correctness": 10, "clarity": 10, "difficulty_balance": 10, "formatting": 10, "feedback": 10 }`
	if got := extractScore(text, QuizRubricV1); got != 100.0 {
		t.Fatalf("extractScore = %v, want 100.0", got)
	}
}

func TestPlateaued(t *testing.T) {
	cases := []struct {
		name   string
		scores []float64
		want   bool
	}{
		{name: "empty", scores: nil, want: false},
		{name: "two_equal", scores: []float64{40, 40}, want: false},
		{name: "three_equal", scores: []float64{40, 40, 40}, want: true},
		{name: "three_equal_after_motion", scores: []float64{10, 55, 55, 55}, want: true},
		{name: "still_improving", scores: []float64{40, 40, 45}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := plateaued(tc.scores); got != tc.want {
				t.Fatalf("plateaued(%v) = %v, want %v", tc.scores, got, tc.want)
			}
		})
	}
}
