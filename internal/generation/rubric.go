package generation

import "fmt"

// Criterion is one named rubric dimension, scored 0-10 by the critique
// model and weighted into the final score.
type Criterion struct {
	Key    string
	Weight float64
}

// Rubric is a named, versioned weight table. Weights must sum to 1; the
// final score is 10 x the weighted sum, so an all-tens critique is 100.
type Rubric struct {
	Name     string
	Criteria []Criterion
}

func (r Rubric) WeightSum() float64 {
	var sum float64
	for _, c := range r.Criteria {
		sum += c.Weight
	}
	return sum
}

// Score computes the weighted score from a parsed criterion->score map.
// Any missing criterion invalidates the critique and scores 0: a
// conservative penalty that drives another generation attempt.
func (r Rubric) Score(scores map[string]float64) float64 {
	var sum float64
	for _, c := range r.Criteria {
		v, ok := scores[c.Key]
		if !ok {
			return 0
		}
		sum += v * c.Weight
	}
	return sum * 10
}

func (r Rubric) validate() error {
	const eps = 1e-9
	if s := r.WeightSum(); s < 1-eps || s > 1+eps {
		return fmt.Errorf("rubric %s weights sum to %v, want 1", r.Name, s)
	}
	return nil
}

// AssignmentRubricV1 is the legacy programming-assignment rubric. It is
// retained for the automated assignment review flow even though current
// assignment runs stop at the human-feedback gate.
var AssignmentRubricV1 = Rubric{
	Name: "assignment_v1",
	Criteria: []Criterion{
		{Key: "clarity", Weight: 0.05},
		{Key: "boilerplate", Weight: 0.25},
		{Key: "todo", Weight: 0.25},
		{Key: "overlap", Weight: 0.10},
		{Key: "formatting", Weight: 0.05},
		{Key: "feedback", Weight: 0.30},
	},
}

// QuizRubricV1 weighs conceptual coverage and correctness over surface
// criteria.
var QuizRubricV1 = Rubric{
	Name: "quiz_v1",
	Criteria: []Criterion{
		{Key: "coverage", Weight: 0.25},
		{Key: "correctness", Weight: 0.30},
		{Key: "clarity", Weight: 0.15},
		{Key: "difficulty_balance", Weight: 0.10},
		{Key: "formatting", Weight: 0.05},
		{Key: "feedback", Weight: 0.15},
	},
}
