package domain

import (
	"errors"
	"fmt"
)

// RIASEC trait codes in fixed priority order. The order is load-bearing:
// ties in dominant-trait and top-N selection resolve to the earliest code.
var TraitOrder = []string{"R", "I", "A", "S", "E", "C"}

// TraitNames maps each code to its display name.
var TraitNames = map[string]string{
	"R": "Realistic",
	"I": "Investigative",
	"A": "Artistic",
	"S": "Social",
	"E": "Enterprising",
	"C": "Conventional",
}

// TraitDescriptions decorate API responses with a short explanation per code.
var TraitDescriptions = map[string]string{
	"R": "Realistic - Practical, hands-on, mechanical interests",
	"I": "Investigative - Scientific, analytical, research-oriented",
	"A": "Artistic - Creative, expressive, artistic pursuits",
	"S": "Social - Helping others, teaching, counseling",
	"E": "Enterprising - Leadership, business, entrepreneurial",
	"C": "Conventional - Organized, detail-oriented, systematic",
}

var (
	ErrInvalidTrait       = errors.New("invalid riasec trait")
	ErrInvalidAnswerRange = errors.New("answer value out of range")
)

// TraitVector holds the accumulated score for each of the six RIASEC traits.
// All six keys are always present; zero values mean "no signal yet".
type TraitVector map[string]int

// NewTraitVector returns a vector with all six traits initialized to zero.
func NewTraitVector() TraitVector {
	v := make(TraitVector, len(TraitOrder))
	for _, code := range TraitOrder {
		v[code] = 0
	}
	return v
}

// ValidTrait reports whether code is one of the six RIASEC codes.
func ValidTrait(code string) bool {
	_, ok := TraitNames[code]
	return ok
}

// Increment adds a Likert answer value (1-5) to the named trait.
func (v TraitVector) Increment(trait string, amount int) error {
	if !ValidTrait(trait) {
		return fmt.Errorf("%w: %q", ErrInvalidTrait, trait)
	}
	if amount < 1 || amount > 5 {
		return fmt.Errorf("%w: %d", ErrInvalidAnswerRange, amount)
	}
	v[trait] += amount
	return nil
}

// Total returns the sum over all six traits.
func (v TraitVector) Total() int {
	total := 0
	for _, code := range TraitOrder {
		total += v[code]
	}
	return total
}

// Percentages returns each trait's share of the total, rounded to two
// decimals. All shares are zero when the vector is empty.
func (v TraitVector) Percentages() map[string]float64 {
	total := v.Total()
	out := make(map[string]float64, len(TraitOrder))
	for _, code := range TraitOrder {
		if total > 0 {
			out[code] = round2(float64(v[code]) / float64(total) * 100)
		} else {
			out[code] = 0
		}
	}
	return out
}

// Dominant returns the trait with the highest score. Ties resolve to the
// earliest code in TraitOrder, so identical vectors always produce the
// same answer.
func (v TraitVector) Dominant() string {
	dominant := TraitOrder[0]
	best := v[dominant]
	for _, code := range TraitOrder[1:] {
		if v[code] > best {
			dominant = code
			best = v[code]
		}
	}
	return dominant
}

// TopN returns the n highest-scoring trait codes, ties broken by TraitOrder.
// The selection sort over six fixed entries keeps the result deterministic.
func (v TraitVector) TopN(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(TraitOrder) {
		n = len(TraitOrder)
	}
	remaining := append([]string(nil), TraitOrder...)
	out := make([]string, 0, n)
	for len(out) < n {
		bestIdx := 0
		for i, code := range remaining {
			if v[code] > v[remaining[bestIdx]] {
				bestIdx = i
			}
		}
		out = append(out, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return out
}

// Summary bundles the derived statistics of a trait vector.
type TraitSummary struct {
	Scores        TraitVector        `json:"riasec_scores"`
	Percentages   map[string]float64 `json:"percentages"`
	DominantTrait string             `json:"dominant_trait"`
	TotalScore    int                `json:"total_score"`
}

// Summarize computes scores, percentages, dominant trait and total. Pure;
// the receiver is copied into the result so later mutation of the vector
// does not alias the summary.
func (v TraitVector) Summarize() TraitSummary {
	scores := NewTraitVector()
	for _, code := range TraitOrder {
		scores[code] = v[code]
	}
	return TraitSummary{
		Scores:        scores,
		Percentages:   v.Percentages(),
		DominantTrait: v.Dominant(),
		TotalScore:    v.Total(),
	}
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
