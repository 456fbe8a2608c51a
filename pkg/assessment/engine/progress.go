package engine

import "math"

// CalcProgress returns the completion percentage for a form. A form without
// questions is defined as 0% complete, never a division by zero.
func CalcProgress(answeredCount int, totalQuestions int) int {
	if totalQuestions < 1 {
		return 0
	}
	if answeredCount < 0 {
		answeredCount = 0
	}
	if answeredCount > totalQuestions {
		answeredCount = totalQuestions
	}
	return int(math.Round(float64(answeredCount) / float64(totalQuestions) * 100))
}
