package rating

// TestQuestionCount is the number of questions of the pre-employment test.
const TestQuestionCount = 40

// TestBand returns the rating label for a pre-employment test score.
func TestBand(score int) string {
	switch {
	case score >= 35:
		return "Excellent"
	case score >= 28:
		return "Good"
	case score >= 20:
		return "Average"
	}
	return "Below Average"
}
