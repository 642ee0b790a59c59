package rating

import (
	"math"
	"smarthire-backend/models"
	dbmodels "smarthire-backend/models/db"
)

const (
	minSubScore = 1
	maxSubScore = 5
)

// Composite returns the mean of the valid HR sub-scores rounded to one
// decimal place. Sub-scores outside 1..5 are not counted. With no valid
// sub-score the composite is 0.
func Composite(hr dbmodels.HRRating) float64 {
	sum := 0
	count := 0
	for _, score := range subScores(hr) {
		if score < minSubScore || score > maxSubScore {
			continue
		}
		sum += score
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

// Apply recomputes the HR composite on updated when an HR edit changed at
// least one sub-score. Any other edit keeps the original composite, so no
// role can write it directly.
func Apply(role models.UserRole, original, updated dbmodels.Candidate) dbmodels.Candidate {
	updated.Ratings.HR.Score = original.Ratings.HR.Score
	if role != models.HRRole {
		return updated
	}
	if subScores(original.Ratings.HR) == subScores(updated.Ratings.HR) {
		return updated
	}
	updated.Ratings.HR.Score = Composite(updated.Ratings.HR)
	return updated
}

func subScores(hr dbmodels.HRRating) [5]int {
	return [5]int{hr.Personality, hr.Attitude, hr.Presentable, hr.Communication, hr.Confidence}
}
