package service

import (
	"math"

	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
)

// Policy constants for the score formula. The 0.8 baseline is a product
// decision, not derived from anything.
const (
	baseScore          = 800
	rateBaseline       = 0.8
	attendanceWeight   = 200
	confirmationWeight = 100
)

// CalculateSocialScore maps attendance/confirmation history onto the bounded
// [300, 850] score. Both rates default to 1 when the user has no history, so a
// brand-new history clamps at the ceiling. Inputs are counts; callers are
// responsible for attended <= total and confirmed <= total.
func CalculateSocialScore(totalMeetings, attendedMeetings, confirmedMeetings int) int {
	attendanceRate := 1.0
	confirmationRate := 1.0
	if totalMeetings > 0 {
		attendanceRate = float64(attendedMeetings) / float64(totalMeetings)
		confirmationRate = float64(confirmedMeetings) / float64(totalMeetings)
	}

	attendanceBonus := (attendanceRate - rateBaseline) * attendanceWeight
	confirmationBonus := (confirmationRate - rateBaseline) * confirmationWeight

	return ClampScore(int(math.Round(baseScore + attendanceBonus + confirmationBonus)))
}

// ClampScore forces a score into the [300, 850] bounds.
func ClampScore(score int) int {
	if score < userModel.SocialScoreFloor {
		return userModel.SocialScoreFloor
	}
	if score > userModel.SocialScoreCeiling {
		return userModel.SocialScoreCeiling
	}
	return score
}

// ScoreRatio normalizes a score to [0, 1] for UI progress display.
// The formula (score-300)/(850-300) is a compatibility contract.
func ScoreRatio(score int) float64 {
	return float64(score-userModel.SocialScoreFloor) /
		float64(userModel.SocialScoreCeiling-userModel.SocialScoreFloor)
}
