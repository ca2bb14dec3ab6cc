// engine/progress.go
package engine

// TotalTarget is the number of sessions a challenge commits to.
// A month is modeled as exactly 4 weeks here — that matches how targets are
// quoted to the user, so keep it even though it is not calendar-accurate.
func TotalTarget(sessionsPerWeek, durationMonths int) int {
	return sessionsPerWeek * 4 * durationMonths
}

// CompletionPercent is 100 × approved / target. A zero target yields 0
// rather than dividing by zero.
func CompletionPercent(approvedCount, totalTarget int) float64 {
	if totalTarget == 0 {
		return 0
	}
	return 100 * float64(approvedCount) / float64(totalTarget)
}

// RemainingSessions never goes negative: extra approved sessions beyond the
// target simply leave zero remaining.
func RemainingSessions(approvedCount, totalTarget int) int {
	if approvedCount >= totalTarget {
		return 0
	}
	return totalTarget - approvedCount
}
