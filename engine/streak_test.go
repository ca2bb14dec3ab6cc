package engine

import (
	"testing"
	"time"

	"challenge-reward-system/models"
)

func approvedAt(id string, at time.Time) models.GymSession {
	return models.GymSession{ID: id, Approved: true, Confidence: 90, VerifiedAt: at}
}

func TestStreakBreaksAtTwoDayGap(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.GymSession{
		approvedAt("a", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		approvedAt("b", time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
		approvedAt("c", time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)),
	}

	if got := CurrentStreak(sessions, asOf); got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

func TestStreakEmpty(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	if got := CurrentStreak(nil, asOf); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestStreakStaleSingleSession(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.GymSession{
		approvedAt("a", time.Date(2026, 3, 8, 11, 0, 0, 0, time.UTC)),
	}

	if got := CurrentStreak(sessions, asOf); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
}

func TestStreakSameDayDuplicatesCollapse(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	sessions := []models.GymSession{
		approvedAt("a", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)),
		approvedAt("b", time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)),
		approvedAt("c", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)),
		approvedAt("d", time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
	}

	if got := CurrentStreak(sessions, asOf); got != 2 {
		t.Errorf("streak = %d, want 2 (three same-day sessions count once)", got)
	}
}

func TestStreakIgnoresRejectedSessions(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sessions := []models.GymSession{
		{ID: "a", Approved: false, VerifiedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		approvedAt("b", time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)),
	}

	if got := CurrentStreak(sessions, asOf); got != 1 {
		t.Errorf("streak = %d, want 1", got)
	}
}

func TestStreakLongChain(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	var sessions []models.GymSession
	for i := 0; i < 5; i++ {
		day := asOf.AddDate(0, 0, -i)
		sessions = append(sessions, approvedAt(string(rune('a'+i)), day.Add(-3*time.Hour)))
	}

	if got := CurrentStreak(sessions, asOf); got != 5 {
		t.Errorf("streak = %d, want 5", got)
	}
}
