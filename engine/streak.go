// engine/streak.go
package engine

import (
	"time"

	"challenge-reward-system/models"
)

// CurrentStreak counts consecutive qualifying days of approved sessions,
// walking backward from asOf. A gap of 0 or 1 day between the cursor and the
// next session keeps the chain alive (same-day and next-day cadence both
// qualify); a gap of 2+ days breaks it and the walk never resumes past a
// break. Multiple approved sessions on one calendar day collapse to a single
// qualifying day.
//
// sessions must be ordered most-recent-first (see Ledger.MostRecentFirst).
func CurrentStreak(sessions []models.GymSession, asOf time.Time) int {
	streak := 0
	cursor := asOf
	var lastDay time.Time

	for _, s := range sessions {
		if !s.Approved {
			continue
		}

		day := dayOf(s.VerifiedAt, asOf.Location())
		if streak > 0 && day.Equal(lastDay) {
			// Same-day duplicate: advance the cursor but count the day once.
			cursor = s.VerifiedAt
			continue
		}

		gapDays := int(cursor.Sub(s.VerifiedAt).Hours() / 24)
		if gapDays > 1 {
			break
		}

		streak++
		cursor = s.VerifiedAt
		lastDay = day
	}

	return streak
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
