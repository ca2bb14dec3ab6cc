// engine/ledger.go
package engine

import (
	"sort"
	"time"

	"challenge-reward-system/models"
)

// Ledger is a read view over one challenge's attested sessions. It never
// mutates or persists anything: the caller loads the rows and the ledger
// answers aggregate questions about them.
type Ledger struct {
	sessions []models.GymSession
}

func NewLedger(sessions []models.GymSession) *Ledger {
	return &Ledger{sessions: sessions}
}

// ApprovedCount is the number of sessions the attestation gateway approved.
// Rejected sessions stay in the ledger for audit but never count.
func (l *Ledger) ApprovedCount() int {
	n := 0
	for _, s := range l.sessions {
		if s.Approved {
			n++
		}
	}
	return n
}

// ApprovedOnDay reports whether any approved session was verified on the
// same calendar day as day, in day's location. The caller supplies the day
// boundary convention; it must match how VerifiedAt was recorded.
func (l *Ledger) ApprovedOnDay(day time.Time) bool {
	y, m, d := day.Date()
	for _, s := range l.sessions {
		if !s.Approved {
			continue
		}
		sy, sm, sd := s.VerifiedAt.In(day.Location()).Date()
		if sy == y && sm == m && sd == d {
			return true
		}
	}
	return false
}

// MostRecentFirst returns the approved sessions ordered by VerifiedAt
// descending. Ties break on ID so streak computation is reproducible.
func (l *Ledger) MostRecentFirst() []models.GymSession {
	out := make([]models.GymSession, 0, len(l.sessions))
	for _, s := range l.sessions {
		if s.Approved {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].VerifiedAt.Equal(out[j].VerifiedAt) {
			return out[i].VerifiedAt.After(out[j].VerifiedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
