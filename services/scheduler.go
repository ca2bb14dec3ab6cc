// services/scheduler.go
package services

import (
	"log"
	"time"

	"challenge-reward-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartLifecycleScheduler sweeps active challenges on an interval and applies
// the lifecycle decision function: overdue challenges fail without waiting
// for the user to open the app, and any missed completions are picked up.
func (s *ChallengeService) StartLifecycleScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every hour: evaluate active challenges
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			var challenges []models.Challenge
			err := s.DB.Where("status = ?", models.ChallengeStatusActive).
				Find(&challenges).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			now := time.Now()
			for i := range challenges {
				ch := &challenges[i]
				if err := s.EvaluateChallenge(ch, now); err != nil {
					log.Printf("[Scheduler] Failed to evaluate challenge %s: %v", ch.ID, err)
				}
			}
		}),
	)
}
