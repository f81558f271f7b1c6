// services/audit.go
package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type orderDuplicate struct {
	SessionID  int
	MatchOrder int
	Count      int64
}

// findDuplicateOrders looks for (session_id, match_order) pairs held by more
// than one match. With the unique index in place this should always come back
// empty; rows here mean data predating the constraint or a broken migration.
func (s *MatchService) findDuplicateOrders() ([]orderDuplicate, error) {
	var duplicates []orderDuplicate
	err := s.DB.Raw(`
		SELECT session_id, match_order, COUNT(*) AS count
		FROM matches
		GROUP BY session_id, match_order
		HAVING COUNT(*) > 1
	`).Scan(&duplicates).Error
	return duplicates, err
}

// StartOrderAuditScheduler runs an hourly sweep for duplicate match orders.
// Findings are logged only — orders are never renumbered, since comments and
// history reference matches by id.
func (s *MatchService) StartOrderAuditScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			duplicates, err := s.findDuplicateOrders()
			if err != nil {
				log.Printf("[AUDIT] DB error: %v", err)
				return
			}
			if len(duplicates) == 0 {
				return
			}
			for _, d := range duplicates {
				log.Printf("[AUDIT] ⚠️ duplicate match_order %d in session %d (%d rows)",
					d.MatchOrder, d.SessionID, d.Count)
			}
		}),
	)
}
