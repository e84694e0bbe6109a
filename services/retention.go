// services/retention.go
package services

import (
	"log"
	"time"

	"github.com/AmmarAssaf/renderbot/models"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// RetentionService periodically deletes stale registration checkpoints and
// abandoned pending verification tasks. A zero TTL disables that sweep, which
// is the default: nothing is expired unless the operator opts in.
type RetentionService struct {
	DB             *gorm.DB
	CheckpointTTL  time.Duration
	PendingTaskTTL time.Duration

	scheduler gocron.Scheduler
}

func NewRetentionService(db *gorm.DB, checkpointTTL, pendingTaskTTL time.Duration) *RetentionService {
	return &RetentionService{DB: db, CheckpointTTL: checkpointTTL, PendingTaskTTL: pendingTaskTTL}
}

// Start schedules the hourly sweep. No-op when both TTLs are zero.
func (s *RetentionService) Start() {
	if s.CheckpointTTL == 0 && s.PendingTaskTTL == 0 {
		log.Println("retention sweeps disabled")
		return
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("❌ failed to create retention scheduler: %v", err)
		return
	}
	s.scheduler = sched
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.Sweep),
	)
	log.Printf("✅ retention sweeps running (checkpoint TTL %s, pending task TTL %s)", s.CheckpointTTL, s.PendingTaskTTL)
}

// Stop shuts the scheduler down.
func (s *RetentionService) Stop() {
	if s.scheduler != nil {
		_ = s.scheduler.Shutdown()
	}
}

// Sweep runs one pass of both deletions.
func (s *RetentionService) Sweep() {
	now := time.Now()

	if s.CheckpointTTL > 0 {
		cutoff := now.Add(-s.CheckpointTTL)
		res := s.DB.Delete(&models.RegistrationProgress{}, "last_updated < ?", cutoff)
		if res.Error != nil {
			log.Printf("[Retention] checkpoint sweep failed: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[Retention] deleted %d stale checkpoints", res.RowsAffected)
		}
	}

	if s.PendingTaskTTL > 0 {
		cutoff := now.Add(-s.PendingTaskTTL)
		res := s.DB.Delete(&models.VerificationTask{},
			"status = ? AND created_at < ?", models.VerificationPending, cutoff)
		if res.Error != nil {
			log.Printf("[Retention] pending task sweep failed: %v", res.Error)
		} else if res.RowsAffected > 0 {
			log.Printf("[Retention] deleted %d abandoned pending tasks", res.RowsAffected)
		}
	}
}
