// services/ledger.go
package services

import (
	"crypto/md5"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/AmmarAssaf/renderbot/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTaskNotFound means no verification task exists for (user, code).
	ErrTaskNotFound = errors.New("verification task not found")
	// ErrAlreadyProcessed means the task left pending before this call.
	ErrAlreadyProcessed = errors.New("task already processed")
	// ErrCodeAbsent means the submitted text does not contain the code.
	ErrCodeAbsent = errors.New("verification code not found in comment")
)

// Rendered in place of a remaining-slots count for unlimited tasks.
const UnlimitedSlots = 999

const verificationCodePrefix = "CMT"

// LedgerService runs the comment task catalog, per-user verification tasks,
// and reward bookkeeping. Reward disbursement is out of scope; rows here are
// the ledger only.
type LedgerService struct {
	DB  *gorm.DB
	Now func() time.Time

	// genCode produces verification codes; swappable in tests.
	genCode func(userID int64) string
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	s := &LedgerService{DB: db, Now: time.Now}
	s.genCode = s.generateVerificationCode
	return s
}

// AddTaskInput is the admin payload for a new catalog entry.
type AddTaskInput struct {
	Platform         string  `validate:"required"`
	PostURL          string  `validate:"required,url"`
	Description      string  `validate:"required,max=300"`
	RewardAmount     float64 `validate:"gte=0"`
	MaxParticipants  int     `validate:"gte=0"`
	RequiredTemplate string  `validate:"required,max=200"`
}

// AddTask inserts a new active comment task. Caller identity checks happen
// at the command layer.
func (s *LedgerService) AddTask(createdBy int64, in AddTaskInput) (models.CommentTask, error) {
	task := models.CommentTask{
		Platform:         strings.ToLower(in.Platform),
		PostURL:          in.PostURL,
		Description:      in.Description,
		RequiredTemplate: in.RequiredTemplate,
		RewardAmount:     in.RewardAmount,
		MaxParticipants:  in.MaxParticipants,
		Status:           models.CommentTaskActive,
		CreatedBy:        createdBy,
	}
	if err := s.DB.Create(&task).Error; err != nil {
		return models.CommentTask{}, err
	}
	return task, nil
}

// TaskView is a catalog entry plus its computed remaining capacity.
type TaskView struct {
	models.CommentTask
	AvailableSlots int
}

// ListActiveTasks returns joinable tasks, newest first. Tasks with zero
// capacity are unlimited and report the slot sentinel.
func (s *LedgerService) ListActiveTasks() ([]TaskView, error) {
	var tasks []models.CommentTask
	err := s.DB.
		Where("status = ? AND (current_participants < max_participants OR max_participants = 0)", models.CommentTaskActive).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		slots := UnlimitedSlots
		if t.MaxParticipants > 0 {
			slots = t.MaxParticipants - t.CurrentParticipants
		}
		views[i] = TaskView{CommentTask: t, AvailableSlots: slots}
	}
	return views, nil
}

// Task fetches one catalog entry by id.
func (s *LedgerService) Task(id uint) (models.CommentTask, error) {
	var task models.CommentTask
	err := s.DB.First(&task, id).Error
	return task, err
}

// generateVerificationCode derives a CMT-prefixed code from the user
// identity, the clock, and fresh randomness, hashed and truncated.
func (s *LedgerService) generateVerificationCode(userID int64) string {
	base := fmt.Sprintf("%d_%d_%s", userID, s.Now().UnixNano(), uuid.NewString())
	sum := md5.Sum([]byte(base))
	return verificationCodePrefix + strings.ToUpper(fmt.Sprintf("%x", sum)[:8])
}

// CreateVerificationTask issues a pending verification task for a user who
// picked a catalog entry, bumping the entry's participant counter atomically
// in the same transaction. Nothing is inserted if the store is unreachable.
//
// A code collision slipping past the hash entropy is absorbed here: the
// unique index rejects the insert, the transaction rolls back, and the whole
// attempt is retried with a fresh code.
func (s *LedgerService) CreateVerificationTask(userID int64, task models.CommentTask) (models.VerificationTask, error) {
	var vt models.VerificationTask
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		vt = models.VerificationTask{
			UserID:       userID,
			PostURL:      task.PostURL,
			Platform:     task.Platform,
			UniqueCode:   s.genCode(userID),
			RequiredText: task.RequiredTemplate,
			Status:       models.VerificationPending,
			RewardAmount: task.RewardAmount,
		}
		if task.ID != 0 {
			id := task.ID
			vt.CommentTaskID = &id
		}

		err = s.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&vt).Error; err != nil {
				return err
			}
			if task.ID != 0 {
				return tx.Model(&models.CommentTask{}).
					Where("id = ?", task.ID).
					UpdateColumn("current_participants", gorm.Expr("current_participants + 1")).Error
			}
			return nil
		})
		if isUniqueViolation(err) {
			log.Printf("⚠️ verification code %s collided, retrying", vt.UniqueCode)
			continue
		}
		break
	}
	if err != nil {
		return models.VerificationTask{}, err
	}
	return vt, nil
}

// VerifySubmission settles a proof submission exactly once. The check is a
// plain substring match of the code inside the submitted text; nothing about
// the surrounding text is inspected. On success the task flips to verified
// and an approved reward row is written in the same transaction, amount
// copied from the task. A second call for the same code observes the
// verified status and fails with ErrAlreadyProcessed.
func (s *LedgerService) VerifySubmission(userID int64, code string, submittedText string) (models.VerificationTask, error) {
	var task models.VerificationTask

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&task, "user_id = ? AND unique_code = ?", userID, code).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}
		if task.Status != models.VerificationPending {
			return ErrAlreadyProcessed
		}
		if !strings.Contains(submittedText, code) {
			return ErrCodeAbsent
		}

		now := s.Now()
		// Guard the flip with the current status so a concurrent verify of
		// the same code cannot settle twice.
		res := tx.Model(&models.VerificationTask{}).
			Where("id = ? AND status = ?", task.ID, models.VerificationPending).
			Updates(map[string]any{
				"status":            models.VerificationVerified,
				"user_comment_text": submittedText,
				"verified_at":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyProcessed
		}

		task.Status = models.VerificationVerified
		task.UserCommentText = &submittedText
		task.VerifiedAt = &now

		reward := models.UserReward{
			UserID:       userID,
			TaskID:       task.ID,
			RewardAmount: task.RewardAmount,
			RewardType:   models.RewardTypeCommentVerification,
			Status:       models.RewardStatusApproved,
		}
		return tx.Create(&reward).Error
	})
	if err != nil {
		return models.VerificationTask{}, err
	}
	return task, nil
}

// UserLedgerProgress aggregates one user's standing in the reward system.
type UserLedgerProgress struct {
	CompletedTasks int64
	PendingTasks   int64
	TotalRewards   float64
}

func (s *LedgerService) UserProgress(userID int64) (UserLedgerProgress, error) {
	var p UserLedgerProgress
	if err := s.DB.Model(&models.VerificationTask{}).
		Where("user_id = ? AND status = ?", userID, models.VerificationVerified).
		Count(&p.CompletedTasks).Error; err != nil {
		return p, err
	}
	if err := s.DB.Model(&models.VerificationTask{}).
		Where("user_id = ? AND status = ?", userID, models.VerificationPending).
		Count(&p.PendingTasks).Error; err != nil {
		return p, err
	}
	var total struct{ Sum float64 }
	if err := s.DB.Model(&models.UserReward{}).
		Select("COALESCE(SUM(reward_amount), 0) AS sum").
		Where("user_id = ? AND status = ?", userID, models.RewardStatusApproved).
		Scan(&total).Error; err != nil {
		return p, err
	}
	p.TotalRewards = total.Sum
	return p, nil
}

// PlatformCount is one row of the per-platform verified breakdown.
type PlatformCount struct {
	Platform string
	Count    int64
}

// LedgerStats is the owner's aggregate view of the reward system.
type LedgerStats struct {
	TotalTasks     int64
	CompletedTasks int64
	UniqueUsers    int64
	TotalRewards   float64
	ActiveTasks    int64
	ByPlatform     []PlatformCount
}

func (s *LedgerService) AdminStats() (LedgerStats, error) {
	var stats LedgerStats
	if err := s.DB.Model(&models.VerificationTask{}).Count(&stats.TotalTasks).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.VerificationTask{}).
		Where("status = ?", models.VerificationVerified).
		Count(&stats.CompletedTasks).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.VerificationTask{}).
		Distinct("user_id").
		Count(&stats.UniqueUsers).Error; err != nil {
		return stats, err
	}
	var total struct{ Sum float64 }
	if err := s.DB.Model(&models.VerificationTask{}).
		Select("COALESCE(SUM(reward_amount), 0) AS sum").
		Scan(&total).Error; err != nil {
		return stats, err
	}
	stats.TotalRewards = total.Sum
	if err := s.DB.Model(&models.CommentTask{}).
		Where("status = ?", models.CommentTaskActive).
		Count(&stats.ActiveTasks).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.VerificationTask{}).
		Select("platform, COUNT(*) AS count").
		Where("status = ?", models.VerificationVerified).
		Group("platform").
		Scan(&stats.ByPlatform).Error; err != nil {
		return stats, err
	}
	return stats, nil
}
