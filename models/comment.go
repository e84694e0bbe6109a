package models

import "time"

// CommentTaskStatus is the catalog entry state.
type CommentTaskStatus string

const (
	CommentTaskActive CommentTaskStatus = "active"
	CommentTaskClosed CommentTaskStatus = "closed"
)

// CommentTask is an administrator-defined comment assignment users can join
// for a reward. MaxParticipants of 0 means unlimited.
type CommentTask struct {
	ID                  uint              `gorm:"primaryKey" json:"id"`
	Platform            string            `gorm:"size:50;not null" json:"platform"`
	PostURL             string            `gorm:"size:500;not null" json:"post_url"`
	Description         string            `gorm:"size:300" json:"description"`
	RequiredTemplate    string            `gorm:"size:200" json:"required_comment_template"`
	RewardAmount        float64           `gorm:"type:decimal(10,2)" json:"reward_amount"`
	MaxParticipants     int               `gorm:"default:0" json:"max_participants"`
	CurrentParticipants int               `gorm:"default:0" json:"current_participants"`
	Status              CommentTaskStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedBy           int64             `gorm:"index" json:"created_by"`
	CreatedAt           time.Time         `json:"created_at"`

	Verifications []VerificationTask `gorm:"foreignKey:CommentTaskID;constraint:OnDelete:CASCADE" json:"-"`
}

// VerificationTaskStatus is the per-user proof state. The only transition is
// pending -> verified, exactly once.
type VerificationTaskStatus string

const (
	VerificationPending  VerificationTaskStatus = "pending"
	VerificationVerified VerificationTaskStatus = "verified"
)

// VerificationTask is one user's instance of a CommentTask, carrying the
// unique proof code the user must embed in their comment.
type VerificationTask struct {
	ID              uint                   `gorm:"primaryKey" json:"id"`
	UserID          int64                  `gorm:"index;not null" json:"user_id"`
	CommentTaskID   *uint                  `gorm:"index" json:"comment_task_id,omitempty"`
	PostURL         string                 `gorm:"size:500;not null" json:"post_url"`
	Platform        string                 `gorm:"size:50;not null" json:"platform"`
	UniqueCode      string                 `gorm:"size:20;uniqueIndex;not null" json:"unique_code"`
	RequiredText    string                 `gorm:"size:200" json:"required_comment_text"`
	Status          VerificationTaskStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	UserCommentText *string                `gorm:"type:text" json:"user_comment_text,omitempty"`
	RewardAmount    float64                `gorm:"type:decimal(10,2);default:0" json:"reward_amount"`
	VerifiedAt      *time.Time             `json:"verified_at,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`

	Reward *UserReward `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
}

// RewardStatus tracks payout bookkeeping. Disbursement itself happens outside
// this system; PaidAt is set by whoever executes it.
type RewardStatus string

const (
	RewardStatusPending  RewardStatus = "pending"
	RewardStatusApproved RewardStatus = "approved"
)

const RewardTypeCommentVerification = "comment_verification"

// UserReward credits a user for a verified task. Created in the same
// transaction as the task's pending -> verified flip; the amount is copied
// from the task at that moment.
type UserReward struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       int64        `gorm:"index;not null" json:"user_id"`
	TaskID       uint         `gorm:"uniqueIndex;not null" json:"task_id"`
	RewardAmount float64      `gorm:"type:decimal(10,2)" json:"reward_amount"`
	RewardType   string       `gorm:"size:50" json:"reward_type"`
	Status       RewardStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	PaidAt       *time.Time   `json:"paid_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
