// services/ledger_test.go
package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/AmmarAssaf/renderbot/models"
)

func seedTask(t *testing.T, svc *LedgerService, maxParticipants int) models.CommentTask {
	t.Helper()
	task, err := svc.AddTask(1, AddTaskInput{
		Platform:         "YouTube",
		PostURL:          "https://www.youtube.com/watch?v=abc123",
		Description:      "Leave a supportive comment",
		RequiredTemplate: "Great video! {code}",
		RewardAmount:     0.5,
		MaxParticipants:  maxParticipants,
	})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	return task
}

func TestAddTaskNormalizesPlatform(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	task := seedTask(t, svc, 0)
	if task.Platform != "youtube" {
		t.Errorf("platform = %q, want lowercase", task.Platform)
	}
	if task.Status != models.CommentTaskActive {
		t.Errorf("status = %q, want active", task.Status)
	}
}

func TestListActiveTasksRespectsCapacity(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	limited := seedTask(t, svc, 1)
	seedTask(t, svc, 0)

	if _, err := svc.CreateVerificationTask(500, limited); err != nil {
		t.Fatalf("CreateVerificationTask: %v", err)
	}

	views, err := svc.ListActiveTasks()
	if err != nil {
		t.Fatalf("ListActiveTasks: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("active tasks = %d, want 1 (the full one hidden)", len(views))
	}
	if views[0].AvailableSlots != UnlimitedSlots {
		t.Errorf("slots = %d, want the unlimited sentinel", views[0].AvailableSlots)
	}
}

func TestCreateVerificationTaskIssuesCode(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	task := seedTask(t, svc, 5)

	vt, err := svc.CreateVerificationTask(500, task)
	if err != nil {
		t.Fatalf("CreateVerificationTask: %v", err)
	}
	if !strings.HasPrefix(vt.UniqueCode, "CMT") || len(vt.UniqueCode) != 11 {
		t.Errorf("code = %q, want CMT plus 8 hex characters", vt.UniqueCode)
	}
	if vt.Status != models.VerificationPending {
		t.Errorf("status = %q, want pending", vt.Status)
	}
	if vt.RewardAmount != task.RewardAmount {
		t.Errorf("reward = %v, want copied from task", vt.RewardAmount)
	}

	var participants int
	svc.DB.Raw("SELECT current_participants FROM comment_tasks WHERE id = ?", task.ID).Scan(&participants)
	if participants != 1 {
		t.Errorf("current_participants = %d, want 1", participants)
	}
}

func TestCreateVerificationTaskAbsorbsCodeCollision(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	task := seedTask(t, svc, 0)

	first, err := svc.CreateVerificationTask(500, task)
	if err != nil {
		t.Fatalf("CreateVerificationTask: %v", err)
	}

	// Force the generator to hand out an already-issued code once before
	// producing a fresh one. The collision must be retried internally,
	// never surfaced.
	codes := []string{first.UniqueCode, "CMTFRESH01"}
	svc.genCode = func(int64) string {
		code := codes[0]
		codes = codes[1:]
		return code
	}

	vt, err := svc.CreateVerificationTask(501, task)
	if err != nil {
		t.Fatalf("collision surfaced instead of retried: %v", err)
	}
	if vt.UniqueCode != "CMTFRESH01" {
		t.Errorf("code = %q, want the regenerated one", vt.UniqueCode)
	}

	// The rolled-back attempt must not have bumped the counter.
	var participants int
	svc.DB.Raw("SELECT current_participants FROM comment_tasks WHERE id = ?", task.ID).Scan(&participants)
	if participants != 2 {
		t.Errorf("current_participants = %d, want 2", participants)
	}
}

func TestVerifySubmissionExactlyOnce(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	task := seedTask(t, svc, 0)
	vt, err := svc.CreateVerificationTask(500, task)
	if err != nil {
		t.Fatalf("CreateVerificationTask: %v", err)
	}

	comment := "Great video! " + vt.UniqueCode
	settled, err := svc.VerifySubmission(500, vt.UniqueCode, comment)
	if err != nil {
		t.Fatalf("VerifySubmission: %v", err)
	}
	if settled.Status != models.VerificationVerified {
		t.Errorf("status = %q, want verified", settled.Status)
	}

	// The reward was approved in the same transaction, amount copied.
	var rewards []models.UserReward
	if err := svc.DB.Find(&rewards, "user_id = ?", 500).Error; err != nil {
		t.Fatalf("load rewards: %v", err)
	}
	if len(rewards) != 1 {
		t.Fatalf("rewards = %d, want exactly 1", len(rewards))
	}
	if rewards[0].Status != models.RewardStatusApproved || rewards[0].RewardAmount != 0.5 {
		t.Errorf("reward = %+v", rewards[0])
	}

	// Replaying the same submission must not mint a second reward.
	if _, err := svc.VerifySubmission(500, vt.UniqueCode, comment); !errors.Is(err, ErrAlreadyProcessed) {
		t.Fatalf("replay err = %v, want ErrAlreadyProcessed", err)
	}
	svc.DB.Find(&rewards, "user_id = ?", 500)
	if len(rewards) != 1 {
		t.Fatalf("rewards after replay = %d, want still 1", len(rewards))
	}
}

func TestVerifySubmissionRequiresCodeInText(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	vt, err := svc.CreateVerificationTask(500, seedTask(t, svc, 0))
	if err != nil {
		t.Fatalf("CreateVerificationTask: %v", err)
	}

	if _, err := svc.VerifySubmission(500, vt.UniqueCode, "Great video!"); !errors.Is(err, ErrCodeAbsent) {
		t.Fatalf("err = %v, want ErrCodeAbsent", err)
	}
	// The failed attempt must leave the task pending and reward-less.
	var count int64
	svc.DB.Model(&models.UserReward{}).Where("user_id = ?", 500).Count(&count)
	if count != 0 {
		t.Errorf("rewards = %d, want 0", count)
	}

	// The code anywhere in the surrounding text is enough.
	if _, err := svc.VerifySubmission(500, vt.UniqueCode, "prefix "+vt.UniqueCode+" suffix"); err != nil {
		t.Fatalf("substring match failed: %v", err)
	}
}

func TestVerifySubmissionUnknownCode(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	if _, err := svc.VerifySubmission(500, "CMTDEADBEEF", "CMTDEADBEEF"); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("err = %v, want ErrTaskNotFound", err)
	}
}

func TestUserProgress(t *testing.T) {
	svc := NewLedgerService(newTestDB(t))
	task := seedTask(t, svc, 0)

	first, _ := svc.CreateVerificationTask(500, task)
	if _, err := svc.CreateVerificationTask(500, task); err != nil {
		t.Fatalf("CreateVerificationTask: %v", err)
	}
	if _, err := svc.VerifySubmission(500, first.UniqueCode, first.UniqueCode); err != nil {
		t.Fatalf("VerifySubmission: %v", err)
	}

	progress, err := svc.UserProgress(500)
	if err != nil {
		t.Fatalf("UserProgress: %v", err)
	}
	if progress.CompletedTasks != 1 || progress.PendingTasks != 1 {
		t.Errorf("progress = %+v", progress)
	}
	if progress.TotalRewards != 0.5 {
		t.Errorf("total rewards = %v, want 0.5", progress.TotalRewards)
	}
}
