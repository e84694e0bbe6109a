package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/AmmarAssaf/renderbot/services"
	"github.com/AmmarAssaf/renderbot/transport"
)

func commentMainMenu() transport.InlineKeyboard {
	return transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
		{{Text: "📋 Available tasks", CallbackData: "available_tasks"}},
		{{Text: "📊 My progress", CallbackData: "my_comment_progress"}},
	}}
}

func (e *Engine) handleCommentsMenu(ctx context.Context, s *session) {
	registered, err := e.Admission.IsRegistered(s.userID)
	if err != nil {
		log.Printf("❌ [Engine] registration lookup for %d: %v", s.userID, err)
		e.send(ctx, s, "Something went wrong. Please try again in a moment.")
		return
	}
	if !registered {
		e.send(ctx, s, "Comment rewards are for registered members. Send /start to register first.")
		return
	}
	e.sendMarkup(ctx, s,
		"💬 Comment rewards\n\nPick a task, post the required comment with your personal code, then paste the comment back here to claim the reward.",
		commentMainMenu())
}

func (e *Engine) handleCommentCallback(ctx context.Context, s *session, data string) {
	switch {
	case data == "available_tasks" || data == "comment_back":
		e.showAvailableTasks(ctx, s)
	case data == "my_comment_progress" || data == "comment_progress":
		e.handleMyComments(ctx, s)
	case data == "main_menu" || data == "comment_back_to_main":
		e.sendMarkup(ctx, s, "💬 Comment rewards", commentMainMenu())
	case strings.HasPrefix(data, "comment_task_"):
		e.handleTaskPicked(ctx, s, strings.TrimPrefix(data, "comment_task_"))
	case strings.HasPrefix(data, "comment_done_"):
		s.pendingVerifyCode = strings.TrimPrefix(data, "comment_done_")
		e.send(ctx, s, "Paste the exact text of the comment you posted, including your code:")
	}
}

func (e *Engine) showAvailableTasks(ctx context.Context, s *session) {
	tasks, err := e.Ledger.ListActiveTasks()
	if err != nil {
		log.Printf("❌ [Engine] list tasks: %v", err)
		e.send(ctx, s, "Could not load tasks right now. Please try again.")
		return
	}
	if len(tasks) == 0 {
		e.sendMarkup(ctx, s, "No tasks are available right now. Check back later!",
			transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
				{{Text: "⬅️ Back", CallbackData: "comment_back_to_main"}},
			}})
		return
	}

	var b strings.Builder
	b.WriteString("📋 Available tasks:\n\n")
	var rows [][]transport.InlineButton
	for i, t := range tasks {
		slots := "unlimited slots"
		if t.MaxParticipants > 0 {
			slots = fmt.Sprintf("%d slots left", t.AvailableSlots)
		}
		fmt.Fprintf(&b, "%d. [%s] %s - %.2f per comment, %s\n", i+1, t.Platform, t.Description, t.RewardAmount, slots)
		rows = append(rows, []transport.InlineButton{{
			Text:         fmt.Sprintf("%d. %s (%.2f)", i+1, t.Platform, t.RewardAmount),
			CallbackData: fmt.Sprintf("comment_task_%d", t.ID),
		}})
	}
	rows = append(rows, []transport.InlineButton{{Text: "⬅️ Back", CallbackData: "comment_back_to_main"}})
	e.sendMarkup(ctx, s, b.String(), transport.InlineKeyboard{InlineKeyboard: rows})
}

// platformInstructions tells the user where exactly to put the comment.
func platformInstructions(platform string) string {
	switch platform {
	case "youtube":
		return "Open the video, scroll to the comments and post there."
	case "instagram":
		return "Open the post and add your comment under it."
	case "facebook":
		return "Open the post and write your comment under it."
	case "tiktok":
		return "Open the video, tap the comment bubble and post there."
	default:
		return "Open the link and post your comment under the content."
	}
}

func (e *Engine) handleTaskPicked(ctx context.Context, s *session, rawID string) {
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil {
		e.send(ctx, s, "That task link is broken. Pick one from the list again.")
		return
	}
	task, err := e.Ledger.Task(uint(id))
	if err != nil {
		e.send(ctx, s, "That task is no longer available.")
		return
	}

	vt, err := e.Ledger.CreateVerificationTask(s.userID, task)
	if err != nil {
		log.Printf("❌ [Engine] create verification task for %d: %v", s.userID, err)
		e.send(ctx, s, "Could not join the task right now. Please try again.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 Your task on %s\n\n", task.Platform)
	fmt.Fprintf(&b, "1. Open: %s\n", task.PostURL)
	fmt.Fprintf(&b, "2. %s\n", platformInstructions(task.Platform))
	fmt.Fprintf(&b, "3. Your comment must follow this template:\n%s\n\n", task.RequiredTemplate)
	fmt.Fprintf(&b, "⚠️ Include your personal code in the comment: %s\n\n", vt.UniqueCode)
	fmt.Fprintf(&b, "Reward: %.2f\n\nWhen it's posted, press the button below.", task.RewardAmount)

	markup := transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
		{{Text: "✅ I posted it", CallbackData: "comment_done_" + vt.UniqueCode}},
		{{Text: "⬅️ Back", CallbackData: "comment_back"}},
	}}
	e.sendMarkup(ctx, s, b.String(), markup)
}

// handleProofSubmission settles the pasted comment against the pending
// verification code. The code is cleared on every terminal outcome except a
// missing-code paste, which just asks again.
func (e *Engine) handleProofSubmission(ctx context.Context, s *session, text string) {
	code := s.pendingVerifyCode

	task, err := e.Ledger.VerifySubmission(s.userID, code, text)
	switch {
	case errors.Is(err, services.ErrCodeAbsent):
		e.send(ctx, s, fmt.Sprintf("⚠️ I can't find your code %s in that text. Paste the comment exactly as you posted it.", code))
		return
	case errors.Is(err, services.ErrAlreadyProcessed):
		s.pendingVerifyCode = ""
		e.send(ctx, s, "This task was already verified. Your reward is recorded. Send /mycomments to see it.")
		return
	case errors.Is(err, services.ErrTaskNotFound):
		s.pendingVerifyCode = ""
		e.send(ctx, s, "I couldn't match that to one of your tasks. Pick a task again from /comments.")
		return
	case err != nil:
		log.Printf("❌ [Engine] verify submission for %d: %v", s.userID, err)
		e.send(ctx, s, "Something went wrong verifying your comment. Please try again in a moment.")
		return
	}

	s.pendingVerifyCode = ""
	e.sendMarkup(ctx, s,
		fmt.Sprintf("🎉 Verified! A reward of %.2f has been approved and added to your balance.", task.RewardAmount),
		transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
			{{Text: "📋 More tasks", CallbackData: "available_tasks"}},
			{{Text: "📊 My progress", CallbackData: "my_comment_progress"}},
		}})
}

func (e *Engine) handleMyComments(ctx context.Context, s *session) {
	progress, err := e.Ledger.UserProgress(s.userID)
	if err != nil {
		log.Printf("❌ [Engine] ledger progress for %d: %v", s.userID, err)
		e.send(ctx, s, "Could not load your progress right now.")
		return
	}
	e.sendMarkup(ctx, s, fmt.Sprintf(
		"📊 Your comment progress\n\nCompleted: %d\nPending: %d\nTotal rewards: %.2f",
		progress.CompletedTasks, progress.PendingTasks, progress.TotalRewards,
	), transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
		{{Text: "📋 Available tasks", CallbackData: "available_tasks"}},
		{{Text: "⬅️ Back", CallbackData: "comment_back_to_main"}},
	}})
}

// handleAddCommentTask parses the owner's one-line task definition:
//
//	/addcommenttask platform | post URL | description | template | reward | max participants
//
// Max participants 0 means unlimited.
func (e *Engine) handleAddCommentTask(ctx context.Context, s *session, args string) {
	if !e.Admission.IsOwner(s.userID) {
		e.send(ctx, s, "⛔ This command is for the administrator only.")
		return
	}

	parts := strings.Split(args, "|")
	if len(parts) != 6 {
		e.send(ctx, s, "Usage:\n/addcommenttask platform | post URL | description | comment template | reward | max participants\n\nUse 0 for unlimited participants.")
		return
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	reward, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		e.send(ctx, s, "⚠️ The reward must be a number, e.g. 0.50")
		return
	}
	maxParticipants, err := strconv.Atoi(parts[5])
	if err != nil {
		e.send(ctx, s, "⚠️ Max participants must be a whole number. Use 0 for unlimited.")
		return
	}

	in := services.AddTaskInput{
		Platform:         parts[0],
		PostURL:          parts[1],
		Description:      parts[2],
		RequiredTemplate: parts[3],
		RewardAmount:     reward,
		MaxParticipants:  maxParticipants,
	}
	if err := e.Validate.Struct(in); err != nil {
		e.send(ctx, s, fmt.Sprintf("⚠️ Task rejected: %v", err))
		return
	}

	task, err := e.Ledger.AddTask(s.userID, in)
	if err != nil {
		log.Printf("❌ [Engine] add task: %v", err)
		e.send(ctx, s, "Could not save the task. Please try again.")
		return
	}
	e.send(ctx, s, fmt.Sprintf("✅ Task #%d added on %s with reward %.2f.", task.ID, task.Platform, task.RewardAmount))
}

func (e *Engine) handleCommentStats(ctx context.Context, s *session) {
	if !e.Admission.IsOwner(s.userID) {
		e.send(ctx, s, "⛔ This command is for the administrator only.")
		return
	}
	stats, err := e.Ledger.AdminStats()
	if err != nil {
		log.Printf("❌ [Engine] ledger stats: %v", err)
		e.send(ctx, s, "Could not load comment statistics right now.")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Comment system statistics\n\n")
	fmt.Fprintf(&b, "Verification tasks issued: %d\n", stats.TotalTasks)
	fmt.Fprintf(&b, "Completed: %d\n", stats.CompletedTasks)
	fmt.Fprintf(&b, "Unique participants: %d\n", stats.UniqueUsers)
	fmt.Fprintf(&b, "Total rewards: %.2f\n", stats.TotalRewards)
	fmt.Fprintf(&b, "Active catalog tasks: %d\n", stats.ActiveTasks)
	if len(stats.ByPlatform) > 0 {
		b.WriteString("\nVerified by platform:\n")
		for _, p := range stats.ByPlatform {
			fmt.Fprintf(&b, "• %s: %d\n", p.Platform, p.Count)
		}
	}
	e.send(ctx, s, b.String())
}
