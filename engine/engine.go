package engine

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/AmmarAssaf/renderbot/services"
	"github.com/AmmarAssaf/renderbot/transport"
)

// session is the in-memory conversation state for one identity. Everything
// durable lives in the checkpoint; the fields here either mirror it or are
// deliberately transient, like the pending verification code.
type session struct {
	mu sync.Mutex

	userID    int64
	chatID    int64
	username  string
	firstName string

	stage Stage
	draft *Draft

	// pendingVerifyCode is set while the bot waits for a comment proof
	// paste. Held in memory only: a restart drops it and the user re-taps
	// the done button.
	pendingVerifyCode string
}

// Engine drives the registration conversation and the comment reward flows.
// One engine instance serves all identities; events for the same identity
// are serialized on the session mutex.
type Engine struct {
	Progress     *services.ProgressService
	Referrals    *services.ReferralService
	Admission    *services.AdmissionService
	Registration *services.RegistrationService
	Ledger       *services.LedgerService
	Sender       transport.Sender
	Validate     *validator.Validate
	Now          func() time.Time

	// BotUsername is resolved at startup and used to build share links.
	BotUsername string

	mu       sync.Mutex
	sessions map[int64]*session
}

func New(
	progress *services.ProgressService,
	referrals *services.ReferralService,
	admission *services.AdmissionService,
	registration *services.RegistrationService,
	ledger *services.LedgerService,
	sender transport.Sender,
	botUsername string,
) *Engine {
	return &Engine{
		Progress:     progress,
		Referrals:    referrals,
		Admission:    admission,
		Registration: registration,
		Ledger:       ledger,
		Sender:       sender,
		Validate:     validator.New(),
		Now:          time.Now,
		BotUsername:  botUsername,
		sessions:     make(map[int64]*session),
	}
}

func (e *Engine) session(userID int64) *session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[userID]
	if !ok {
		s = &session{userID: userID, stage: StageNone}
		e.sessions[userID] = s
	}
	return s
}

// HandleUpdate is the single entry point for inbound events, used by both
// the long poller and the webhook handler.
func (e *Engine) HandleUpdate(ctx context.Context, upd transport.Update) {
	switch {
	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		s := e.session(cb.From.ID)
		s.mu.Lock()
		defer s.mu.Unlock()

		s.chatID = cb.From.ID
		if cb.Message != nil {
			s.chatID = cb.Message.Chat.ID
		}
		s.username = cb.From.Username
		s.firstName = cb.From.FirstName

		if err := e.Sender.AnswerCallback(ctx, cb.ID); err != nil {
			log.Printf("⚠️ [Engine] answer callback for %d: %v", s.userID, err)
		}
		e.handleCallback(ctx, s, cb.Data)

	case upd.Message != nil && upd.Message.From != nil:
		m := upd.Message
		s := e.session(m.From.ID)
		s.mu.Lock()
		defer s.mu.Unlock()

		s.chatID = m.Chat.ID
		s.username = m.From.Username
		s.firstName = m.From.FirstName

		text := strings.TrimSpace(m.Text)
		if text == "" {
			return
		}
		if strings.HasPrefix(text, "/") {
			e.handleCommand(ctx, s, text)
			return
		}
		e.handleText(ctx, s, text)
	}
}

// handleText routes a plain text message: comment proof first, then the
// active registration stage; with no in-memory stage it tries to resume
// from the checkpoint before giving up.
func (e *Engine) handleText(ctx context.Context, s *session, text string) {
	if s.pendingVerifyCode != "" {
		e.handleProofSubmission(ctx, s, text)
		return
	}

	if s.stage == StageNone {
		if !e.restoreCheckpoint(s) {
			e.send(ctx, s, "I wasn't expecting that. Send /start to begin, or /help for the command list.")
			return
		}
		if s.stage == StageSocialMenu {
			// Collector context was lost with the restart; re-show the hub
			// instead of guessing which platform the text was meant for.
			e.send(ctx, s, "Welcome back! Resuming your registration where you left off.")
			e.promptStage(ctx, s)
			return
		}
		e.send(ctx, s, "Welcome back! Resuming your registration where you left off.")
	}

	e.handleStageText(ctx, s, text)
}

// restoreCheckpoint loads the persisted draft and stage into the session.
// Returns false when no checkpoint exists or the payload is unreadable.
func (e *Engine) restoreCheckpoint(s *session) bool {
	row, err := e.Progress.Load(s.userID)
	if err != nil {
		log.Printf("❌ [Engine] load checkpoint for %d: %v", s.userID, err)
		return false
	}
	if row == nil {
		return false
	}
	draft, err := restoreDraft(row.UserData)
	if err != nil {
		log.Printf("❌ [Engine] corrupt checkpoint for %d: %v", s.userID, err)
		return false
	}
	if s.username != "" {
		draft.TelegramUsername = s.username
	}
	s.draft = draft
	s.stage = normalizeResumeStage(Stage(row.CurrentStage))
	return true
}

// checkpoint advances the stage and persists the whole draft. Persistence
// failures are logged and swallowed: the conversation continues on the
// in-memory state and the next accepted answer retries the write.
func (e *Engine) checkpoint(s *session, next Stage) {
	s.stage = next
	if s.draft == nil {
		return
	}
	blob, err := s.draft.Marshal()
	if err != nil {
		log.Printf("❌ [Engine] marshal draft for %d: %v", s.userID, err)
		return
	}
	if err := e.Progress.Save(s.userID, string(next), blob, s.draft.TelegramUsername); err != nil {
		log.Printf("⚠️ [Engine] checkpoint save for %d: %v", s.userID, err)
	}
}

// advance moves to the next stage, checkpoints, and sends its prompt.
func (e *Engine) advance(ctx context.Context, s *session, next Stage) {
	e.checkpoint(s, next)
	e.promptStage(ctx, s)
}

func (e *Engine) reset(s *session) {
	s.stage = StageNone
	s.draft = nil
	s.pendingVerifyCode = ""
}

func (e *Engine) send(ctx context.Context, s *session, text string) {
	if err := e.Sender.SendMessage(ctx, s.chatID, text, nil); err != nil {
		log.Printf("❌ [Engine] send to %d: %v", s.chatID, err)
	}
}

func (e *Engine) sendMarkup(ctx context.Context, s *session, text string, markup any) {
	if err := e.Sender.SendMessage(ctx, s.chatID, text, markup); err != nil {
		log.Printf("❌ [Engine] send to %d: %v", s.chatID, err)
	}
}

// handleCallback routes inline button taps. Registration callbacks are only
// honored at the stage that rendered them; comment flow callbacks work from
// any stage.
func (e *Engine) handleCallback(ctx context.Context, s *session, data string) {
	if strings.HasPrefix(data, "comment_") || data == "available_tasks" || data == "my_comment_progress" || data == "main_menu" {
		e.handleCommentCallback(ctx, s, data)
		return
	}

	// Buttons can outlive a restart; pull the checkpoint back in before
	// deciding the tap is stale.
	if s.stage == StageNone {
		e.restoreCheckpoint(s)
	}

	switch {
	case s.stage == StageSocialMenu && (strings.HasPrefix(data, "add_") || data == "social_done"):
		e.handleSocialChoice(ctx, s, data)
	case s.stage == StageConfirmation && strings.HasPrefix(data, "confirm_"):
		e.handleConfirmChoice(ctx, s, data)
	case s.stage == StageEditChoice && strings.HasPrefix(data, "edit_"):
		e.handleEditChoice(ctx, s, data)
	default:
		e.send(ctx, s, "That button is no longer active. Send /start to continue.")
	}
}
