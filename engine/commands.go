package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/AmmarAssaf/renderbot/models"
	"github.com/AmmarAssaf/renderbot/services"
)

func (e *Engine) handleCommand(ctx context.Context, s *session, text string) {
	fields := strings.Fields(text)
	cmd := strings.ToLower(fields[0])
	// Commands in groups arrive as /cmd@BotName.
	if at := strings.Index(cmd, "@"); at != -1 {
		cmd = cmd[:at]
	}
	args := strings.TrimSpace(strings.TrimPrefix(text, fields[0]))

	switch cmd {
	case "/start":
		e.handleStart(ctx, s, args)
	case "/newstart":
		e.handleNewStart(ctx, s)
	case "/cancel":
		e.handleCancel(ctx, s)
	case "/profile":
		e.handleProfile(ctx, s)
	case "/invite":
		e.handleInvite(ctx, s)
	case "/support":
		e.send(ctx, s, "🛟 Need help? Contact the team at @RenderBotSupport and include your Telegram username.")
	case "/help":
		e.handleHelp(ctx, s)
	case "/stats":
		e.handleStats(ctx, s)
	case "/comments", "/comment":
		e.handleCommentsMenu(ctx, s)
	case "/mycomments":
		e.handleMyComments(ctx, s)
	case "/addcommenttask":
		e.handleAddCommentTask(ctx, s, args)
	case "/commentstats":
		e.handleCommentStats(ctx, s)
	default:
		e.send(ctx, s, "Unknown command. Send /help for the command list.")
	}
}

// handleStart is the workflow entry point. A checkpoint takes precedence
// over a fresh admission: the user resumes where they left off.
func (e *Engine) handleStart(ctx context.Context, s *session, args string) {
	registered, err := e.Admission.IsRegistered(s.userID)
	if err != nil {
		log.Printf("❌ [Engine] registration lookup for %d: %v", s.userID, err)
		e.send(ctx, s, "Something went wrong on our side. Please try again in a moment.")
		return
	}
	if registered {
		e.send(ctx, s, "✅ You are already registered! Send /profile to see your details or /invite to share your referral link.")
		return
	}

	if e.restoreCheckpoint(s) {
		e.send(ctx, s, "Welcome back! Resuming your registration where you left off. Send /newstart to start over instead.")
		e.promptStage(ctx, s)
		return
	}

	e.begin(ctx, s, args)
}

// begin runs admission for a fresh registration, with args as the optional
// deep-link referral code.
func (e *Engine) begin(ctx context.Context, s *session, args string) {
	code := services.Canonical(args)
	adm, err := e.Admission.Decide(s.userID, code)
	switch {
	case errors.Is(err, services.ErrAlreadyRegistered):
		e.send(ctx, s, "✅ You are already registered! Send /profile to see your details.")
		return
	case errors.Is(err, services.ErrInvalidReferral):
		e.send(ctx, s, "❌ That referral code is not valid. Double-check it with the person who invited you and try again with /start <code>.")
		return
	case errors.Is(err, services.ErrNotInvited):
		// No code supplied: give them a chance to type one.
		s.draft = &Draft{TelegramUsername: s.username, ReturnTo: ReturnToLinear}
		e.checkpoint(s, StageReferral)
		e.send(ctx, s, "👋 Welcome! Registration is by invitation.\n\nPlease enter the referral code you received:")
		return
	case err != nil:
		log.Printf("❌ [Engine] admission for %d: %v", s.userID, err)
		e.send(ctx, s, "Something went wrong on our side. Please try again in a moment.")
		return
	}

	s.draft = &Draft{TelegramUsername: s.username, ReturnTo: ReturnToLinear}
	if adm.InviterCode != "" {
		invitedBy := adm.InviterCode
		s.draft.InvitedBy = &invitedBy
		e.send(ctx, s, fmt.Sprintf("🎉 You were invited by %s. Let's get you registered!", adm.InviterName))
	} else {
		e.send(ctx, s, "🎉 Welcome! Let's get you registered.")
	}
	e.advance(ctx, s, StageFullName)
}

func (e *Engine) handleNewStart(ctx context.Context, s *session) {
	if err := e.Progress.Delete(s.userID); err != nil {
		log.Printf("⚠️ [Engine] delete checkpoint for %d: %v", s.userID, err)
	}
	e.reset(s)
	e.send(ctx, s, "🔄 Starting over. Any saved progress has been discarded.")
	e.begin(ctx, s, "")
}

func (e *Engine) handleCancel(ctx context.Context, s *session) {
	if s.stage == StageNone && s.pendingVerifyCode == "" {
		e.send(ctx, s, "Nothing to cancel right now.")
		return
	}
	if err := e.Progress.Delete(s.userID); err != nil {
		log.Printf("⚠️ [Engine] delete checkpoint for %d: %v", s.userID, err)
	}
	e.reset(s)
	e.send(ctx, s, "❌ Registration cancelled. Send /start whenever you want to pick it up again.")
}

func (e *Engine) handleProfile(ctx context.Context, s *session) {
	profile, err := e.Registration.Profile(s.userID)
	if err != nil {
		if s.stage != StageNone || e.restoreCheckpoint(s) {
			e.send(ctx, s, "Your registration isn't finished yet. Send /start to continue where you left off.")
			return
		}
		e.send(ctx, s, "You are not registered yet. Send /start to begin.")
		return
	}

	var b strings.Builder
	b.WriteString("👤 Your profile\n\n")
	fmt.Fprintf(&b, "Name: %s\n", profile.FullName)
	fmt.Fprintf(&b, "Country: %s\n", profile.Country)
	fmt.Fprintf(&b, "Email: %s\n", profile.Email)
	fmt.Fprintf(&b, "Phone: %s\n", profile.PhoneNumber)
	fmt.Fprintf(&b, "Referral code: %s\n", profile.ReferralCode)
	fmt.Fprintf(&b, "People you invited: %d\n", profile.TotalReferrals)
	if len(profile.Links) > 0 {
		b.WriteString("\n🔗 Social accounts:\n")
		for _, link := range profile.Links {
			fmt.Fprintf(&b, "• %s: %s\n", link.Platform, link.URL)
		}
	}
	if profile.Payment != nil {
		b.WriteString("\n💰 Payment: ")
		if profile.Payment.PaymentMethod == models.PaymentMethodWallet {
			fmt.Fprintf(&b, "%s (%s)\n", profile.Payment.WalletType, profile.Payment.WalletAddress)
		} else {
			fmt.Fprintf(&b, "money transfer via %s\n", profile.Payment.TransferCompany)
		}
	}
	e.send(ctx, s, b.String())
}

func (e *Engine) handleInvite(ctx context.Context, s *session) {
	profile, err := e.Registration.Profile(s.userID)
	if err != nil {
		e.send(ctx, s, "Finish your registration first, then /invite gives you a personal share link.")
		return
	}
	link := fmt.Sprintf("https://t.me/%s?start=%s", e.BotUsername, profile.ReferralCode)
	e.send(ctx, s, fmt.Sprintf(
		"📨 Invite your friends!\n\nYour referral code: %s\nShare link: %s\n\nYou have invited %d people so far.",
		profile.ReferralCode, link, profile.TotalReferrals,
	))
}

func (e *Engine) handleHelp(ctx context.Context, s *session) {
	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	b.WriteString("/start - begin or resume registration\n")
	b.WriteString("/newstart - restart registration from scratch\n")
	b.WriteString("/cancel - cancel and discard saved progress\n")
	b.WriteString("/profile - show your registered profile\n")
	b.WriteString("/invite - get your referral share link\n")
	b.WriteString("/comments - comment tasks and rewards\n")
	b.WriteString("/mycomments - your comment task progress\n")
	b.WriteString("/support - contact the team\n")
	if e.Admission.IsOwner(s.userID) {
		b.WriteString("\nAdmin:\n")
		b.WriteString("/stats - registration statistics\n")
		b.WriteString("/addcommenttask - add a comment task\n")
		b.WriteString("/commentstats - comment system statistics\n")
	}
	e.send(ctx, s, b.String())
}

func (e *Engine) handleStats(ctx context.Context, s *session) {
	if !e.Admission.IsOwner(s.userID) {
		e.send(ctx, s, "⛔ This command is for the administrator only.")
		return
	}
	stats, err := e.Registration.Stats(e.Now())
	if err != nil {
		log.Printf("❌ [Engine] stats: %v", err)
		e.send(ctx, s, "Could not load statistics right now.")
		return
	}

	var b strings.Builder
	b.WriteString("📊 Bot statistics\n\n")
	fmt.Fprintf(&b, "Total users: %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "Active users: %d\n", stats.ActiveUsers)
	fmt.Fprintf(&b, "Total referrals: %d\n", stats.TotalReferrals)
	fmt.Fprintf(&b, "Registered today: %d\n", stats.TodayRegistrations)
	if len(stats.TopReferrers) > 0 {
		b.WriteString("\n🏆 Top referrers:\n")
		for i, p := range stats.TopReferrers {
			fmt.Fprintf(&b, "%d. %s - %d\n", i+1, p.FullName, p.TotalReferrals)
		}
	}
	e.send(ctx, s, b.String())
}
