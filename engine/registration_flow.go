package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/AmmarAssaf/renderbot/services"
	"github.com/AmmarAssaf/renderbot/transport"
	"github.com/AmmarAssaf/renderbot/validators"
)

// promptStage sends the question for the session's current stage. Every
// stage renders from the draft alone, which is what makes resume work.
func (e *Engine) promptStage(ctx context.Context, s *session) {
	switch s.stage {
	case StageReferral:
		e.send(ctx, s, "Please enter the referral code you received:")
	case StageFullName:
		e.sendMarkup(ctx, s, "What is your full name? (first, middle and last - at least three words)", transport.ReplyKeyboardRemove{RemoveKeyboard: true})
	case StageCountry:
		e.sendMarkup(ctx, s, "🌍 Which country do you live in?", transport.ChoiceGrid(countryNames()))
	case StageGender:
		e.sendMarkup(ctx, s, "Select your gender:", transport.ChoiceGrid(genders))
	case StageBirthYear:
		e.sendMarkup(ctx, s, "What year were you born? (e.g. 1995)", transport.ReplyKeyboardRemove{RemoveKeyboard: true})
	case StagePhone:
		e.send(ctx, s, fmt.Sprintf("📱 Enter your phone number. You can use the local format; %s will be assumed.", s.draft.CountryCode))
	case StageEmail:
		e.send(ctx, s, "📧 Enter your email address:")
	case StageSocialMenu:
		e.promptSocialMenu(ctx, s)
	case StagePaymentMethod:
		e.sendMarkup(ctx, s, "💰 How would you like to receive payments?", transport.ChoiceGrid([]string{"Electronic wallet", "Money transfer"}))
	case StageWalletType:
		e.sendMarkup(ctx, s, "Select your wallet:", transport.ChoiceGrid(walletTypes))
	case StageNewWalletType:
		e.sendMarkup(ctx, s, "Type the name of your wallet:", transport.ReplyKeyboardRemove{RemoveKeyboard: true})
	case StageWalletAddress:
		e.send(ctx, s, fmt.Sprintf("Enter your %s address or account ID:", s.draft.WalletType))
	case StageTransferName:
		e.sendMarkup(ctx, s, "Enter the recipient's full name as it appears on their ID:", transport.ReplyKeyboardRemove{RemoveKeyboard: true})
	case StageTransferPhone:
		e.send(ctx, s, "Enter the recipient's phone number:")
	case StageTransferLocation:
		e.send(ctx, s, "Enter the city and country where the transfer will be collected:")
	case StageTransferCompany:
		e.sendMarkup(ctx, s, "Select the transfer company:", transport.ChoiceGrid(transferCompanies))
	case StageConfirmation:
		e.promptConfirmation(ctx, s)
	case StageEditChoice:
		e.promptEditMenu(ctx, s)
	}
}

// handleStageText feeds a plain text answer to the collector for the
// current stage. Stages that only accept button taps re-prompt.
func (e *Engine) handleStageText(ctx context.Context, s *session, text string) {
	switch s.stage {
	case StageReferral:
		e.stageReferral(ctx, s, text)
	case StageFullName:
		e.stageFullName(ctx, s, text)
	case StageCountry:
		e.stageCountry(ctx, s, text)
	case StageGender:
		e.stageGender(ctx, s, text)
	case StageBirthYear:
		e.stageBirthYear(ctx, s, text)
	case StagePhone:
		e.stagePhone(ctx, s, text)
	case StageEmail:
		e.stageEmail(ctx, s, text)
	case StageFacebookURL, StageInstagramURL, StageYouTubeURL, StageOtherSocial:
		e.stageSocialLink(ctx, s, text)
	case StagePaymentMethod:
		e.stagePaymentMethod(ctx, s, text)
	case StageWalletType:
		e.stageWalletType(ctx, s, text)
	case StageNewWalletType:
		e.stageNewWalletType(ctx, s, text)
	case StageWalletAddress:
		e.stageWalletAddress(ctx, s, text)
	case StageTransferName:
		e.stageTransferName(ctx, s, text)
	case StageTransferPhone:
		e.stageTransferPhone(ctx, s, text)
	case StageTransferLocation:
		e.stageTransferLocation(ctx, s, text)
	case StageTransferCompany:
		e.stageTransferCompany(ctx, s, text)
	case StageSocialMenu, StageConfirmation, StageEditChoice:
		e.send(ctx, s, "Please use the buttons above to continue.")
		e.promptStage(ctx, s)
	default:
		e.send(ctx, s, "Send /start to begin registration.")
	}
}

func (e *Engine) stageReferral(ctx context.Context, s *session, text string) {
	code := services.Canonical(text)
	valid, err := e.Referrals.IsCodeValid(code)
	if err != nil {
		log.Printf("❌ [Engine] referral lookup for %d: %v", s.userID, err)
		e.send(ctx, s, "Something went wrong checking that code. Please try again.")
		return
	}
	if !valid {
		e.send(ctx, s, "❌ That code is not valid. Please check it and try again:")
		return
	}
	s.draft.InvitedBy = &code
	e.send(ctx, s, fmt.Sprintf("🎉 You were invited by %s. Let's get you registered!", e.Referrals.InviterName(code)))
	e.advance(ctx, s, StageFullName)
}

func (e *Engine) stageFullName(ctx context.Context, s *session, text string) {
	if !validators.ValidateFullName(text) {
		e.send(ctx, s, "⚠️ Please enter your full name: at least three words, no more than fifty characters.")
		return
	}
	s.draft.FullName = strings.TrimSpace(text)
	e.afterField(ctx, s, StageCountry)
}

func (e *Engine) stageCountry(ctx context.Context, s *session, text string) {
	dial, ok := dialCodeFor(strings.TrimSpace(text))
	if !ok {
		e.send(ctx, s, "Please pick a country from the keyboard below.")
		e.promptStage(ctx, s)
		return
	}
	s.draft.Country = strings.TrimSpace(text)
	s.draft.CountryCode = dial
	e.afterField(ctx, s, StageGender)
}

func (e *Engine) stageGender(ctx context.Context, s *session, text string) {
	choice := strings.TrimSpace(text)
	if choice != "Male" && choice != "Female" {
		e.send(ctx, s, "Please pick one of the options below.")
		e.promptStage(ctx, s)
		return
	}
	s.draft.Gender = choice
	e.afterField(ctx, s, StageBirthYear)
}

func (e *Engine) stageBirthYear(ctx context.Context, s *session, text string) {
	year, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || !validators.ValidateBirthYear(year, e.Now()) {
		e.send(ctx, s, "⚠️ Please enter a valid birth year. You must be at least 13 years old.")
		return
	}
	s.draft.BirthYear = year
	e.afterField(ctx, s, StagePhone)
}

func (e *Engine) stagePhone(ctx context.Context, s *session, text string) {
	normalized, err := validators.ValidatePhone(text, s.draft.CountryCode)
	if err != nil {
		e.send(ctx, s, "⚠️ That doesn't look like a valid phone number. Please try again:")
		return
	}
	s.draft.PhoneNumber = normalized
	e.afterField(ctx, s, StageEmail)
}

func (e *Engine) stageEmail(ctx context.Context, s *session, text string) {
	email := strings.TrimSpace(text)
	if !validators.ValidateEmail(email) {
		e.send(ctx, s, "⚠️ That doesn't look like a valid email address. Please try again:")
		return
	}
	s.draft.Email = email
	e.afterField(ctx, s, StageSocialMenu)
}

// afterField routes an accepted answer: forward through the linear flow, or
// straight back to the edit menu when the collector was opened from there.
func (e *Engine) afterField(ctx context.Context, s *session, next Stage) {
	if s.draft.ReturnTo == ReturnToEditMenu {
		e.send(ctx, s, "✅ Updated.")
		e.advance(ctx, s, StageEditChoice)
		return
	}
	e.advance(ctx, s, next)
}
