package engine

import (
	"context"
	"strings"

	"github.com/AmmarAssaf/renderbot/models"
	"github.com/AmmarAssaf/renderbot/validators"
)

func (e *Engine) stagePaymentMethod(ctx context.Context, s *session, text string) {
	switch strings.TrimSpace(text) {
	case "Electronic wallet":
		s.draft.PaymentMethod = models.PaymentMethodWallet
		// Switching method invalidates the other group's answers.
		s.draft.TransferFullName, s.draft.TransferPhone = "", ""
		s.draft.TransferLocation, s.draft.TransferCompany = "", ""
		e.advance(ctx, s, StageWalletType)
	case "Money transfer":
		s.draft.PaymentMethod = models.PaymentMethodTransfer
		s.draft.WalletType, s.draft.WalletAddress = "", ""
		e.advance(ctx, s, StageTransferName)
	default:
		e.send(ctx, s, "Please pick one of the options below.")
		e.promptStage(ctx, s)
	}
}

func (e *Engine) stageWalletType(ctx context.Context, s *session, text string) {
	choice := strings.TrimSpace(text)
	if !isKnownWallet(choice) {
		e.send(ctx, s, "Please pick a wallet from the keyboard below.")
		e.promptStage(ctx, s)
		return
	}
	if choice == OtherWalletChoice {
		e.advance(ctx, s, StageNewWalletType)
		return
	}
	s.draft.WalletType = choice
	e.advance(ctx, s, StageWalletAddress)
}

func (e *Engine) stageNewWalletType(ctx context.Context, s *session, text string) {
	name := strings.TrimSpace(text)
	if name == "" || len(name) > 100 {
		e.send(ctx, s, "⚠️ Please send the wallet name (up to 100 characters).")
		return
	}
	s.draft.WalletType = name
	e.advance(ctx, s, StageWalletAddress)
}

func (e *Engine) stageWalletAddress(ctx context.Context, s *session, text string) {
	address := strings.TrimSpace(text)
	if address == "" {
		e.send(ctx, s, "⚠️ Please send your wallet address or account ID.")
		return
	}
	s.draft.WalletAddress = address
	e.paymentComplete(ctx, s)
}

func (e *Engine) stageTransferName(ctx context.Context, s *session, text string) {
	if !validators.ValidateFullName(text) {
		e.send(ctx, s, "⚠️ Please enter the recipient's full name: at least three words.")
		return
	}
	s.draft.TransferFullName = strings.TrimSpace(text)
	e.advance(ctx, s, StageTransferPhone)
}

func (e *Engine) stageTransferPhone(ctx context.Context, s *session, text string) {
	normalized, err := validators.ValidatePhone(text, s.draft.CountryCode)
	if err != nil {
		e.send(ctx, s, "⚠️ That doesn't look like a valid phone number. Please try again:")
		return
	}
	s.draft.TransferPhone = normalized
	e.advance(ctx, s, StageTransferLocation)
}

func (e *Engine) stageTransferLocation(ctx context.Context, s *session, text string) {
	location := strings.TrimSpace(text)
	if location == "" || len(location) > 200 {
		e.send(ctx, s, "⚠️ Please send the city and country (up to 200 characters).")
		return
	}
	s.draft.TransferLocation = location
	e.advance(ctx, s, StageTransferCompany)
}

func (e *Engine) stageTransferCompany(ctx context.Context, s *session, text string) {
	choice := strings.TrimSpace(text)
	if !isKnownTransferCompany(choice) {
		e.send(ctx, s, "Please pick a transfer company from the keyboard below.")
		e.promptStage(ctx, s)
		return
	}
	s.draft.TransferCompany = choice
	e.paymentComplete(ctx, s)
}

// paymentComplete ends either payment branch: back to the edit menu when
// the flow was reopened from there, otherwise on to the final summary.
func (e *Engine) paymentComplete(ctx context.Context, s *session) {
	if s.draft.ReturnTo == ReturnToEditMenu {
		e.send(ctx, s, "✅ Payment details updated.")
		e.advance(ctx, s, StageEditChoice)
		return
	}
	e.advance(ctx, s, StageConfirmation)
}
