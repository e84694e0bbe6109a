package engine

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/AmmarAssaf/renderbot/models"
	"github.com/AmmarAssaf/renderbot/transport"
)

func (e *Engine) promptConfirmation(ctx context.Context, s *session) {
	d := s.draft
	var b strings.Builder
	b.WriteString("📋 Please review your details:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", d.FullName)
	fmt.Fprintf(&b, "Country: %s\n", d.Country)
	fmt.Fprintf(&b, "Gender: %s\n", d.Gender)
	fmt.Fprintf(&b, "Birth year: %d\n", d.BirthYear)
	fmt.Fprintf(&b, "Phone: %s\n", d.PhoneNumber)
	fmt.Fprintf(&b, "Email: %s\n", d.Email)

	if d.Social.Total() > 0 {
		b.WriteString("\n🔗 Social accounts:\n")
		writeBucket(&b, "Facebook", d.Social.Facebook)
		writeBucket(&b, "Instagram", d.Social.Instagram)
		writeBucket(&b, "YouTube", d.Social.YouTube)
		writeBucket(&b, "Other", d.Social.Other)
	} else {
		b.WriteString("\n🔗 Social accounts: none\n")
	}

	b.WriteString("\n💰 Payment: ")
	if d.PaymentMethod == models.PaymentMethodWallet {
		fmt.Fprintf(&b, "%s - %s\n", d.WalletType, d.WalletAddress)
	} else {
		fmt.Fprintf(&b, "money transfer via %s\nRecipient: %s, %s\n", d.TransferCompany, d.TransferFullName, d.TransferLocation)
	}

	markup := transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
		{{Text: "✅ Confirm", CallbackData: "confirm_yes"}},
		{{Text: "✏️ Edit", CallbackData: "confirm_edit"}, {Text: "❌ Cancel", CallbackData: "confirm_no"}},
	}}
	e.sendMarkup(ctx, s, b.String(), markup)
}

func (e *Engine) handleConfirmChoice(ctx context.Context, s *session, data string) {
	switch data {
	case "confirm_yes":
		e.commit(ctx, s)
	case "confirm_edit":
		s.draft.ReturnTo = ReturnToEditMenu
		e.advance(ctx, s, StageEditChoice)
	case "confirm_no":
		e.handleCancel(ctx, s)
	}
}

// commit finalizes the registration. On failure the checkpoint and stage
// are left intact so the user can simply confirm again.
func (e *Engine) commit(ctx context.Context, s *session) {
	code, err := e.Registration.Commit(s.draft.toRegistration(s.userID))
	if err != nil {
		log.Printf("❌ [Engine] commit for %d: %v", s.userID, err)
		e.send(ctx, s, "❌ Something went wrong saving your registration. Nothing was stored. Please press Confirm again in a moment.")
		return
	}

	link := fmt.Sprintf("https://t.me/%s?start=%s", e.BotUsername, code)
	e.reset(s)
	e.send(ctx, s, fmt.Sprintf(
		"🎉 Registration complete! Welcome aboard.\n\nYour referral code: %s\nShare link: %s\n\nSend /profile any time to see your details, or /comments to start earning rewards.",
		code, link,
	))
}

func (e *Engine) promptEditMenu(ctx context.Context, s *session) {
	markup := transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
		{{Text: "Name", CallbackData: "edit_name"}, {Text: "Country", CallbackData: "edit_country"}},
		{{Text: "Gender", CallbackData: "edit_gender"}, {Text: "Birth year", CallbackData: "edit_birth_year"}},
		{{Text: "Phone", CallbackData: "edit_phone"}, {Text: "Email", CallbackData: "edit_email"}},
		{{Text: "Social accounts", CallbackData: "edit_social"}, {Text: "Payment", CallbackData: "edit_payment"}},
		{{Text: "✅ Done editing", CallbackData: "edit_done"}},
	}}
	e.sendMarkup(ctx, s, "✏️ What would you like to change?", markup)
}

// handleEditChoice reopens a collector with ReturnToEditMenu set, so its
// accept path leads back here instead of down the linear flow.
func (e *Engine) handleEditChoice(ctx context.Context, s *session, data string) {
	reopen := func(stage Stage) {
		s.draft.ReturnTo = ReturnToEditMenu
		e.advance(ctx, s, stage)
	}

	switch data {
	case "edit_name":
		reopen(StageFullName)
	case "edit_country":
		reopen(StageCountry)
	case "edit_gender":
		reopen(StageGender)
	case "edit_birth_year":
		reopen(StageBirthYear)
	case "edit_phone":
		reopen(StagePhone)
	case "edit_email":
		reopen(StageEmail)
	case "edit_social":
		reopen(StageSocialMenu)
	case "edit_payment":
		reopen(StagePaymentMethod)
	case "edit_done":
		s.draft.ReturnTo = ReturnToLinear
		e.advance(ctx, s, StageConfirmation)
	default:
		e.promptEditMenu(ctx, s)
	}
}
