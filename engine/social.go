package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/AmmarAssaf/renderbot/transport"
	"github.com/AmmarAssaf/renderbot/validators"
)

// promptSocialMenu renders the hub: a live summary of everything collected
// so far plus the add buttons.
func (e *Engine) promptSocialMenu(ctx context.Context, s *session) {
	var b strings.Builder
	b.WriteString("🔗 Social media accounts\n\nAdd the accounts you want rewards tracked on. You can add several per platform.\n")

	if s.draft.Social.Total() > 0 {
		b.WriteString("\nAdded so far:\n")
		writeBucket(&b, "Facebook", s.draft.Social.Facebook)
		writeBucket(&b, "Instagram", s.draft.Social.Instagram)
		writeBucket(&b, "YouTube", s.draft.Social.YouTube)
		writeBucket(&b, "Other", s.draft.Social.Other)
	}

	doneLabel := "⏭ Skip for now"
	if s.draft.Social.Total() > 0 {
		doneLabel = "✅ Done"
	}
	markup := transport.InlineKeyboard{InlineKeyboard: [][]transport.InlineButton{
		{{Text: "Facebook", CallbackData: "add_facebook"}, {Text: "Instagram", CallbackData: "add_instagram"}},
		{{Text: "YouTube", CallbackData: "add_youtube"}, {Text: "Other platform", CallbackData: "add_other"}},
		{{Text: doneLabel, CallbackData: "social_done"}},
	}}
	e.sendMarkup(ctx, s, b.String(), markup)
}

func writeBucket(b *strings.Builder, name string, links []string) {
	for _, link := range links {
		fmt.Fprintf(b, "• %s: %s\n", name, validators.ExtractUsername(link))
	}
}

func (e *Engine) handleSocialChoice(ctx context.Context, s *session, data string) {
	switch data {
	case "add_facebook":
		e.checkpoint(s, StageFacebookURL)
		e.send(ctx, s, "Send your Facebook profile or page URL:")
	case "add_instagram":
		e.checkpoint(s, StageInstagramURL)
		e.send(ctx, s, "Send your Instagram profile URL:")
	case "add_youtube":
		e.checkpoint(s, StageYouTubeURL)
		e.send(ctx, s, "Send your YouTube channel URL (not a video link):")
	case "add_other":
		e.checkpoint(s, StageOtherSocial)
		e.send(ctx, s, "Send the URL of your account on another platform (Twitter, TikTok, LinkedIn, Snapchat or Telegram):")
	case "social_done":
		if s.draft.ReturnTo == ReturnToEditMenu {
			e.advance(ctx, s, StageEditChoice)
			return
		}
		e.advance(ctx, s, StagePaymentMethod)
	}
}

// stageSocialLink validates and files a link for whichever collector is
// active, then returns to the hub.
func (e *Engine) stageSocialLink(ctx context.Context, s *session, text string) {
	url := strings.TrimSpace(text)

	var ok bool
	switch s.stage {
	case StageFacebookURL:
		ok = validators.ValidateFacebookURL(url)
	case StageInstagramURL:
		ok = validators.ValidateInstagramURL(url)
	case StageYouTubeURL:
		ok = validators.ValidateYouTubeURL(url)
	case StageOtherSocial:
		ok = validators.ValidateOtherSocialURL(url)
	}
	if !ok {
		if s.stage == StageYouTubeURL && (strings.Contains(url, "youtube.com/watch") || strings.Contains(url, "youtu.be/")) {
			e.send(ctx, s, "⚠️ That is a video link. Please send your channel URL instead:")
			return
		}
		e.send(ctx, s, "⚠️ That doesn't look like a valid link for this platform. Please try again:")
		return
	}

	cleaned := validators.CleanSocialURL(url)

	var bucket *[]string
	switch s.stage {
	case StageFacebookURL:
		bucket = &s.draft.Social.Facebook
	case StageInstagramURL:
		bucket = &s.draft.Social.Instagram
	case StageYouTubeURL:
		bucket = &s.draft.Social.YouTube
	case StageOtherSocial:
		bucket = &s.draft.Social.Other
	}
	if bucketHasLink(*bucket, validators.NormalizeSocialURL(cleaned), validators.NormalizeSocialURL) {
		e.send(ctx, s, "⚠️ You already added that account.")
		e.advance(ctx, s, StageSocialMenu)
		return
	}
	*bucket = append(*bucket, cleaned)

	e.send(ctx, s, fmt.Sprintf("✅ Added %s.", validators.ExtractUsername(cleaned)))
	e.advance(ctx, s, StageSocialMenu)
}
