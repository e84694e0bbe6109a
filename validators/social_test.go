package validators

import "testing"

func TestValidateFacebookURL(t *testing.T) {
	valid := []string{
		"https://www.facebook.com/some.page",
		"https://fb.com/another",
		"facebook.com/no-scheme",
	}
	for _, u := range valid {
		if !ValidateFacebookURL(u) {
			t.Errorf("ValidateFacebookURL(%q) = false, want true", u)
		}
	}
	invalid := []string{"https://instagram.com/user", "https://example.com", ""}
	for _, u := range invalid {
		if ValidateFacebookURL(u) {
			t.Errorf("ValidateFacebookURL(%q) = true, want false", u)
		}
	}
}

func TestValidateYouTubeURLRejectsVideoLinks(t *testing.T) {
	if ValidateYouTubeURL("https://www.youtube.com/watch?v=abc123") {
		t.Error("video link accepted, want rejected")
	}
	if ValidateYouTubeURL("https://youtu.be/abc123") {
		t.Error("short video link accepted, want rejected")
	}
	if !ValidateYouTubeURL("https://www.youtube.com/@somecreator") {
		t.Error("channel handle rejected, want accepted")
	}
	if !ValidateYouTubeURL("https://www.youtube.com/channel/UCabc") {
		t.Error("channel URL rejected, want accepted")
	}
}

func TestNormalizeSocialURLCollapsesVariants(t *testing.T) {
	variants := []string{
		"https://www.instagram.com/someuser/",
		"http://instagram.com/someuser",
		"https://instagram.com/someuser?igshid=xyz",
		"INSTAGRAM.COM/someuser",
	}
	want := NormalizeSocialURL(variants[0])
	for _, v := range variants[1:] {
		if got := NormalizeSocialURL(v); got != want {
			t.Errorf("NormalizeSocialURL(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestCleanSocialURL(t *testing.T) {
	got := CleanSocialURL("m.facebook.com/some.page?ref=bookmarks")
	if got != "https://www.facebook.com/some.page" {
		t.Fatalf("CleanSocialURL = %q", got)
	}
}

func TestExtractUsername(t *testing.T) {
	cases := map[string]string{
		"https://www.instagram.com/someuser":    "@someuser",
		"https://www.facebook.com/a.page/":      "@a.page",
		"https://www.youtube.com/@somecreator":  "@somecreator",
		"https://www.youtube.com/channel/UCabc": "channel: ucabc",
	}
	for url, want := range cases {
		if got := ExtractUsername(url); got != want {
			t.Errorf("ExtractUsername(%q) = %q, want %q", url, got, want)
		}
	}
}

func TestInferPlatform(t *testing.T) {
	cases := map[string]string{
		"https://twitter.com/someone":      "Twitter",
		"https://www.tiktok.com/@someone":  "TikTok",
		"https://linkedin.com/in/someone":  "LinkedIn",
		"https://t.snapchat.com/someone":   "Snapchat",
		"https://telegram.me/somechannel":  "Telegram",
		"https://someforum.example/member": "Other",
	}
	for url, want := range cases {
		if got := InferPlatform(url); got != want {
			t.Errorf("InferPlatform(%q) = %q, want %q", url, got, want)
		}
	}
}
