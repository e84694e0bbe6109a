package engine

// Stage identifies one state of the registration conversation. The string
// tag is canonical: it is used in memory and stored verbatim in the
// checkpoint row.
type Stage string

const (
	// StageNone means no registration conversation is active.
	StageNone Stage = ""

	StageReferral  Stage = "referral"
	StageFullName  Stage = "full_name"
	StageCountry   Stage = "country"
	StageGender    Stage = "gender"
	StageBirthYear Stage = "birth_year"
	StagePhone     Stage = "phone"
	StageEmail     Stage = "email"

	// StageSocialMenu is the re-entrant hub; the four collectors below
	// return to it after every successful addition.
	StageSocialMenu   Stage = "social_menu"
	StageFacebookURL  Stage = "facebook_url"
	StageInstagramURL Stage = "instagram_url"
	StageYouTubeURL   Stage = "youtube_url"
	StageOtherSocial  Stage = "other_social"

	StagePaymentMethod    Stage = "payment_method"
	StageWalletType       Stage = "wallet_type"
	StageNewWalletType    Stage = "new_wallet_type"
	StageWalletAddress    Stage = "wallet_address"
	StageTransferName     Stage = "transfer_name"
	StageTransferPhone    Stage = "transfer_phone"
	StageTransferLocation Stage = "transfer_location"
	StageTransferCompany  Stage = "transfer_company"

	// StageConfirmation shows the full summary; StageEditChoice is the
	// field picker reached from it. Collectors revisited from the picker
	// carry ReturnToEditMenu in the draft instead of dedicated stages.
	StageConfirmation Stage = "confirmation"
	StageEditChoice   Stage = "edit_choice"
)

func (s Stage) isSocialCollector() bool {
	switch s {
	case StageFacebookURL, StageInstagramURL, StageYouTubeURL, StageOtherSocial:
		return true
	}
	return false
}

var knownStages = map[Stage]bool{
	StageReferral: true, StageFullName: true, StageCountry: true,
	StageGender: true, StageBirthYear: true, StagePhone: true,
	StageEmail: true, StageSocialMenu: true, StageFacebookURL: true,
	StageInstagramURL: true, StageYouTubeURL: true, StageOtherSocial: true,
	StagePaymentMethod: true, StageWalletType: true, StageNewWalletType: true,
	StageWalletAddress: true, StageTransferName: true, StageTransferPhone: true,
	StageTransferLocation: true, StageTransferCompany: true,
	StageConfirmation: true, StageEditChoice: true,
}

// normalizeResumeStage maps a restored checkpoint stage to the stage the
// conversation actually resumes at. Social collectors fall back to the hub
// because their prompt context cannot be rebuilt from the checkpoint alone;
// unknown tags restart at the referral stage.
func normalizeResumeStage(s Stage) Stage {
	if s.isSocialCollector() {
		return StageSocialMenu
	}
	if !knownStages[s] {
		return StageReferral
	}
	return s
}
