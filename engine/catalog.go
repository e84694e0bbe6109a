package engine

// Country pairs a display name with the dial code used to complete local
// phone numbers before validation.
type Country struct {
	Name     string
	DialCode string
}

var countries = []Country{
	{"Saudi Arabia", "+966"},
	{"Egypt", "+20"},
	{"United Arab Emirates", "+971"},
	{"Kuwait", "+965"},
	{"Qatar", "+974"},
	{"Bahrain", "+973"},
	{"Oman", "+968"},
	{"Jordan", "+962"},
	{"Lebanon", "+961"},
	{"Syria", "+963"},
	{"Iraq", "+964"},
	{"Yemen", "+967"},
	{"Morocco", "+212"},
	{"Algeria", "+213"},
	{"Tunisia", "+216"},
	{"Sudan", "+249"},
}

func countryNames() []string {
	names := make([]string, len(countries))
	for i, c := range countries {
		names[i] = c.Name
	}
	return names
}

func dialCodeFor(name string) (string, bool) {
	for _, c := range countries {
		if c.Name == name {
			return c.DialCode, true
		}
	}
	return "", false
}

// OtherWalletChoice switches the wallet flow to free-text entry.
const OtherWalletChoice = "Other wallet"

var walletTypes = []string{
	"PayPal",
	"Payeer",
	"Perfect Money",
	"Skrill",
	"Neteller",
	"WebMoney",
	"Vodafone Cash",
	"Orange Money",
	"Etisalat Cash",
	"Zain Cash",
	OtherWalletChoice,
}

func isKnownWallet(name string) bool {
	for _, w := range walletTypes {
		if w == name {
			return true
		}
	}
	return false
}

var transferCompanies = []string{
	"Western Union",
	"MoneyGram",
	"Al Haram Exchange",
	"Al Fuad Exchange",
	"Enjaz",
	"Al Ansari Exchange",
	"Al Rajhi Bank Transfer",
	"Ria Money Transfer",
	"Other company",
}

func isKnownTransferCompany(name string) bool {
	for _, c := range transferCompanies {
		if c == name {
			return true
		}
	}
	return false
}

var genders = []string{"Male", "Female"}
