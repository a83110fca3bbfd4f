package config

// App identity shown in page titles and the profile screen.
const (
	AppName      = "PlayOH Canada"
	AppShortName = "PlayOH"
	AppVersion   = "1.0.0"
)

// DefaultAPIBaseURL is used when API_BASE_URL is not set.
const DefaultAPIBaseURL = "https://localhost:7063/api"

// Validation thresholds mirrored from the backend. The backend always has the
// final word, these only block obviously bad submissions early.
var Validation = struct {
	NameMinLength     int
	NameMaxLength     int
	PasswordMinLength int
	PasswordMaxLength int
	PhoneMaxLength    int
	MinPlayers        int
	MaxPlayers        int
	MaxInterval       int
}{
	NameMinLength:     2,
	NameMaxLength:     100,
	PasswordMinLength: 6,
	PasswordMaxLength: 100,
	PhoneMaxLength:    20,
	MinPlayers:        1,
	MaxPlayers:        100,
	MaxInterval:       30,
}

// StorageKeys are the logical keys kept per device in the key-value store.
var StorageKeys = struct {
	AuthToken       string
	UserData        string
	RememberedEmail string
}{
	AuthToken:       "auth_token",
	UserData:        "user_data",
	RememberedEmail: "remembered_email",
}

// SuggestionLimit caps how many venue suggestions are shown under the venue field.
const SuggestionLimit = 5

// SportIconPlaceholder is rendered when a sport has no icon.
const SportIconPlaceholder = "https://via.placeholder.com/40?text=Sport"
