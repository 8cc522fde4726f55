// Package intent resolves human-readable intent phrases ("login field",
// "поле пароля") to semantic roles via exact dictionary lookup. There is no
// fuzzy matching: unknown phrases fail fast so callers never act on a guess.
package intent

// Role is a semantic target category the engine understands. The set is
// closed: scorers and selectors switch over it, so arbitrary strings must
// never reach them.
type Role int

const (
	// RoleUnknown is the zero value and never resolves.
	RoleUnknown Role = iota
	// RoleLoginField is a username/email/phone input.
	RoleLoginField
	// RolePasswordField is a password input.
	RolePasswordField
	// RoleLoginButton is the control that submits a login form.
	RoleLoginButton
)

func (r Role) String() string {
	switch r {
	case RoleLoginField:
		return "login_field"
	case RolePasswordField:
		return "password_field"
	case RoleLoginButton:
		return "login_button"
	default:
		return "unknown"
	}
}

// ParseRole maps a role name (as used in dictionary files) back to a Role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "login_field":
		return RoleLoginField, true
	case "password_field":
		return RolePasswordField, true
	case "login_button":
		return RoleLoginButton, true
	default:
		return RoleUnknown, false
	}
}

// Language identifies the dictionary used for phrase lookup.
type Language string

const (
	LanguageEN Language = "en"
	LanguageRU Language = "ru"
)
