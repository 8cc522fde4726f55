package intent

import "strings"

// Resolver maps an intent phrase in a given language to a Role.
type Resolver interface {
	Resolve(phrase string, lang Language) (Role, error)
}

// Dictionary is an exact-match phrase table per language. Lookup normalizes
// the phrase (trim + lowercase) but performs no fuzzy matching.
type Dictionary struct {
	entries map[Language]map[string]Role
}

// NewDictionary returns a dictionary preloaded with the built-in EN and RU
// tables.
func NewDictionary() *Dictionary {
	return &Dictionary{entries: builtinEntries()}
}

// Resolve looks up the phrase in the language's table.
func (d *Dictionary) Resolve(phrase string, lang Language) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	if normalized == "" {
		return RoleUnknown, ErrBlankIntent
	}
	table, ok := d.entries[lang]
	if !ok {
		return RoleUnknown, &ErrInvalidLanguage{Language: lang}
	}
	role, ok := table[normalized]
	if !ok {
		return RoleUnknown, &ErrUnknownIntent{Phrase: phrase, Language: lang}
	}
	return role, nil
}

// Languages returns the languages this dictionary has tables for.
func (d *Dictionary) Languages() []Language {
	out := make([]Language, 0, len(d.entries))
	for lang := range d.entries {
		out = append(out, lang)
	}
	return out
}

// add registers a phrase, normalizing it the same way Resolve does.
func (d *Dictionary) add(lang Language, phrase string, role Role) {
	normalized := strings.ToLower(strings.TrimSpace(phrase))
	if normalized == "" {
		return
	}
	table, ok := d.entries[lang]
	if !ok {
		table = make(map[string]Role)
		d.entries[lang] = table
	}
	table[normalized] = role
}

func builtinEntries() map[Language]map[string]Role {
	en := map[string]Role{
		"login field":    RoleLoginField,
		"username field": RoleLoginField,
		"username":       RoleLoginField,
		"user name":      RoleLoginField,
		"email":          RoleLoginField,
		"email field":    RoleLoginField,

		"password field": RolePasswordField,
		"password":       RolePasswordField,
		"pass field":     RolePasswordField,

		"login button": RoleLoginButton,
		"login":        RoleLoginButton,
		"log in":       RoleLoginButton,
		"sign in":      RoleLoginButton,
	}

	ru := map[string]Role{
		"поле логина":      RoleLoginField,
		"логин":            RoleLoginField,
		"имя пользователя": RoleLoginField,
		"юзернейм":         RoleLoginField,
		"почта":            RoleLoginField,
		"email":            RoleLoginField,

		"поле пароля": RolePasswordField,
		"пароль":      RolePasswordField,
		"пасс":        RolePasswordField,

		"кнопка входа": RoleLoginButton,
		"войти":        RoleLoginButton,
		"вход":         RoleLoginButton,
	}

	return map[Language]map[string]Role{
		LanguageEN: en,
		LanguageRU: ru,
	}
}
