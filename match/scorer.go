package match

import (
	"strings"

	"github.com/HearthWarrio/intentium/intent"
)

// Scorer computes how well an element matches a role. Zero or below means
// "no match". Scoring is deterministic and side-effect-free.
type Scorer interface {
	Score(role intent.Role, e *Element) float64
}

// hiddenScore is the hard rejection for elements that cannot be interacted
// with. Large enough that no realistic heuristic adjustment can recover it.
const hiddenScore = -1000.0

// Keyword families per role, EN + RU. Shared between the scorer and the
// selector's test-attribute tiering.
var (
	loginKeywords = []string{
		"login", "user", "username", "email", "e-mail", "mail", "phone", "tel",
		"логин", "польз", "почт", "тел",
	}
	loginTestKeywords = []string{
		"login", "user", "username", "email", "e-mail", "mail",
		"логин", "польз", "почт",
	}
	loginFieldTierKeywords = []string{
		"login", "user", "username", "email", "e-mail", "mail", "phone",
		"логин", "польз", "почт", "тел",
	}
	passwordKeywords = []string{
		"password", "pass", "pwd", "secret",
		"пароль", "пасс",
	}
	loginButtonKeywords = []string{
		"login", "sign in", "signin", "submit", "enter", "continue",
		"войти", "вход", "логин", "авториз", "продолж",
	}
	loginButtonTestKeywords = []string{
		"login", "signin", "sign-in", "sign in", "submit", "enter",
		"войти", "вход", "логин", "авториз",
	}
	registerKeywords = []string{
		"register", "signup", "sign up", "регист",
	}
)

// DefaultScorer scores the built-in roles. Designed to work without test/qa
// attributes but benefits heavily from them when present.
type DefaultScorer struct{}

func (DefaultScorer) Score(role intent.Role, e *Element) float64 {
	if e == nil {
		return 0
	}
	switch role {
	case intent.RoleLoginField:
		return scoreLoginField(e)
	case intent.RolePasswordField:
		return scorePasswordField(e)
	case intent.RoleLoginButton:
		return scoreLoginButton(e)
	default:
		return 0
	}
}

func scoreLoginField(e *Element) float64 {
	tag := lower(e.Tag)
	typ := lower(e.Type)

	if tag == "input" && typ == "hidden" {
		return hiddenScore
	}

	score := 0.0

	if testValue := lower(e.TestValue); testValue != "" {
		// Test/qa hooks are a strong semantic signal.
		score += 0.5
		if containsAny(testValue, loginTestKeywords) {
			score += 2.0
		}
	}

	switch {
	case tag == "input":
		score += 3.0
		if typ == "" || containsAny(typ, []string{"text", "email", "tel", "number", "search"}) {
			score += 2.0
		} else {
			score -= 1.0
		}
	case tag == "textarea":
		score += 3.0
	case tag == "div", tag == "span":
		score += 0.1
	}

	combined := joinNonEmpty(
		e.Label, e.Placeholder, e.AriaLabel, e.Title, e.Surrounding,
		e.Name, e.ID, e.TestValue, e.TestAttr,
	)

	if containsAny(lower(combined), loginKeywords) {
		score += 2.0
	}
	// Password wording depresses a login-field score: the two roles compete
	// for the same form.
	if containsAny(lower(combined), []string{"password", "пароль"}) {
		score -= 2.0
	}

	return score
}

func scorePasswordField(e *Element) float64 {
	tag := lower(e.Tag)
	typ := lower(e.Type)

	if tag == "input" && typ == "hidden" {
		return hiddenScore
	}

	score := 0.0

	if testValue := lower(e.TestValue); testValue != "" {
		score += 0.5
		if containsAny(testValue, passwordKeywords) {
			score += 2.0
		}
	}

	switch {
	case tag == "input":
		score += 3.0
		if typ == "password" {
			score += 4.0
		}
	case tag == "div", tag == "span":
		score += 0.1
	}

	combined := joinNonEmpty(
		e.Label, e.Placeholder, e.AriaLabel, e.Title, e.Surrounding,
		e.Name, e.ID, e.TestValue, e.TestAttr,
	)

	if containsAny(lower(combined), passwordKeywords) {
		score += 2.0
	}

	return score
}

func scoreLoginButton(e *Element) float64 {
	tag := lower(e.Tag)
	typ := lower(e.Type)

	if tag == "input" && typ == "hidden" {
		return hiddenScore
	}

	score := 0.0

	if testValue := lower(e.TestValue); testValue != "" {
		score += 0.5
		if containsAny(testValue, loginButtonTestKeywords) {
			score += 2.0
		}
	}

	switch {
	case tag == "button":
		score += 3.0
	case tag == "input" && containsAny(typ, []string{"submit", "button"}):
		score += 3.0
	case tag == "a":
		score += 1.0
	case tag == "div", tag == "span":
		score += 0.1
	}

	combined := joinNonEmpty(
		e.Label, e.AriaLabel, e.Title, e.Surrounding,
		e.ID, e.Name, e.TestValue, e.TestAttr,
	)

	if containsAny(lower(combined), loginButtonKeywords) {
		score += 3.0
	}
	if containsAny(lower(combined), registerKeywords) {
		score -= 1.5
	}

	return score
}

func lower(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func containsAny(haystackLower string, needlesLower []string) bool {
	if haystackLower == "" {
		return false
	}
	for _, n := range needlesLower {
		if n != "" && strings.Contains(haystackLower, n) {
			return true
		}
	}
	return false
}

func joinNonEmpty(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	return b.String()
}
