package locator

import (
	"strings"
	"unicode"
)

// IsLikelyHashedClassToken reports whether a single class token looks like a
// build-generated ("hashed") class name from CSS-in-JS, CSS Modules or
// similar toolchains. The detector is deliberately conservative: a false
// positive would exclude a legitimate stable class from anchoring.
//
// Patterns treated as likely-hashed:
//
//	css-1q2w3e          Emotion-style prefix + alphanumeric tail
//	sc-bdVaJa           styled-components prefix, mixed case or >=2 digits
//	Button_root__3x9aF  __ or -- separator with a hash-like tail
//	_3x9aF              leading underscore + hash-like tail
//	a1b2c3d4            hex-looking token, length >= 8, with digits
func IsLikelyHashedClassToken(token string) bool {
	t := strings.TrimSpace(token)
	if len(t) < 5 {
		return false
	}

	if rest, ok := strings.CutPrefix(t, "css-"); ok {
		return len(rest) >= 5 && isAlphaNumOnly(rest)
	}

	if rest, ok := strings.CutPrefix(t, "sc-"); ok {
		if len(rest) < 5 || len(rest) > 12 || !isAlphaNumOnly(rest) {
			return false
		}
		var upper, lowerCase bool
		digits := 0
		for _, c := range rest {
			switch {
			case unicode.IsDigit(c):
				digits++
			case unicode.IsUpper(c):
				upper = true
			case unicode.IsLower(c):
				lowerCase = true
			}
		}
		return (upper && lowerCase) || digits >= 2
	}

	if idx := lastSeparator(t); idx >= 0 && idx+2 < len(t) {
		if looksHashTail(t[idx+2:]) {
			return true
		}
	}

	if t[0] == '_' && looksHashTail(t[1:]) {
		return true
	}

	return isHexLike(t) && len(t) >= 8 && containsDigit(t)
}

// lastSeparator returns the start of the last "__" or "--" in t, or -1.
func lastSeparator(t string) int {
	idx := -1
	for i := 0; i+1 < len(t); i++ {
		if (t[i] == '_' && t[i+1] == '_') || (t[i] == '-' && t[i+1] == '-') {
			idx = i
		}
	}
	return idx
}

// looksHashTail reports whether the tail after a separator looks generated:
// at least 5 chars, >=2 digits, >=2 letters, nothing but letters and digits.
func looksHashTail(tail string) bool {
	s := strings.TrimSpace(tail)
	if len(s) < 5 {
		return false
	}
	digits, letters := 0, 0
	for _, c := range s {
		switch {
		case unicode.IsDigit(c):
			digits++
		case unicode.IsLetter(c):
			letters++
		default:
			return false
		}
	}
	return digits >= 2 && letters >= 2
}

func isHexLike(s string) bool {
	t := strings.TrimSpace(s)
	if len(t) < 6 {
		return false
	}
	for _, c := range t {
		c = unicode.ToLower(c)
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func isAlphaNumOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

func containsDigit(s string) bool {
	for _, c := range s {
		if unicode.IsDigit(c) {
			return true
		}
	}
	return false
}
