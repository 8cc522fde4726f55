package locator

import (
	"strings"
	"unicode"
)

// XPathLiteral quotes a string for use inside an XPath 1.0 expression.
// XPath 1.0 has no escape sequences inside string literals, so values that
// mix both quote kinds are split into a concat(...) of single-quoted pieces
// joined by double-quoted apostrophes.
func XPathLiteral(value string) string {
	if !strings.Contains(value, "'") {
		return "'" + value + "'"
	}
	if !strings.Contains(value, `"`) {
		return `"` + value + `"`
	}

	parts := strings.Split(value, "'")
	var sb strings.Builder
	sb.WriteString("concat(")
	for i, part := range parts {
		if i > 0 {
			sb.WriteString(`, "'", `)
		}
		sb.WriteString("'")
		sb.WriteString(part)
		sb.WriteString("'")
	}
	sb.WriteString(")")
	return sb.String()
}

// CSSAttrLiteral quotes a string for a CSS attribute selector value.
func CSSAttrLiteral(value string) string {
	v := strings.ReplaceAll(value, `\`, `\\`)
	v = strings.ReplaceAll(v, "'", `\'`)
	return "'" + v + "'"
}

// CSSEscapeIdentifier backslash-escapes everything outside the safe
// identifier alphabet so the value can be used after "#" or ".".
func CSSEscapeIdentifier(value string) string {
	var sb strings.Builder
	for _, ch := range value {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_' {
			sb.WriteRune(ch)
		} else {
			sb.WriteRune('\\')
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

// normalizeText collapses runs of whitespace to single spaces and trims.
func normalizeText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
