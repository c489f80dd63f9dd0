package service

import (
	"fmt"
	"regexp"
	"strings"
)

// Limits holds the deployment-configurable message length bounds.
type Limits struct {
	MessageMin int
	MessageMax int
}

// ValidationError reports failed input checks. Error() surfaces the first
// failure, which is what the UI displays; Errs carries all of them so a
// multi-error UI stays possible.
type ValidationError struct {
	Errs []string
}

func (e *ValidationError) Error() string {
	if len(e.Errs) == 0 {
		return "invalid input"
	}
	return e.Errs[0]
}

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z \-']+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)
	urlRe   = regexp.MustCompile(`https?://`)

	angleRe     = regexp.MustCompile(`[<>]`)
	jsProtoRe   = regexp.MustCompile(`(?i)javascript:`)
	eventAttrRe = regexp.MustCompile(`(?i)on\w+=`)
)

// spamKeywords is a static denylist matched case-insensitively as substrings.
var spamKeywords = []string{"viagra", "casino", "lottery", "prize", "click here", "buy now"}

// maxURLsInMessage rejects link-stuffed messages.
const maxURLsInMessage = 3

// Validate checks a raw submission and returns every error found, in check
// order. An empty slice means valid. Pure function: no side effects.
func Validate(name, email, message string, lim Limits) []string {
	var errs []string

	if runeLen(strings.TrimSpace(name)) < 2 {
		errs = append(errs, "Name must be at least 2 characters")
	}
	if runeLen(name) > 100 {
		errs = append(errs, "Name is too long")
	}
	if !nameRe.MatchString(name) {
		errs = append(errs, "Name contains invalid characters")
	}

	if !emailRe.MatchString(email) {
		errs = append(errs, "Invalid email address")
	}
	if len(email) > 254 {
		errs = append(errs, "Email is too long")
	}

	if runeLen(strings.TrimSpace(message)) < lim.MessageMin {
		errs = append(errs, fmt.Sprintf("Message must be at least %d characters", lim.MessageMin))
	}
	if runeLen(message) > lim.MessageMax {
		errs = append(errs, "Message is too long")
	}

	lower := strings.ToLower(message)
	for _, kw := range spamKeywords {
		if strings.Contains(lower, kw) {
			errs = append(errs, "Message contains prohibited content")
			break
		}
	}

	if len(urlRe.FindAllStringIndex(message, -1)) > maxURLsInMessage {
		errs = append(errs, "Too many URLs in message")
	}

	return errs
}

// Sanitize strips the characters and substrings that could enable injection
// when the text is later rendered: angle brackets, javascript: protocol
// prefixes, and inline event-handler patterns. Removal runs to a fixpoint so
// the result is idempotent even for nested payloads such as
// "javajavascript:script:".
func Sanitize(text string) string {
	text = strings.TrimSpace(text)
	text = angleRe.ReplaceAllString(text, "")
	for {
		next := eventAttrRe.ReplaceAllString(jsProtoRe.ReplaceAllString(text, ""), "")
		if next == text {
			break
		}
		text = next
	}
	return strings.TrimSpace(text)
}

func runeLen(s string) int {
	return len([]rune(s))
}
