package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Detectors for high-risk PII shapes that must never reach log output.
var (
	emailRE = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRE = regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`)
	govIDRE = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
)

// SensitiveFields are state keys that are dropped from log payloads verbatim.
var SensitiveFields = map[string]struct{}{
	"messages":       {},
	"transcript":     {},
	"history":        {},
	"lease_text":     {},
	"lease_document": {},
	"pdf_base64":     {},
	"raw_prompt":     {},
	"raw_completion": {},
	"full_reply":     {},
}

func hashToken(text string) string {
	digest := sha256.Sum256([]byte(text))
	return "[HASH:" + hex.EncodeToString(digest[:])[:12] + "]"
}

// ScrubText redacts emails, phone numbers, and SSN-shaped IDs from free
// text, replacing each with a stable hash so correlated values remain
// correlatable across log lines.
func ScrubText(text string) string {
	if text == "" {
		return text
	}
	replace := func(label string) func(string) string {
		return func(token string) string {
			return fmt.Sprintf("[%s_%s]", label, hashToken(token))
		}
	}
	// Gov IDs before phones: the phone pattern would swallow SSN shapes.
	scrubbed := emailRE.ReplaceAllStringFunc(text, replace("EMAIL"))
	scrubbed = govIDRE.ReplaceAllStringFunc(scrubbed, replace("ID"))
	scrubbed = phoneRE.ReplaceAllStringFunc(scrubbed, replace("PHONE"))
	return scrubbed
}

// ScrubFields returns a copy of the payload with sensitive keys removed and
// string values scrubbed.
func ScrubFields(payload map[string]any) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		if _, blocked := SensitiveFields[k]; blocked {
			continue
		}
		if s, ok := v.(string); ok {
			out[k] = ScrubText(s)
			continue
		}
		out[k] = v
	}
	return out
}
