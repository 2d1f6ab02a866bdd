package logger

import "strings"

// Client contact details are PII carried in render payloads; log lines only
// ever carry them masked.

// MaskEmail hides the local part of an address, keeping its first character
// and the domain: "a****@acme.com".
func MaskEmail(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return maskLast4(value)
	}
	return value[:1] + "****" + value[at:]
}

// MaskPhone keeps only the last four digits of a phone number.
func MaskPhone(value string) string {
	return maskLast4(value)
}

func maskLast4(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****" + value
	}
	return "****" + value[len(value)-4:]
}
