// Package redact scrubs credentials, connection strings, SQL, and file paths
// from strings before they are logged or surfaced to CLI users.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Applied in order; connection strings go first so their passwords are not
// partially matched by the credential rule.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)(postgres|postgresql|pgx|mysql|mongodb|db|database|connection)://[^@\s]+@`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		placeholder: RedactedCredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(api[_-]?key|token|secret)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`),
		placeholder: RedactedKeyPlaceholder,
	},
	{
		pattern: regexp.MustCompile(
			`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX)(?:[\s\w,*()='"]+)?`,
		),
		placeholder: RedactedSQLPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: RedactedPathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
