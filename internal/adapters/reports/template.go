// Package reports renders patient summaries, WhatsApp messages and ledger
// exports from state snapshots, and runs an asynchronous worker that stores
// finished artifacts in the blob store.
package reports

import "strings"

// RenderTemplate substitutes every {{key}} token in tpl with its replacement.
// Unknown tokens are left intact so a malformed template stays visible to the
// operator instead of silently dropping text.
func RenderTemplate(tpl string, replacements map[string]string) string {
	out := tpl
	for key, value := range replacements {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out
}
