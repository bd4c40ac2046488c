// Package template implements the placeholder substitution used by every
// prompt blueprint. Placeholders look like {key} and are replaced with the
// literal value from the context; there is no escaping and no recursion.
package template

import (
	"strings"
)

// Render replaces every {key} occurrence in text with vars[key].
// Placeholders without a matching key are left verbatim: templates are
// operator-edited free text, and a strict mode would make the settings
// surface far less forgiving than intended.
func Render(text string, vars map[string]string) string {
	result := text
	for key, value := range vars {
		result = strings.ReplaceAll(result, "{"+key+"}", value)
	}
	return result
}
