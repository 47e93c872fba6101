package whatsapp

import (
	"sort"
	"strings"
)

// FormatMessage substitutes every {key} occurrence in template with the
// value from vars. Plain string substitution only: no escaping, no
// conditionals. Unknown placeholders stay verbatim. Keys are applied in
// sorted order so the output is deterministic.
func FormatMessage(template string, vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := template
	for _, k := range keys {
		out = strings.ReplaceAll(out, "{"+k+"}", vars[k])
	}
	return out
}

// NormalizePhone strips non-digits and applies Brazilian country-code rules.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	clean := b.String()

	switch {
	case len(clean) == 11 && strings.HasPrefix(clean, "11"):
		return "55" + clean
	case len(clean) == 10:
		return "5511" + clean
	case !strings.HasPrefix(clean, "55"):
		return "55" + clean
	}
	return clean
}
