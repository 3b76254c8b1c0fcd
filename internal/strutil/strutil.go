// Package strutil contains small string helpers shared by the pipeline
// tooling.
package strutil

import (
	"strings"
	"unicode/utf8"
)

// SnakeToUpperCamel formats a snake_case string as UpperCamelCase.
func SnakeToUpperCamel(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		_, size := utf8.DecodeRuneInString(p)
		b.WriteString(strings.ToUpper(p[:size]))
		b.WriteString(strings.ToLower(p[size:]))
	}
	return b.String()
}
