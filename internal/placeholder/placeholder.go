package placeholder

import (
	"regexp"
	"strings"

	"github.com/creocert/sheet-filler/internal/mapping"
)

// Resolver substitutes {KEY} tokens in template cell text.
type Resolver struct {
	tokenReg *regexp.Regexp
}

// New ...
func New() (r *Resolver, err error) {
	r = &Resolver{}
	r.tokenReg, err = regexp.Compile(tokenRegexp)
	return
}

// Is returns true if str may contain a token.
func (r *Resolver) Is(str string) bool {
	return strings.Contains(str, "{") && strings.Contains(str, "}")
}

// Context returns the context label of cell text, or empty string.
// The label only applies when the trigger phrase is present.
func (r *Resolver) Context(text string) string {
	upper := strings.ToUpper(text)
	if !strings.Contains(upper, contextTrigger) {
		return ""
	}
	for _, label := range contextLabels {
		if strings.Contains(upper, label) {
			return label
		}
	}
	return ""
}

// Resolve replaces every {KEY} token in text with the row value of the
// column the mapping resolves KEY to. The context is computed once from
// the full text and applies to every token in it.
func (r *Resolver) Resolve(text string, m mapping.Mapping, row map[string]string) string {
	if !r.Is(text) {
		return text
	}
	context := r.Context(text)
	return r.tokenReg.ReplaceAllStringFunc(text, func(token string) string {
		key := token[1 : len(token)-1]
		column := m.Column(key, context)
		if column == "" {
			return ""
		}
		return row[column]
	})
}
