package xlsx

import (
	"fmt"
	"strings"

	"github.com/creocert/sheet-filler/internal/workbook"
)

// Excel caps sheet titles at 31 characters.
const maxTitleLen = 31

const forbiddenTitleChars = `[]:*?/\`

func sanitizeTitle(name string) string {
	title := strings.TrimSpace(name)
	if title == "" {
		return "Row"
	}
	title = strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenTitleChars, r) {
			return '-'
		}
		return r
	}, title)
	return truncateTitle(title, maxTitleLen)
}

func truncateTitle(title string, limit int) string {
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	return string(runes[:limit])
}

// dedupeTitle returns base or, if taken, the first free "base (N)"
// starting at N=2, and records the result in used.
func dedupeTitle(base string, used map[string]bool) string {
	title := base
	for n := 2; used[title]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		title = truncateTitle(base, maxTitleLen-len(suffix)) + suffix
	}
	used[title] = true
	return title
}

// firstMatch returns the first grade row whose name column equals name.
func firstMatch(grades []workbook.Row, column, name string) workbook.Row {
	for _, grade := range grades {
		if grade[column] == name {
			return grade
		}
	}
	return nil
}

// combineRow layers detail over grade: on column collision the detail
// value wins.
func combineRow(detail, grade workbook.Row) map[string]string {
	combined := make(map[string]string, len(detail)+len(grade))
	for column, value := range grade {
		combined[column] = value
	}
	for column, value := range detail {
		combined[column] = value
	}
	return combined
}
