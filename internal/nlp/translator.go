// Package nlp translates short natural-language phrases into formula
// text, e.g. "add A1 and B2" into "=A1+B2".
package nlp

import (
	"fmt"
	"regexp"
	"strings"
)

const cellPattern = `([A-Za-z]+\d+)`

// pattern pairs a compiled phrase matcher with a builder that assembles
// the formula from the captured cell references
type pattern struct {
	re    *regexp.Regexp
	build func(caps []string) string
}

// Translator converts recognized phrases into formula text. Patterns are
// tried in registration order; the first match wins.
type Translator struct {
	patterns []pattern
}

// New creates a translator with the built-in phrase patterns
func New() *Translator {
	t := &Translator{}

	t.add(`(?:add|sum|plus)\s+`+cellPattern+`\s+(?:and|to|with)\s+`+cellPattern,
		func(caps []string) string {
			return fmt.Sprintf("=%s+%s", caps[1], caps[2])
		})

	// "subtract B2 from A1" reads as A1-B2
	t.add(`(?:subtract|minus|take away)\s+`+cellPattern+`\s+from\s+`+cellPattern,
		func(caps []string) string {
			return fmt.Sprintf("=%s-%s", caps[2], caps[1])
		})

	t.add(`(?:multiply|times)\s+`+cellPattern+`\s+(?:by|with)\s+`+cellPattern,
		func(caps []string) string {
			return fmt.Sprintf("=%s*%s", caps[1], caps[2])
		})

	t.add(`divide\s+`+cellPattern+`\s+by\s+`+cellPattern,
		func(caps []string) string {
			return fmt.Sprintf("=%s/%s", caps[1], caps[2])
		})

	t.add(`(?:sum|total)\s+(?:of|for)\s+`+cellPattern+`\s+(?:to|through)\s+`+cellPattern,
		func(caps []string) string {
			return fmt.Sprintf("=SUM(%s:%s)", caps[1], caps[2])
		})

	t.add(`(?:average|mean)\s+(?:of|for)\s+`+cellPattern+`\s+(?:to|through)\s+`+cellPattern,
		func(caps []string) string {
			return fmt.Sprintf("=AVERAGE(%s:%s)", caps[1], caps[2])
		})

	return t
}

func (t *Translator) add(expr string, build func(caps []string) string) {
	t.patterns = append(t.patterns, pattern{
		re:    regexp.MustCompile(`(?i)` + expr),
		build: build,
	})
}

// Translate returns the formula for the first pattern matching text. The
// captured cell references are uppercased so the result is canonical
// formula text.
func (t *Translator) Translate(text string) (string, bool) {
	for _, p := range t.patterns {
		caps := p.re.FindStringSubmatch(text)
		if caps == nil {
			continue
		}
		for i := range caps {
			caps[i] = strings.ToUpper(caps[i])
		}
		return p.build(caps), true
	}
	return "", false
}

var requestKeywords = []string{
	"add", "sum", "plus", "total",
	"subtract", "minus", "take away",
	"multiply", "times",
	"divide",
	"average", "mean",
	"cell", "column", "row",
}

// IsFormulaRequest reports whether text looks like it is asking for a
// formula, based on keyword presence. It casts a wider net than
// Translate; a true result does not guarantee a translation exists.
func (t *Translator) IsFormulaRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range requestKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
