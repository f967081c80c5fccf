package sources

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Strategy produces one candidate value for a field. An empty result means
// the strategy found nothing and the next one should be tried.
type Strategy func() string

// FirstNonEmpty runs strategies in order and returns the first non-empty
// trimmed result, or empty when every strategy comes up blank.
func FirstNonEmpty(strategies ...Strategy) string {
	for _, s := range strategies {
		if v := strings.TrimSpace(s()); v != "" {
			return v
		}
	}
	return ""
}

// Literal returns a strategy yielding a fixed value. Useful for mixing
// already-extracted values into a strategy list.
func Literal(v string) Strategy {
	return func() string { return v }
}

// SelectorText returns a strategy that extracts the text of the first node
// matching the CSS selector within sel.
func SelectorText(sel *goquery.Selection, selector string) Strategy {
	return func() string {
		return sel.Find(selector).First().Text()
	}
}

// SelectorAttr returns a strategy that extracts an attribute of the first
// node matching the CSS selector within sel.
func SelectorAttr(sel *goquery.Selection, selector, attr string) Strategy {
	return func() string {
		v, _ := sel.Find(selector).First().Attr(attr)
		return v
	}
}

// Field pairs a record field name with its ordered extraction strategies.
// Keeping the strategies in a table rather than branching code makes per-site
// selector lists testable in isolation.
type Field struct {
	Name       string
	Strategies []Strategy
}

// FieldTable is an ordered set of fields to extract from one record.
type FieldTable []Field

// Extract resolves every field in the table, first non-empty strategy wins.
func (t FieldTable) Extract() map[string]string {
	out := make(map[string]string, len(t))
	for _, f := range t {
		out[f.Name] = FirstNonEmpty(f.Strategies...)
	}
	return out
}
