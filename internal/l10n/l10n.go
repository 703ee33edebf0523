package l10n

import (
	"fmt"
	"strings"

	"github.com/ytget/map-downloader/internal/storage"
)

// NoContextMarker prefixes every string rendered without a catalog
const NoContextMarker = "(NoCtx)"

// DefaultPluralNoun is the noun used by Plural when no catalog is available
const DefaultPluralNoun = "thing(s)"

// Localizer turns message ids and parameters into user strings. The
// no-context variant never touches a catalog and renders a deterministic
// placeholder instead, so it can be used anywhere a real catalog is not
// available (tests, headless tools).
type Localizer interface {
	HasContext() bool
	String(id string, params ...any) string
	StringWithFallback(id, fallback string, params ...any) string
	Plural(id string, quantity int) string
	PluralWithFallback(id string, quantity int, fallback string) string
	Pair(id, fallback string, params ...Param) Pair
}

// Pair holds the same message rendered for the user and for the log file
type Pair struct {
	User string
	Log  string
}

// noContext is the Localizer without a catalog
type noContext struct {
	locator storage.Locator
}

// NoContext returns a Localizer that renders placeholders. locator resolves
// folder locations for Pair and may be nil.
func NoContext(locator storage.Locator) Localizer {
	return &noContext{locator: locator}
}

func (n *noContext) HasContext() bool { return false }

func (n *noContext) String(id string, params ...any) string {
	return n.StringWithFallback(id, "", params...)
}

func (n *noContext) StringWithFallback(_ string, fallback string, params ...any) string {
	return placeholder(fallback, params)
}

func (n *noContext) Plural(id string, quantity int) string {
	return n.PluralWithFallback(id, quantity, DefaultPluralNoun)
}

func (n *noContext) PluralWithFallback(_ string, quantity int, fallback string) string {
	return pluralPlaceholder(quantity, fallback)
}

func (n *noContext) Pair(id, fallback string, params ...Param) Pair {
	return pair(n, n.locator, id, fallback, params)
}

// placeholder renders "(NoCtx)<fallback>[p1;p2;...]"
func placeholder(fallback string, params []any) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p == nil {
			continue
		}
		parts[i] = fmt.Sprint(p)
	}
	return NoContextMarker + fallback + "[" + strings.Join(parts, ";") + "]"
}

func pluralPlaceholder(quantity int, fallback string) string {
	return fmt.Sprintf("%d %s", quantity, fallback)
}

// pair renders params twice, once per audience, through the same Localizer
func pair(l Localizer, locator storage.Locator, id, fallback string, params []Param) Pair {
	forUser := make([]any, len(params))
	forLog := make([]any, len(params))
	for i, p := range params {
		forUser[i] = p.userValue()
		forLog[i] = p.logValue(locator)
	}
	return Pair{
		User: l.StringWithFallback(id, fallback, forUser...),
		Log:  l.StringWithFallback(id, fallback, forLog...),
	}
}
