package l10n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"fyne.io/fyne/v2/lang"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/ytget/map-downloader/internal/logger"
	"github.com/ytget/map-downloader/internal/storage"
)

// LanguageSystem selects the language of the host locale
const LanguageSystem = "system"

//go:embed translations/*.yaml
var translations embed.FS

// Catalog is the Localizer backed by the embedded message catalogs
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	language  string
	locator   storage.Locator
}

// LoadBundle parses every embedded catalog into a go-i18n bundle
func LoadBundle() (*i18n.Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.Glob(translations, "translations/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	for _, name := range files {
		data, err := translations.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, path.Base(name)); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
		}
	}
	return bundle, nil
}

// New returns a Catalog for code ("system" resolves the host locale).
// English is the fallback for messages missing in that language.
func New(bundle *i18n.Bundle, code string, locator storage.Locator) *Catalog {
	resolved := ResolveLanguage(code)
	return &Catalog{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, resolved, language.English.String()),
		language:  resolved,
		locator:   locator,
	}
}

// Load is LoadBundle followed by New
func Load(code string, locator storage.Locator) (*Catalog, error) {
	bundle, err := LoadBundle()
	if err != nil {
		return nil, err
	}
	return New(bundle, code, locator), nil
}

// ResolveLanguage maps "system" and empty values to the host language
func ResolveLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" || code == LanguageSystem {
		if system := lang.SystemLocale().LanguageString(); system != "" {
			return system
		}
		return language.English.String()
	}
	return code
}

// Language returns the resolved language code
func (c *Catalog) Language() string { return c.language }

// Languages returns the language tags of the loaded catalogs, sorted
func (c *Catalog) Languages() []string {
	tags := c.bundle.LanguageTags()
	codes := make([]string, 0, len(tags))
	for _, tag := range tags {
		codes = append(codes, tag.String())
	}
	sort.Strings(codes)
	return codes
}

func (c *Catalog) HasContext() bool { return true }

func (c *Catalog) String(id string, params ...any) string {
	return c.StringWithFallback(id, "", params...)
}

// StringWithFallback renders id with fmt-style params. Ids without a
// translation render the no-context placeholder.
func (c *Catalog) StringWithFallback(id, fallback string, params ...any) string {
	template, ok := c.lookup(&i18n.LocalizeConfig{MessageID: id})
	if !ok {
		return placeholder(fallback, params)
	}
	if len(params) == 0 {
		return template
	}
	return fmt.Sprintf(template, params...)
}

func (c *Catalog) Plural(id string, quantity int) string {
	return c.PluralWithFallback(id, quantity, DefaultPluralNoun)
}

// PluralWithFallback picks the plural form of id for quantity
func (c *Catalog) PluralWithFallback(id string, quantity int, fallback string) string {
	template, ok := c.lookup(&i18n.LocalizeConfig{MessageID: id, PluralCount: quantity})
	if !ok {
		return pluralPlaceholder(quantity, fallback)
	}
	if !strings.Contains(template, "%") {
		return template
	}
	return fmt.Sprintf(template, quantity)
}

func (c *Catalog) Pair(id, fallback string, params ...Param) Pair {
	return pair(c, c.locator, id, fallback, params)
}

func (c *Catalog) lookup(config *i18n.LocalizeConfig) (string, bool) {
	msg, err := c.localizer.Localize(config)
	if msg == "" {
		if err != nil {
			logger.Debug("message not localized", logger.Fields{"id": config.MessageID, "lang": c.language, "error": err})
		}
		return "", false
	}
	return msg, true
}
