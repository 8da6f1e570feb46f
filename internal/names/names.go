// Package names renders month and weekday names in the supported languages.
package names

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-gregor/internal/calendar"
	"github.com/tartampluch/go-gregor/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds every embedded translation.
type Bundle struct {
	bundle    *i18n.Bundle
	languages []language.Tag
	matcher   language.Matcher
}

// LoadBundle parses the embedded locale files. Malformed files are logged
// and skipped; English is always present.
func LoadBundle() (*Bundle, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	tags := bundle.LanguageTags()
	return &Bundle{
		bundle:    bundle,
		languages: tags,
		matcher:   language.NewMatcher(tags),
	}, nil
}

// Languages lists the loaded languages as BCP 47 strings.
func (b *Bundle) Languages() []string {
	out := make([]string, len(b.languages))
	for i, tag := range b.languages {
		out[i] = tag.String()
	}
	return out
}

// Localizer returns a translator for lang. Regional variants such as
// "fr-CA" resolve to their base language.
func (b *Bundle) Localizer(lang string) (*Localizer, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("%s: %q: %w", config.ErrLanguage, lang, err)
	}
	_, index, confidence := b.matcher.Match(tag)
	if confidence == language.No {
		return nil, fmt.Errorf("%s: %q", config.ErrLanguage, lang)
	}
	matched := b.languages[index].String()
	return &Localizer{
		localizer: i18n.NewLocalizer(b.bundle, matched),
		lang:      matched,
	}, nil
}

// Localizer translates calendar names for one language.
type Localizer struct {
	localizer *i18n.Localizer
	lang      string
}

// Language returns the BCP 47 tag in use.
func (l *Localizer) Language() string {
	return l.lang
}

// Month returns the localized month name, or the English table name when
// the translation is missing.
func (l *Localizer) Month(m calendar.Month) string {
	return l.msgOr(config.TKeyMonthPrefix+strconv.Itoa(int(m.Number())), nil, m.String())
}

// Weekday returns the localized day name.
func (l *Localizer) Weekday(d calendar.DayOfTheWeek) string {
	return l.msgOr(config.TKeyWeekdayPrefix+strconv.Itoa(int(d.ISONumber())), nil, d.String())
}

// LongDate renders the date part of d with names, e.g. "Sunday, July 17, 2016".
func (l *Localizer) LongDate(d calendar.NaiveDateTime) string {
	data := map[string]any{
		"Weekday": l.Weekday(d.DayOfTheWeek()),
		"Month":   l.Month(d.Month),
		"Day":     d.Day,
		"Year":    d.Year,
	}
	fallback := fmt.Sprintf("%s, %s %d, %d", d.DayOfTheWeek(), d.Month, d.Day, d.Year)
	return l.msgOr(config.TKeyLongDate, data, fallback)
}

// Msg translates key with template data. A missing key returns the key itself.
func (l *Localizer) Msg(key string, data map[string]any) string {
	return l.msgOr(key, data, key)
}

// MsgOr translates key with template data, or returns fallback.
func (l *Localizer) MsgOr(key string, data map[string]any, fallback string) string {
	return l.msgOr(key, data, fallback)
}

func (l *Localizer) msgOr(key string, data map[string]any, fallback string) string {
	if l == nil || l.localizer == nil {
		return fallback
	}
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}
