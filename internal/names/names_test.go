package names_test

import (
	"encoding/json"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-gregor/internal/calendar"
	"github.com/tartampluch/go-gregor/internal/config"
	"github.com/tartampluch/go-gregor/internal/names"
)

func loadLocalizer(t *testing.T, lang string) *names.Localizer {
	t.Helper()
	bundle, err := names.LoadBundle()
	require.NoError(t, err)
	l, err := bundle.Localizer(lang)
	require.NoError(t, err)
	return l
}

func TestLoadBundle_Languages(t *testing.T) {
	bundle, err := names.LoadBundle()
	require.NoError(t, err)
	assert.ElementsMatch(t, config.SupportedLanguages, bundle.Languages())
}

func TestLocalizer_Names(t *testing.T) {
	tests := []struct {
		lang    string
		month   string
		weekday string
		long    string
	}{
		{"en", "July", "Sunday", "Sunday, July 17, 2016"},
		{"fr", "juillet", "dimanche", "dimanche 17 juillet 2016"},
		{"de", "Juli", "Sonntag", "Sonntag, 17. Juli 2016"},
	}

	d := calendar.MustNaiveDateTime(2016, calendar.July, 17, 12, 0, 0)
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			l := loadLocalizer(t, tt.lang)
			assert.Equal(t, tt.lang, l.Language())
			assert.Equal(t, tt.month, l.Month(calendar.July))
			assert.Equal(t, tt.weekday, l.Weekday(calendar.Sunday))
			assert.Equal(t, tt.long, l.LongDate(d))
		})
	}
}

func TestLocalizer_RegionalVariant(t *testing.T) {
	l := loadLocalizer(t, "fr-CA")
	assert.Equal(t, "fr", l.Language())
	assert.Equal(t, "mars", l.Month(calendar.March))
}

func TestLocalizer_UnknownLanguage(t *testing.T) {
	bundle, err := names.LoadBundle()
	require.NoError(t, err)

	_, err = bundle.Localizer("not a language")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLanguage)
}

func TestLocalizer_MissingKey(t *testing.T) {
	l := loadLocalizer(t, "en")
	assert.Equal(t, "no_such_key", l.Msg("no_such_key", nil))

	// A nil localizer falls back to the built-in English names.
	var empty *names.Localizer
	assert.Equal(t, "October", empty.Month(calendar.October))
	assert.Equal(t, "Monday", empty.Weekday(calendar.Monday))
	assert.Equal(t, "Thursday, January 1, 1970", empty.LongDate(calendar.MustNaiveDateTime(1970, calendar.January, 1, 0, 0, 0)))
}

func TestLocalizer_TemplateMessages(t *testing.T) {
	l := loadLocalizer(t, "en")
	msg := l.Msg(config.TKeyEvtIntoDST, map[string]any{"Offset": "UTC+02:00"})
	assert.Equal(t, "Clocks go forward (UTC+02:00)", msg)
}

// TestLocaleIntegrity ensures every locale defines every month, weekday and
// message key used by the code.
func TestLocaleIntegrity(t *testing.T) {
	keys := []string{config.TKeyLongDate, config.TKeyEvtIntoDST, config.TKeyEvtOutOfDST, config.TKeyEvtDesc}
	for i := 1; i <= 12; i++ {
		keys = append(keys, config.TKeyMonthPrefix+strconv.Itoa(i))
	}
	for i := 1; i <= 7; i++ {
		keys = append(keys, config.TKeyWeekdayPrefix+strconv.Itoa(i))
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile("locales/active." + lang + ".json")
			require.NoError(t, err, "Must load active.%s.json", lang)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for _, key := range keys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' is missing in active.%s.json", key, lang)
			}
		})
	}
}

