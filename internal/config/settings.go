package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable values of the CLI and the HTTP service.
type Settings struct {
	Zone        string
	Port        string
	Language    string
	RefreshMin  int
	YearsBefore int
	YearsAfter  int
}

// fileSettings is the on-disk form. Absent keys and empty strings keep the
// defaults; numbers are pointers so that an explicit 0 is kept.
type fileSettings struct {
	Zone        string `toml:"zone" yaml:"zone"`
	Port        string `toml:"port" yaml:"port"`
	Language    string `toml:"language" yaml:"language"`
	RefreshMin  *int   `toml:"refresh_minutes" yaml:"refresh_minutes"`
	YearsBefore *int   `toml:"years_before" yaml:"years_before"`
	YearsAfter  *int   `toml:"years_after" yaml:"years_after"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Zone:        DefaultZone,
		Port:        DefaultPort,
		Language:    DefaultLanguage,
		RefreshMin:  DefaultRefreshMin,
		YearsBefore: DefaultYearsBefore,
		YearsAfter:  DefaultYearsAfter,
	}
}

// LoadSettings reads path (TOML or YAML, chosen by extension) over the
// defaults, then applies environment overrides. An empty path skips the file.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
		if s, err = ParseSettings(content, filepath.Ext(path)); err != nil {
			return Settings{}, err
		}
		slog.Debug(MsgSettingsLoad,
			LogKeyComponent, CompSettings,
			LogKeyFile, path,
		)
	}

	s.ApplyEnv(os.LookupEnv)
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// ParseSettings decodes content over the defaults. ext selects the format.
func ParseSettings(content []byte, ext string) (Settings, error) {
	var fromFile fileSettings
	var err error

	switch strings.ToLower(ext) {
	case ExtTOML:
		err = toml.Unmarshal(content, &fromFile)
	case ExtYAML, ExtYML:
		err = yaml.Unmarshal(content, &fromFile)
	default:
		return Settings{}, fmt.Errorf("%s: %q", ErrSettingsFormat, ext)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}

	s := DefaultSettings()
	s.merge(fromFile)
	return s, nil
}

func (s *Settings) merge(other fileSettings) {
	if other.Zone != "" {
		s.Zone = other.Zone
	}
	if other.Port != "" {
		s.Port = other.Port
	}
	if other.Language != "" {
		s.Language = other.Language
	}
	if other.RefreshMin != nil {
		s.RefreshMin = *other.RefreshMin
	}
	if other.YearsBefore != nil {
		s.YearsBefore = *other.YearsBefore
	}
	if other.YearsAfter != nil {
		s.YearsAfter = *other.YearsAfter
	}
}

// ApplyEnv overrides zone, port and language from the environment.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvZone, &s.Zone},
		{EnvPort, &s.Port},
		{EnvLanguage, &s.Language},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.target = v
			slog.Debug(MsgEnvOverride,
				LogKeyComponent, CompSettings,
				LogKeyKey, o.key,
			)
		}
	}
}

// Validate checks the values the settings file cannot express as types.
// The zone name is checked by the caller, which owns the zone parser.
func (s Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}
	if !IsSupportedLanguage(s.Language) {
		return fmt.Errorf("%s: %s: %q", ErrSettingsValue, ErrLanguage, s.Language)
	}
	if s.RefreshMin < 0 {
		return fmt.Errorf("%s: refresh_minutes %d", ErrSettingsValue, s.RefreshMin)
	}
	if s.YearsBefore < 0 || s.YearsAfter < 0 || s.YearsBefore+s.YearsAfter+1 > MaxFeedYears {
		return fmt.Errorf("%s: %s", ErrSettingsValue, ErrYearRange)
	}
	return nil
}

// IsSupportedLanguage accepts a BCP 47 tag whose base language is one of
// SupportedLanguages, so regional variants such as "fr-CA" pass.
func IsSupportedLanguage(lang string) bool {
	tag, err := language.Parse(lang)
	if err != nil {
		return false
	}
	base, confidence := tag.Base()
	return confidence == language.Exact && slices.Contains(SupportedLanguages, base.String())
}

// ValidatePort checks that port is a number between MinPort and MaxPort.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
