package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-gregor/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"CLIName", config.CLIName},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"DefaultZone", config.DefaultZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Gregor/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
	assert.Greater(t, config.ServerWriteTimeout, config.ServerReadTimeout)
	assert.Greater(t, config.MaxFeedYears, config.DefaultYearsBefore+config.DefaultYearsAfter)
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
}

func TestDefaultSettings_Valid(t *testing.T) {
	s := config.DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, config.DefaultZone, s.Zone)
	assert.Equal(t, config.DefaultPort, s.Port)
}

func TestParseSettings(t *testing.T) {
	tests := []struct {
		name    string
		ext     string
		content string
		want    func(s config.Settings) config.Settings
		wantErr string
	}{
		{
			name:    "TOML overrides",
			ext:     ".toml",
			content: "zone = \"+02:00\"\nport = \"9000\"\nlanguage = \"fr\"\nyears_after = 3\n",
			want: func(s config.Settings) config.Settings {
				s.Zone, s.Port, s.Language, s.YearsAfter = "+02:00", "9000", "fr", 3
				return s
			},
		},
		{
			name:    "YAML overrides",
			ext:     ".yaml",
			content: "zone: UTC\nrefresh_minutes: 15\n",
			want: func(s config.Settings) config.Settings {
				s.Zone, s.RefreshMin = "UTC", 15
				return s
			},
		},
		{
			name:    "TOML explicit zero years",
			ext:     ".toml",
			content: "years_before = 0\nyears_after = 0\n",
			want: func(s config.Settings) config.Settings {
				s.YearsBefore, s.YearsAfter = 0, 0
				return s
			},
		},
		{
			name:    "YAML explicit zero years and refresh",
			ext:     ".yaml",
			content: "years_before: 0\nrefresh_minutes: 0\n",
			want: func(s config.Settings) config.Settings {
				s.YearsBefore, s.RefreshMin = 0, 0
				return s
			},
		},
		{
			name:    "YML extension, empty file keeps defaults",
			ext:     ".YML",
			content: "",
			want:    func(s config.Settings) config.Settings { return s },
		},
		{
			name:    "Malformed TOML",
			ext:     ".toml",
			content: "zone = ",
			wantErr: config.ErrSettingsParse,
		},
		{
			name:    "Unknown extension",
			ext:     ".ini",
			content: "zone=UTC",
			wantErr: config.ErrSettingsFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseSettings([]byte(tt.content), tt.ext)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want(config.DefaultSettings()), got)
		})
	}
}

func TestLoadSettings_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("zone = \"UTC\"\nlanguage = \"de\"\n"), config.FilePermUserRW))

	t.Setenv(config.EnvPort, "9090")
	t.Setenv(config.EnvZone, "")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "UTC", s.Zone, "empty environment values must not override")
	assert.Equal(t, "de", s.Language)
	assert.Equal(t, "9090", s.Port)
}

func TestLoadSettings_Errors(t *testing.T) {
	_, err := config.LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrSettingsRead)

	t.Setenv(config.EnvLanguage, "tlh")
	_, err = config.LoadSettings("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrLanguage)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{config.EnvZone: "+05:30", config.EnvLanguage: "fr"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	s := config.DefaultSettings()
	s.ApplyEnv(lookup)
	assert.Equal(t, "+05:30", s.Zone)
	assert.Equal(t, "fr", s.Language)
	assert.Equal(t, config.DefaultPort, s.Port)
}

func TestIsSupportedLanguage(t *testing.T) {
	tests := []struct {
		lang string
		want bool
	}{
		{"en", true},
		{"fr", true},
		{"de", true},
		{"fr-CA", true},
		{"de-AT", true},
		{"FR", true},
		{"pt-BR", false},
		{"xx", false},
		{"und", false},
		{"!!", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			assert.Equal(t, tt.want, config.IsSupportedLanguage(tt.lang))
		})
	}
}

func TestSettingsValidate_RegionalLanguage(t *testing.T) {
	s := config.DefaultSettings()
	s.Language = "fr-CA"
	assert.NoError(t, s.Validate())
}

func TestLoadSettings_ZeroYearsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("years_before: 0\nyears_after: 0\n"), config.FilePermUserRW))
	t.Setenv(config.EnvZone, "")
	t.Setenv(config.EnvPort, "")
	t.Setenv(config.EnvLanguage, "")

	s, err := config.LoadSettings(path)
	require.NoError(t, err)
	assert.Zero(t, s.YearsBefore)
	assert.Zero(t, s.YearsAfter)
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *config.Settings)
		wantErr string
	}{
		{"Port required", func(s *config.Settings) { s.Port = "" }, config.ErrPortRequired},
		{"Port number", func(s *config.Settings) { s.Port = "http" }, config.ErrPortNumber},
		{"Port range", func(s *config.Settings) { s.Port = "70000" }, config.ErrPortRange},
		{"Language", func(s *config.Settings) { s.Language = "xx" }, config.ErrLanguage},
		{"Refresh", func(s *config.Settings) { s.RefreshMin = -1 }, config.ErrSettingsValue},
		{"Years", func(s *config.Settings) { s.YearsAfter = config.MaxFeedYears }, config.ErrYearRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.DefaultSettings()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
