package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/slidemerge/internal/core/domain"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driven"
	"github.com/custodia-labs/slidemerge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPrefixSite     = "prefix.site"
	KeyPrefixDocument = "prefix.document"
	KeyPrefixSlide    = "prefix.slide"
	KeyThreshold      = "merge.threshold"
	KeyMaxPasses      = "merge.max_passes"
	KeyToolMarp       = "tools.marp"
	KeyToolPandoc     = "tools.pandoc"
	KeyToolMkDocs     = "tools.mkdocs"
	KeyToolDrawio     = "tools.drawio"
	KeyReferenceDoc   = "tools.reference_doc"
	KeyLaunchRate     = "launch.rate"
	KeyLaunchBurst    = "launch.burst"
	KeyHistoryEnabled = "history.enabled"
)

// drawioEnv overrides the configured drawio executable.
const drawioEnv = "DRAWIO_PATH"

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, getenv func(string) string) *SettingsService {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	return &SettingsService{
		configStore: configStore,
		getenv:      getenv,
	}
}

// Get retrieves current settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Prefixes: domain.PrefixSettings{
			Site:     s.getString(KeyPrefixSite, defaults.Prefixes.Site),
			Document: s.getString(KeyPrefixDocument, defaults.Prefixes.Document),
			Slide:    s.getString(KeyPrefixSlide, defaults.Prefixes.Slide),
		},
		Merge: domain.MergeSettings{
			Threshold: s.getFloat(KeyThreshold, defaults.Merge.Threshold),
			MaxPasses: s.getInt(KeyMaxPasses, defaults.Merge.MaxPasses),
		},
		Tools: domain.ToolSettings{
			Marp:         s.getString(KeyToolMarp, defaults.Tools.Marp),
			Pandoc:       s.getString(KeyToolPandoc, defaults.Tools.Pandoc),
			MkDocs:       s.getString(KeyToolMkDocs, defaults.Tools.MkDocs),
			Drawio:       s.getString(KeyToolDrawio, defaults.Tools.Drawio),
			ReferenceDoc: s.configStore.GetString(KeyReferenceDoc), // No default - pandoc uses its own
		},
		Launch: domain.LaunchSettings{
			Rate:  s.getFloat(KeyLaunchRate, defaults.Launch.Rate),
			Burst: s.getInt(KeyLaunchBurst, defaults.Launch.Burst),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(KeyHistoryEnabled, defaults.History.Enabled),
		},
	}

	if path := s.getenv(drawioEnv); path != "" {
		settings.Tools.Drawio = path
	}

	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyPrefixSite, settings.Prefixes.Site},
		{KeyPrefixDocument, settings.Prefixes.Document},
		{KeyPrefixSlide, settings.Prefixes.Slide},
		{KeyThreshold, settings.Merge.Threshold},
		{KeyMaxPasses, settings.Merge.MaxPasses},
		{KeyToolMarp, settings.Tools.Marp},
		{KeyToolPandoc, settings.Tools.Pandoc},
		{KeyToolMkDocs, settings.Tools.MkDocs},
		{KeyToolDrawio, settings.Tools.Drawio},
		{KeyReferenceDoc, settings.Tools.ReferenceDoc},
		{KeyLaunchRate, settings.Launch.Rate},
		{KeyLaunchBurst, settings.Launch.Burst},
		{KeyHistoryEnabled, settings.History.Enabled},
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting by key, parsing value to the key's type.
func (s *SettingsService) Set(key, value string) error {
	var parsed any
	switch key {
	case KeyPrefixSite, KeyPrefixDocument, KeyPrefixSlide,
		KeyToolMarp, KeyToolPandoc, KeyToolMkDocs, KeyToolDrawio, KeyReferenceDoc:
		parsed = value
	case KeyThreshold, KeyLaunchRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w: %q is not a number", key, domain.ErrInvalidInput, value)
		}
		parsed = f
	case KeyMaxPasses, KeyLaunchBurst:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w: %q is not an integer", key, domain.ErrInvalidInput, value)
		}
		parsed = n
	case KeyHistoryEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w: %q is not a boolean", key, domain.ErrInvalidInput, value)
		}
		parsed = b
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return s.Validate()
}

// Validate checks the current settings.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if t := settings.Merge.Threshold; t <= 0 || t > 1 {
		return fmt.Errorf("%w: merge threshold must be in (0, 1], got %v", domain.ErrInvalidInput, t)
	}
	if settings.Merge.MaxPasses < 0 {
		return fmt.Errorf("%w: max passes must not be negative", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool)
	for _, prefix := range settings.Prefixes.All() {
		if strings.TrimSpace(prefix) == "" {
			return fmt.Errorf("%w: variant prefixes must not be empty", domain.ErrInvalidInput)
		}
		if seen[prefix] {
			return fmt.Errorf("%w: variant prefix %q used twice", domain.ErrInvalidInput, prefix)
		}
		seen[prefix] = true
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if val, ok := s.configStore.GetFloat(key); ok {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
