package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default engine settings applied to new manifests
	DefaultEngine           Engine        `json:"default_engine"`
	DefaultFitRule          FitRule       `json:"default_fit_rule"`
	DefaultSplitRule        SplitRule     `json:"default_split_rule"`
	DefaultPlacementRule    PlacementRule `json:"default_placement_rule"`
	DefaultMerge            bool          `json:"default_merge"`
	DefaultAllowFlip        bool          `json:"default_allow_flip"`
	DefaultSupportThreshold float64       `json:"default_support_threshold"`

	// Application preferences
	RecentManifests []string `json:"recent_manifests"`
}

// DefaultAppConfig returns an AppConfig populated with the values from
// DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultEngine:           defaults.Engine,
		DefaultFitRule:          defaults.FitRule,
		DefaultSplitRule:        defaults.SplitRule,
		DefaultPlacementRule:    defaults.PlacementRule,
		DefaultMerge:            defaults.Merge,
		DefaultAllowFlip:        defaults.AllowFlip,
		DefaultSupportThreshold: defaults.SupportThreshold,
		RecentManifests:         []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a
// PackSettings struct. This is used when creating a new manifest so it
// inherits the user's saved defaults.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	s.Engine = c.DefaultEngine
	s.FitRule = c.DefaultFitRule
	s.SplitRule = c.DefaultSplitRule
	s.PlacementRule = c.DefaultPlacementRule
	s.Merge = c.DefaultMerge
	s.AllowFlip = c.DefaultAllowFlip
	s.SupportThreshold = c.DefaultSupportThreshold
}
