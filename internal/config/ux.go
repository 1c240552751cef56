package config

// UIConfig holds terminal widget configuration.
type UIConfig struct {
	// Theme is "dark" (default) or "light".
	Theme string `yaml:"theme"`

	// CopiedWindow is how long the copy button shows its check mark.
	CopiedWindow string `yaml:"copied_window"`

	// Animation is how long the sparkle burst lasts.
	Animation string `yaml:"animation"`
}
