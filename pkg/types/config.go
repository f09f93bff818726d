package types

// EngineConfig is an engine profile: it binds an adapter to the identity and
// presentation settings stamped onto every record the adapter produces.
type EngineConfig struct {
	// ID is copied into Record.EngineID. Defaults to the adapter name.
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	// Engine names the adapter that decodes this profile's payloads
	// (e.g. "arxiv", "openalex").
	Engine string `json:"engine" yaml:"engine" mapstructure:"engine"`

	// Decorator is copied into Record.DecoratorReference.
	Decorator string `json:"decorator,omitempty" yaml:"decorator,omitempty" mapstructure:"decorator"`

	// ForDisplay is copied into Record.DisplayConfiguration.
	ForDisplay map[string]any `json:"for_display,omitempty" yaml:"for_display,omitempty" mapstructure:"for_display"`

	// MaxResults truncates each decoded payload when positive.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// SuppressLinkGeneration is copied into every record.
	SuppressLinkGeneration bool `json:"suppress_link_generation" yaml:"suppress_link_generation" mapstructure:"suppress_link_generation"`
}

// EngineID returns ID, or fallback when ID is empty.
func (c EngineConfig) EngineID(fallback string) string {
	if c.ID != "" {
		return c.ID
	}
	return fallback
}

// Stamp returns the construction fields every record of this profile
// carries, merged over fields. Keys already present in fields win.
func (c EngineConfig) Stamp(fields map[string]any, adapter string) map[string]any {
	stamp := map[string]any{
		"engine_id": c.EngineID(adapter),
	}
	if c.Decorator != "" {
		stamp["decorator_reference"] = c.Decorator
	}
	if c.ForDisplay != nil {
		stamp["display_configuration"] = c.ForDisplay
	}
	if c.SuppressLinkGeneration {
		stamp["suppress_link_generation"] = true
	}
	for k, v := range fields {
		stamp[k] = v
	}
	return stamp
}
