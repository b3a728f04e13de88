// Package llm provides centralized LLM configuration and the Gemini client
// used to turn cleaned video text into recipe JSON.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for cheap, high-volume extraction
	TierLite ModelTier = "lite"
	// TierStandard is the default tier for recipe extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long or noisy transcripts
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultTemperature keeps extraction output close to deterministic.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Temperature applied to every request.
	Temperature float32
	// RequestsPerSecond paces outbound calls; 0 disables pacing.
	RequestsPerSecond float64
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// WithRequestsPerSecond returns a copy of the config with outbound pacing set.
func (c *Config) WithRequestsPerSecond(rps float64) *Config {
	newConfig := c.WithModel(TierStandard, c.GetModel(TierStandard))
	newConfig.RequestsPerSecond = rps
	return newConfig
}
