package config

import (
	"github.com/pitabwire/frame/config"

	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

// SSMLConfig holds configuration for the SSML render service.
type SSMLConfig struct {
	config.ConfigurationDefault
	StrictQuoting       bool   `envDefault:"false"     env:"SSML_STRICT_QUOTING"`
	PresetDir           string `envDefault:"./presets" env:"PRESET_DIR"`
	PresetWatch         bool   `envDefault:"true"      env:"PRESET_WATCH"`
	MaxRequestBodyBytes int64  `envDefault:"1048576"   env:"MAX_REQUEST_BODY_BYTES"`
	EmitRenderEvents    bool   `envDefault:"true"      env:"EMIT_RENDER_EVENTS"`
	BatchMaxFragments   int    `envDefault:"256"       env:"BATCH_MAX_FRAGMENTS"`
}

// BuilderOptions returns the ssml.Builder options selected by the config.
func (c *SSMLConfig) BuilderOptions() []ssml.Option {
	if c.StrictQuoting {
		return []ssml.Option{ssml.WithStrictQuoting()}
	}
	return nil
}
