// Package preset manages named SSML fragment presets stored as YAML files.
//
// A preset file lists presets under a top-level presets key:
//
//	presets:
//	  - name: hold-pause
//	    tag: break
//	    params:
//	      time: "750"
//	      strength: medium
//	  - name: account-number
//	    tag: say-as
//	    variables:
//	      number: "0000"
//	    params:
//	      text: "{{.Variables.number}}"
//	      interpretAs: characters
//
// Param values may use Go template syntax; variables supplied at render time
// override the preset defaults.
package preset

import (
	"fmt"
	"maps"

	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

// File is the YAML document layout of a preset file.
type File struct {
	Presets []Preset `yaml:"presets" json:"presets"`
}

// Preset is a named, parameterised fragment.
type Preset struct {
	Name        string            `yaml:"name"        json:"name"`
	Description string            `yaml:"description" json:"description,omitempty"`
	Tag         ssml.Tag          `yaml:"tag"         json:"tag"`
	Params      map[string]string `yaml:"params"      json:"params,omitempty"`
	Variables   map[string]string `yaml:"variables"   json:"variables,omitempty"`
}

// Fragment evaluates the preset params with vars layered over the preset's
// default variables.
func (p *Preset) Fragment(vars map[string]string) (ssml.Fragment, error) {
	merged := make(map[string]string, len(p.Variables)+len(vars))
	maps.Copy(merged, p.Variables)
	maps.Copy(merged, vars)

	params := make(map[string]string, len(p.Params))
	for key, tmpl := range p.Params {
		val, err := RenderParam(tmpl, merged)
		if err != nil {
			return ssml.Fragment{}, fmt.Errorf("preset %q param %q: %w", p.Name, key, err)
		}
		params[key] = val
	}
	return ssml.Fragment{Tag: p.Tag, Params: params}, nil
}

// Validate checks that the preset has a name and a known tag and renders
// with its default variables.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if !p.Tag.Valid() {
		return fmt.Errorf("preset %q: %w %q", p.Name, ssml.ErrUnknownTag, p.Tag)
	}
	frag, err := p.Fragment(nil)
	if err != nil {
		return err
	}
	if _, err := ssml.Render(frag); err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	return nil
}
