package handler

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

// RenderResponse is the API response for a rendered fragment.
type RenderResponse struct {
	ID     string `json:"id"`
	Tag    string `json:"tag"`
	Preset string `json:"preset,omitempty"`
	SSML   string `json:"ssml"`
}

// FragmentRequest is one fragment in a batch request.
type FragmentRequest struct {
	Tag    string         `json:"tag"`
	Params map[string]any `json:"params,omitempty"`
}

// BatchRequest is the request body for rendering several independent fragments.
type BatchRequest struct {
	Fragments []FragmentRequest `json:"fragments"`
}

// BatchItemResponse is the outcome of one batch fragment.
type BatchItemResponse struct {
	Index int    `json:"index"`
	ID    string `json:"id,omitempty"`
	Tag   string `json:"tag"`
	SSML  string `json:"ssml,omitempty"`
	Error string `json:"error,omitempty"`
	Field string `json:"field,omitempty"`
}

// BatchResponse is the API response for a batch.
type BatchResponse struct {
	Results []BatchItemResponse `json:"results"`
}

// EscapeRequest is the request body for escaping text.
type EscapeRequest struct {
	Text string `json:"text"`
}

// EscapeResponse is the API response for escaped text.
type EscapeResponse struct {
	Text string `json:"text"`
}

// TagsResponse lists the supported tags and their parameters.
type TagsResponse struct {
	Tags []TagInfo `json:"tags"`
}

// TagInfo describes one supported tag.
type TagInfo struct {
	Tag    string   `json:"tag"`
	Params []string `json:"params"`
}

// PresetResponse is the API representation of a preset.
type PresetResponse struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Tag         string            `json:"tag"`
	Params      map[string]string `json:"params,omitempty"`
	Variables   map[string]string `json:"variables,omitempty"`
}

// RenderPresetRequest is the request body for rendering a preset.
type RenderPresetRequest struct {
	Variables map[string]string `json:"variables,omitempty"`
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Tag   string `json:"tag,omitempty"`
	Field string `json:"field,omitempty"`
}

// toParams converts decoded JSON values to fragment params. Strings pass
// through; numbers and booleans are formatted; anything else is rejected.
func toParams(tag ssml.Tag, raw map[string]any) (map[string]string, error) {
	params := make(map[string]string, len(raw))
	for key, v := range raw {
		switch val := v.(type) {
		case string:
			params[key] = val
		case float64:
			params[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case json.Number:
			params[key] = val.String()
		case bool:
			params[key] = strconv.FormatBool(val)
		case nil:
		default:
			return nil, &ssml.FieldError{Tag: tag, Field: key, Err: fmt.Errorf("unsupported value type %T", v)}
		}
	}
	return params, nil
}
