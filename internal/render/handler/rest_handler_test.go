package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/voicetyped/ssmlkit/internal/render"
	"github.com/voicetyped/ssmlkit/pkg/preset"
	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

type staticPresets map[string]*preset.Preset

func (s staticPresets) Get(name string) (*preset.Preset, bool) {
	p, ok := s[name]
	return p, ok
}

func (s staticPresets) All() map[string]*preset.Preset { return s }

func newTestService(opts ...render.Option) *render.Service {
	presets := staticPresets{
		"hold": {
			Name:        "hold",
			Description: "short hold pause",
			Tag:         ssml.TagBreak,
			Params:      map[string]string{"time": "{{.Variables.ms}}"},
			Variables:   map[string]string{"ms": "500"},
		},
		"greeting": {
			Name:   "greeting",
			Tag:    ssml.TagSpeak,
			Params: map[string]string{"text": "Hello {{.Variables.name}}"},
		},
	}
	return render.NewService(nil, append([]render.Option{render.WithPresets(presets)}, opts...)...)
}

func newTestMux(maxBody int64, opts ...render.Option) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandler(newTestService(opts...), maxBody).RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dest); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
}

func TestRenderEndpoint(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodPost, "/api/v1/ssml/break", `{"time":"200"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var resp RenderResponse
	decodeBody(t, rec, &resp)
	if resp.SSML != "<break time=200ms/>" {
		t.Errorf("ssml = %q, want %q", resp.SSML, "<break time=200ms/>")
	}
	if resp.Tag != "break" {
		t.Errorf("tag = %q, want break", resp.Tag)
	}
	if resp.ID == "" {
		t.Error("expected id")
	}
}

func TestRenderEndpointNumericParam(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodPost, "/api/v1/ssml/break", `{"time":750}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp RenderResponse
	decodeBody(t, rec, &resp)
	if resp.SSML != "<break time=750ms/>" {
		t.Errorf("ssml = %q", resp.SSML)
	}
}

func TestRenderEndpointEscapesText(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodPost, "/api/v1/ssml/speak", `{"text":"Fish & <Chips>"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp RenderResponse
	decodeBody(t, rec, &resp)
	want := "<speak>Fish &amp; &lt;Chips&gt;</speak>"
	if resp.SSML != want {
		t.Errorf("ssml = %q, want %q", resp.SSML, want)
	}
}

func TestRenderEndpointErrors(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		body      string
		wantCode  int
		wantField string
	}{
		{"unknown tag", "/api/v1/ssml/blink", `{}`, http.StatusNotFound, ""},
		{"missing field", "/api/v1/ssml/mark", `{}`, http.StatusBadRequest, "name"},
		{"invalid enum", "/api/v1/ssml/emphasis", `{"text":"x","level":"loud"}`, http.StatusBadRequest, "level"},
		{"unknown param", "/api/v1/ssml/mark", `{"name":"a","color":"red"}`, http.StatusBadRequest, "color"},
		{"unsupported value", "/api/v1/ssml/mark", `{"name":["a"]}`, http.StatusBadRequest, "name"},
		{"malformed body", "/api/v1/ssml/mark", `{`, http.StatusBadRequest, ""},
	}

	mux := newTestMux(0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, mux, http.MethodPost, tt.path, tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantCode, rec.Body.String())
			}
			var resp ErrorResponse
			decodeBody(t, rec, &resp)
			if resp.Error == "" {
				t.Error("expected error message")
			}
			if resp.Field != tt.wantField {
				t.Errorf("field = %q, want %q", resp.Field, tt.wantField)
			}
		})
	}
}

func TestRenderEndpointBodyTooLarge(t *testing.T) {
	mux := newTestMux(32)

	body := `{"text":"` + strings.Repeat("a", 128) + `"}`
	rec := do(t, mux, http.MethodPost, "/api/v1/ssml/speak", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestTagsEndpoint(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodGet, "/api/v1/ssml/tags", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp TagsResponse
	decodeBody(t, rec, &resp)
	if len(resp.Tags) != len(ssml.Tags()) {
		t.Fatalf("got %d tags, want %d", len(resp.Tags), len(ssml.Tags()))
	}

	found := false
	for _, info := range resp.Tags {
		if info.Tag == "break" {
			found = true
			if len(info.Params) == 0 {
				t.Error("break should list its params")
			}
		}
	}
	if !found {
		t.Error("break not listed")
	}
}

func TestBatchEndpoint(t *testing.T) {
	mux := newTestMux(0)

	body := `{"fragments":[
		{"tag":"break","params":{"time":"200"}},
		{"tag":"mark","params":{}},
		{"tag":"sub","params":{"text":"W3C","alias":"World Wide Web Consortium"}}
	]}`
	rec := do(t, mux, http.MethodPost, "/api/v1/ssml/batch", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp BatchResponse
	decodeBody(t, rec, &resp)
	if len(resp.Results) != 3 {
		t.Fatalf("got %d results, want 3", len(resp.Results))
	}
	for i, item := range resp.Results {
		if item.Index != i {
			t.Errorf("result %d has index %d", i, item.Index)
		}
	}
	if resp.Results[0].SSML != "<break time=200ms/>" {
		t.Errorf("result 0 = %q", resp.Results[0].SSML)
	}
	if resp.Results[1].Error == "" || resp.Results[1].Field != "name" {
		t.Errorf("result 1 should fail on name, got %+v", resp.Results[1])
	}
	if resp.Results[1].SSML != "" {
		t.Errorf("failed result should carry no ssml, got %q", resp.Results[1].SSML)
	}
	if resp.Results[2].SSML != "<sub alias=World Wide Web Consortium>W3C</sub>" {
		t.Errorf("result 2 = %q", resp.Results[2].SSML)
	}
}

func TestBatchEndpointLimits(t *testing.T) {
	mux := newTestMux(0, render.WithMaxBatch(1))

	rec := do(t, mux, http.MethodPost, "/api/v1/ssml/batch", `{"fragments":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty batch status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	body := `{"fragments":[{"tag":"mark","params":{"name":"a"}},{"tag":"mark","params":{"name":"b"}}]}`
	rec = do(t, mux, http.MethodPost, "/api/v1/ssml/batch", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("oversized batch status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestEscapeEndpoint(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodPost, "/api/v1/ssml/escape", `{"text":"a < b & \"c\""}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp EscapeResponse
	decodeBody(t, rec, &resp)
	want := "a &lt; b &amp; &quot;c&quot;"
	if resp.Text != want {
		t.Errorf("text = %q, want %q", resp.Text, want)
	}
}

func TestListPresetsEndpoint(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodGet, "/api/v1/presets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp []PresetResponse
	decodeBody(t, rec, &resp)
	if len(resp) != 2 {
		t.Fatalf("got %d presets, want 2", len(resp))
	}
	if resp[0].Name != "greeting" || resp[1].Name != "hold" {
		t.Errorf("presets not sorted: %q, %q", resp[0].Name, resp[1].Name)
	}
	if resp[1].Description != "short hold pause" {
		t.Errorf("description = %q", resp[1].Description)
	}
}

func TestRenderPresetEndpoint(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodPost, "/api/v1/presets/hold/render", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp RenderResponse
	decodeBody(t, rec, &resp)
	if resp.SSML != "<break time=500ms/>" {
		t.Errorf("ssml = %q", resp.SSML)
	}
	if resp.Preset != "hold" {
		t.Errorf("preset = %q, want hold", resp.Preset)
	}

	body, _ := json.Marshal(RenderPresetRequest{Variables: map[string]string{"name": "Ann & Bob"}})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/presets/greeting/render", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &resp)
	if resp.SSML != "<speak>Hello Ann &amp; Bob</speak>" {
		t.Errorf("ssml = %q", resp.SSML)
	}
}

func TestRenderPresetEndpointNotFound(t *testing.T) {
	mux := newTestMux(0)

	rec := do(t, mux, http.MethodPost, "/api/v1/presets/missing/render", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestToParams(t *testing.T) {
	params, err := toParams(ssml.TagBreak, map[string]any{
		"time":     float64(1.5),
		"strength": "weak",
		"flag":     true,
		"num":      json.Number("42"),
		"skipped":  nil,
	})
	if err != nil {
		t.Fatalf("toParams: %v", err)
	}
	want := map[string]string{"time": "1.5", "strength": "weak", "flag": "true", "num": "42"}
	if len(params) != len(want) {
		t.Fatalf("params = %v, want %v", params, want)
	}
	for k, v := range want {
		if params[k] != v {
			t.Errorf("params[%q] = %q, want %q", k, params[k], v)
		}
	}

	if _, err := toParams(ssml.TagBreak, map[string]any{"time": map[string]any{}}); err == nil {
		t.Error("expected error for object value")
	}
}
