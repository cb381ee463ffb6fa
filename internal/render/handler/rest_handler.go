package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"

	"github.com/voicetyped/ssmlkit/internal/render"
	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

const defaultMaxRequestBodySize = 1 << 20 // 1 MiB

// Handler provides REST endpoints for rendering SSML fragments.
type Handler struct {
	svc     *render.Service
	maxBody int64
}

// NewHandler creates a new REST handler. maxBody caps request bodies; zero
// or less uses 1 MiB.
func NewHandler(svc *render.Service, maxBody int64) *Handler {
	if maxBody <= 0 {
		maxBody = defaultMaxRequestBodySize
	}
	return &Handler{svc: svc, maxBody: maxBody}
}

// RegisterRoutes registers all render API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ssml/tags", h.Tags)
	mux.HandleFunc("POST /api/v1/ssml/batch", h.Batch)
	mux.HandleFunc("POST /api/v1/ssml/escape", h.Escape)
	mux.HandleFunc("POST /api/v1/ssml/{tag}", h.Render)
	mux.HandleFunc("GET /api/v1/presets", h.ListPresets)
	mux.HandleFunc("POST /api/v1/presets/{name}/render", h.RenderPreset)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeRenderError maps render failures to HTTP statuses.
func writeRenderError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error()}
	status := http.StatusInternalServerError

	var fe *ssml.FieldError
	switch {
	case errors.Is(err, ssml.ErrUnknownTag), errors.Is(err, render.ErrPresetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, render.ErrBatchTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &fe):
		status = http.StatusBadRequest
	}
	if errors.As(err, &fe) {
		resp.Tag = string(fe.Tag)
		resp.Field = fe.Field
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "render failed",
			slog.String("path", r.URL.Path), slog.String("error", err.Error()))
	}
	writeJSON(w, status, resp)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// Tags handles GET /api/v1/ssml/tags
func (h *Handler) Tags(w http.ResponseWriter, _ *http.Request) {
	tags := h.svc.Tags()
	resp := TagsResponse{Tags: make([]TagInfo, 0, len(tags))}
	for _, tag := range tags {
		params, _ := ssml.ParamNames(tag)
		resp.Tags = append(resp.Tags, TagInfo{Tag: string(tag), Params: params})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Render handles POST /api/v1/ssml/{tag}
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	tag := ssml.Tag(r.PathValue("tag"))
	if !tag.Valid() {
		writeRenderError(w, r, &ssml.FieldError{Tag: tag, Err: ssml.ErrUnknownTag})
		return
	}

	var raw map[string]any
	if !h.decode(w, r, &raw) {
		return
	}
	params, err := toParams(tag, raw)
	if err != nil {
		writeRenderError(w, r, err)
		return
	}

	res, err := h.svc.Render(r.Context(), ssml.Fragment{Tag: tag, Params: params})
	if err != nil {
		writeRenderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRenderResponse(res))
}

// Batch handles POST /api/v1/ssml/batch
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.Fragments) == 0 {
		writeError(w, http.StatusBadRequest, "fragments are required")
		return
	}

	frags := make([]ssml.Fragment, len(req.Fragments))
	for i, f := range req.Fragments {
		tag := ssml.Tag(f.Tag)
		params, err := toParams(tag, f.Params)
		if err != nil {
			writeRenderError(w, r, err)
			return
		}
		frags[i] = ssml.Fragment{Tag: tag, Params: params}
	}

	items, err := h.svc.RenderBatch(r.Context(), frags)
	if err != nil {
		writeRenderError(w, r, err)
		return
	}

	resp := BatchResponse{Results: make([]BatchItemResponse, 0, len(items))}
	for _, item := range items {
		out := BatchItemResponse{Index: item.Index, Tag: string(frags[item.Index].Tag)}
		if item.Err != nil {
			out.Error = item.Err.Error()
			var fe *ssml.FieldError
			if errors.As(item.Err, &fe) {
				out.Field = fe.Field
			}
		} else {
			out.ID = item.Result.ID
			out.SSML = item.Result.SSML
		}
		resp.Results = append(resp.Results, out)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Escape handles POST /api/v1/ssml/escape
func (h *Handler) Escape(w http.ResponseWriter, r *http.Request) {
	var req EscapeRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, EscapeResponse{Text: h.svc.Escape(req.Text)})
}

// ListPresets handles GET /api/v1/presets
func (h *Handler) ListPresets(w http.ResponseWriter, _ *http.Request) {
	presets := h.svc.Presets()
	resp := make([]PresetResponse, 0, len(presets))
	for _, p := range presets {
		resp = append(resp, PresetResponse{
			Name:        p.Name,
			Description: p.Description,
			Tag:         string(p.Tag),
			Params:      p.Params,
			Variables:   p.Variables,
		})
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Name < resp[j].Name })
	writeJSON(w, http.StatusOK, resp)
}

// RenderPreset handles POST /api/v1/presets/{name}/render
func (h *Handler) RenderPreset(w http.ResponseWriter, r *http.Request) {
	var req RenderPresetRequest
	if r.ContentLength != 0 {
		if !h.decode(w, r, &req) {
			return
		}
	}

	res, err := h.svc.RenderPreset(r.Context(), r.PathValue("name"), req.Variables)
	if err != nil {
		writeRenderError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toRenderResponse(res))
}

func toRenderResponse(res render.Result) RenderResponse {
	return RenderResponse{
		ID:     res.ID,
		Tag:    string(res.Tag),
		Preset: res.Preset,
		SSML:   res.SSML,
	}
}
