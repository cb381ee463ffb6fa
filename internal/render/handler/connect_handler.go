package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/voicetyped/ssmlkit/internal/render"
	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

const (
	// ServiceName is the fully-qualified name of the SSML RPC service.
	ServiceName = "ssmlkit.v1.SSMLService"

	RenderProcedure       = "/" + ServiceName + "/Render"
	RenderPresetProcedure = "/" + ServiceName + "/RenderPreset"
)

// RPCHandler serves the SSML service over Connect, gRPC and gRPC-Web.
// Messages are google.protobuf.Struct values:
//
//	Render:       {"tag": "break", "params": {"time": "200"}}
//	RenderPreset: {"name": "hold-pause", "variables": {"x": "y"}}
//	response:     {"id": "...", "tag": "break", "ssml": "<break time=200ms/>"}
type RPCHandler struct {
	svc *render.Service
}

// NewRPCHandler returns the mount path and handler for the SSML service.
func NewRPCHandler(svc *render.Service, opts ...connect.HandlerOption) (string, http.Handler) {
	h := &RPCHandler{svc: svc}

	mux := http.NewServeMux()
	mux.Handle(RenderProcedure, connect.NewUnaryHandler(RenderProcedure, h.Render, opts...))
	mux.Handle(RenderPresetProcedure, connect.NewUnaryHandler(RenderPresetProcedure, h.RenderPreset, opts...))
	return "/" + ServiceName + "/", mux
}

func (h *RPCHandler) Render(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	fields := req.Msg.GetFields()
	tag := ssml.Tag(fields["tag"].GetStringValue())
	if tag == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("tag is required"))
	}

	params, err := toParams(tag, fields["params"].GetStructValue().AsMap())
	if err != nil {
		return nil, toConnectError(err)
	}

	res, err := h.svc.Render(ctx, ssml.Fragment{Tag: tag, Params: params})
	if err != nil {
		return nil, toConnectError(err)
	}
	return resultResponse(res)
}

func (h *RPCHandler) RenderPreset(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
	fields := req.Msg.GetFields()
	name := fields["name"].GetStringValue()
	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("name is required"))
	}

	vars, err := toParams("", fields["variables"].GetStructValue().AsMap())
	if err != nil {
		return nil, toConnectError(err)
	}

	res, err := h.svc.RenderPreset(ctx, name, vars)
	if err != nil {
		return nil, toConnectError(err)
	}
	return resultResponse(res)
}

func resultResponse(res render.Result) (*connect.Response[structpb.Struct], error) {
	msg, err := structpb.NewStruct(map[string]any{
		"id":     res.ID,
		"tag":    string(res.Tag),
		"preset": res.Preset,
		"ssml":   res.SSML,
	})
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, fmt.Errorf("encode response: %w", err))
	}
	return connect.NewResponse(msg), nil
}

func toConnectError(err error) error {
	var fe *ssml.FieldError
	switch {
	case errors.Is(err, render.ErrPresetNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.As(err, &fe):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
