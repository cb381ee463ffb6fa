package handler

import (
	"context"
	"fmt"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/voicetyped/ssmlkit/pkg/ssml"
)

// Client calls a remote SSML service.
type Client struct {
	render       *connect.Client[structpb.Struct, structpb.Struct]
	renderPreset *connect.Client[structpb.Struct, structpb.Struct]
}

// NewClient creates a client for the service at baseURL.
func NewClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		render:       connect.NewClient[structpb.Struct, structpb.Struct](httpClient, baseURL+RenderProcedure, opts...),
		renderPreset: connect.NewClient[structpb.Struct, structpb.Struct](httpClient, baseURL+RenderPresetProcedure, opts...),
	}
}

// Render renders f remotely and returns the markup.
func (c *Client) Render(ctx context.Context, f ssml.Fragment) (string, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"tag":    string(f.Tag),
		"params": toAnyMap(f.Params),
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.render.CallUnary(ctx, connect.NewRequest(msg))
	if err != nil {
		return "", err
	}
	return resp.Msg.GetFields()["ssml"].GetStringValue(), nil
}

// RenderPreset renders the named preset remotely.
func (c *Client) RenderPreset(ctx context.Context, name string, vars map[string]string) (string, error) {
	msg, err := structpb.NewStruct(map[string]any{
		"name":      name,
		"variables": toAnyMap(vars),
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.renderPreset.CallUnary(ctx, connect.NewRequest(msg))
	if err != nil {
		return "", err
	}
	return resp.Msg.GetFields()["ssml"].GetStringValue(), nil
}

func toAnyMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
