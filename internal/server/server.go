// Package server implements the MCP stdio transport: a JSON-RPC 2.0
// request/response loop over stdin/stdout that dispatches to the tool layer.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/fogcast/fogcast-mcp/internal/config"
	"github.com/fogcast/fogcast-mcp/internal/tools"
)

const protocolVersion = "2024-11-05"

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int            `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

const (
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeResourceError  = -32002
)

// Server serves the MCP protocol over a reader/writer pair.
type Server struct {
	name    string
	version string
	tools   *tools.Tools
	log     *zap.SugaredLogger
}

func New(name, version string, t *tools.Tools) *Server {
	return &Server{
		name:    name,
		version: version,
		tools:   t,
		log:     config.GetLogger(),
	}
}

// Run decodes requests from in and writes responses to out until in is
// exhausted or ctx is cancelled. Notifications (requests without an id)
// receive no response.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	dec := json.NewDecoder(in)
	enc := json.NewEncoder(out)
	for {
		var req Request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		resp := s.Handle(ctx, req)
		if resp == nil {
			continue
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
}

// Handle dispatches one request. It returns nil for notifications.
func (s *Server) Handle(ctx context.Context, req Request) *Response {
	if req.ID == nil {
		// Notification, e.g. notifications/initialized. Nothing to answer.
		return nil
	}
	id := *req.ID

	switch req.Method {
	case "initialize":
		return s.result(id, map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]any{
				"tools":     map[string]any{},
				"resources": map[string]any{},
			},
			"serverInfo": map[string]any{
				"name":    s.name,
				"version": s.version,
			},
		})

	case "ping":
		return s.result(id, map[string]any{})

	case "tools/list":
		return s.result(id, map[string]any{"tools": s.tools.Definitions()})

	case "tools/call":
		var p struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil || p.Name == "" {
			return s.fail(id, codeInvalidParams, "invalid tool call params")
		}
		env := s.tools.Call(ctx, p.Name, p.Arguments)
		text, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return s.fail(id, codeInvalidParams, "failed to encode tool result")
		}
		return s.result(id, map[string]any{
			"content": []map[string]any{{"type": "text", "text": string(text)}},
			"isError": !env.Success,
		})

	case "resources/list":
		return s.result(id, map[string]any{"resources": s.tools.Resources()})

	case "resources/read":
		var p struct {
			URI string `json:"uri"`
		}
		if err := json.Unmarshal(req.Params, &p); err != nil || p.URI == "" {
			return s.fail(id, codeInvalidParams, "invalid resource read params")
		}
		env, err := s.tools.ReadResource(ctx, p.URI)
		if err != nil {
			return s.fail(id, codeResourceError, err.Error())
		}
		text, err := json.MarshalIndent(env, "", "  ")
		if err != nil {
			return s.fail(id, codeResourceError, "failed to encode resource")
		}
		return s.result(id, map[string]any{
			"contents": []map[string]any{{
				"uri":      p.URI,
				"mimeType": "application/json",
				"text":     string(text),
			}},
		})

	default:
		s.log.Debugw("unknown method", "method", req.Method)
		return s.fail(id, codeMethodNotFound, "method not found")
	}
}

func (s *Server) result(id int, result any) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Result: result}
}

func (s *Server) fail(id, code int, message string) *Response {
	return &Response{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}}
}
