package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	boogercontext "github.com/CryptArtificer/booger/internal/context"
	"github.com/CryptArtificer/booger/internal/store"
)

// AnnotateInput is the input schema for the annotate tool.
type AnnotateInput struct {
	Root      string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	Target    string `json:"target" jsonschema:"file, symbol, or line-range target for the note"`
	Note      string `json:"note" jsonschema:"the note text"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session ID to scope this annotation to; empty means global"`
	TTL       int64  `json:"ttl_seconds,omitempty" jsonschema:"expiry in seconds, 0 means no expiry"`
}

// AnnotateOutput reports the new annotation's id.
type AnnotateOutput struct {
	ID int64 `json:"id"`
}

func (s *Server) handleAnnotate(_ context.Context, _ *mcp.CallToolRequest, input AnnotateInput) (*mcp.CallToolResult, AnnotateOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("annotate", requestID)

	if input.Target == "" || input.Note == "" {
		err := NewInvalidParamsError("target and note are required")
		s.logToolDone("annotate", requestID, err)
		return nil, AnnotateOutput{}, err
	}

	root := s.resolveRoot(input.Root)
	id, err := boogercontext.Annotate(root, s.cfg, input.Target, input.Note, input.SessionID, input.TTL)
	s.logToolDone("annotate", requestID, err)
	if err != nil {
		return nil, AnnotateOutput{}, MapError(err)
	}
	return nil, AnnotateOutput{ID: id}, nil
}

// AnnotationsInput is the input schema for the annotations tool.
type AnnotationsInput struct {
	Root      string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	Target    string `json:"target,omitempty" jsonschema:"filter by exact target"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session ID scoping visibility"`
}

// AnnotationsOutput wraps a list of annotations.
type AnnotationsOutput struct {
	Annotations []store.Annotation `json:"annotations"`
}

func (s *Server) handleAnnotations(_ context.Context, _ *mcp.CallToolRequest, input AnnotationsInput) (*mcp.CallToolResult, AnnotationsOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("annotations", requestID)

	root := s.resolveRoot(input.Root)
	annotations, err := boogercontext.Annotations(root, s.cfg, input.Target, input.SessionID)
	s.logToolDone("annotations", requestID, err)
	if err != nil {
		return nil, AnnotationsOutput{}, MapError(err)
	}
	return nil, AnnotationsOutput{Annotations: annotations}, nil
}

// ForgetInput is the input schema for the forget tool.
type ForgetInput struct {
	Root string `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	ID   int64  `json:"id" jsonschema:"annotation id to remove"`
}

// OKOutput is a generic acknowledgement output.
type OKOutput struct {
	OK bool `json:"ok"`
}

func (s *Server) handleForget(_ context.Context, _ *mcp.CallToolRequest, input ForgetInput) (*mcp.CallToolResult, OKOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("forget", requestID)

	root := s.resolveRoot(input.Root)
	err := boogercontext.Forget(root, s.cfg, input.ID)
	s.logToolDone("forget", requestID, err)
	if err != nil {
		return nil, OKOutput{}, MapError(err)
	}
	return nil, OKOutput{OK: true}, nil
}

// WorksetInput is the shared input schema for the focus and visit tools.
type WorksetInput struct {
	Root      string   `json:"root,omitempty" jsonschema:"project root override; defaults to the server's bound root"`
	Paths     []string `json:"paths" jsonschema:"paths to mark"`
	SessionID string   `json:"session_id,omitempty" jsonschema:"session ID to scope this to"`
}

func (s *Server) handleFocus(_ context.Context, _ *mcp.CallToolRequest, input WorksetInput) (*mcp.CallToolResult, OKOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("focus", requestID)

	if len(input.Paths) == 0 {
		err := NewInvalidParamsError("paths is required")
		s.logToolDone("focus", requestID, err)
		return nil, OKOutput{}, err
	}

	root := s.resolveRoot(input.Root)
	err := boogercontext.Focus(root, s.cfg, input.Paths, input.SessionID)
	s.logToolDone("focus", requestID, err)
	if err != nil {
		return nil, OKOutput{}, MapError(err)
	}
	return nil, OKOutput{OK: true}, nil
}

func (s *Server) handleVisit(_ context.Context, _ *mcp.CallToolRequest, input WorksetInput) (*mcp.CallToolResult, OKOutput, error) {
	requestID := generateRequestID()
	s.logToolStart("visit", requestID)

	if len(input.Paths) == 0 {
		err := NewInvalidParamsError("paths is required")
		s.logToolDone("visit", requestID, err)
		return nil, OKOutput{}, err
	}

	root := s.resolveRoot(input.Root)
	err := boogercontext.Visit(root, s.cfg, input.Paths, input.SessionID)
	s.logToolDone("visit", requestID, err)
	if err != nil {
		return nil, OKOutput{}, MapError(err)
	}
	return nil, OKOutput{OK: true}, nil
}
