package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"google.golang.org/genproto/googleapis/api/httpbody"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"go.klb.dev/clipshelf/internal/clip"
	"go.klb.dev/clipshelf/internal/cliphist"
	"go.klb.dev/clipshelf/internal/history"
	"go.klb.dev/clipshelf/internal/runner"
	"go.klb.dev/clipshelf/internal/wire"
)

type historyResponse struct {
	Entries []history.Entry `json:"entries"`
}

// newGateway builds the HTTP/JSON surface. Entry content is served as raw
// text through httpbody; everything else is JSON.
func (s *Server) newGateway() (*gwruntime.ServeMux, error) {
	mux := gwruntime.NewServeMux(
		gwruntime.WithMarshalerOption(gwruntime.MIMEWildcard, &gwruntime.HTTPBodyMarshaler{
			Marshaler: &gwruntime.JSONPb{
				MarshalOptions:   protojson.MarshalOptions{EmitUnpopulated: true},
				UnmarshalOptions: protojson.UnmarshalOptions{DiscardUnknown: true},
			},
		}),
	)

	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/history", s.handleHistory},
		{http.MethodGet, "/v1/history/search", s.handleSearch},
		{http.MethodGet, "/v1/entries/{id}", s.handleEntry},
		{http.MethodDelete, "/v1/entries/{id}", s.handleDelete},
		{http.MethodPost, "/v1/clipboard", s.handleCopy},
		{http.MethodGet, "/v1/status", s.handleStatus},
	}
	for _, rt := range routes {
		if err := mux.HandlePath(rt.method, rt.pattern, rt.handler); err != nil {
			return nil, fmt.Errorf("route %s %s: %w", rt.method, rt.pattern, err)
		}
	}
	return mux, nil
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	entries, err := s.cmds.GetHistory(r.Context())
	if err != nil {
		s.httpError(w, r, err)
		return
	}
	s.writeJSON(w, r, historyResponse{Entries: nonNil(entries)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	entries, err := s.cmds.SearchHistory(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.httpError(w, r, err)
		return
	}
	s.writeJSON(w, r, historyResponse{Entries: nonNil(entries)})
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request, params map[string]string) {
	content, err := s.cmds.GetEntryContent(r.Context(), params["id"])
	if err != nil {
		s.httpError(w, r, err)
		return
	}
	s.forward(w, r, &httpbody.HttpBody{
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(content),
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if err := s.cmds.DeleteEntry(r.Context(), params["id"]); err != nil {
		s.httpError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	body, err := io.ReadAll(io.LimitReader(r.Body, wire.MaxMessageSize+1))
	if err != nil {
		s.httpError(w, r, status.Errorf(codes.InvalidArgument, "read body: %v", err))
		return
	}
	if len(body) > wire.MaxMessageSize {
		s.httpError(w, r, status.Errorf(codes.InvalidArgument, "content larger than %d bytes", wire.MaxMessageSize))
		return
	}
	if err := s.cmds.CopyToClipboard(r.Context(), string(body)); err != nil {
		s.httpError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	s.forward(w, r, checkResponse(s.cmds.IsCliphistAvailable(r.Context())))
}

func (s *Server) forward(w http.ResponseWriter, r *http.Request, resp proto.Message) {
	_, outbound := gwruntime.MarshalerForRequest(s.gw, r)
	ctx := gwruntime.NewServerMetadataContext(r.Context(), gwruntime.ServerMetadata{})
	gwruntime.ForwardResponseMessage(ctx, s.gw, outbound, w, r, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	_, outbound := gwruntime.MarshalerForRequest(s.gw, r)
	buf, err := outbound.Marshal(v)
	if err != nil {
		s.httpError(w, r, fmt.Errorf("marshal response: %w", err))
		return
	}
	w.Header().Set("Content-Type", outbound.ContentType(v))
	_, _ = w.Write(buf)
}

func (s *Server) httpError(w http.ResponseWriter, r *http.Request, err error) {
	_, outbound := gwruntime.MarshalerForRequest(s.gw, r)
	gwruntime.HTTPError(r.Context(), s.gw, outbound, w, r, toStatus(err))
}

// toStatus maps command failures onto gRPC codes; the gateway turns those
// into HTTP statuses. The message is always the command's own.
func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := codes.Internal
	switch {
	case errors.Is(err, cliphist.ErrEmptyID):
		code = codes.InvalidArgument
	case errors.Is(err, clip.ErrNoProvider):
		code = codes.Unavailable
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	default:
		switch runner.KindOf(err) {
		case runner.KindLaunch:
			code = codes.Unavailable
		case runner.KindExit:
			code = codes.FailedPrecondition
		case runner.KindPipe:
			code = codes.Internal
		}
	}
	return status.Error(code, err.Error())
}

func nonNil(entries []history.Entry) []history.Entry {
	if entries == nil {
		return []history.Entry{}
	}
	return entries
}
