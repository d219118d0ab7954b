package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/waypath/pkg/buildinfo"
	werrors "github.com/matzehuels/waypath/pkg/errors"
	wio "github.com/matzehuels/waypath/pkg/io"
	"github.com/matzehuels/waypath/pkg/planner"
	"github.com/matzehuels/waypath/pkg/render"
	"github.com/matzehuels/waypath/pkg/search"
)

type errorBody struct {
	Code    werrors.Code `json:"code"`
	Message string       `json:"message"`
}

type nodeBody struct {
	ID     string `json:"id"`
	Degree int    `json:"degree"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Version,
		"nodes":   s.ds.Graph.NodeCount(),
		"edges":   s.ds.Graph.EdgeCount(),
	})
}

func (s *Server) handleNodes(w http.ResponseWriter, r *http.Request) {
	ids := s.ds.Graph.Nodes()
	out := make([]nodeBody, len(ids))
	for i, id := range ids {
		out[i] = nodeBody{ID: id, Degree: s.ds.Graph.Degree(id)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := wio.WriteJSON(s.ds.Graph, s.ds.Positions, w); err != nil {
		s.logger.Error("write graph", "err", err)
	}
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	req, err := s.request(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Route(r.Context(), s.ds, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePaths(w http.ResponseWriter, r *http.Request) {
	req, err := s.request(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	limit := s.limit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, r, werrors.New(werrors.ErrCodeInvalidInput, "limit must be a positive integer"))
			return
		}
		limit = min(n, s.limit)
	}
	res, err := s.runner.Paths(r.Context(), s.ds, req, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleRender draws the map. Without from and to the bare map is drawn.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format := render.FormatSVG
	if v := q.Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			s.writeError(w, r, werrors.Wrap(werrors.ErrCodeInvalidFormat, err, "format"))
			return
		}
		format = f
	}

	var route []string
	title := ""
	if q.Get("from") != "" || q.Get("to") != "" {
		req, err := s.request(r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		res, err := s.runner.Route(r.Context(), s.ds, req)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		route = res.Path
		title = res.From + " to " + res.To
	}

	data, err := s.runner.Render(r.Context(), s.ds, route, format, title)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// request reads from, to, algorithm and refresh from the query string.
func (s *Server) request(r *http.Request) (planner.Request, error) {
	q := r.URL.Query()
	req := planner.Request{
		From:      q.Get("from"),
		To:        q.Get("to"),
		Algorithm: s.algorithm,
	}
	if req.From == "" || req.To == "" {
		return req, werrors.New(werrors.ErrCodeInvalidInput, "query parameters from and to are required")
	}
	if v := q.Get("algorithm"); v != "" {
		a, err := search.ParseAlgorithm(v)
		if err != nil {
			return req, werrors.Wrap(werrors.ErrCodeInvalidAlgorithm, err, "algorithm")
		}
		req.Algorithm = a
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return req, werrors.New(werrors.ErrCodeInvalidInput, "refresh must be a boolean")
		}
		req.Refresh = refresh
	}
	return req, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := werrors.Classify(err)
	status := werrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorBody{Code: code, Message: werrors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
