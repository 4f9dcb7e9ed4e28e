package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Sumatoshi-tech/codefolio/internal/dataset"
	"github.com/Sumatoshi-tech/codefolio/internal/github"
	"github.com/Sumatoshi-tech/codefolio/pkg/commits"
	"github.com/Sumatoshi-tech/codefolio/pkg/projects"
	"github.com/Sumatoshi-tech/codefolio/pkg/scale"
	"github.com/Sumatoshi-tech/codefolio/pkg/selection"
)

const maxRequestBody = 1 << 20

// Request errors.
var (
	ErrBothRegionAndDomain = errors.New("give either region or domain, not both")
	ErrEmptyWindow         = errors.New("domain window needs from and to")
)

// DomainWindow is a selection expressed as a time window and an hour band.
// Bounds are RFC 3339 or bare dates; a bare To covers that whole day. A
// missing HourMax means the end of the day.
type DomainWindow struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	HourMin float64  `json:"hourMin"`
	HourMax *float64 `json:"hourMax,omitempty"`
}

// SelectionRequest is the body of POST /api/selection. Region is in plot
// coordinates; null or absent clears the selection.
type SelectionRequest struct {
	Region [][]float64   `json:"region"`
	Domain *DomainWindow `json:"domain,omitempty"`
}

// SelectionResponse echoes the applied region with the derived views.
type SelectionResponse struct {
	Region [][]float64     `json:"region"`
	Views  selection.Views `json:"views"`
}

// CommitResponse is one commit with its tooltip content.
type CommitResponse struct {
	commits.Summary

	Tooltip commits.TooltipInfo `json:"tooltip"`
}

// ProjectsResponse is a filtered project listing.
type ProjectsResponse struct {
	Filter   projects.Filter      `json:"filter"`
	Total    int                  `json:"total"`
	Projects []projects.Project   `json:"projects"`
	PerYear  []projects.YearCount `json:"perYear"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes the given value as JSON and writes it to the response writer.
func (s *Server) writeJSON(ctx context.Context, rw http.ResponseWriter, status int, value any) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	encodeErr := json.NewEncoder(rw).Encode(value)
	if encodeErr != nil {
		s.logger.ErrorContext(ctx, "failed to encode JSON response", "error", encodeErr)
	}
}

func (s *Server) writeError(ctx context.Context, rw http.ResponseWriter, status int, msg string) {
	s.writeJSON(ctx, rw, status, errorResponse{Error: msg})
}

// current returns the loaded dataset or answers 503.
func (s *Server) current(rw http.ResponseWriter, hr *http.Request) (*dataset.Dataset, bool) {
	ds := s.dataset.Load()
	if ds == nil {
		s.writeError(hr.Context(), rw, http.StatusServiceUnavailable, ErrNotLoaded.Error())

		return nil, false
	}

	return ds, true
}

func (s *Server) handleCommits(rw http.ResponseWriter, hr *http.Request) {
	ds, ok := s.current(rw, hr)
	if !ok {
		return
	}

	s.writeJSON(hr.Context(), rw, http.StatusOK, ds.Commits.Summaries())
}

func (s *Server) handleCommit(rw http.ResponseWriter, hr *http.Request) {
	ds, ok := s.current(rw, hr)
	if !ok {
		return
	}

	summary, found := ds.Commits.Get(hr.PathValue("id"))
	if !found {
		s.writeError(hr.Context(), rw, http.StatusNotFound, "unknown commit")

		return
	}

	s.writeJSON(hr.Context(), rw, http.StatusOK, CommitResponse{
		Summary: summary,
		Tooltip: commits.Tooltip(summary, s.cfg.CommitOptions.Location),
	})
}

func (s *Server) handleStats(rw http.ResponseWriter, hr *http.Request) {
	ds, ok := s.current(rw, hr)
	if !ok {
		return
	}

	s.writeJSON(hr.Context(), rw, http.StatusOK, ds.Stats)
}

func (s *Server) handleSelection(rw http.ResponseWriter, hr *http.Request) {
	ds, ok := s.current(rw, hr)
	if !ok {
		return
	}

	var req SelectionRequest

	decodeErr := json.NewDecoder(io.LimitReader(hr.Body, maxRequestBody)).Decode(&req)
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		s.writeError(hr.Context(), rw, http.StatusBadRequest, "invalid request body")

		return
	}

	region, err := resolveRegion(ds, req)
	if err != nil {
		s.writeError(hr.Context(), rw, http.StatusBadRequest, err.Error())

		return
	}

	s.writeJSON(hr.Context(), rw, http.StatusOK, SelectionResponse{
		Region: region.Corners(),
		Views:  ds.Select(region),
	})
}

func resolveRegion(ds *dataset.Dataset, req SelectionRequest) (*selection.Region, error) {
	if req.Domain == nil {
		return selection.FromCorners(req.Region)
	}

	if req.Region != nil {
		return nil, ErrBothRegionAndDomain
	}

	d := req.Domain
	if d.From == "" || d.To == "" {
		return nil, ErrEmptyWindow
	}

	from, err := scale.ParseBound(d.From, false)
	if err != nil {
		return nil, err
	}

	to, err := scale.ParseBound(d.To, true)
	if err != nil {
		return nil, err
	}

	return ds.Plot.WindowRegion(from, to, d.HourMin, d.HourMax)
}

func (s *Server) handleProjects(rw http.ResponseWriter, hr *http.Request) {
	state := s.projects.Load()
	if state == nil || state.err != nil {
		s.writeError(hr.Context(), rw, http.StatusInternalServerError, projects.FailureMessage)

		return
	}

	query := hr.URL.Query()
	filter := projects.Filter{Query: query.Get("q"), Year: query.Get("year")}
	matched := filter.Apply(state.list)

	s.writeJSON(hr.Context(), rw, http.StatusOK, ProjectsResponse{
		Filter:   filter,
		Total:    len(matched),
		Projects: matched,
		// Year counts follow the text search only.
		PerYear: projects.PerYear(projects.ByQuery(state.list, filter.Query)),
	})
}

func (s *Server) handleGitHub(rw http.ResponseWriter, hr *http.Request) {
	if s.github == nil || s.cfg.GitHubUser == "" {
		s.writeError(hr.Context(), rw, http.StatusNotFound, "github stats disabled")

		return
	}

	stats, err := s.github.Profile(hr.Context(), s.cfg.GitHubUser)
	if err != nil {
		s.logger.WarnContext(hr.Context(), "github profile fetch failed", "user", s.cfg.GitHubUser, "error", err)
		s.writeError(hr.Context(), rw, http.StatusBadGateway, github.FailureMessage)

		return
	}

	s.writeJSON(hr.Context(), rw, http.StatusOK, stats)
}
