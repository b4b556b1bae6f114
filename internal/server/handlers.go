package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/glyphbrot/pkg/buildinfo"
	"github.com/matzehuels/glyphbrot/pkg/errors"
	"github.com/matzehuels/glyphbrot/pkg/httputil"
	"github.com/matzehuels/glyphbrot/pkg/pipeline"
	"github.com/matzehuels/glyphbrot/pkg/render/sink"
)

// HeaderFrameCache reports "hit" or "miss" for the escape field.
const HeaderFrameCache = "X-Frame-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.regions.All())
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	reg, ok := s.regions.Lookup(name)
	if !ok {
		httputil.WriteError(w, errors.New(errors.ErrCodeNotFound, "unknown region %q", name))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	opts, err := parseFrameQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts.Regions = s.regions
	opts.Logger = s.logger.With("request_id", httputil.RequestIDFromContext(r.Context()))

	if err := opts.ValidateAndSetDefaults(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := opts.CheckLimits(s.cfg.MaxCells, s.cfg.MaxIters); err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logger.Error("frame failed", "err", err)
		httputil.WriteError(w, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheInfo.FieldHit {
		cacheStatus = "hit"
	}
	w.Header().Set(HeaderFrameCache, cacheStatus)

	if result.Format == sink.FormatJSON {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifact)
}

// parseFrameQuery maps query parameters onto pipeline options.
// Explicit numeric parameters are checked here so that width=0 is an error
// rather than a request for the default.
func parseFrameQuery(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options

	bounds := []struct {
		name string
		dst  **float64
	}{
		{"xmin", &opts.XMin},
		{"xmax", &opts.XMax},
		{"ymin", &opts.YMin},
		{"ymax", &opts.YMax},
	}
	for _, b := range bounds {
		if !q.Has(b.name) {
			continue
		}
		v, err := strconv.ParseFloat(q.Get(b.name), 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidViewport, "%s: %q is not a number", b.name, q.Get(b.name))
		}
		*b.dst = pipeline.Float(v)
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"width", &opts.Width},
		{"height", &opts.Height},
		{"iters", &opts.MaxIters},
	}
	for _, p := range ints {
		if !q.Has(p.name) {
			continue
		}
		v, err := strconv.Atoi(q.Get(p.name))
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not an integer", p.name, q.Get(p.name))
		}
		*p.dst = v
	}
	if q.Has("width") || q.Has("height") {
		w, h := opts.Width, opts.Height
		if !q.Has("width") {
			w = pipeline.DefaultWidth
		}
		if !q.Has("height") {
			h = pipeline.DefaultHeight
		}
		if err := errors.ValidateResolution(w, h); err != nil {
			return opts, err
		}
	}
	if q.Has("iters") {
		if err := errors.ValidateIterations(opts.MaxIters); err != nil {
			return opts, err
		}
	}

	opts.Region = q.Get("region")
	opts.Charset = q.Get("charset")
	opts.Format = strings.ToLower(q.Get("format"))
	if q.Has("format") && opts.Format == "" {
		return opts, errors.New(errors.ErrCodeInvalidFormat, "format cannot be empty")
	}

	if q.Has("field") {
		v, err := strconv.ParseBool(q.Get("field"))
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "field: %q is not a boolean", q.Get("field"))
		}
		opts.WithField = v
	}
	if q.Has("refresh") {
		v, err := strconv.ParseBool(q.Get("refresh"))
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh: %q is not a boolean", q.Get("refresh"))
		}
		opts.Refresh = v
	}
	return opts, nil
}
