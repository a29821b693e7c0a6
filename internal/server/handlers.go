package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/orbit"
	"github.com/litescript/ls-orrery/internal/state"
)

const (
	defaultWallRadius = 100.0
	defaultEventCount = 20
	maxModeBody       = 4 << 10
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"has_data": s.state.HasData(),
	})
}

// GET /api/v1/snapshot
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.state.HasData() {
		writeError(w, http.StatusServiceUnavailable, "no frame published yet")
		return
	}
	writeJSON(w, http.StatusOK, s.state.Snapshot())
}

// GET /api/v1/events?n=20
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	n := defaultEventCount
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 1000 {
			writeError(w, http.StatusBadRequest, "invalid n parameter, must be 1-1000")
			return
		}
		n = parsed
	}
	events := s.state.RecentEvents(n)
	if events == nil {
		events = []state.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

type starsResponse struct {
	Radius         float64                     `json:"radius"`
	Stars          []astro.PlacedStar          `json:"stars"`
	Constellations []astro.PlacedConstellation `json:"constellations,omitempty"`
	Warning        string                      `json:"warning,omitempty"`
}

// GET /api/v1/stars?radius=100&mag=4.5
func (s *Server) handleStars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	radius := defaultWallRadius
	if v := q.Get("radius"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil || !(parsed > 0) || math.IsInf(parsed, 0) {
			writeError(w, http.StatusBadRequest, "invalid radius parameter, must be a positive number")
			return
		}
		radius = parsed
	}

	catalog := s.catalog
	if v := q.Get("mag"); v != "" {
		limit, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(limit) {
			writeError(w, http.StatusBadRequest, "invalid mag parameter")
			return
		}
		catalog = catalog.Brighter(limit)
	}

	resp := starsResponse{
		Radius: radius,
		Stars:  astro.PlaceStars(catalog, radius),
	}
	figs, err := astro.PlaceConstellations(s.catalog, radius)
	if err != nil {
		s.logger.Debug("constellations unavailable: %v", err)
		resp.Warning = err.Error()
	} else {
		resp.Constellations = figs
	}
	writeJSON(w, http.StatusOK, resp)
}

type zodiacBoundary struct {
	Sign   astro.Sign `json:"sign"`
	Glyph  string     `json:"glyph"`
	LonDeg float64    `json:"lon"`
}

type zodiacResponse struct {
	Date        time.Time        `json:"date"`
	Sidereal    bool             `json:"sidereal"`
	AyanamsaDeg float64          `json:"ayanamsa"`
	Boundaries  []zodiacBoundary `json:"boundaries"`
}

// GET /api/v1/zodiac?sidereal=1&date=2024-03-20
func (s *Server) handleZodiac(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sidereal := false
	if v := q.Get("sidereal"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid sidereal parameter")
			return
		}
		sidereal = b
	}

	at := s.now().In(s.loc)
	if v := q.Get("date"); v != "" {
		t, err := orbit.ParseBirthDate(v, "", s.loc)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date parameter, want YYYY-MM-DD")
			return
		}
		at = t
	}

	bounds := astro.SignBoundaries(sidereal, at)
	resp := zodiacResponse{
		Date:        at,
		Sidereal:    sidereal,
		AyanamsaDeg: astro.Ayanamsa(at),
		Boundaries:  make([]zodiacBoundary, 0, astro.NumSigns),
	}
	for i, lon := range bounds {
		sign := astro.Sign(i)
		resp.Boundaries = append(resp.Boundaries, zodiacBoundary{
			Sign:   sign,
			Glyph:  string(sign.Glyph()),
			LonDeg: lon,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// modeRequest is the body of POST /api/v1/mode.
type modeRequest struct {
	Mode       string `json:"mode,omitempty"`
	Frame      string `json:"frame,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
	BirthTime  string `json:"birth_time,omitempty"`
	ClearBirth bool   `json:"clear_birth,omitempty"`
}

func (s *Server) parseCommand(req modeRequest) (Command, error) {
	var cmd Command
	if req.Mode != "" {
		m, err := orbit.ParseMode(req.Mode)
		if err != nil {
			return Command{}, err
		}
		cmd.Mode = &m
	}
	if req.Frame != "" {
		f, err := ephem.ParseFrame(req.Frame)
		if err != nil {
			return Command{}, err
		}
		cmd.Frame = &f
	}
	if req.BirthDate != "" {
		if req.ClearBirth {
			return Command{}, errors.New("birth_date and clear_birth are exclusive")
		}
		t, err := orbit.ParseBirthDate(req.BirthDate, req.BirthTime, s.loc)
		if err != nil {
			return Command{}, err
		}
		cmd.Birth = &t
	}
	cmd.ClearBirth = req.ClearBirth
	if cmd.Mode == nil && cmd.Frame == nil && cmd.Birth == nil && !cmd.ClearBirth {
		return Command{}, errors.New("empty command")
	}
	return cmd, nil
}

// POST /api/v1/mode
func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	if s.commands == nil {
		writeError(w, http.StatusNotImplemented, "control is disabled")
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		writeError(w, http.StatusUnsupportedMediaType, "content type must be application/json")
		return
	}

	var req modeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxModeBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid body: %v", err))
		return
	}

	cmd, err := s.parseCommand(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.commands.Submit(cmd); err != nil {
		if errors.Is(err, ErrBusy) {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"queued": true})
}
