// Package server exposes the notation and interval operations over HTTP.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/Reu7en/Intervision-sub000/beam"
	"github.com/Reu7en/Intervision-sub000/beat"
	"github.com/Reu7en/Intervision-sub000/codec"
	"github.com/Reu7en/Intervision-sub000/config"
	"github.com/Reu7en/Intervision-sub000/file"
	"github.com/Reu7en/Intervision-sub000/interval"
	"github.com/Reu7en/Intervision-sub000/live"
	"github.com/Reu7en/Intervision-sub000/model"
)

const RequestIDHeader = "X-Request-Id"

type Server struct {
	cfg      *config.Config
	sessions *live.Registry
}

func New(cfg *config.Config) *Server {
	s := &Server{cfg: cfg}
	s.sessions = live.NewRegistry(func(score model.Score) ([]interval.Result, error) {
		return s.analyze(score, cfg.Analysis)
	}, cfg.Debounce)
	return s
}

func (s *Server) lowOctave(override *int) int {
	if override != nil {
		return *override
	}
	return s.cfg.LowOctave
}

func (s *Server) analyze(score model.Score, opts interval.Options) ([]interval.Result, error) {
	return interval.AnalyzeScore(score, s.cfg.LowOctave, opts, s.cfg.WorkerCount())
}

// Router wires every route behind CORS and request logging.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/beats", s.HandleBeats).Methods(http.MethodPost)
	router.HandleFunc("/segments", s.HandleSegments).Methods(http.MethodPost)
	router.HandleFunc("/commit", s.HandleCommit).Methods(http.MethodPost)
	router.HandleFunc("/intervals", s.HandleIntervals).Methods(http.MethodPost)
	router.HandleFunc("/palette", s.HandlePalette).Methods(http.MethodGet)
	router.HandleFunc("/sessions", s.HandleOpenSession).Methods(http.MethodPost)
	router.HandleFunc("/sessions/{id}", s.HandleUpdateSession).Methods(http.MethodPut)
	router.HandleFunc("/sessions/{id}", s.HandleCloseSession).Methods(http.MethodDelete)
	router.HandleFunc("/sessions/{id}/lines", s.HandleLines).Methods(http.MethodGet)
	router.Use(requestLogger)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})
	return c.Handler(router)
}

func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logrus.WithField("addr", s.cfg.Addr).Info("listening")
	return srv.ListenAndServe()
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"request": id,
			"method":  r.Method,
			"path":    r.URL.Path,
			"elapsed": time.Since(start),
		}).Debug("handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("could not write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func decode[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	v, err := file.Decode[T](r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return v, true
}

func (s *Server) HandleBeats(w http.ResponseWriter, r *http.Request) {
	bar, ok := decode[model.Bar](w, r)
	if !ok {
		return
	}
	beats, err := beat.Split(*bar)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	beams, err := beam.Bar(*bar)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, BeatsResponse{Beats: beats, Beams: beams})
}

func (s *Server) HandleSegments(w http.ResponseWriter, r *http.Request) {
	body, ok := decode[SegmentsRequestBody](w, r)
	if !ok {
		return
	}
	segs, err := codec.Segments(body.Bar, s.lowOctave(body.LowOctave))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if segs == nil {
		segs = []model.Segment{}
	}
	writeJSON(w, http.StatusOK, segs)
}

// HandleCommit always answers with a bar; a bar that could not be notated
// comes back as a whole-bar rest with a warning.
func (s *Server) HandleCommit(w http.ResponseWriter, r *http.Request) {
	body, ok := decode[CommitRequestBody](w, r)
	if !ok {
		return
	}
	if !s.cfg.ResolveKey(&body.Bar.Key) {
		logrus.WithField("key", body.Bar.Key.Name).Warn("unknown key signature")
	}
	var res CommitResponse
	bar, err := codec.Commit(body.Bar, body.Segments, s.lowOctave(body.LowOctave))
	res.Bar = bar
	if err != nil {
		res.Warning = err.Error()
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) HandleIntervals(w http.ResponseWriter, r *http.Request) {
	body, ok := decode[IntervalsRequestBody](w, r)
	if !ok {
		return
	}
	opts := s.cfg.Analysis
	if body.Options != nil {
		opts = *body.Options
	}
	results, err := s.analyze(body.Score, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if body.Bar != nil {
		i := *body.Bar
		if i < 0 || i >= len(results) {
			writeError(w, http.StatusBadRequest, errors.Errorf("bar %d out of range", i))
			return
		}
		results = results[i : i+1]
	}
	writeJSON(w, http.StatusOK, IntervalsResponse{Bars: results, Palette: s.cfg.Palette})
}

func (s *Server) HandlePalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Palette)
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*live.Session, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "session id"))
		return nil, false
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	score, ok := decode[model.Score](w, r)
	if !ok {
		return
	}
	sess := s.sessions.Open(*score)
	writeJSON(w, http.StatusCreated, SessionResponse{ID: sess.ID.String(), Seq: sess.Seq()})
}

func (s *Server) HandleUpdateSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	score, ok := decode[model.Score](w, r)
	if !ok {
		return
	}
	seq := sess.Update(*score)
	writeJSON(w, http.StatusAccepted, SessionResponse{ID: sess.ID.String(), Seq: seq})
}

func (s *Server) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := s.sessions.Close(sess.ID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLines returns the latest published analysis of a session. Fresh is
// false while a newer edit is still pending.
func (s *Server) HandleLines(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	snap, fresh := sess.Latest()
	writeJSON(w, http.StatusOK, LinesResponse{Snapshot: snap, Fresh: fresh, Palette: s.cfg.Palette})
}
