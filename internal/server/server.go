package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/epfl-cs212/imgstore/pkg/imgstore"
)

// Server is the HTTP front-end over one imgStore file. Each request opens
// the store, runs a single operation and closes it again, so the handle's
// single-writer discipline holds without request serialisation beyond the
// store's own file lock.
type Server struct {
	cfg Config
	log *logrus.Logger
}

// New returns a Server for cfg, logging through log.
func New(cfg Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Server{cfg: cfg, log: log}
}

// Handler returns the route table: the three imgStore API routes plus a
// static file server on the document root for everything else.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/imgStore/list", s.handleList)
	mux.HandleFunc("/imgStore/read", s.handleRead)
	mux.HandleFunc("/imgStore/delete", s.handleDelete)
	mux.Handle("/", http.FileServer(http.Dir(s.cfg.DocRoot)))

	return s.logged(mux)
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.WithFields(logrus.Fields{
		"listen": s.cfg.Listen,
		"store":  s.cfg.StorePath,
	}).Info("imgstore server starting")

	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return srv.ListenAndServe()
}

func (s *Server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Info("request")
	})
}

// fail reports an engine error as a 500 with the taxonomy message, matching
// the CLI's user-visible error mapping.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.log.WithFields(logrus.Fields{
		"path":  r.URL.Path,
		"error": err,
	}).Error("request failed")

	http.Error(w, "Error: "+imgstore.Message(err), http.StatusInternalServerError)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	st, err := imgstore.Open(s.cfg.StorePath, imgstore.ReadOnly)
	if err != nil {
		s.fail(w, r, err)

		return
	}
	defer st.Close()

	w.Header().Set("Content-Type", "application/json")

	if err := st.List(w, imgstore.ListJSON); err != nil {
		s.fail(w, r, err)
	}
}

func (s *Server) handleRead(w http.ResponseWriter, r *http.Request) {
	imgID := r.URL.Query().Get("img_id")
	if imgID == "" {
		s.fail(w, r, imgstore.ErrInvalidImgID)

		return
	}

	resName := r.URL.Query().Get("res")
	if resName == "" {
		resName = "orig"
	}

	res, err := imgstore.ParseResolution(resName)
	if err != nil {
		s.fail(w, r, err)

		return
	}

	// Read-write: serving a reduced variant may materialise it.
	st, err := imgstore.Open(s.cfg.StorePath, imgstore.ReadWrite)
	if err != nil {
		s.fail(w, r, err)

		return
	}
	defer st.Close()

	img, err := st.Read(imgID, res)
	if err != nil {
		s.fail(w, r, err)

		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	_, _ = w.Write(img)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	imgID := r.URL.Query().Get("img_id")
	if imgID == "" {
		s.fail(w, r, imgstore.ErrInvalidImgID)

		return
	}

	st, err := imgstore.Open(s.cfg.StorePath, imgstore.ReadWrite)
	if err != nil {
		s.fail(w, r, err)

		return
	}
	defer st.Close()

	if err := st.Delete(imgID); err != nil {
		s.fail(w, r, err)

		return
	}

	w.WriteHeader(http.StatusOK)
}
