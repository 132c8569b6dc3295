package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/logger"
	"github.com/julianstephens/medimate/internal/tracker"
	"github.com/julianstephens/medimate/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageIndex   = "index.html"
	pageForm    = "add_edit.html"
	pageHistory = "history.html"
	pageAbout   = "about.html"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Meds *tracker.MedStore
	Log  *tracker.AdherenceLog
	// Store is optional; when set /health also checks the database
	Store Pinger
}

type Server struct {
	meds  *tracker.MedStore
	log   *tracker.AdherenceLog
	store Pinger
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"lastTaken": func(t *time.Time) string {
		return utils.FormatDisplay(t, "Never")
	},
	"display": func(t time.Time) string {
		return utils.FormatDisplay(&t, "")
	},
}

func NewServer(opts Options) (*Server, error) {
	if opts.Meds == nil || opts.Log == nil {
		return nil, errors.New("web server requires a medication store and an adherence log")
	}

	pages := map[string]*template.Template{}
	for _, page := range []string{pageIndex, pageForm, pageHistory, pageAbout} {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}

	return &Server{
		meds:  opts.Meds,
		log:   opts.Log,
		store: opts.Store,
		pages: pages,
	}, nil
}

// Routes returns the HTTP handler serving every page
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/add", s.handleAddForm)
	r.Post("/add", s.handleAdd)
	r.Get("/edit/{medID}", s.handleEditForm)
	r.Post("/edit/{medID}", s.handleEdit)
	r.Post("/take/{medID}", s.handleTake)
	r.Post("/delete/{medID}", s.handleDelete)
	r.Get("/history", s.handleHistory)
	r.Get("/about", s.handleAbout)
	r.Get("/health", s.handleHealth)

	r.NotFound(s.handleNotFound)

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// ready, if non-nil, receives the bound address once the listener is open.
func (s *Server) Run(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
	}

	if ready != nil {
		ready(ln.Addr())
	}
	logger.Info("Server listening", "addr", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownGrace)
	defer cancel()

	logger.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
