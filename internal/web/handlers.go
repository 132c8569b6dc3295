package web

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/julianstephens/medimate/internal/logger"
	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/validation"
)

type formMode string

const (
	modeAdd  formMode = "add"
	modeEdit formMode = "edit"
)

type pageData struct {
	Title    string
	Flashes  []Flash
	Meds     []models.Medication
	Logs     []models.LogEntry
	Day      models.LogFilter
	Mode     formMode
	MedID    int64
	Form     models.MedicationInput
	NotFound bool
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	data.Flashes = append(popFlashes(w, r), data.Flashes...)

	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logger.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (s *Server) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// medID parses the {medID} route parameter. ok is false for anything that
// is not a positive integer.
func medID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "medID"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func readForm(r *http.Request) models.MedicationInput {
	return models.MedicationInput{
		Name:     r.PostFormValue("name"),
		Dose:     r.PostFormValue("dose"),
		Schedule: r.PostFormValue("schedule"),
		Notes:    r.PostFormValue("notes"),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	meds, err := s.meds.ListAll(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, pageIndex, pageData{
		Title: "MediMate • Medications",
		Meds:  meds,
	})
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageForm, pageData{
		Title: "MediMate • Add",
		Mode:  modeAdd,
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	in := readForm(r)

	if _, err := s.meds.Create(r.Context(), in); err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			s.render(w, r, http.StatusUnprocessableEntity, pageForm, pageData{
				Title:   "MediMate • Add",
				Mode:    modeAdd,
				Form:    validation.Normalize(in),
				Flashes: []Flash{{Kind: FlashError, Message: vErr.Message}},
			})
			return
		}
		s.serverError(w, r, err)
		return
	}

	setFlash(w, r, Flash{Kind: FlashSuccess, Message: "Medication added."})
	s.redirectHome(w, r)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := medID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	med, err := s.meds.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.handleNotFound(w, r)
			return
		}
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, pageForm, pageData{
		Title: "MediMate • Edit",
		Mode:  modeEdit,
		MedID: med.ID,
		Form: models.MedicationInput{
			Name:     med.Name,
			Dose:     med.Dose,
			Schedule: med.Schedule,
			Notes:    med.Notes,
		},
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := medID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	in := readForm(r)
	err := s.meds.Update(r.Context(), id, in)
	if err != nil {
		var vErr *validation.Error
		switch {
		case errors.As(err, &vErr):
			s.render(w, r, http.StatusUnprocessableEntity, pageForm, pageData{
				Title:   "MediMate • Edit",
				Mode:    modeEdit,
				MedID:   id,
				Form:    validation.Normalize(in),
				Flashes: []Flash{{Kind: FlashError, Message: vErr.Message}},
			})
		case errors.Is(err, storage.ErrNotFound):
			s.handleNotFound(w, r)
		default:
			s.serverError(w, r, err)
		}
		return
	}

	setFlash(w, r, Flash{Kind: FlashSuccess, Message: "Medication updated."})
	s.redirectHome(w, r)
}

func (s *Server) handleTake(w http.ResponseWriter, r *http.Request) {
	id, ok := medID(r)
	if !ok {
		setFlash(w, r, Flash{Kind: FlashError, Message: "Medication not found."})
		s.redirectHome(w, r)
		return
	}

	if _, err := s.log.RecordTaken(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			setFlash(w, r, Flash{Kind: FlashError, Message: "Medication not found."})
			s.redirectHome(w, r)
			return
		}
		s.serverError(w, r, err)
		return
	}

	setFlash(w, r, Flash{Kind: FlashSuccess, Message: "✅ Marked as taken."})
	s.redirectHome(w, r)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := medID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	if err := s.meds.Delete(r.Context(), id); err != nil {
		s.serverError(w, r, err)
		return
	}

	setFlash(w, r, Flash{Kind: FlashSuccess, Message: "Medication deleted."})
	s.redirectHome(w, r)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	day := models.ParseLogFilter(r.URL.Query().Get("day"))

	logs, err := s.log.ListRecent(r.Context(), day)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, pageHistory, pageData{
		Title: "MediMate • History",
		Logs:  logs,
		Day:   day,
	})
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageAbout, pageData{
		Title: "MediMate • About",
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, pageAbout, pageData{
		Title:    "MediMate • Not Found",
		NotFound: true,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			logger.Warn("Health check failed", "error", err)
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
