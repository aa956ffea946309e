package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/educareer/internal/catalog"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.All())
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	info, err := s.catalog.Lookup(catalog.Specialization(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	id := catalog.Specialization(chi.URLParam(r, "id"))
	if !s.catalog.Has(id) {
		writeError(w, s.log, catalog.ErrNotFound)
		return
	}
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_failed", "level must be a number")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"level":   level,
		"modules": s.catalog.ModulesFor(id, level),
	})
}
