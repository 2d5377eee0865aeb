package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// occupationsResponse wraps the occupation code/name list.
type occupationsResponse struct {
	Occupations []model.Category `json:"occupations"`
}

func (s *Server) handleOccupationIDs(w http.ResponseWriter, r *http.Request) {
	cats, err := s.occupations.WithNames(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if cats == nil {
		cats = []model.Category{}
	}
	writeJSON(w, http.StatusOK, occupationsResponse{Occupations: cats})
}

func (s *Server) handleOccupationData(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	features, err := s.occupations.SpatialData(r.Context(), category)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if len(features) == 0 {
		writeError(w, r, http.StatusNotFound,
			fmt.Sprintf("No data found for occupation category: %s", category), "NOT_FOUND")
		return
	}
	writeGeoJSON(w, http.StatusOK, model.NewFeatureCollection(features))
}

// schoolIDsResponse wraps the school-of-study code list.
type schoolIDsResponse struct {
	SchoolIDs []string `json:"school_ids"`
}

func (s *Server) handleSchoolIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := s.schools.IDs(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, schoolIDsResponse{SchoolIDs: ids})
}

func (s *Server) handleSchoolData(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	features, err := s.schools.SpatialData(r.Context(), category)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if len(features) == 0 {
		writeError(w, r, http.StatusNotFound,
			fmt.Sprintf("No data found for school of study category: %s", category), "NOT_FOUND")
		return
	}
	writeGeoJSON(w, http.StatusOK, model.NewFeatureCollection(features))
}

func (s *Server) handleGeoJSON(w http.ResponseWriter, r *http.Request) {
	features, err := s.travel.WageFeatures(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeGeoJSON(w, http.StatusOK, model.NewFeatureCollection(features))
}

func (s *Server) handleIsochrones(w http.ResponseWriter, r *http.Request) {
	geoid := chi.URLParam(r, "geoid")

	// Validation happens before any store call.
	if !isNumeric(geoid) {
		writeError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Invalid geoid format: %s. Geoid must be numeric.", geoid), "INVALID_GEOID")
		return
	}

	features, err := s.travel.IsochroneFeatures(r.Context(), geoid)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if len(features) == 0 {
		writeError(w, r, http.StatusNotFound,
			fmt.Sprintf("No isochrone data found for geoid: %s", geoid), "NOT_FOUND")
		return
	}
	writeGeoJSON(w, http.StatusOK, model.NewFeatureCollection(features))
}

// isNumeric reports whether s is non-empty and all ASCII digits.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
