// Package api exposes the read-only HTTP surface. Handlers validate path
// parameters, call a service, and translate results into status codes and
// GeoJSON/JSON bodies; they are the only place that decides what a client
// sees on failure.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dallas-college-lmic/lmic-spatial-api/internal/config"
	"github.com/dallas-college-lmic/lmic-spatial-api/internal/service"
)

// Server bundles the services behind the HTTP handlers.
type Server struct {
	occupations *service.Occupation
	schools     *service.SchoolOfStudy
	travel      *service.TravelTime
}

// NewServer creates a Server over the given services.
func NewServer(occ *service.Occupation, sch *service.SchoolOfStudy, tt *service.TravelTime) *Server {
	return &Server{occupations: occ, schools: sch, travel: tt}
}

// Router builds the chi router with CORS, correlation IDs, request logging,
// and per-client rate limits. The /geojson payload is heavy, so it gets a
// stricter limit than the list endpoints.
func (s *Server) Router(cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(correlationID)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	standard := rateLimit(cfg.RatePerMinute)
	heavy := rateLimit(cfg.GeoJSONPerMinute)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(standard)
		r.Get("/occupation_ids", s.handleOccupationIDs)
		r.Get("/occupation_data/{category}", s.handleOccupationData)
		r.Get("/school_of_study_ids", s.handleSchoolIDs)
		r.Get("/school_of_study_data/{category}", s.handleSchoolData)
		r.Get("/isochrones/{geoid}", s.handleIsochrones)
	})

	r.Group(func(r chi.Router) {
		r.Use(heavy)
		r.Get("/geojson", s.handleGeoJSON)
	})

	return r
}
