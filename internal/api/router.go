// Package api wires the HTTP routes to their handlers.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/api/handlers"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/api/middleware"
)

// Handlers carries the handler set the router exposes.
type Handlers struct {
	Ingest  *handlers.IngestHandler
	Clips   *handlers.ClipsHandler
	Catalog *handlers.CatalogHandler
}

// NewRouter builds the route table. CORS wraps the whole router so
// preflight requests and unmatched routes carry the headers too.
func NewRouter(h Handlers) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	r.HandleFunc("/", handlers.Root).Methods(http.MethodGet)
	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	// Ingestion
	r.HandleFunc("/upload", h.Ingest.Upload).Methods(http.MethodPost)
	r.HandleFunc("/youtube", h.Ingest.FromYouTube).Methods(http.MethodPost)

	// Transcript search and caption import
	r.HandleFunc("/search", handlers.Search).Methods(http.MethodPost)
	r.HandleFunc("/search/semantic", h.Catalog.SemanticSearch).Methods(http.MethodPost)
	r.HandleFunc("/captions", handlers.ImportCaptions).Methods(http.MethodPost)

	// Clip generation and retrieval
	r.HandleFunc("/generate-clip", h.Clips.Generate).Methods(http.MethodPost)
	r.HandleFunc("/clips/{clip_id:[0-9a-fA-F-]+}.mp4", h.Clips.ServeVideo).Methods(http.MethodGet)
	r.HandleFunc("/audio/{clip_id:[0-9a-fA-F-]+}.wav", h.Clips.ServeAudio).Methods(http.MethodGet)

	// Catalog
	videos := r.PathPrefix("/videos").Subrouter()
	videos.HandleFunc("", h.Catalog.List).Methods(http.MethodGet)
	videos.HandleFunc("/{id}", h.Catalog.Get).Methods(http.MethodGet)

	return middleware.CORS(r)
}
