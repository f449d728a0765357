package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// VideoCatalog reads catalog records.
type VideoCatalog interface {
	Get(ctx context.Context, id string) (*models.Video, error)
	List(ctx context.Context) ([]models.Video, error)
}

// SemanticIndex finds stored segments near a query vector.
type SemanticIndex interface {
	SemanticSearch(ctx context.Context, query []float32, limit int) ([]models.SemanticMatch, error)
}

// QueryEmbedder embeds a search query.
type QueryEmbedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// CatalogHandler serves the database-backed endpoints. Dependencies may be
// nil when the deployment runs without a database or embedding backend; the
// affected endpoints then answer 503.
type CatalogHandler struct {
	videos   VideoCatalog
	index    SemanticIndex
	embedder QueryEmbedder
}

func NewCatalogHandler(videos VideoCatalog, index SemanticIndex, embedder QueryEmbedder) *CatalogHandler {
	return &CatalogHandler{videos: videos, index: index, embedder: embedder}
}

// List returns all catalog records, newest first.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.videos == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog disabled: DATABASE_URL is not set")
		return
	}

	videos, err := h.videos.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

// Get returns one catalog record.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.videos == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog disabled: DATABASE_URL is not set")
		return
	}

	video, err := h.videos.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, video)
}

// SemanticSearch embeds the query text and returns the nearest stored
// segments by cosine similarity.
func (h *CatalogHandler) SemanticSearch(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog disabled: DATABASE_URL is not set")
		return
	}
	if h.embedder == nil {
		writeError(w, http.StatusServiceUnavailable, "semantic search disabled: OPENAI_API_KEY is not set")
		return
	}

	var req models.SemanticSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.Limit <= 0 {
		req.Limit = 5 // default limit
	}

	vector, err := h.embedder.Embed(r.Context(), req.Query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("embedding query: %v", err))
		return
	}

	results, err := h.index.SemanticSearch(r.Context(), vector, req.Limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, models.SemanticSearchResponse{Query: req.Query, Results: results})
}
