package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/search"
	"github.com/Abhyam-Mathur/speech-to-text-backend/internal/storage/models"
)

// Search runs the keyword search over caller-provided segments. The service
// holds no transcript state, so the segments travel with the request.
func Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	window := search.DefaultWindow
	if req.Window != nil {
		window = *req.Window
	}

	matches := search.Keyword(req.Segments, req.Keyword, window)
	writeJSON(w, http.StatusOK, models.SearchResponse{Keyword: req.Keyword, Matches: matches})
}
