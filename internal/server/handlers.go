package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"tweetgen/internal/catalog"
	"tweetgen/internal/resolver"

	"go.uber.org/zap"
)

func (s *Server) handleTweet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var req resolver.TweetRequest
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		writeError(w, http.StatusBadRequest, "category is required")
		return
	}

	text, err := s.resolver.Resolve(r.Context(), category)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, resolver.TweetResponse{Tweet: text})
	case errors.Is(err, resolver.ErrCategoryNotFound):
		writeError(w, http.StatusNotFound, "unknown category: "+category)
	case errors.Is(err, resolver.ErrEmptyCandidateSet):
		writeError(w, http.StatusUnprocessableEntity, "category has no tweets: "+category)
	default:
		s.logger.Error("tweet resolution failed",
			zap.String("category", category),
			zap.String("request_id", RequestID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not generate tweet")
	}
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	cats := s.catalog.List()
	if cats == nil {
		cats = []catalog.Category{}
	}
	writeJSON(w, http.StatusOK, cats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"categories": s.catalog.Len(),
	})
}
