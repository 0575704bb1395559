package web

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"
	"content-studio/internal/usecase"
)

func (s *Server) listScheduledPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repository.PostFilter{
			Status:   model.PostStatus(r.URL.Query().Get("status")),
			Platform: r.URL.Query().Get("platform"),
		}
		posts, err := s.scheduleUC.List(r.Context(), filter)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if posts == nil {
			posts = []*model.ScheduledPost{}
		}
		writeJSON(w, http.StatusOK, struct {
			Posts []*model.ScheduledPost `json:"posts"`
		}{Posts: posts})
	}
}

func (s *Server) createScheduledPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.CreatePostInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		post, err := s.scheduleUC.Create(r.Context(), in)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, post)
	}
}

func (s *Server) getScheduledPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.scheduleUC.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func (s *Server) postNow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.scheduleUC.PostNow(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			// The post record still reflects the failure outcome; the
			// error tells the caller what went wrong.
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func (s *Server) cancelScheduledPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.scheduleUC.Cancel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func (s *Server) retryScheduledPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.scheduleUC.Retry(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func (s *Server) deleteScheduledPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.scheduleUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

func (s *Server) scheduleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.scheduleUC.Stats(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
