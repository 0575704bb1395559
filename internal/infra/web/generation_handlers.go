package web

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"path"

	"content-studio/internal/domain/model"
	"content-studio/internal/usecase"
)

type promptRequest struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt"`
}

func (s *Server) generateVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		result, err := s.videoUC.Generate(r.Context(), req.Prompt, req.NegativePrompt)
		if err != nil {
			s.writeError(w, err)
			return
		}
		// URL results are playable directly; file handles go through the
		// download route.
		resp := struct {
			Success  bool   `json:"success"`
			Model    string `json:"model"`
			VideoURL string `json:"videoUrl,omitempty"`
			File     string `json:"file,omitempty"`
		}{Success: true, Model: result.Model}
		switch result.Kind {
		case model.VideoResultFile:
			resp.File = result.FileHandle
		default:
			resp.VideoURL = result.URL
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// downloadVideo streams a provider-hosted video file. The temp file is
// removed once the response is written.
func (s *Server) downloadVideo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileHandle := r.URL.Query().Get("file")
		tmpPath, cleanup, err := s.videoUC.ResolveFile(r.Context(), fileHandle)
		if err != nil {
			s.writeError(w, err)
			return
		}
		defer cleanup()

		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", path.Base(fileHandle)+".mp4"))
		http.ServeFile(w, r, tmpPath)
	}
}

func (s *Server) generateImage(alias string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		img, err := s.imageUC.Generate(r.Context(), alias, req.Prompt)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Base64      string `json:"base64"`
			StoragePath string `json:"storage_path,omitempty"`
		}{
			Base64:      base64.StdEncoding.EncodeToString(img.Data),
			StoragePath: img.StoragePath,
		})
	}
}

func (s *Server) enhancePrompt(video bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		var enhanced string
		var err error
		if video {
			enhanced, err = s.captionUC.EnhanceVideoPrompt(r.Context(), req.Prompt)
		} else {
			enhanced, err = s.captionUC.EnhanceImagePrompt(r.Context(), req.Prompt)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"enhancedPrompt": enhanced})
	}
}

func (s *Server) generateCaption(video bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req promptRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		var caption usecase.Caption
		var err error
		if video {
			caption, err = s.captionUC.VideoCaption(r.Context(), req.Prompt)
		} else {
			caption, err = s.captionUC.ImageCaption(r.Context(), req.Prompt)
		}
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, caption)
	}
}

func (s *Server) getSystemPrompts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		set, err := s.prompts.Load(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, set)
	}
}

func (s *Server) saveSystemPrompt() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Key     string `json:"key"`
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if err := s.prompts.Save(r.Context(), model.PromptKey(req.Key), req.Content); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
	}
}
