package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"content-studio/internal/domain/model"
	"content-studio/internal/usecase"
)

func (s *Server) listGalleryImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := s.galleryUC.ListImages(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		if images == nil {
			images = []*model.GalleryImage{}
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.GalleryImage `json:"data"`
		}{Data: images})
	}
}

func (s *Server) serveGalleryImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storagePath := chi.URLParam(r, "*")
		data, contentType, err := s.galleryUC.GetImage(r.Context(), storagePath)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func (s *Server) deleteGalleryImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.galleryUC.DeleteImage(r.Context(), chi.URLParam(r, "*")); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
	}
}

func (s *Server) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := s.tagUC.ListTags(r.Context())
		if err != nil {
			s.writeError(w, err)
			return
		}
		if tags == nil {
			tags = []*model.Tag{}
		}
		writeJSON(w, http.StatusOK, struct {
			Tags []*model.Tag `json:"tags"`
		}{Tags: tags})
	}
}

// storagePathParam decodes the URL-encoded storage path segment
// ("imagen-3%2Fimg.png" -> "imagen-3/img.png").
func storagePathParam(r *http.Request) string {
	raw := chi.URLParam(r, "storagePath")
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

func (s *Server) imageTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := s.tagUC.TagsForImage(r.Context(), storagePathParam(r))
		if err != nil {
			s.writeError(w, err)
			return
		}
		if tags == nil {
			tags = []*model.Tag{}
		}
		writeJSON(w, http.StatusOK, struct {
			Tags []*model.Tag `json:"tags"`
		}{Tags: tags})
	}
}

func (s *Server) addImageTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			TagIDs []int64 `json:"tag_ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if err := s.tagUC.AddTags(r.Context(), storagePathParam(r), req.TagIDs); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"added": true})
	}
}

func (s *Server) removeImageTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := strconv.ParseInt(chi.URLParam(r, "tagID"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid tag id"})
			return
		}
		if err := s.tagUC.RemoveTag(r.Context(), storagePathParam(r), tagID); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
	}
}

const maxUploadSize = 10 << 20 // 10 MiB

func (s *Server) instagramPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
			return
		}
		in := usecase.PostImageInput{
			Caption:  r.FormValue("caption"),
			ImageURL: r.FormValue("image_url"),
		}
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to read image"})
				return
			}
			in.Image = data
			in.ContentType = header.Header.Get("Content-Type")
		}
		post, err := s.publishUC.PostImage(r.Context(), in)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

func (s *Server) instagramHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		posts, err := s.publishUC.History(r.Context(), limit)
		if err != nil {
			s.writeError(w, err)
			return
		}
		if posts == nil {
			posts = []*model.PublishedPost{}
		}
		writeJSON(w, http.StatusOK, struct {
			Data []*model.PublishedPost `json:"data"`
		}{Data: posts})
	}
}

func (s *Server) sendImagesEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.SendImagesInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if err := s.emailUC.SendImages(r.Context(), in); err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Success    bool   `json:"success"`
			Recipient  string `json:"recipient"`
			ImageCount int    `json:"imageCount"`
		}{Success: true, Recipient: in.Recipient, ImageCount: len(in.Images)})
	}
}
