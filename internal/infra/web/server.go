package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/ports/repository"
	"content-studio/internal/infra/logging"
	"content-studio/internal/usecase"
)

type Server struct {
	scheduleUC usecase.ScheduleUseCase
	videoUC    usecase.VideoUseCase
	imageUC    usecase.ImageUseCase
	captionUC  usecase.CaptionUseCase
	galleryUC  usecase.GalleryUseCase
	tagUC      usecase.TagUseCase
	emailUC    usecase.EmailUseCase
	publishUC  usecase.PublishUseCase
	prompts    repository.PromptStore
	log        *zerolog.Logger
}

func NewServer(
	scheduleUC usecase.ScheduleUseCase,
	videoUC usecase.VideoUseCase,
	imageUC usecase.ImageUseCase,
	captionUC usecase.CaptionUseCase,
	galleryUC usecase.GalleryUseCase,
	tagUC usecase.TagUseCase,
	emailUC usecase.EmailUseCase,
	publishUC usecase.PublishUseCase,
	prompts repository.PromptStore,
	logger *zerolog.Logger,
) *Server {
	l := logger.With().Str("component", "web").Logger()
	return &Server{
		scheduleUC: scheduleUC,
		videoUC:    videoUC,
		imageUC:    imageUC,
		captionUC:  captionUC,
		galleryUC:  galleryUC,
		tagUC:      tagUC,
		emailUC:    emailUC,
		publishUC:  publishUC,
		prompts:    prompts,
		log:        &l,
	}
}

// Router assembles the full HTTP surface.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Scheduler
		r.Get("/schedule/posts", s.listScheduledPosts())
		r.Post("/schedule/posts", s.createScheduledPost())
		r.Get("/schedule/posts/{id}", s.getScheduledPost())
		r.Post("/schedule/posts/{id}/post-now", s.postNow())
		r.Post("/schedule/posts/{id}/cancel", s.cancelScheduledPost())
		r.Post("/schedule/posts/{id}/retry", s.retryScheduledPost())
		r.Delete("/schedule/posts/{id}", s.deleteScheduledPost())
		r.Get("/schedule/stats", s.scheduleStats())

		// Video generation
		r.Post("/veo/video", s.generateVideo())
		r.Get("/veo/video/download", s.downloadVideo())

		// Image generation
		r.Post("/imagen3", s.generateImage("imagen-3"))
		r.Post("/imagen4", s.generateImage("imagen-4"))
		r.Post("/imagen4ultra", s.generateImage("imagen-4-ultra"))

		// Captions and prompt enhancement
		r.Post("/enhance-prompt", s.enhancePrompt(false))
		r.Post("/enhance-video-prompt", s.enhancePrompt(true))
		r.Post("/generate-caption", s.generateCaption(false))
		r.Post("/generate-video-caption", s.generateCaption(true))

		// System prompts
		r.Get("/system-prompts", s.getSystemPrompts())
		r.Post("/system-prompts", s.saveSystemPrompt())

		// Gallery
		r.Get("/gallery/images", s.listGalleryImages())
		r.Get("/gallery/image/*", s.serveGalleryImage())
		r.Delete("/gallery/images/*", s.deleteGalleryImage())

		// Tags
		r.Get("/tags", s.listTags())
		r.Get("/images/{storagePath}/tags", s.imageTags())
		r.Post("/images/{storagePath}/tags", s.addImageTags())
		r.Delete("/images/{storagePath}/tags/{tagID}", s.removeImageTag())

		// Instagram + email
		r.Post("/instagram/post", s.instagramPost())
		r.Get("/instagram/posts", s.instagramHistory())
		r.Post("/email/send-images", s.sendImagesEmail())
	})
	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := logging.WithRequestID(r.Context(), uuid.NewString())
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))
		logging.With(ctx, s.log).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinels onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrSubmission), errors.Is(err, domain.ErrGeneration),
		errors.Is(err, domain.ErrPublish), errors.Is(err, domain.ErrUnrecognizedResult):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrGenerationTimeout):
		status = http.StatusGatewayTimeout
	}
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
