package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/shortener/internal/entity"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type urlUseCase interface {
	ShortenURL(ctx context.Context, originalURL entity.OriginalURL) (*entity.URL, error)
	ShortenURLWithCode(ctx context.Context, originalURL entity.OriginalURL, shortCode entity.ShortCode) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode entity.ShortCode) (entity.OriginalURL, error)
	GetURLStats(ctx context.Context, shortCode entity.ShortCode) (*entity.URL, error)
	DeactivateURL(ctx context.Context, shortCode entity.ShortCode) error
	ListURLs(ctx context.Context) ([]entity.URL, error)
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &urlHandler{
		useCase:  useCase,
		validate: validate,
	}
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req urlRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	originalURL, err := entity.NewOriginalURL(req.OriginalURL)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, fieldErrorResponse("original_url", err))
		return
	}

	var url *entity.URL

	if req.ShortCode == "" {
		url, err = h.useCase.ShortenURL(r.Context(), originalURL)
	} else {
		shortCode, codeErr := entity.NewShortCode(req.ShortCode)
		if codeErr != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, fieldErrorResponse("short_code", codeErr))
			return
		}

		url, err = h.useCase.ShortenURLWithCode(r.Context(), originalURL, shortCode)
	}

	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toURLResponse(url))
}

func (h *urlHandler) listURLs(w http.ResponseWriter, r *http.Request) {
	urls, err := h.useCase.ListURLs(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}

	resp := make([]urlStatsResponse, 0, len(urls))
	for i := range urls {
		resp = append(resp, toURLStatsResponse(&urls[i]))
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func (h *urlHandler) resolveShortCode(w http.ResponseWriter, r *http.Request) {
	shortCode, ok := shortCodeParam(w, r)
	if !ok {
		return
	}

	originalURL, err := h.useCase.ResolveShortCode(r.Context(), shortCode)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, resolveResponse{
		ShortCode:   shortCode.String(),
		OriginalURL: originalURL.String(),
	})
}

func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode, ok := shortCodeParam(w, r)
	if !ok {
		return
	}

	originalURL, err := h.useCase.ResolveShortCode(r.Context(), shortCode)
	if err != nil {
		renderError(w, r, err)
		return
	}

	http.Redirect(w, r, originalURL.String(), http.StatusFound)
}

func (h *urlHandler) deactivateURL(w http.ResponseWriter, r *http.Request) {
	shortCode, ok := shortCodeParam(w, r)
	if !ok {
		return
	}

	if err := h.useCase.DeactivateURL(r.Context(), shortCode); err != nil {
		renderError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *urlHandler) getURLStats(w http.ResponseWriter, r *http.Request) {
	shortCode, ok := shortCodeParam(w, r)
	if !ok {
		return
	}

	url, err := h.useCase.GetURLStats(r.Context(), shortCode)
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toURLStatsResponse(url))
}

// shortCodeParam parses the shortCode path parameter. On failure it writes a
// 400 response and reports false.
func shortCodeParam(w http.ResponseWriter, r *http.Request) (entity.ShortCode, bool) {
	shortCode, err := entity.NewShortCode(chi.URLParam(r, "shortCode"))
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, fieldErrorResponse("short_code", err))
		return entity.ShortCode{}, false
	}

	return shortCode, true
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrURLNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, urlNotFoundResponse)
	case errors.Is(err, entity.ErrShortCodeExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, shortCodeExistsResponse)
	case errors.Is(err, entity.ErrInvalidURL), errors.Is(err, entity.ErrInvalidShortCode):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Status: statusError, Message: err.Error()})
	case errors.Is(err, entity.ErrMaxRetriesExceeded):
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, generationFailedResponse(err))
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}
