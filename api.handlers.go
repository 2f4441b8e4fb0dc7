package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Statistics holds app stats for ops.
type Statistics struct {
	version   string
	container bool
	runtime   string
	platform  string
	called    uint64
	started   time.Time
}

// APIHandler defines the API handler.
type APIHandler struct {
	logger      *zap.Logger
	config      *Config
	stats       *Statistics
	clock       Clocker
	idsHandler  UIDGenerator
	bookService BookServiceProvider
}

// NewAPIHandler provides a new instance of APIHandler.
func NewAPIHandler(logger *zap.Logger, config *Config, stats *Statistics, clock Clocker, ids UIDGenerator, bs BookServiceProvider) *APIHandler {
	return &APIHandler{
		logger:      logger,
		config:      config,
		stats:       stats,
		clock:       clock,
		idsHandler:  ids,
		bookService: bs,
	}
}

// Index provides same details like `Status` handler by redirecting the request.
func (api *APIHandler) Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	http.Redirect(w, r, "/status", http.StatusSeeOther)
}

// Status provides basics details about the application to the public users.
func (api *APIHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	if err := json.NewEncoder(w).Encode(
		StatusResponse{
			RequestID: requestID,
			Status:    fmt.Sprintf("up & running since %.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			Message:   "Hello. Books collection api is available. Enjoy :)",
		},
	); err != nil {
		api.logger.Error("failed to send status response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// StatusResponse is the data model sent when status endpoint is called.
type StatusResponse struct {
	RequestID string `json:"requestid"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// GetStatistics provides useful details about the application to the internal ops users.
// The ops request which triggered that is not counted in the `called` field.
func (api *APIHandler) GetStatistics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	called := atomic.LoadUint64(&api.stats.called)
	if called > 0 {
		called--
	}
	err := json.NewEncoder(w).Encode(
		map[string]interface{}{
			"requestid":     requestID,
			"app.version":   api.stats.version,
			"app.container": api.stats.container,
			"app.platform":  api.stats.platform,
			"go.version":    api.stats.runtime,
			"called":        called,
			"started":       api.stats.started.Format(time.RFC1123),
			"uptime":        fmt.Sprintf("%.0f mins", api.clock.Now().Sub(api.stats.started).Minutes()),
			"books":         len(api.bookService.GetAll(r.Context())),
		},
	)
	if err != nil {
		api.logger.Error("failed to send statistics response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// PersistBooks saves again the whole in-memory collection. It is the
// recovery path once a mutation reported a storage write failure.
func (api *APIHandler) PersistBooks(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), RequestIDContextKey)
	if err := api.bookService.Persist(r.Context()); err != nil {
		api.logger.Error("failed to persist books", zap.String("request.id", requestID), zap.Error(err))
		api.sendError(r.Context(), w, NewAPIError(requestID, http.StatusInternalServerError, "failed to save the books", EmptyData))
		return
	}
	api.logger.Info("success to persist books", zap.String("request.id", requestID))
	api.send(r.Context(), w, GenericResponse(requestID, http.StatusOK, "Books saved successfully.", nil, EmptyData))
}

// NotFound sends a json formatted response for unknown routes.
func (api *APIHandler) NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errResp := NewAPIError("", http.StatusNotFound, "the requested resource does not exist", EmptyData)
		api.sendError(r.Context(), w, errResp)
	})
}

func (api *APIHandler) sendError(ctx context.Context, w http.ResponseWriter, errResp *APIError) {
	if err := WriteErrorResponse(ctx, w, errResp); err != nil {
		api.logger.Error("failed to send error response", zap.String("request.id", errResp.RequestID), zap.Error(err))
	}
}

func (api *APIHandler) send(ctx context.Context, w http.ResponseWriter, resp *APIResponse) {
	if err := WriteResponse(ctx, w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", resp.RequestID), zap.Error(err))
	}
}
