package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sayitbetter/backend/internal/core"
	"github.com/sayitbetter/backend/internal/store"
	"go.uber.org/zap"
)

// MaxCloudBodyBytes caps cloud upload bodies.
const MaxCloudBodyBytes = 10 * 1024 * 1024

type APIHandler struct {
	translateService *core.TranslateService // nil when no completion provider is configured
	themeService     *core.ThemeService     // nil when no embedding provider is configured
	embedder         core.Embedder          // nil when no embedding provider is configured
	blobs            *store.FallbackStore
	shares           *store.ShareStore
	logger           *zap.Logger
}

func NewAPIHandler(
	translateService *core.TranslateService,
	themeService *core.ThemeService,
	embedder core.Embedder,
	blobs *store.FallbackStore,
	shares *store.ShareStore,
	logger *zap.Logger,
) *APIHandler {
	return &APIHandler{
		translateService: translateService,
		themeService:     themeService,
		embedder:         embedder,
		blobs:            blobs,
		shares:           shares,
		logger:           logger,
	}
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *APIHandler) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeError maps the service error kinds onto HTTP statuses. Provider and
// extraction details stay in the logs; callers get fixed messages so prompt
// internals and provider responses never leak.
func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	var validationErr *core.ValidationError
	if errors.As(err, &validationErr) {
		h.writeErrorMessage(w, http.StatusBadRequest, validationErr.Reason)
		return
	}

	var upstreamErr *core.UpstreamError
	if errors.As(err, &upstreamErr) {
		h.logger.Warn("upstream provider failure",
			zap.Int("status", upstreamErr.Status),
			zap.Bool("timeout", upstreamErr.Timeout))
		if upstreamErr.Timeout {
			h.writeErrorMessage(w, http.StatusGatewayTimeout, "AI service timeout")
			return
		}
		h.writeErrorMessage(w, http.StatusBadGateway, "AI service unavailable")
		return
	}

	var extractionErr *core.ExtractionError
	if errors.As(err, &extractionErr) {
		h.writeErrorMessage(w, http.StatusInternalServerError, "Failed to parse AI response")
		return
	}

	h.logger.Error("unhandled request error", zap.Error(err))
	h.writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
}

func (h *APIHandler) TranslateHandler(w http.ResponseWriter, r *http.Request) {
	var req core.TranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if h.translateService == nil {
		h.writeErrorMessage(w, http.StatusInternalServerError, "Translation service is not configured")
		return
	}

	result, err := h.translateService.Translate(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

type embeddingRequest struct {
	Texts []string `json:"texts"`
}

type embeddingResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

func (h *APIHandler) EmbeddingsHandler(w http.ResponseWriter, r *http.Request) {
	var req embeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if len(req.Texts) == 0 {
		h.writeErrorMessage(w, http.StatusBadRequest, "texts must not be empty")
		return
	}

	if h.embedder == nil {
		h.writeErrorMessage(w, http.StatusInternalServerError, "Embedding service is not configured")
		return
	}

	embeddings, err := h.embedder.Embed(r.Context(), req.Texts)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, embeddingResponse{Embeddings: embeddings})
}

type themeAnalysisRequest struct {
	CurrentThemes []string `json:"current_themes"`
	PastThemes    []string `json:"past_themes"`
}

// AnalyzeThemesHandler is deliberately fail-open: theme recurrence is a
// non-critical feature, so a missing embedding configuration or empty
// inputs produce an empty 200 result instead of an error.
func (h *APIHandler) AnalyzeThemesHandler(w http.ResponseWriter, r *http.Request) {
	var req themeAnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if h.themeService == nil || len(req.CurrentThemes) == 0 || len(req.PastThemes) == 0 {
		h.writeJSON(w, http.StatusOK, core.ThemeAnalysis{
			RecurringThemes:  []string{},
			SimilarityScores: map[string]core.ThemeMatch{},
		})
		return
	}

	analysis, err := h.themeService.AnalyzeThemes(r.Context(), req.CurrentThemes, req.PastThemes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, analysis)
}

type shareRequest struct {
	EncryptedData string `json:"encrypted_data"`
	IV            string `json:"iv"`
}

type shareResponse struct {
	ShareID   string    `json:"share_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *APIHandler) CreateShareHandler(w http.ResponseWriter, r *http.Request) {
	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.EncryptedData == "" || req.IV == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "encrypted_data and iv are required")
		return
	}

	shareID, rec := h.shares.Create(req.EncryptedData, req.IV)
	h.writeJSON(w, http.StatusOK, shareResponse{ShareID: shareID, ExpiresAt: rec.ExpiresAt})
}

func (h *APIHandler) GetShareHandler(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "shareID")

	rec, err := h.shares.Get(shareID)
	switch {
	case errors.Is(err, store.ErrShareExpired):
		h.writeErrorMessage(w, http.StatusGone, "Link has expired")
	case errors.Is(err, store.ErrShareNotFound):
		h.writeErrorMessage(w, http.StatusNotFound, "Link not found or expired")
	case err != nil:
		h.writeError(w, err)
	default:
		h.writeJSON(w, http.StatusOK, rec)
	}
}

func (h *APIHandler) CloudUploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxCloudBodyBytes)

	var upload store.CloudUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.writeErrorMessage(w, http.StatusRequestEntityTooLarge, "Payload too large (max 10MB)")
			return
		}
		h.writeErrorMessage(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	if err := upload.Validate(); err != nil {
		h.writeError(w, err)
		return
	}

	rec := upload.Record(time.Now())
	if err := h.blobs.Put(r.Context(), upload.UserID, rec); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"timestamp": rec.UpdatedAt,
		"message":   "Encrypted data stored successfully",
	})
}

func (h *APIHandler) CloudDownloadHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}

	rec, err := h.blobs.Get(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if rec == nil {
		h.writeErrorMessage(w, http.StatusNotFound, "No data found for this user")
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *APIHandler) CloudDeleteHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.writeErrorMessage(w, http.StatusBadRequest, "Missing userId parameter")
		return
	}

	if err := h.blobs.Delete(r.Context(), userID); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "All encrypted data deleted",
	})
}

func (h *APIHandler) CloudHealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"storage": h.blobs.Tier(),
		"message": "E2E Encrypted Cloud Storage is running",
	})
}

func (h *APIHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Say It Better API is running. This tool helps translate emotional language - it does not provide therapy or medical advice.",
	})
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "All systems operational",
	})
}

func (h *APIHandler) DisclaimerHandler(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"title": "Important Notice",
		"content": `Say It Better is a communication aid designed to help you express your thoughts more clearly.

This tool does NOT:
• Provide therapy, counseling, or mental health treatment
• Diagnose any conditions
• Offer medical or psychological advice
• Replace professional care
• Handle crisis situations

If you are experiencing a mental health crisis or emergency, please contact:
• Emergency Services: 911
• National Suicide Prevention Lifeline: 988
• Crisis Text Line: Text HOME to 741741

Your text is processed only for the current request and is not stored or used for training purposes.`,
		"acknowledgment_required": true,
	})
}
