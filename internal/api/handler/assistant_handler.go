package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusconnect/portal/internal/api/metrics"
	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

type AssistantHandler struct {
	assistant ports.Assistant
}

func NewAssistantHandler(assistant ports.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

type chatRequest struct {
	Message string `json:"message" validate:"required"`
}

type speechRequest struct {
	MessageID string `json:"messageId" validate:"required"`
}

type feedbackRequest struct {
	MessageID string `json:"messageId" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=positive negative"`
}

type conversationResponse struct {
	Greeting      string                `json:"greeting"`
	Suggestion    string                `json:"suggestion,omitempty"`
	PrivacyNotice string                `json:"privacyNotice"`
	Messages      []domain.ChatMessage  `json:"messages"`
	UploadedFiles []domain.UploadedFile `json:"uploadedFiles"`
	Remaining     int                   `json:"remaining"`
}

func toConversationResponse(v ports.ConversationView) conversationResponse {
	return conversationResponse{
		Greeting:      v.Greeting,
		Suggestion:    v.Suggestion,
		PrivacyNotice: v.PrivacyNotice,
		Messages:      v.Messages,
		UploadedFiles: v.UploadedFiles,
		Remaining:     v.Remaining,
	}
}

// Conversation returns the widget's current state.
func (h *AssistantHandler) Conversation(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	view, err := h.assistant.Open(c.Request().Context(), key)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toConversationResponse(view))
}

// Chat sends one message and returns the updated conversation.
func (h *AssistantHandler) Chat(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	view, err := h.assistant.Send(c.Request().Context(), key, req.Message)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			metrics.AssistantRateLimitedTotal.Inc()
		}
		return err
	}
	metrics.AssistantTurnDuration.Observe(time.Since(start).Seconds())
	metrics.AssistantTurnsTotal.WithLabelValues(turnOutcome(view)).Inc()
	return c.JSON(http.StatusOK, toConversationResponse(view))
}

// Upload accepts a PDF document for the conversation (multipart field
// "file").
func (h *AssistantHandler) Upload(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	view, err := h.assistant.Upload(c.Request().Context(), key, ports.UploadRequest{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		File:        f,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toConversationResponse(view))
}

// Transcribe converts recorded audio (multipart field "audio") into text for
// the compose box.
func (h *AssistantHandler) Transcribe(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	fh, err := c.FormFile("audio")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "audio is required")
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	text, err := h.assistant.Transcribe(c.Request().Context(), key, fh.Filename, f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"text": text})
}

// Synthesize returns speech audio for one assistant message.
func (h *AssistantHandler) Synthesize(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req speechRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	audio, err := h.assistant.Synthesize(c.Request().Context(), key, req.MessageID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"audio": audio})
}

// Feedback records a per-message rating.
func (h *AssistantHandler) Feedback(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.assistant.Feedback(c.Request().Context(), key, req.MessageID, domain.FeedbackType(req.Type)); err != nil {
		return err
	}
	return c.NoContent(http.StatusAccepted)
}

// Clear wipes the conversation.
func (h *AssistantHandler) Clear(c echo.Context) error {
	key, err := ctxSessionKey(c)
	if err != nil {
		return err
	}
	if err := h.assistant.Clear(c.Request().Context(), key); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func turnOutcome(v ports.ConversationView) string {
	if len(v.Messages) > 0 && v.Messages[len(v.Messages)-1].IsError {
		return "error"
	}
	return "reply"
}
