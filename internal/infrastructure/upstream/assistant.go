package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

// Chat sends one conversational turn to the assistant backend under the long
// budget. The history context and uploaded-document references ride along so
// the backend can answer in context.
func (c *Client) Chat(ctx context.Context, token string, in ports.ChatInput) (ports.ChatResult, error) {
	turns := make([]map[string]string, 0, len(in.Context))
	for _, t := range in.Context {
		turns = append(turns, map[string]string{
			"role":      t.Role,
			"content":   t.Content,
			"timestamp": t.Timestamp,
		})
	}
	payload := map[string]any{
		"message":   in.Message,
		"user_id":   in.UserID,
		"user_role": in.UserRole,
		"user_profile": map[string]string{
			"name":       in.UserName,
			"email":      in.UserEmail,
			"university": in.University,
			"department": in.Department,
		},
		"context":        turns,
		"uploaded_files": in.UploadedFiles,
	}
	raw, err := c.doJSON(ctx, assistantTimeout, http.MethodPost, "/lexie/chat/", token, payload)
	if err != nil {
		return ports.ChatResult{}, err
	}
	var out struct {
		Response  string   `json:"response"`
		FileUsed  string   `json:"file_used"`
		ToolsUsed []string `json:"tools_used"`
	}
	if err := decode(raw, &out); err != nil {
		return ports.ChatResult{}, err
	}
	if out.Response == "" {
		return ports.ChatResult{}, fmt.Errorf("%w: chat response without response text", domain.ErrMalformedPayload)
	}
	return ports.ChatResult{Response: out.Response, FileUsed: out.FileUsed, ToolsUsed: out.ToolsUsed}, nil
}

// UploadDocument streams a document to the assistant backend as multipart
// field "file".
func (c *Client) UploadDocument(ctx context.Context, token string, in ports.UploadInput) (domain.UploadedFile, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("userId", in.UserID); err != nil {
		return domain.UploadedFile{}, fmt.Errorf("write field userId: %w", err)
	}
	part, err := w.CreateFormFile("file", in.Filename)
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, in.File); err != nil {
		return domain.UploadedFile{}, fmt.Errorf("copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return domain.UploadedFile{}, fmt.Errorf("close multipart: %w", err)
	}

	raw, err := c.do(ctx, assistantTimeout, http.MethodPost, "/lexie/upload/", token, &buf, w.FormDataContentType())
	if err != nil {
		return domain.UploadedFile{}, err
	}
	var out struct {
		FileID   string `json:"file_id"`
		Filename string `json:"filename"`
		Status   string `json:"status"`
	}
	if err := decode(raw, &out); err != nil {
		return domain.UploadedFile{}, err
	}
	if out.FileID == "" {
		return domain.UploadedFile{}, fmt.Errorf("%w: upload response without file_id", domain.ErrMalformedPayload)
	}
	name := out.Filename
	if name == "" {
		name = in.Filename
	}
	return domain.UploadedFile{ID: out.FileID, Filename: name, Status: out.Status}, nil
}

// Transcribe submits recorded audio as multipart field "audio" and returns
// the recognized text.
func (c *Client) Transcribe(ctx context.Context, token string, in ports.TranscribeInput) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("userId", in.UserID); err != nil {
		return "", fmt.Errorf("write field userId: %w", err)
	}
	part, err := w.CreateFormFile("audio", in.Filename)
	if err != nil {
		return "", fmt.Errorf("create audio part: %w", err)
	}
	if _, err := io.Copy(part, in.Audio); err != nil {
		return "", fmt.Errorf("copy audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close multipart: %w", err)
	}

	raw, err := c.do(ctx, assistantTimeout, http.MethodPost, "/lexie/voice/stt", token, &buf, w.FormDataContentType())
	if err != nil {
		return "", err
	}
	var out struct {
		Text       string `json:"text"`
		Transcript string `json:"transcript"`
	}
	if err := decode(raw, &out); err != nil {
		return "", err
	}
	text := firstNonEmpty(out.Text, out.Transcript)
	if text == "" {
		return "", fmt.Errorf("%w: transcription without text", domain.ErrMalformedPayload)
	}
	return text, nil
}

// Synthesize requests speech audio for an assistant message and returns the
// base64-encoded audio payload.
func (c *Client) Synthesize(ctx context.Context, token string, in ports.SpeechInput) (string, error) {
	payload := map[string]string{
		"text":      in.Text,
		"userId":    in.UserID,
		"messageId": in.MessageID,
	}
	raw, err := c.doJSON(ctx, assistantTimeout, http.MethodPost, "/lexie/voice/tts", token, payload)
	if err != nil {
		return "", err
	}
	var out struct {
		Audio string `json:"audio"`
	}
	if err := decode(raw, &out); err != nil {
		return "", err
	}
	if out.Audio == "" {
		return "", fmt.Errorf("%w: synthesis without audio", domain.ErrMalformedPayload)
	}
	return out.Audio, nil
}

// SendFeedback records a per-message rating.
func (c *Client) SendFeedback(ctx context.Context, token string, in ports.FeedbackInput) error {
	payload := map[string]string{
		"user_id":       in.UserID,
		"message_id":    in.MessageID,
		"feedback_type": string(in.Type),
		"timestamp":     in.Timestamp,
	}
	_, err := c.doJSON(ctx, crudTimeout, http.MethodPost, "/lexie/feedback/", token, payload)
	return err
}
