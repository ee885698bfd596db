package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusconnect/portal/internal/core/domain"
	"github.com/campusconnect/portal/internal/core/ports"
)

const (
	// maxUploadBytes is the widget-side document cap.
	maxUploadBytes = 10 << 20
	// historyWindow bounds how many prior turns ride with a chat request.
	historyWindow = 10
	// suggestionInterval is the carousel rotation cadence.
	suggestionInterval = 4 * time.Second
)

// conversation is one widget session's state. Messages are append-only;
// Clear swaps the whole slice under the lock so readers never observe a
// half-reset conversation.
type conversation struct {
	mu            sync.Mutex
	messages      []domain.ChatMessage
	files         []domain.UploadedFile
	feedbackGiven map[string]bool
	suggestionIdx int
	rotating      bool
	remaining     int
}

// AssistantService implements the chat-widget session: per-session
// conversation state, local guards, and the upstream assistant calls.
type AssistantService struct {
	upstream ports.Upstream
	store    ports.SessionStore
	limiter  ports.RateLimiter
	log      zerolog.Logger
	now      func() time.Time

	mu            sync.Mutex
	conversations map[string]*conversation
}

// NewAssistantService builds the widget service.
func NewAssistantService(up ports.Upstream, store ports.SessionStore, limiter ports.RateLimiter, log zerolog.Logger) *AssistantService {
	return &AssistantService{
		upstream:      up,
		store:         store,
		limiter:       limiter,
		log:           log,
		now:           time.Now,
		conversations: make(map[string]*conversation),
	}
}

func (a *AssistantService) conversationFor(key string) *conversation {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.conversations[key]
	if !ok {
		c = &conversation{feedbackGiven: make(map[string]bool), rotating: true}
		a.conversations[key] = c
	}
	return c
}

// Open returns the widget's current state, creating the conversation on first
// use.
func (a *AssistantService) Open(ctx context.Context, sessionKey string) (ports.ConversationView, error) {
	sess, err := requireSession(ctx, a.store, sessionKey)
	if err != nil {
		return ports.ConversationView{}, err
	}
	c := a.conversationFor(sessionKey)
	c.mu.Lock()
	defer c.mu.Unlock()
	return a.viewLocked(c, sess), nil
}

// Send appends the user's message and produces the assistant's reply.
// Identity questions are answered locally; transport failures become an
// in-conversation error message rather than a failed request, so the widget
// keeps its history.
func (a *AssistantService) Send(ctx context.Context, sessionKey, text string) (ports.ConversationView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ports.ConversationView{}, domain.ErrMissingFields
	}
	sess, err := requireSession(ctx, a.store, sessionKey)
	if err != nil {
		return ports.ConversationView{}, err
	}

	decision, err := a.limiter.Allow(ctx, sessionKey)
	if err != nil {
		return ports.ConversationView{}, fmt.Errorf("rate check: %w", err)
	}
	if !decision.Allowed {
		return ports.ConversationView{}, domain.ErrRateLimited
	}

	c := a.conversationFor(sessionKey)
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotating = false
	c.remaining = decision.Remaining

	// The context window is the history before this message; the message
	// itself travels in its own field.
	history := historyLocked(c)

	c.messages = append(c.messages, domain.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    domain.SenderUser,
		Text:      text,
		Timestamp: a.now(),
	})

	if isIdentityQuery(text) {
		c.messages = append(c.messages, domain.ChatMessage{
			ID:        uuid.NewString(),
			Sender:    domain.SenderAssistant,
			Text:      identityReply(sess.User.Name, sess.User.Role),
			Timestamp: a.now(),
		})
		return a.viewLocked(c, sess), nil
	}

	reply, err := a.upstream.Chat(ctx, sess.Token, ports.ChatInput{
		Message:       text,
		UserID:        sess.User.ID,
		UserRole:      sess.User.Role,
		UserName:      sess.User.Name,
		UserEmail:     sess.User.Email,
		University:    sess.User.University,
		Department:    sess.User.Department,
		Context:       history,
		UploadedFiles: fileIDsLocked(c),
	})
	if err != nil {
		// A dead credential is dropped so the next action re-authenticates.
		if upstreamUnauthorized(err) {
			_ = a.store.Clear(ctx, sessionKey)
		}
		c.messages = append(c.messages, domain.ChatMessage{
			ID:        uuid.NewString(),
			Sender:    domain.SenderAssistant,
			Text:      chatErrorText(err),
			Timestamp: a.now(),
			IsError:   true,
		})
		a.log.Warn().Str("user_id", sess.User.ID).Err(err).Msg("assistant chat failed")
		return a.viewLocked(c, sess), nil
	}

	c.messages = append(c.messages, domain.ChatMessage{
		ID:           uuid.NewString(),
		Sender:       domain.SenderAssistant,
		Text:         annotateReply(reply),
		Timestamp:    a.now(),
		CanPlayAudio: true,
	})
	return a.viewLocked(c, sess), nil
}

// Upload validates the document locally (PDF only, 10MB cap) before handing
// it to the backend, then records the accepted file on the conversation.
func (a *AssistantService) Upload(ctx context.Context, sessionKey string, req ports.UploadRequest) (ports.ConversationView, error) {
	sess, err := requireSession(ctx, a.store, sessionKey)
	if err != nil {
		return ports.ConversationView{}, err
	}
	if !strings.Contains(req.ContentType, "pdf") && !strings.HasSuffix(strings.ToLower(req.Filename), ".pdf") {
		return ports.ConversationView{}, domain.ErrUnsupportedFileType
	}
	if req.Size > maxUploadBytes {
		return ports.ConversationView{}, domain.ErrFileTooLarge
	}

	file, err := a.upstream.UploadDocument(ctx, sess.Token, ports.UploadInput{
		UserID:   sess.User.ID,
		Filename: req.Filename,
		File:     io.LimitReader(req.File, maxUploadBytes),
	})
	if err != nil {
		return ports.ConversationView{}, err
	}

	c := a.conversationFor(sessionKey)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files = append(c.files, file)
	c.messages = append(c.messages, domain.ChatMessage{
		ID:        uuid.NewString(),
		Sender:    domain.SenderAssistant,
		Text:      fmt.Sprintf("I've received %s and I'm ready to answer questions about it.", file.Filename),
		Timestamp: a.now(),
	})
	return a.viewLocked(c, sess), nil
}

// Transcribe converts recorded audio to text for the input box.
func (a *AssistantService) Transcribe(ctx context.Context, sessionKey, filename string, audio io.Reader) (string, error) {
	sess, err := requireSession(ctx, a.store, sessionKey)
	if err != nil {
		return "", err
	}
	return a.upstream.Transcribe(ctx, sess.Token, ports.TranscribeInput{
		UserID:   sess.User.ID,
		Filename: filename,
		Audio:    audio,
	})
}

// Synthesize returns speech audio for one assistant message. Only messages
// the assistant authored can be played back.
func (a *AssistantService) Synthesize(ctx context.Context, sessionKey, messageID string) (string, error) {
	sess, err := requireSession(ctx, a.store, sessionKey)
	if err != nil {
		return "", err
	}
	c := a.conversationFor(sessionKey)
	c.mu.Lock()
	var text string
	for _, m := range c.messages {
		if m.ID == messageID && m.Sender == domain.SenderAssistant && !m.IsError {
			text = m.Text
			break
		}
	}
	c.mu.Unlock()
	if text == "" {
		return "", domain.ErrNotFound
	}
	return a.upstream.Synthesize(ctx, sess.Token, ports.SpeechInput{
		Text:      text,
		UserID:    sess.User.ID,
		MessageID: messageID,
	})
}

// Feedback records a thumbs rating, at most once per message.
func (a *AssistantService) Feedback(ctx context.Context, sessionKey, messageID string, kind domain.FeedbackType) error {
	sess, err := requireSession(ctx, a.store, sessionKey)
	if err != nil {
		return err
	}
	c := a.conversationFor(sessionKey)

	c.mu.Lock()
	known := false
	for _, m := range c.messages {
		if m.ID == messageID && m.Sender == domain.SenderAssistant {
			known = true
			break
		}
	}
	if !known {
		c.mu.Unlock()
		return domain.ErrNotFound
	}
	if c.feedbackGiven[messageID] {
		c.mu.Unlock()
		return domain.ErrFeedbackAlreadySent
	}
	c.feedbackGiven[messageID] = true
	c.mu.Unlock()

	err = a.upstream.SendFeedback(ctx, sess.Token, ports.FeedbackInput{
		UserID:    sess.User.ID,
		MessageID: messageID,
		Type:      kind,
		Timestamp: a.now().Format(time.RFC3339),
	})
	if err != nil {
		// Allow a retry after an upstream failure.
		c.mu.Lock()
		delete(c.feedbackGiven, messageID)
		c.mu.Unlock()
		return err
	}
	return nil
}

// Clear resets the conversation in one step: history, uploads, feedback
// markers, and the suggestion carousel all go together.
func (a *AssistantService) Clear(ctx context.Context, sessionKey string) error {
	if _, err := requireSession(ctx, a.store, sessionKey); err != nil {
		return err
	}
	c := a.conversationFor(sessionKey)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.files = nil
	c.feedbackGiven = make(map[string]bool)
	c.suggestionIdx = 0
	c.rotating = true
	c.remaining = 0
	return nil
}

// Rotate advances every idle conversation's suggestion carousel on the fixed
// cadence until ctx is done. Conversations stop rotating at their first sent
// message.
func (a *AssistantService) Rotate(ctx context.Context) {
	ticker := time.NewTicker(suggestionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.mu.Lock()
			for _, c := range a.conversations {
				c.mu.Lock()
				if c.rotating {
					c.suggestionIdx++
				}
				c.mu.Unlock()
			}
			a.mu.Unlock()
		}
	}
}

// viewLocked snapshots the conversation. Caller holds c.mu.
func (a *AssistantService) viewLocked(c *conversation, sess *domain.Session) ports.ConversationView {
	msgs := make([]domain.ChatMessage, len(c.messages))
	copy(msgs, c.messages)
	files := make([]domain.UploadedFile, len(c.files))
	copy(files, c.files)

	suggestion := ""
	if c.rotating {
		s := suggestionsFor(sess.User.Role)
		suggestion = s[c.suggestionIdx%len(s)]
	}
	return ports.ConversationView{
		Messages:      msgs,
		UploadedFiles: files,
		Suggestion:    suggestion,
		Greeting:      greetingFor(sess.User.Role, sess.User.Name),
		PrivacyNotice: privacyNotice,
		Remaining:     c.remaining,
	}
}

// historyLocked returns the trailing turns sent as chat context. Caller holds
// c.mu.
func historyLocked(c *conversation) []ports.ChatTurn {
	start := 0
	if len(c.messages) > historyWindow {
		start = len(c.messages) - historyWindow
	}
	turns := make([]ports.ChatTurn, 0, len(c.messages)-start)
	for _, m := range c.messages[start:] {
		turns = append(turns, ports.ChatTurn{
			Role:      string(m.Sender),
			Content:   m.Text,
			Timestamp: m.Timestamp.Format(time.RFC3339),
		})
	}
	return turns
}

func fileIDsLocked(c *conversation) []string {
	ids := make([]string, 0, len(c.files))
	for _, f := range c.files {
		ids = append(ids, f.ID)
	}
	return ids
}

// upstreamUnauthorized reports whether the backend rejected the bearer.
func upstreamUnauthorized(err error) bool {
	var se *domain.UpstreamStatusError
	return errors.As(err, &se) && se.Code == http.StatusUnauthorized
}

// annotateReply appends the backend's source/tool note to the reply text.
func annotateReply(reply ports.ChatResult) string {
	switch {
	case reply.FileUsed != "":
		return reply.Response + "\n\nInformation retrieved from: " + reply.FileUsed
	case len(reply.ToolsUsed) > 0:
		return reply.Response + "\n\nUsed tools: " + strings.Join(reply.ToolsUsed, ", ")
	default:
		return reply.Response
	}
}

// chatErrorText picks the in-conversation wording for a failed chat turn.
func chatErrorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrUpstreamTimeout):
		return "Request timed out. Please try again with a shorter message."
	case upstreamUnauthorized(err):
		return "Session expired. Please log in again."
	default:
		return "I'm having trouble connecting right now. Please try again in a moment."
	}
}
