// Package chat mediates the operator's conversation with the agent and
// renders the transcript, including the distinct blocked outcome the agent
// returns for refused topics.
package chat

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/internal/gateway"
	"github.com/taloswatch/taloswatch/internal/view"
	"github.com/taloswatch/taloswatch/pkg/models"
)

// ErrInFlight is returned when Send is called while a previous send is
// still outstanding. The affordance is disabled for that duration, so this
// only fires on racing submits.
var ErrInFlight = errors.New("chat send already in flight")

// noResponse is rendered when the agent's reply carries no response field.
const noResponse = "(no response)"

// Controller owns the chat transcript. The transcript is never trimmed:
// unlike the log buffer it grows for the life of the session.
type Controller struct {
	gw     *gateway.Gateway
	sink   view.Sink
	logger *zap.Logger

	mu         sync.Mutex
	inFlight   bool
	transcript []models.ChatMessage
}

// NewController creates a chat controller.
func NewController(gw *gateway.Gateway, sink view.Sink, logger *zap.Logger) *Controller {
	return &Controller{gw: gw, sink: sink, logger: logger}
}

// Transcript returns a copy of the conversation so far.
func (c *Controller) Transcript() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.transcript))
	copy(out, c.transcript)
	return out
}

// Send submits one operator message. Whitespace-only input is a no-op with
// no network call. The operator's message is appended optimistically; the
// agent's reply, a blocked rejection, or a transport error each append
// their own entry. The send affordance is re-enabled on every outcome.
func (c *Controller) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	c.sink.SetSendEnabled(false)
	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
		c.sink.SetSendEnabled(true)
	}()

	c.append(models.ChatMessage{Role: models.RoleUser, Text: text})

	res, err := c.gw.Post(ctx, "/chat", models.ChatRequest{Message: text})
	if err != nil {
		messagesTotal.WithLabelValues("error").Inc()
		c.append(models.ChatMessage{Role: models.RoleBlocked, Text: fmt.Sprintf("Error: %v", err)})
		return nil
	}

	if res.StatusCode == http.StatusForbidden {
		messagesTotal.WithLabelValues("blocked").Inc()
		c.append(models.ChatMessage{Role: models.RoleBlocked, Text: "Blocked: " + res.Detail()})
		return nil
	}

	var reply models.ChatResponse
	if err := res.Decode(&reply); err != nil {
		c.logger.Debug("chat reply decode failed", zap.Error(err))
	}
	if reply.Response == "" {
		reply.Response = noResponse
	}
	messagesTotal.WithLabelValues("agent").Inc()
	c.append(models.ChatMessage{Role: models.RoleAgent, Text: reply.Response})
	return nil
}

func (c *Controller) append(msg models.ChatMessage) {
	c.mu.Lock()
	c.transcript = append(c.transcript, msg)
	c.mu.Unlock()
	c.sink.AppendChat(msg)
}
