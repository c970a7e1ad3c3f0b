// Package logstream owns the persistent receive-only log feed from the
// Talos agent: the WebSocket connection and its perpetual reconnect loop,
// per-line severity classification, and the bounded retention buffer behind
// the log pane.
package logstream

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/internal/view"
	"github.com/taloswatch/taloswatch/pkg/models"
)

// DefaultReconnectDelay is the fixed pause between connection attempts.
// There is no backoff and no retry cap: the channel runs for the life of
// the dashboard.
const DefaultReconnectDelay = 3 * time.Second

// State is the connection lifecycle phase of the channel.
type State int32

const (
	StateConnecting State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "closed"
	}
}

// Channel maintains the log stream. The client never sends on it; every
// inbound text message becomes one classified line in the buffer and the
// view's log pane.
type Channel struct {
	url     string
	header  http.Header
	delay   time.Duration
	buffer  *Buffer
	sink    view.Sink
	logger  *zap.Logger
	state     atomic.Int32
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	startOnce sync.Once
}

// Options tunes a Channel beyond its defaults.
type Options struct {
	// ReconnectDelay overrides DefaultReconnectDelay when positive.
	ReconnectDelay time.Duration
	// Capacity overrides the buffer's retention bound when positive.
	Capacity int
}

// New creates a channel for the given WebSocket URL. The auth header is
// sent on the handshake; the socket is otherwise independent of the HTTP
// gateway.
func New(url, authHeader string, sink view.Sink, logger *zap.Logger, opts Options) *Channel {
	delay := opts.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}
	header := http.Header{}
	if authHeader != "" {
		header.Set("Authorization", authHeader)
	}
	return &Channel{
		url:    url,
		header: header,
		delay:  delay,
		buffer: NewBuffer(opts.Capacity),
		sink:   sink,
		logger: logger,
	}
}

// State reports the current lifecycle phase.
func (c *Channel) State() State {
	return State(c.state.Load())
}

// Lines returns a copy of the retained lines. Test and render aid; the
// buffer itself is only mutated by the channel goroutine.
func (c *Channel) Lines() []models.LogLine {
	return c.buffer.Lines()
}

// Start launches the connect/read/reconnect loop in its own goroutine.
// Extra calls are no-ops.
func (c *Channel) Start(ctx context.Context) {
	c.startOnce.Do(func() {
		ctx, c.cancel = context.WithCancel(ctx)

		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.run(ctx)
		}()
	})
}

// Stop tears the channel down and waits for the loop to exit.
func (c *Channel) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}

func (c *Channel) run(ctx context.Context) {
	for {
		c.state.Store(int32(StateConnecting))

		conn, resp, err := websocket.Dial(ctx, c.url, &websocket.DialOptions{
			HTTPHeader: c.header,
		})
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Debug("log stream dial failed", zap.Error(err))
			c.state.Store(int32(StateClosed))
			if !c.sleep(ctx) {
				return
			}
			continue
		}

		c.state.Store(int32(StateOpen))
		c.logger.Info("log stream connected", zap.String("url", c.url))

		c.read(ctx, conn)

		// Any read error forces a full close rather than leaving the
		// socket half-open.
		conn.Close(websocket.StatusNormalClosure, "")
		c.state.Store(int32(StateClosed))
		reconnectsTotal.Inc()

		if ctx.Err() != nil {
			return
		}
		c.logger.Debug("log stream closed, reconnecting", zap.Duration("delay", c.delay))
		if !c.sleep(ctx) {
			return
		}
	}
}

// read consumes messages until the socket errors or the context ends.
func (c *Channel) read(ctx context.Context, conn *websocket.Conn) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		c.deliver(string(data))
	}
}

// deliver classifies one raw line, records it, and resynchronizes the log
// pane: append, trim past capacity, stick-to-bottom handled by the sink.
func (c *Channel) deliver(raw string) {
	line := models.LogLine{Raw: raw, Severity: Classify(raw)}
	c.buffer.Append(line)
	linesTotal.WithLabelValues(string(line.Severity)).Inc()
	c.sink.AppendLog(line)
	c.sink.TrimLog(c.buffer.Cap())
}

// sleep waits out the reconnect delay; false means the context ended.
func (c *Channel) sleep(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(c.delay):
		return true
	}
}
