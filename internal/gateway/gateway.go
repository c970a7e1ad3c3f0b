// Package gateway is the single chokepoint for authenticated HTTP calls to
// the Talos agent. Every request carries the basic-auth header derived from
// the credential store, and a 401 from any endpoint runs the interactive
// reauth flow exactly once for that call.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/internal/operator"
	"github.com/taloswatch/taloswatch/pkg/models"
)

// ErrUnauthorized is returned for the call that triggered a 401. The call
// is terminal: the gateway never retries it, whether or not the operator
// supplied new credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Gateway decorates outbound requests with authentication and centralizes
// 401 recovery.
type Gateway struct {
	// No client timeout: a hung request occupies only its caller's task,
	// and the next tick of every other task still fires.
	httpClient *http.Client
	baseURL    string
	creds      *CredentialStore
	prompt     operator.Interactor
	reload     func()
	logger     *zap.Logger

	// reauthMu serializes the interactive reauth flow so concurrent 401s
	// from the polling tasks produce one prompt, not several interleaved
	// ones.
	reauthMu sync.Mutex
}

// New creates a gateway for the given base URL. reload is invoked after
// the operator supplies fresh credentials so the host can restart all
// client state cleanly; it may be nil.
func New(baseURL string, creds *CredentialStore, prompt operator.Interactor, reload func(), logger *zap.Logger) *Gateway {
	return &Gateway{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		creds:      creds,
		prompt:     prompt,
		reload:     reload,
		logger:     logger,
	}
}

// Response is a fully read reply from the agent. The body is buffered so
// callers can branch on status before decoding.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into result. An empty body is left as the
// zero value.
func (r *Response) Decode(result any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, result); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

// Detail extracts the structured rejection detail the agent attaches to
// error responses, falling back to the HTTP status text.
func (r *Response) Detail() string {
	var d models.ErrorDetail
	if err := json.Unmarshal(r.Body, &d); err == nil && d.Detail != "" {
		return d.Detail
	}
	return http.StatusText(r.StatusCode)
}

// Get issues an authenticated GET.
func (g *Gateway) Get(ctx context.Context, path string) (*Response, error) {
	return g.Do(ctx, http.MethodGet, path, nil)
}

// Post issues an authenticated POST with a JSON body.
func (g *Gateway) Post(ctx context.Context, path string, body any) (*Response, error) {
	return g.Do(ctx, http.MethodPost, path, body)
}

// Delete issues an authenticated DELETE.
func (g *Gateway) Delete(ctx context.Context, path string) (*Response, error) {
	return g.Do(ctx, http.MethodDelete, path, nil)
}

// Do performs one authenticated request and buffers the reply. Non-2xx
// statuses other than 401 are returned to the caller undisturbed; each
// caller owns its own status semantics. A 401 triggers the reauth flow and
// fails the call with ErrUnauthorized.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	used := g.creds.Current()
	req.Header.Set("Authorization", used.Header())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestsTotal.WithLabelValues(method).Inc()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		g.reauth(used)
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// reauth prompts the operator for fresh credentials. When both fields come
// back non-empty the store is replaced and the reload hook fires so the
// host restarts all in-flight state; a cancelled or empty prompt changes
// nothing. Either way the triggering call fails. used is the credential
// pair the rejected request was signed with: if another call already
// replaced it while this one waited for the lock, the 401 is stale and no
// prompt is shown.
func (g *Gateway) reauth(used Credentials) {
	g.reauthMu.Lock()
	defer g.reauthMu.Unlock()

	current := g.creds.Current()
	if current != used {
		return
	}

	authRepromptsTotal.Inc()
	identity, ok := g.prompt.Prompt("Username", current.Identity)
	if !ok || identity == "" {
		return
	}
	secret, ok := g.prompt.PromptSecret("Password")
	if !ok || secret == "" {
		return
	}

	g.creds.Replace(Credentials{Identity: identity, Secret: secret})
	g.logger.Info("credentials replaced, reloading client", zap.String("identity", identity))
	if g.reload != nil {
		g.reload()
	}
}
