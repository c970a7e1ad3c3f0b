package skills

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/internal/gateway"
)

// scriptedPrompt answers the promote code and deprecate confirmation.
type scriptedPrompt struct {
	code      string
	cancel    bool
	confirm   bool
	notices   []string
	codeAsked int
}

func (s *scriptedPrompt) Prompt(label, def string) (string, bool) {
	if s.cancel {
		return "", false
	}
	return def, true
}

func (s *scriptedPrompt) PromptSecret(label string) (string, bool) {
	s.codeAsked++
	if s.cancel || s.code == "" {
		return "", false
	}
	return s.code, true
}

func (s *scriptedPrompt) Confirm(question string) bool { return s.confirm }

func (s *scriptedPrompt) Notify(message string) { s.notices = append(s.notices, message) }

func (s *scriptedPrompt) noticed(substr string) bool {
	for _, n := range s.notices {
		if strings.Contains(n, substr) {
			return true
		}
	}
	return false
}

type mutationServer struct {
	srv          *httptest.Server
	promoteHits  int
	deleteHits   int
	lastTTSCode  string
	promoteState int
	promoteBody  string
}

func newMutationServer(t *testing.T) *mutationServer {
	t.Helper()
	m := &mutationServer{promoteState: http.StatusOK}
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/promote"):
			m.promoteHits++
			var body struct {
				TTSCode string `json:"tts_code"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			m.lastTTSCode = body.TTSCode
			w.WriteHeader(m.promoteState)
			if m.promoteBody != "" {
				w.Write([]byte(m.promoteBody))
			}
		case r.Method == http.MethodDelete:
			m.deleteHits++
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(m.srv.Close)
	return m
}

func newTestController(t *testing.T, m *mutationServer, prompt *scriptedPrompt) (*Controller, *int) {
	t.Helper()
	refreshes := 0
	gw := gateway.New(m.srv.URL, gateway.NewCredentialStore("admin", ""), prompt, nil, zap.NewNop())
	c := NewController(gw, prompt, func() { refreshes++ }, zap.NewNop())
	return c, &refreshes
}

func TestPromote_CancelledPromptSendsNothing(t *testing.T) {
	m := newMutationServer(t)
	prompt := &scriptedPrompt{cancel: true}
	c, refreshes := newTestController(t, m, prompt)

	if err := c.Promote(context.Background(), "s1"); err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if m.promoteHits != 0 {
		t.Errorf("promote requests = %d, want 0", m.promoteHits)
	}
	if *refreshes != 0 {
		t.Errorf("refreshes = %d, want 0", *refreshes)
	}
}

func TestPromote_SuccessNotifiesAndRefreshesOnce(t *testing.T) {
	m := newMutationServer(t)
	prompt := &scriptedPrompt{code: "4812"}
	c, refreshes := newTestController(t, m, prompt)

	if err := c.Promote(context.Background(), "s1"); err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if m.promoteHits != 1 {
		t.Errorf("promote requests = %d, want exactly 1", m.promoteHits)
	}
	if m.lastTTSCode != "4812" {
		t.Errorf("tts_code = %q, want 4812", m.lastTTSCode)
	}
	if !prompt.noticed("promoted") {
		t.Errorf("operator notices = %v, want promotion confirmation", prompt.notices)
	}
	if *refreshes != 1 {
		t.Errorf("refreshes = %d, want exactly 1", *refreshes)
	}
}

func TestPromote_FailureSurfacesDetailAndStillRefreshes(t *testing.T) {
	m := newMutationServer(t)
	m.promoteState = http.StatusConflict
	m.promoteBody = `{"detail":"tts code expired"}`
	prompt := &scriptedPrompt{code: "0000"}
	c, refreshes := newTestController(t, m, prompt)

	if err := c.Promote(context.Background(), "s1"); err != nil {
		t.Fatalf("Promote() error = %v", err)
	}
	if !prompt.noticed("tts code expired") {
		t.Errorf("operator notices = %v, want remote detail surfaced verbatim", prompt.notices)
	}
	// A failed promote may still have partially mutated remote state, so
	// the view resynchronizes regardless.
	if *refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", *refreshes)
	}
}

func TestDeprecate_DeclinedConfirmationSendsNothing(t *testing.T) {
	m := newMutationServer(t)
	prompt := &scriptedPrompt{confirm: false}
	c, refreshes := newTestController(t, m, prompt)

	if err := c.Deprecate(context.Background(), "s1"); err != nil {
		t.Fatalf("Deprecate() error = %v", err)
	}
	if m.deleteHits != 0 {
		t.Errorf("delete requests = %d, want 0", m.deleteHits)
	}
	if *refreshes != 0 {
		t.Errorf("refreshes = %d, want 0", *refreshes)
	}
}

func TestDeprecate_ConfirmedDeletesAndRefreshes(t *testing.T) {
	m := newMutationServer(t)
	prompt := &scriptedPrompt{confirm: true}
	c, refreshes := newTestController(t, m, prompt)

	if err := c.Deprecate(context.Background(), "s1"); err != nil {
		t.Fatalf("Deprecate() error = %v", err)
	}
	if m.deleteHits != 1 {
		t.Errorf("delete requests = %d, want 1", m.deleteHits)
	}
	if *refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", *refreshes)
	}
}

func TestDeprecate_RefreshesEvenWhenDeleteFails(t *testing.T) {
	m := newMutationServer(t)
	prompt := &scriptedPrompt{confirm: true}
	c, refreshes := newTestController(t, m, prompt)
	m.srv.Close()

	if err := c.Deprecate(context.Background(), "s1"); err != nil {
		t.Fatalf("Deprecate() error = %v", err)
	}
	if *refreshes != 1 {
		t.Errorf("refreshes = %d, want 1 (fire-and-forget)", *refreshes)
	}
}
