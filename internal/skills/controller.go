// Package skills mediates the two mutating skill lifecycle commands,
// promote and deprecate. Neither is optimistic: the rendered list is only
// ever updated by re-fetching, so the agent stays the single source of
// truth even when a mutation half-lands.
package skills

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/internal/gateway"
	"github.com/taloswatch/taloswatch/internal/operator"
	"github.com/taloswatch/taloswatch/pkg/models"
)

// Controller issues skill mutations through the gateway and triggers the
// scheduler-independent refresh afterward.
type Controller struct {
	gw      *gateway.Gateway
	prompt  operator.Interactor
	refresh func()
	logger  *zap.Logger
}

// NewController creates a controller. refresh is invoked after every
// issued mutation, regardless of its outcome.
func NewController(gw *gateway.Gateway, prompt operator.Interactor, refresh func(), logger *zap.Logger) *Controller {
	return &Controller{gw: gw, prompt: prompt, refresh: refresh, logger: logger}
}

// Promote asks the operator for the skill's TTS code and issues the
// promote command. A cancelled or empty prompt aborts with no request
// sent. Success and failure are both reported to the operator, and both
// end in exactly one skills refresh: a failed promote may still have
// partially mutated remote state.
func (c *Controller) Promote(ctx context.Context, skillID string) error {
	code, ok := c.prompt.PromptSecret(fmt.Sprintf("Enter TTS code for skill %q", skillID))
	if !ok || code == "" {
		return nil
	}

	res, err := c.gw.Post(ctx, "/skills/"+skillID+"/promote", models.PromoteRequest{TTSCode: code})
	if err != nil {
		c.prompt.Notify(fmt.Sprintf("Failed: %v", err))
		c.refresh()
		return fmt.Errorf("promote %s: %w", skillID, err)
	}

	if res.OK() {
		c.prompt.Notify("Skill promoted!")
	} else {
		c.prompt.Notify("Failed: " + res.Detail())
		c.logger.Warn("promote rejected",
			zap.String("skill_id", skillID),
			zap.Int("status", res.StatusCode),
		)
	}

	c.refresh()
	return nil
}

// Deprecate confirms with the operator and issues the delete command
// fire-and-forget: the response body is not inspected, and the refresh
// runs unconditionally so the view lands on whatever the agent now holds.
func (c *Controller) Deprecate(ctx context.Context, skillID string) error {
	if !c.prompt.Confirm(fmt.Sprintf("Deprecate skill %q?", skillID)) {
		return nil
	}

	if _, err := c.gw.Delete(ctx, "/skills/"+skillID); err != nil {
		c.logger.Warn("deprecate failed", zap.String("skill_id", skillID), zap.Error(err))
	}

	c.refresh()
	return nil
}
