// Command taloswatch is a terminal host for the Talos dashboard sync
// layer: it streams the agent's logs, polls health/metrics/skills, and
// accepts chat and skill lifecycle commands on stdin.
//
// Commands: "tab <filter>", "promote <skill-id>", "deprecate <skill-id>",
// "quit"; any other non-empty line is sent to the agent as chat.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"go.uber.org/zap"

	"github.com/taloswatch/taloswatch/internal/chat"
	"github.com/taloswatch/taloswatch/internal/config"
	"github.com/taloswatch/taloswatch/internal/gateway"
	"github.com/taloswatch/taloswatch/internal/logstream"
	"github.com/taloswatch/taloswatch/internal/operator"
	"github.com/taloswatch/taloswatch/internal/poll"
	"github.com/taloswatch/taloswatch/internal/session"
	"github.com/taloswatch/taloswatch/internal/skills"
	"github.com/taloswatch/taloswatch/internal/view"
)

// client is one wired-up generation of the sync layer. A credential reload
// tears the generation down and builds a fresh one.
type client struct {
	ctx       context.Context
	scheduler *poll.Scheduler
	skills    *skills.Controller
	chat      *chat.Controller
}

func main() {
	serverURL := flag.String("server", "", "Talos agent base URL (overrides config)")
	cfgPath := flag.String("config", "", "Path to config file")
	identity := flag.String("user", "", "Operator identity (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		os.Stderr.WriteString("taloswatch: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if *identity != "" {
		cfg.Auth.Identity = *identity
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		os.Stderr.WriteString("taloswatch: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	term := operator.NewTerminal()
	creds := gateway.NewCredentialStore(cfg.Auth.Identity, cfg.Auth.Secret)
	sink := view.NewTermSink(os.Stdout)

	var current atomic.Pointer[client]
	go commandLoop(term, &current, cancel)

	// Each pass of this loop is one client generation: a credential
	// replacement cancels the generation context and everything restarts
	// cleanly, the closest in-process equivalent of a page reload.
	for ctx.Err() == nil {
		runCtx, cancelRun := context.WithCancel(ctx)

		gw := gateway.New(cfg.Server.URL, creds, term, cancelRun, logger)
		sess := session.New()
		logger.Info("client session starting",
			zap.String("session_id", sess.ID),
			zap.String("server", cfg.Server.URL),
		)

		channel := logstream.New(cfg.WebSocketURL(), creds.Header(), sink, logger, logstream.Options{
			ReconnectDelay: cfg.Logs.ReconnectDelay,
			Capacity:       cfg.Logs.BufferCapacity,
		})
		scheduler := poll.NewScheduler(gw, sink, sess, poll.Intervals{
			Health:  cfg.Poll.HealthInterval,
			Metrics: cfg.Poll.MetricsInterval,
			Skills:  cfg.Poll.SkillsInterval,
		}, logger)

		current.Store(&client{
			ctx:       runCtx,
			scheduler: scheduler,
			skills:    skills.NewController(gw, term, scheduler.RefreshSkills, logger),
			chat:      chat.NewController(gw, sink, logger),
		})

		channel.Start(runCtx)
		scheduler.Start(runCtx)

		<-runCtx.Done()
		current.Store(nil)
		channel.Stop()
		scheduler.Stop()

		if ctx.Err() == nil {
			logger.Info("reloading client with fresh credentials")
		}
	}

	logger.Info("taloswatch stopped")
}

// commandLoop owns stdin for the life of the process and dispatches
// operator commands against the current client generation; during a
// reload, input lines are dropped until the next generation is wired.
// Terminal.Run also services reauth prompts between command lines, so
// commands that prompt again (promote, deprecate) run off this goroutine.
func commandLoop(term *operator.Terminal, current *atomic.Pointer[client], quit func()) {
	_ = term.Run("talos> ", func(line string) bool {
		if line == "quit" || line == "exit" {
			return false
		}

		c := current.Load()
		if c == nil {
			return true
		}

		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)
		switch {
		case cmd == "tab" && arg != "":
			c.scheduler.SetTab(arg)
		case cmd == "promote" && arg != "":
			go func() { _ = c.skills.Promote(c.ctx, arg) }()
		case cmd == "deprecate" && arg != "":
			go func() { _ = c.skills.Deprecate(c.ctx, arg) }()
		default:
			go func() { _ = c.chat.Send(c.ctx, line) }()
		}
		return true
	})

	// Stdin closed or the operator quit.
	quit()
}
