package operator

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// Terminal implements Interactor against stdin/stderr. Prompts go to
// stderr so they interleave cleanly with dashboard output on stdout.
//
// Stdin has exactly one reader at a time. Outside of Run, the calling
// goroutine reads directly. While Run owns the input, prompts from any
// goroutine are queued and serviced between command lines: the label is
// printed and the next typed line answers the prompt instead of being
// dispatched as a command.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int

	mu   sync.Mutex
	host *inputHost
}

// inputHost is the state of one Run invocation. Requests posted to it are
// serviced by the Run goroutine; done closes when Run returns.
type inputHost struct {
	requests chan *promptRequest
	done     chan struct{}
}

type promptRequest struct {
	render func(io.Writer)
	reply  chan lineResult
}

type lineResult struct {
	text string
	err  error
}

var _ Interactor = (*Terminal)(nil)

// NewTerminal creates an Interactor bound to the process terminal.
func NewTerminal() *Terminal {
	return newTerminal(bufio.NewReader(os.Stdin), os.Stderr, int(os.Stdin.Fd()))
}

func newTerminal(in *bufio.Reader, out io.Writer, fd int) *Terminal {
	return &Terminal{in: in, out: out, fd: fd}
}

// Run takes ownership of stdin and reads command lines until the input
// fails (typically EOF) or handle returns false. Each non-empty line goes
// to handle; prompt requests from other goroutines are serviced in
// between, so a reauth prompt fired mid-read receives the answer typed
// for it. handle runs on the Run goroutine and must not prompt from it;
// dispatch work that prompts again in its own goroutine.
func (t *Terminal) Run(prompt string, handle func(line string) bool) error {
	h := &inputHost{
		requests: make(chan *promptRequest),
		done:     make(chan struct{}),
	}
	t.mu.Lock()
	t.host = h
	t.mu.Unlock()
	defer func() {
		close(h.done)
		t.mu.Lock()
		t.host = nil
		t.mu.Unlock()
	}()

	lines := make(chan lineResult, 1)
	go func() {
		for {
			res := t.readLine()
			lines <- res
			if res.err != nil {
				return
			}
		}
	}()

	fmt.Fprint(t.out, prompt)
	for {
		select {
		case res := <-lines:
			if res.err != nil {
				return res.err
			}
			if line := strings.TrimSpace(res.text); line != "" && !handle(line) {
				return nil
			}
			fmt.Fprint(t.out, prompt)
		case req := <-h.requests:
			req.render(t.out)
			res := <-lines
			req.reply <- res
			if res.err != nil {
				return res.err
			}
			fmt.Fprint(t.out, prompt)
		}
	}
}

// ask prints one label and reads one line of input, routing through the
// Run goroutine when it owns stdin.
func (t *Terminal) ask(render func(io.Writer)) lineResult {
	t.mu.Lock()
	host := t.host
	t.mu.Unlock()

	if host == nil {
		render(t.out)
		return t.readLine()
	}

	req := &promptRequest{render: render, reply: make(chan lineResult, 1)}
	select {
	case host.requests <- req:
		return <-req.reply
	case <-host.done:
		return lineResult{err: io.EOF}
	}
}

func (t *Terminal) readLine() lineResult {
	line, err := t.in.ReadString('\n')
	if err != nil {
		return lineResult{err: err}
	}
	return lineResult{text: strings.TrimRight(line, "\r\n")}
}

func (t *Terminal) Prompt(label, def string) (string, bool) {
	res := t.ask(func(w io.Writer) {
		if def != "" {
			fmt.Fprintf(w, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(w, "%s: ", label)
		}
	})
	if res.err != nil {
		return "", false
	}
	if res.text == "" {
		if def == "" {
			return "", false
		}
		return def, true
	}
	return res.text, true
}

func (t *Terminal) PromptSecret(label string) (string, bool) {
	t.mu.Lock()
	hosted := t.host != nil
	t.mu.Unlock()

	// Raw-mode reads need sole access to the fd. While Run owns stdin,
	// or when there is no terminal to disable echo on, the secret is read
	// as a plain line.
	if hosted || !term.IsTerminal(t.fd) {
		return t.Prompt(label, "")
	}
	fmt.Fprintf(t.out, "%s: ", label)
	secret, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil || len(secret) == 0 {
		return "", false
	}
	return string(secret), true
}

func (t *Terminal) Confirm(question string) bool {
	answer, ok := t.Prompt(question+" (y/N)", "")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (t *Terminal) Notify(message string) {
	fmt.Fprintln(t.out, message)
}
