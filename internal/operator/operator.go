// Package operator abstracts the blocking interactive exchanges the
// dashboard has with its human operator: credential entry, promote codes,
// deprecate confirmation, and one-line notifications. Components take the
// Interactor interface so tests can script deterministic answers.
package operator

// Interactor is the operator-interaction capability injected into every
// component that needs a human decision.
type Interactor interface {
	// Prompt asks for one line of input with a pre-filled default.
	// ok is false when the operator cancels.
	Prompt(label, def string) (value string, ok bool)

	// PromptSecret asks for one line of input without echoing it.
	PromptSecret(label string) (value string, ok bool)

	// Confirm asks a yes/no question.
	Confirm(question string) bool

	// Notify shows a one-line message requiring no response.
	Notify(message string)
}
