// Package policy defines the model-proposal / deterministic-corrector
// pattern shared by the intent analyzer, data-source verifier, and
// architecture planner.
//
// Each of those steps asks a model for a structured proposal and then runs a
// deterministic correction stage over it: keyword rescans of the original
// request that fix or augment whatever the model returned. Keeping the
// corrector behind one interface keeps the two stages separate instead of
// inlining ad-hoc fixups after every model call.
package policy

// Corrector applies deterministic policy corrections to a model proposal.
// The original request text is always available so correctors can rescan it
// for signals the model missed or hallucinated.
//
// Correctors must be total: they accept any proposal, including zero values
// produced by fallback paths, and always return a usable result.
type Corrector[T any] interface {
	Correct(proposal T, originalRequest string) T
}

// CorrectorFunc adapts a function to the Corrector interface
type CorrectorFunc[T any] func(proposal T, originalRequest string) T

// Correct implements Corrector
func (f CorrectorFunc[T]) Correct(proposal T, originalRequest string) T {
	return f(proposal, originalRequest)
}
