// Package trampoline invokes an executable snippet N times inside a tight
// loop and returns the elapsed cycle-counter delta, bracketed by
// serializing barriers (spec.md §4.2). The loop lives inside the trampoline
// rather than around each call so the baseline's own call/loop overhead is
// amortized over repeat and subtracted with the same structure as every
// candidate.
package trampoline

// Invoker is the trampoline's call surface: invoke the function at codeAddr
// exactly repeat times, returning the raw elapsed-cycle delta as a signed
// value (negative deltas are physically meaningful measurement noise and
// must not be treated as an error; spec.md §9).
type Invoker interface {
	Invoke(codeAddr uintptr, repeat uint64) int64
}

// Native is the architecture-specific trampoline backed by the hand-written
// stub in trampoline_arm64.s. Cross-architecture portability of the stub is
// explicitly out of scope (spec.md §1 Non-goals); on any other GOARCH,
// trampolineAsm aborts with a diagnostic (trampoline_unsupported.go).
type Native struct{}

// Invoke implements Invoker.
func (Native) Invoke(codeAddr uintptr, repeat uint64) int64 {
	var result int64
	trampolineAsm(&result, codeAddr, repeat)
	return result
}
