//go:build arm64

package trampoline

// trampolineAsm is implemented in trampoline_arm64.s. It stores the
// elapsed-cycle delta for repeat back-to-back calls to code into *result,
// bracketed by ISB barriers on either side of the timed region.
//
//go:noescape
func trampolineAsm(result *int64, code uintptr, repeat uint64)
