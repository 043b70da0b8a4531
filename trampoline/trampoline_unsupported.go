//go:build !arm64

package trampoline

import (
	"fmt"

	"github.com/haldoris/instrbench/internal/obs"
)

// trampolineAsm has no implementation outside arm64: the native stub's
// calling convention and cycle-counter access (trampoline_arm64.s) are
// architecture-specific by construction (spec.md §1 Non-goals). Invoking
// Native on any other GOARCH is a configuration error, not a measurement
// outcome, so it is fatal rather than returning a zero sample.
func trampolineAsm(result *int64, code uintptr, repeat uint64) {
	obs.Fatal("native trampoline invoked on unsupported architecture", fmt.Errorf("GOARCH is not arm64"), nil)
}
