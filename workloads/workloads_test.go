package workloads_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldoris/instrbench/internal/armasm"
	"github.com/haldoris/instrbench/workloads"
)

func TestCatalog_NamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, w := range workloads.Catalog() {
		assert.False(t, seen[w.Name], "duplicate workload name %q", w.Name)
		seen[w.Name] = true
	}
}

func TestCatalog_EndsInRET(t *testing.T) {
	retWord := armasm.EncodeRET()
	for _, w := range workloads.Catalog() {
		require.True(t, len(w.Code) >= 4, "%s: code too short", w.Name)
		last := w.Code[len(w.Code)-4:]
		got := uint32(last[0]) | uint32(last[1])<<8 | uint32(last[2])<<16 | uint32(last[3])<<24
		assert.Equal(t, retWord, got, "%s: last instruction is not RET", w.Name)
	}
}

func TestCatalog_CodeIsWordAligned(t *testing.T) {
	for _, w := range workloads.Catalog() {
		assert.Zero(t, len(w.Code)%4, "%s: code length %d is not a multiple of 4", w.Name, len(w.Code))
	}
}

func TestCore_IsSubsetOfCatalog(t *testing.T) {
	full := make(map[string]bool)
	for _, w := range workloads.Catalog() {
		full[w.Name] = true
	}
	for _, w := range workloads.Core() {
		assert.True(t, full[w.Name], "core workload %q missing from full catalog", w.Name)
	}
}
