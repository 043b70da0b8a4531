// Package workloads is a catalog of named ARM64 candidate snippets, adapted
// from a simulator's microbenchmark suite into the direct-call ABI this
// module's trampoline uses: every snippet here ends in RET rather than a
// simulated syscall exit, since it is invoked in-process rather than run to
// completion inside an emulated kernel.
package workloads

import "github.com/haldoris/instrbench/internal/armasm"

// Workload is one named candidate snippet, ready to hand a producer for
// registration under a freshly allocated Id.
type Workload struct {
	Name        string
	Description string
	Code        []byte
}

// Catalog returns the full set of bundled candidates.
func Catalog() []Workload {
	return []Workload{
		arithmeticSequential(),
		arithmetic6Wide(),
		arithmetic8Wide(),
		dependencyChain(),
		memorySequential(),
		memoryStrided(),
		loadHeavy(),
		storeHeavy(),
		branchTaken(),
		branchTakenConditional(),
		branchHotLoop(),
		branchHeavy(),
		functionCalls(),
		mixedOperations(),
		matrixMultiply2x2(),
		loopSimulation(),
		vectorSum(),
		vectorAdd(),
		reductionTree(),
		strideIndirect(),
	}
}

// Core returns a small subset for quick smoke checks: a loop, a
// matrix-shaped dependency chain, and a taken conditional-branch candidate.
func Core() []Workload {
	return []Workload{
		loopSimulation(),
		matrixMultiply2x2(),
		branchTakenConditional(),
	}
}

func ret() uint32 { return armasm.EncodeRET() }

// 1. Arithmetic sequential — independent ADDs across 5 scratch registers,
// measuring ALU throughput without any inter-instruction dependency.
func arithmeticSequential() Workload {
	const n, numRegs = 200, 5
	instrs := make([]uint32, 0, n+1)
	for i := 0; i < n; i++ {
		reg := uint8(9 + i%numRegs)
		instrs = append(instrs, armasm.EncodeADDImm(reg, reg, 1, false))
	}
	instrs = append(instrs, ret())
	return Workload{
		Name:        "arithmetic_sequential",
		Description: "200 independent ADDs across 5 registers",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 1b. Arithmetic 6-wide — 24 independent ADDs across 6 scratch registers.
func arithmetic6Wide() Workload {
	return fixedWidthAdds("arithmetic_6wide", "24 independent ADDs across 6 registers", 6, 4)
}

// 1c. Arithmetic 8-wide — 32 independent ADDs across 8 scratch registers.
func arithmetic8Wide() Workload {
	return fixedWidthAdds("arithmetic_8wide", "32 independent ADDs across 8 registers", 8, 4)
}

func fixedWidthAdds(name, desc string, width, groups int) Workload {
	instrs := make([]uint32, 0, width*groups+1)
	for g := 0; g < groups; g++ {
		for r := 0; r < width; r++ {
			reg := uint8(9 + r)
			instrs = append(instrs, armasm.EncodeADDImm(reg, reg, 1, false))
		}
	}
	instrs = append(instrs, ret())
	return Workload{Name: name, Description: desc, Code: armasm.BuildProgram(instrs...)}
}

// 2. Dependency chain — 200 serially dependent ADDs (X9 = X9 + 1 each
// time), measuring ALU forwarding latency rather than throughput.
func dependencyChain() Workload {
	const n = 200
	instrs := make([]uint32, 0, n+1)
	for i := 0; i < n; i++ {
		instrs = append(instrs, armasm.EncodeADDImm(9, 9, 1, false))
	}
	instrs = append(instrs, ret())
	return Workload{
		Name:        "dependency_chain",
		Description: "200 dependent ADDs — measures forwarding latency",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 3. Memory sequential — STR/LDR walking forward through a dedicated scratch
// frame at sequential 8-byte offsets. The frame is carved out of the stack
// below SP (SUB before use, ADD back before returning) so it never touches
// the caller's live frame — the trampoline keeps its own saved registers at
// small positive offsets from the SP it hands the candidate.
func memorySequential() Workload {
	const n = 64
	const scratch = n * 8
	instrs := make([]uint32, 0, n*2+4)
	instrs = append(instrs, armasm.EncodeSUBImm(31, 31, scratch, false)) // carve scratch frame
	instrs = append(instrs, armasm.EncodeADDImm(9, 31, 0, false))        // X9 = scratch base
	for i := uint16(0); i < n; i++ {
		instrs = append(instrs, armasm.EncodeSTR64(10, 9, i))
		instrs = append(instrs, armasm.EncodeLDR64(11, 9, i))
	}
	instrs = append(instrs, armasm.EncodeADDImm(31, 31, scratch, false)) // release scratch frame
	instrs = append(instrs, ret())
	return Workload{
		Name:        "memory_sequential",
		Description: "64 sequential STR/LDR pairs into a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 3b. Memory strided — STR/LDR at a fixed stride of 8 slots (64 bytes, one
// typical cache line), to exercise a less favorable access pattern. Also
// carves its own scratch frame below SP.
func memoryStrided() Workload {
	const n, stride = 32, 8
	const scratch = 512
	instrs := make([]uint32, 0, n*2+4)
	instrs = append(instrs, armasm.EncodeSUBImm(31, 31, scratch, false))
	instrs = append(instrs, armasm.EncodeADDImm(9, 31, 0, false))
	for i := uint16(0); i < n; i++ {
		off := (i * stride) % 64 // cycles within the scratch frame
		instrs = append(instrs, armasm.EncodeSTR64(10, 9, off))
		instrs = append(instrs, armasm.EncodeLDR64(11, 9, off))
	}
	instrs = append(instrs, armasm.EncodeADDImm(31, 31, scratch, false))
	instrs = append(instrs, ret())
	return Workload{
		Name:        "memory_strided",
		Description: "32 STR/LDR pairs at a fixed stride into a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 4. Load heavy — back-to-back LDRs from the same address, testing load
// port throughput independent of any store traffic.
func loadHeavy() Workload {
	const n = 64
	const scratch = 16
	instrs := make([]uint32, 0, n+4)
	instrs = append(instrs, armasm.EncodeSUBImm(31, 31, scratch, false))
	instrs = append(instrs, armasm.EncodeADDImm(9, 31, 0, false))
	for i := 0; i < n; i++ {
		instrs = append(instrs, armasm.EncodeLDR64(uint8(10+i%4), 9, 0))
	}
	instrs = append(instrs, armasm.EncodeADDImm(31, 31, scratch, false))
	instrs = append(instrs, ret())
	return Workload{
		Name:        "load_heavy",
		Description: "64 back-to-back loads from one scratch address",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 5. Store heavy — back-to-back STRs to the same address.
func storeHeavy() Workload {
	const n = 64
	const scratch = 16
	instrs := make([]uint32, 0, n+4)
	instrs = append(instrs, armasm.EncodeSUBImm(31, 31, scratch, false))
	instrs = append(instrs, armasm.EncodeADDImm(9, 31, 0, false))
	for i := 0; i < n; i++ {
		instrs = append(instrs, armasm.EncodeSTR64(uint8(10+i%4), 9, 0))
	}
	instrs = append(instrs, armasm.EncodeADDImm(31, 31, scratch, false))
	instrs = append(instrs, ret())
	return Workload{
		Name:        "store_heavy",
		Description: "64 back-to-back stores to one scratch address",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 6. Branch taken — an unconditional branch over a single instruction,
// repeated, to measure the cost of always-taken control flow.
func branchTaken() Workload {
	const n = 32
	instrs := make([]uint32, 0, n*2+1)
	for i := 0; i < n; i++ {
		instrs = append(instrs, armasm.EncodeB(8)) // skip the next instruction
		instrs = append(instrs, armasm.EncodeADDImm(9, 9, 1, false))
	}
	instrs = append(instrs, ret())
	return Workload{
		Name:        "branch_taken",
		Description: "32 always-taken unconditional branches",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 6b. Branch taken, conditional — CMP + B.GE forming a taken conditional
// branch, matching the CMP/B.cond idiom real compiled loops use.
func branchTakenConditional() Workload {
	const n = 32
	instrs := make([]uint32, 0, n*3+2)
	instrs = append(instrs, armasm.EncodeADDImm(9, 31, 0, true)) // X9 <- SP, sets flags >= 0
	for i := 0; i < n; i++ {
		instrs = append(instrs, armasm.EncodeCMPImm(9, 0))
		instrs = append(instrs, armasm.EncodeBCond(8, armasm.CondGE))
		instrs = append(instrs, armasm.EncodeADDImm(10, 10, 1, false))
	}
	instrs = append(instrs, ret())
	return Workload{
		Name:        "branch_taken_conditional",
		Description: "32 CMP + B.GE pairs, always taken",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 7. Branch hot loop — a single backward branch looping a fixed number of
// times via a decrementing counter, the classic countdown-loop shape.
func branchHotLoop() Workload {
	const iterations = 50
	// loop: SUBS X10, X10, #1; B.NE loop
	instrs := []uint32{
		armasm.EncodeMOVZ(10, iterations), // X10 = iterations (loop counter)
		armasm.EncodeSUBImm(10, 10, 1, true),
		armasm.EncodeBCond(-4, armasm.CondNE),
		ret(),
	}
	return Workload{
		Name:        "branch_hot_loop",
		Description: "single backward-branch countdown loop",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 8. Branch heavy — alternating taken/not-taken conditional branches.
func branchHeavy() Workload {
	const n = 32
	instrs := make([]uint32, 0, n*3+2)
	instrs = append(instrs, armasm.EncodeMOVZ(9, 0)) // X9 = 0, so CMP #0 / #1 alternate EQ / NE
	for i := 0; i < n; i++ {
		instrs = append(instrs, armasm.EncodeCMPImm(9, uint16(i%2)))
		instrs = append(instrs, armasm.EncodeBCond(8, armasm.CondEQ))
		instrs = append(instrs, armasm.EncodeADDImm(11, 11, 1, false))
	}
	instrs = append(instrs, ret())
	return Workload{
		Name:        "branch_heavy",
		Description: "32 conditional branches alternating taken/not-taken",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 9. Function calls — BL into a local RET stub, repeated, measuring
// call/return overhead in isolation from any other work. Every BL clobbers
// X30 (the link register), so the caller's own return address is saved to
// a scratch slot before the chain and restored after — otherwise the final
// internal RET would leave X30 pointing at the wrong place and the
// trampoline would never regain control.
func functionCalls() Workload {
	const n = 16
	const scratch = 16
	const prologueLen = 2 // SUB, STR
	const epilogueLen = 3 // LDR, ADD, RET
	stubIndex := prologueLen + n + epilogueLen

	instrs := make([]uint32, 0, prologueLen+n+epilogueLen+1)
	instrs = append(instrs,
		armasm.EncodeSUBImm(31, 31, scratch, false), // carve scratch frame
		armasm.EncodeSTR64(30, 31, 0),                // save caller's LR
	)
	for i := 0; i < n; i++ {
		callIndex := prologueLen + i
		instrs = append(instrs, armasm.EncodeBL(int32(4*(stubIndex-callIndex))))
	}
	instrs = append(instrs,
		armasm.EncodeLDR64(30, 31, 0),                // restore caller's LR
		armasm.EncodeADDImm(31, 31, scratch, false),  // release scratch frame
		ret(),
	)
	instrs = append(instrs, ret()) // callee stub

	return Workload{
		Name:        "function_calls",
		Description: "16 BL/RET pairs into a local stub, with LR saved across the chain",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 10. Mixed operations — interleaved ALU and memory ops, approximating a
// more realistic instruction mix than any single-shape benchmark.
func mixedOperations() Workload {
	const scratch = 256
	instrs := []uint32{
		armasm.EncodeSUBImm(31, 31, scratch, false),
		armasm.EncodeADDImm(9, 31, 0, false),
	}
	for i := uint16(0); i < 32; i++ {
		instrs = append(instrs,
			armasm.EncodeADDImm(10, 10, 1, false),
			armasm.EncodeSTR64(10, 9, i),
			armasm.EncodeLDR64(11, 9, i),
			armasm.EncodeSUBImm(11, 11, 1, false),
		)
	}
	instrs = append(instrs, armasm.EncodeADDImm(31, 31, scratch, false))
	instrs = append(instrs, ret())
	return Workload{
		Name:        "mixed_operations",
		Description: "interleaved ALU and memory ops into a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 11. Matrix multiply 2x2 — the ALU/dependency shape of a 2x2 matrix
// multiply fully unrolled, a realistic small dependency DAG.
func matrixMultiply2x2() Workload {
	// c00 = a00*b00 + a01*b10; approximated here with ADD/SUB over scratch
	// registers seeded from SP-relative memory, since this snippet has no
	// multiply encoder — the dependency shape (4 reads, 3 accumulate-adds,
	// 1 write) is what a scheduler actually feels.
	const scratch = 64
	instrs := []uint32{
		armasm.EncodeSUBImm(31, 31, scratch, false),
		armasm.EncodeADDImm(9, 31, 0, false),
		armasm.EncodeLDR64(10, 9, 0),
		armasm.EncodeLDR64(11, 9, 1),
		armasm.EncodeLDR64(12, 9, 2),
		armasm.EncodeLDR64(13, 9, 3),
		armasm.EncodeADDReg(14, 10, 11, false),
		armasm.EncodeADDReg(15, 12, 13, false),
		armasm.EncodeADDReg(16, 14, 15, false),
		armasm.EncodeSTR64(16, 9, 4),
		armasm.EncodeADDImm(31, 31, scratch, false),
		ret(),
	}
	return Workload{
		Name:        "matrix_multiply_2x2",
		Description: "2x2 matrix multiply dependency shape, unrolled, into a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 12. Loop simulation — a small fixed-trip-count loop body combining a
// memory op, an ALU op, and the backward branch that closes it.
func loopSimulation() Workload {
	const iterations = 20
	const scratch = 16
	instrs := []uint32{
		armasm.EncodeSUBImm(31, 31, scratch, false),
		armasm.EncodeADDImm(9, 31, 0, false),
		armasm.EncodeMOVZ(10, iterations),
		armasm.EncodeLDR64(11, 9, 0),
		armasm.EncodeADDImm(11, 11, 1, false),
		armasm.EncodeSTR64(11, 9, 0),
		armasm.EncodeSUBImm(10, 10, 1, true),
		armasm.EncodeBCond(-16, armasm.CondNE),
		armasm.EncodeADDImm(31, 31, scratch, false),
		ret(),
	}
	return Workload{
		Name:        "loop_simulation",
		Description: "fixed-trip-count loop: load, increment, store, branch, into a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 13. Vector sum — a straight-line reduction over a handful of scratch
// registers standing in for vector lanes.
func vectorSum() Workload {
	const scratch = 64
	instrs := []uint32{
		armasm.EncodeSUBImm(31, 31, scratch, false),
		armasm.EncodeADDImm(9, 31, 0, false),
		armasm.EncodeLDR64(10, 9, 0),
		armasm.EncodeLDR64(11, 9, 1),
		armasm.EncodeLDR64(12, 9, 2),
		armasm.EncodeLDR64(13, 9, 3),
		armasm.EncodeADDReg(10, 10, 11, false),
		armasm.EncodeADDReg(10, 10, 12, false),
		armasm.EncodeADDReg(10, 10, 13, false),
		armasm.EncodeADDImm(31, 31, scratch, false),
		ret(),
	}
	return Workload{
		Name:        "vector_sum",
		Description: "4-element scalarized reduction over a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 14. Vector add — elementwise add across 4 lanes, each independent.
func vectorAdd() Workload {
	const scratch = 64
	instrs := []uint32{
		armasm.EncodeSUBImm(31, 31, scratch, false),
		armasm.EncodeADDImm(9, 31, 0, false),
		armasm.EncodeLDR64(10, 9, 0),
		armasm.EncodeLDR64(11, 9, 1),
		armasm.EncodeLDR64(12, 9, 2),
		armasm.EncodeLDR64(13, 9, 3),
		armasm.EncodeLDR64(14, 9, 4),
		armasm.EncodeLDR64(15, 9, 5),
		armasm.EncodeLDR64(16, 9, 6),
		armasm.EncodeLDR64(17, 9, 7),
		armasm.EncodeADDReg(18, 10, 14, false),
		armasm.EncodeADDReg(19, 11, 15, false),
		armasm.EncodeADDReg(20, 12, 16, false),
		armasm.EncodeADDReg(21, 13, 17, false),
		armasm.EncodeADDImm(31, 31, scratch, false),
		ret(),
	}
	return Workload{
		Name:        "vector_add",
		Description: "4-lane elementwise add, scalarized, over a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 15. Reduction tree — a balanced-tree reduction of 8 values down to 1,
// contrasted with vectorSum's linear chain.
func reductionTree() Workload {
	const scratch = 64
	instrs := []uint32{
		armasm.EncodeSUBImm(31, 31, scratch, false),
		armasm.EncodeADDImm(9, 31, 0, false),
		armasm.EncodeLDR64(10, 9, 0),
		armasm.EncodeLDR64(11, 9, 1),
		armasm.EncodeLDR64(12, 9, 2),
		armasm.EncodeLDR64(13, 9, 3),
		armasm.EncodeLDR64(14, 9, 4),
		armasm.EncodeLDR64(15, 9, 5),
		armasm.EncodeLDR64(16, 9, 6),
		armasm.EncodeLDR64(17, 9, 7),
		armasm.EncodeADDReg(10, 10, 11, false),
		armasm.EncodeADDReg(12, 12, 13, false),
		armasm.EncodeADDReg(14, 14, 15, false),
		armasm.EncodeADDReg(16, 16, 17, false),
		armasm.EncodeADDReg(10, 10, 12, false),
		armasm.EncodeADDReg(14, 14, 16, false),
		armasm.EncodeADDReg(10, 10, 14, false),
		armasm.EncodeADDImm(31, 31, scratch, false),
		ret(),
	}
	return Workload{
		Name:        "reduction_tree",
		Description: "balanced-tree 8-to-1 reduction over a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}

// 16. Stride indirect — loads an offset from memory, then uses it to form a
// second, dependent load address — an indirection chain. The offset is a
// value this snippet wrote itself (8, one slot into its own scratch frame),
// so the second load stays in-bounds rather than dereferencing whatever
// garbage happened to be at an uninitialized address.
func strideIndirect() Workload {
	const scratch = 16
	instrs := []uint32{
		armasm.EncodeSUBImm(31, 31, scratch, false),
		armasm.EncodeADDImm(9, 31, 0, false), // X9 = scratch base
		armasm.EncodeMOVZ(10, 8),              // X10 = 8 (byte offset of the second slot)
		armasm.EncodeSTR64(10, 9, 0),          // [X9+0] = 8
		armasm.EncodeLDR64(10, 9, 0),          // load-to-use: X10 = 8
		armasm.EncodeADDReg(11, 9, 10, false), // X11 = X9 + 8 (still inside the frame)
		armasm.EncodeLDR64(12, 11, 0),         // dependent load through the computed address
		armasm.EncodeADDImm(31, 31, scratch, false),
		ret(),
	}
	return Workload{
		Name:        "stride_indirect",
		Description: "load-to-use address indirection chain within a dedicated scratch frame",
		Code:        armasm.BuildProgram(instrs...),
	}
}
