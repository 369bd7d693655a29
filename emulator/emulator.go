// Package emulator provides the outward facade over the DCPU-16
// machine: load a program, step or run it, and inspect the result.
package emulator

import (
	"log"
	"strings"

	"github.com/sunsided/dcpu-16/cpu"
)

// Emulator wraps a Cpu together with the assembled program listing, so
// that verbose traces can be related back to source lines.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.

	*cpu.Cpu
	Program *cpu.Program // Listing of the running program, if assembled here.
}

// NewEmulator creates an emulator with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(nil),
	}

	return
}

// Load resets the machine and loads the word sequence at address zero.
func (emu *Emulator) Load(program []cpu.Word) (err error) {
	if len(program) > cpu.NUM_RAM_WORDS {
		err = ErrProgramTooLarge
		return
	}

	emu.Cpu = cpu.NewCpu(program)
	emu.Cpu.Verbose = emu.Verbose
	emu.Program = nil

	return
}

// Assemble assembles source text and loads the resulting program,
// retaining the listing for source-level traces.
func (emu *Emulator) Assemble(source string) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	err = emu.Load(prog.Words)
	if err != nil {
		return
	}
	emu.Program = prog

	return
}

// LineNo returns the source line of the instruction the program counter
// points at, or 0 when no listing is available.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}
	if ent := emu.Program.Debug(emu.Cpu.PC); ent != nil {
		return ent.LineNo
	}

	return 0
}

// Step executes a single instruction and reports whether the program
// entered its crash loop.
func (emu *Emulator) Step() (halted bool) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Verbose && emu.Program != nil {
		if ent := emu.Program.Debug(emu.Cpu.PC); ent != nil {
			log.Printf("%v: %v", ent.LineNo, ent.Source)
		}
	}

	return emu.Cpu.Step()
}

// Run executes the program until it enters its crash loop.
func (emu *Emulator) Run() {
	for !emu.Step() {
	}
}
