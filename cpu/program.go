package cpu

import (
	"iter"
)

// Program is an assembled program: the emitted word stream plus the
// per-line listing used for address-to-source lookups.
type Program struct {
	Words   []Word
	Entries []Entry
}

// Entry is one assembled source line with its word address.
type Entry struct {
	LineNo  int
	Address Word
	Source  string
	Instr   *Instruction
}

// Debug returns the listing entry whose words cover the given address,
// or nil when the address falls outside the program.
func (prog *Program) Debug(addr Word) (ent *Entry) {
	for n := range prog.Entries {
		e := &prog.Entries[n]
		if addr >= e.Address && int(addr) < int(e.Address)+e.Instr.Length() {
			ent = e
			break
		}
	}

	return
}

// Instructions iterates over the program's instructions with their word
// addresses, in layout order.
func (prog *Program) Instructions() iter.Seq2[Word, *Instruction] {
	return func(yield func(addr Word, in *Instruction) bool) {
		for _, ent := range prog.Entries {
			if !yield(ent.Address, ent.Instr) {
				return
			}
		}
	}
}
