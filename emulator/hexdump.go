package emulator

import (
	"fmt"
	"strings"

	"github.com/sunsided/dcpu-16/cpu"
)

// Hexdump renders a word sequence as lines of "ADDR: W0 W1 ... W7"
// with uppercase four-digit hex words. wordsPerLine defaults to 8.
func Hexdump(words []cpu.Word, wordsPerLine int) string {
	if wordsPerLine <= 0 {
		wordsPerLine = 8
	}

	var sb strings.Builder
	for base := 0; base < len(words); base += wordsPerLine {
		fmt.Fprintf(&sb, "%04X:", base)
		for n := base; n < base+wordsPerLine && n < len(words); n++ {
			fmt.Fprintf(&sb, " %04X", uint16(words[n]))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// HexdumpProgram dumps the loaded program region of RAM.
func (emu *Emulator) HexdumpProgram(wordsPerLine int) string {
	return Hexdump(emu.Cpu.Ram[:emu.Cpu.ProgramLen()], wordsPerLine)
}

// HexdumpRam dumps the first limit words of RAM.
func (emu *Emulator) HexdumpRam(limit, wordsPerLine int) string {
	if limit > len(emu.Cpu.Ram) {
		limit = len(emu.Cpu.Ram)
	}
	return Hexdump(emu.Cpu.Ram[:limit], wordsPerLine)
}
