package cpu

import (
	"bufio"
	"io"
	"log"
	"strconv"
	"strings"
)

// Assembler is a two-pass assembler for the DCPU-16 assembly language.
// The first pass parses the source into instructions whose operands may
// reference labels, computing provisional instruction lengths; the
// second pass assigns label addresses, resolves the references and
// emits the word stream.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label map[string]Word // Map of labels to word addresses.

	entries []entry
	uses    []labelUse
}

// entry is one parsed source line: an optional label declaration
// followed by an optional instruction.
type entry struct {
	lineNo int
	source string
	label  string
	instr  *Instruction
}

// labelUse records where a label reference appeared, for diagnostics,
// and which operand it has to be patched into.
type labelUse struct {
	name    string
	lineNo  int
	column  int
	source  string
	operand *Operand
}

// basicOpMap maps basic mnemonics.
var basicOpMap = map[string]BasicOp{
	"SET": OP_SET,
	"ADD": OP_ADD,
	"SUB": OP_SUB,
	"MUL": OP_MUL,
	"DIV": OP_DIV,
	"MOD": OP_MOD,
	"SHL": OP_SHL,
	"SHR": OP_SHR,
	"AND": OP_AND,
	"BOR": OP_BOR,
	"XOR": OP_XOR,
	"IFE": OP_IFE,
	"IFN": OP_IFN,
	"IFG": OP_IFG,
	"IFB": OP_IFB,
}

// nonBasicOpMap maps non-basic mnemonics.
var nonBasicOpMap = map[string]NonBasicOp{
	"JSR": NB_JSR,
}

// registerMap maps register names.
var registerMap = map[string]Register{
	"A": REG_A,
	"B": REG_B,
	"C": REG_C,
	"X": REG_X,
	"Y": REG_Y,
	"Z": REG_Z,
	"I": REG_I,
	"J": REG_J,
}

// operandMap maps the special-register and stack-operation names.
var operandMap = map[string]OperandCode{
	"POP":  OPD_POP,
	"PEEK": OPD_PEEK,
	"PUSH": OPD_PUSH,
	"SP":   OPD_SP,
	"PC":   OPD_PC,
	"O":    OPD_O,
}

// Assemble assembles source text into DCPU-16 bytecode, or returns the
// diagnostic describing the first error.
func Assemble(source string) (words []Word, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}
	words = prog.Words
	return
}

// Parse assembles an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.entries = asm.entries[:0]
	asm.uses = asm.uses[:0]
	asm.Label = make(map[string]Word, 16)

	err = asm.parse(input)
	if err != nil {
		return
	}

	prog, err = asm.emit()
	return
}

// parse is the first pass: source text to instruction list.
func (asm *Assembler) parse(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	var lineno int
	for scanner.Scan() {
		line := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	return scanner.Err()
}

// parseLine parses a single source line: an optional ':'-prefixed label
// declaration, an optional instruction, an optional ';' comment.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	lx := newLexer(line)

	fail := func(col int, cause error) error {
		return &ErrSyntax{LineNo: lineno, Column: col, Line: line, Err: cause}
	}

	tok, err := lx.next()
	if err != nil {
		return fail(lx.col, err)
	}

	ent := entry{lineNo: lineno, source: strings.TrimSpace(line)}

	if tok.kind == tokenColon {
		var name token
		name, err = lx.next()
		if err != nil {
			return fail(lx.col, err)
		}
		if name.kind != tokenIdent {
			return fail(name.col, ErrLabelExpected)
		}
		if _, ok := asm.Label[name.text]; ok {
			return fail(name.col, ErrLabelDuplicate)
		}
		// The address is assigned in the layout pass; presence in the
		// map is what detects duplicates until then.
		asm.Label[name.text] = 0
		ent.label = name.text

		tok, err = lx.next()
		if err != nil {
			return fail(lx.col, err)
		}
	}

	if tok.kind != tokenEOL {
		ent.instr = new(Instruction)
		err = asm.parseInstruction(lx, tok, ent.instr, lineno, line)
		if err != nil {
			return
		}

		tok, err = lx.next()
		if err != nil {
			return fail(lx.col, err)
		}
		if tok.kind != tokenEOL {
			return fail(tok.col, ErrTrailingToken)
		}
	}

	if ent.label == "" && ent.instr == nil {
		return
	}

	asm.entries = append(asm.entries, ent)
	return
}

// parseInstruction parses a basic or non-basic instruction starting at
// the mnemonic token into *in. Label references are only admitted where
// the grammar allows them: the b operand of a basic instruction and the
// sole operand of a non-basic one.
func (asm *Assembler) parseInstruction(lx *lexer, mnemonic token, in *Instruction, lineno int, line string) (err error) {
	fail := func(col int, cause error) error {
		return &ErrSyntax{LineNo: lineno, Column: col, Line: line, Err: cause}
	}

	if mnemonic.kind != tokenIdent {
		return fail(mnemonic.col, ErrMnemonicExpected)
	}

	if op, ok := basicOpMap[mnemonic.text]; ok {
		in.Op = op

		in.A, _, err = asm.parseValue(lx, lineno, line, false)
		if err != nil {
			return
		}

		var col int
		var tok token
		tok, err = lx.next()
		if err != nil {
			return fail(lx.col, err)
		}
		if tok.kind != tokenComma {
			return fail(tok.col, ErrCommaExpected)
		}

		in.B, col, err = asm.parseValue(lx, lineno, line, true)
		if err != nil {
			return
		}
		asm.recordUse(&in.B, lineno, col, line)
		return
	}

	if op, ok := nonBasicOpMap[mnemonic.text]; ok {
		in.NB = op

		var col int
		in.A, col, err = asm.parseValue(lx, lineno, line, true)
		if err != nil {
			return
		}
		asm.recordUse(&in.A, lineno, col, line)
		return
	}

	return fail(mnemonic.col, ErrMnemonicUnknown)
}

// recordUse notes an unresolved label reference for the resolver.
func (asm *Assembler) recordUse(o *Operand, lineno, column int, line string) {
	if o.Label == "" {
		return
	}
	asm.uses = append(asm.uses, labelUse{
		name:    o.Label,
		lineNo:  lineno,
		column:  column,
		source:  line,
		operand: o,
	})
}

// parseValue parses a single operand: a register, special register,
// stack operation, literal, one of the bracketed address forms, or -
// where allowLabel holds - a label reference. It returns the operand
// and the column it started at.
func (asm *Assembler) parseValue(lx *lexer, lineno int, line string, allowLabel bool) (o Operand, col int, err error) {
	fail := func(col int, cause error) error {
		return &ErrSyntax{LineNo: lineno, Column: col, Line: line, Err: cause}
	}

	tok, err := lx.next()
	if err != nil {
		err = fail(lx.col, err)
		return
	}
	col = tok.col

	switch tok.kind {
	case tokenIdent:
		if r, ok := registerMap[tok.text]; ok {
			o = RegisterOperand(r)
			return
		}
		if code, ok := operandMap[tok.text]; ok {
			o = Operand{Code: code}
			return
		}
		if isNumber(tok.text) {
			var v Word
			v, err = parseLiteral(tok.text)
			if err != nil {
				err = fail(tok.col, err)
				return
			}
			o = LiteralOperand(v)
			return
		}
		if !allowLabel {
			err = fail(tok.col, ErrValueExpected)
			return
		}
		o = LabelOperand(tok.text)
		return

	case tokenLBracket:
		o, err = asm.parseAddress(lx, lineno, line)
		return
	}

	err = fail(tok.col, ErrValueExpected)
	return
}

// parseAddress parses the forms [register], [literal] and
// [literal + register]. The opening bracket has been consumed.
func (asm *Assembler) parseAddress(lx *lexer, lineno int, line string) (o Operand, err error) {
	fail := func(col int, cause error) error {
		return &ErrSyntax{LineNo: lineno, Column: col, Line: line, Err: cause}
	}

	tok, err := lx.next()
	if err != nil {
		err = fail(lx.col, err)
		return
	}
	if tok.kind != tokenIdent {
		err = fail(tok.col, ErrValueExpected)
		return
	}

	if r, ok := registerMap[tok.text]; ok {
		o = RegisterAddrOperand(r)
		err = asm.expectBracketClose(lx, fail)
		return
	}

	if !isNumber(tok.text) {
		err = fail(tok.col, ErrValueExpected)
		return
	}

	var v Word
	v, err = parseLiteral(tok.text)
	if err != nil {
		err = fail(tok.col, err)
		return
	}

	tok, err = lx.next()
	if err != nil {
		err = fail(lx.col, err)
		return
	}

	switch tok.kind {
	case tokenRBracket:
		// Address literals keep the next-word form regardless of
		// magnitude.
		o = AddrOperand(v)
		return
	case tokenPlus:
		tok, err = lx.next()
		if err != nil {
			err = fail(lx.col, err)
			return
		}
		r, ok := registerMap[tok.text]
		if tok.kind != tokenIdent || !ok {
			err = fail(tok.col, ErrRegisterExpected)
			return
		}
		o = OffsetAddrOperand(v, r)
		err = asm.expectBracketClose(lx, fail)
		return
	}

	err = fail(tok.col, ErrBracketUnclosed)
	return
}

func (asm *Assembler) expectBracketClose(lx *lexer, fail func(int, error) error) (err error) {
	tok, err := lx.next()
	if err != nil {
		return fail(lx.col, err)
	}
	if tok.kind != tokenRBracket {
		return fail(tok.col, ErrBracketUnclosed)
	}
	return
}

// isNumber reports whether the token is a numeric literal. Identifiers
// used as labels never start with a digit.
func isNumber(text string) bool {
	return len(text) > 0 && text[0] >= '0' && text[0] <= '9'
}

// parseLiteral parses a '0x'-prefixed hexadecimal or decimal literal
// into a machine word.
func parseLiteral(text string) (v Word, err error) {
	var v64 uint64
	if rest, ok := strings.CutPrefix(text, "0x"); ok {
		if len(rest) == 0 || len(rest) > 4 {
			err = ErrLiteralMalformed
			return
		}
		v64, err = strconv.ParseUint(rest, 16, 64)
	} else {
		if len(text) > 5 {
			err = ErrLiteralRange
			return
		}
		v64, err = strconv.ParseUint(text, 10, 64)
	}
	if err != nil {
		err = ErrLiteralMalformed
		return
	}
	if v64 > 0xffff {
		err = ErrLiteralRange
		return
	}
	v = Word(v64)
	return
}

// emit is the second pass: lay out addresses, resolve label references
// and encode the word stream.
func (asm *Assembler) emit() (prog *Program, err error) {
	prog = &Program{}

	// Layout: the provisional length of every instruction is already
	// final, because label references always occupy an inline word.
	var addr Word
	for _, ent := range asm.entries {
		if ent.label != "" {
			asm.Label[ent.label] = addr
		}
		if ent.instr != nil {
			prog.Entries = append(prog.Entries, Entry{
				LineNo:  ent.lineNo,
				Address: addr,
				Source:  ent.source,
				Instr:   ent.instr,
			})
			addr += Word(ent.instr.Length())
		}
	}

	// Resolution: label references become next-word literals, never
	// small literals, so the addresses fixed above stay valid.
	for _, use := range asm.uses {
		target, ok := asm.Label[use.name]
		if !ok {
			err = &ErrSyntax{
				LineNo: use.lineNo,
				Column: use.column,
				Line:   use.source,
				Err:    ErrLabelMissing(use.name),
			}
			return
		}
		*use.operand = NextWordOperand(target)
	}

	for _, ent := range prog.Entries {
		prog.Words = ent.Instr.AppendWords(prog.Words)
	}

	if asm.Verbose {
		log.Printf("assembled %v words", len(prog.Words))
	}

	return
}
