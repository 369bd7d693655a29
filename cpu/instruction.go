package cpu

// Operand is a decoded operand: its 6-bit code plus the inline word the
// code consumes, if any. During assembly the inline word may still be
// an unresolved label reference; resolution always produces the
// next-word literal form, so an operand's word count never changes.
type Operand struct {
	Code  OperandCode
	Next  Word
	Label string
}

// RegisterOperand returns the direct register form.
func RegisterOperand(r Register) Operand {
	return Operand{Code: OPD_REG + OperandCode(r)}
}

// RegisterAddrOperand returns the [register] form.
func RegisterAddrOperand(r Register) Operand {
	return Operand{Code: OPD_REG_ADDR + OperandCode(r)}
}

// OffsetAddrOperand returns the [next word + register] form.
func OffsetAddrOperand(next Word, r Register) Operand {
	return Operand{Code: OPD_REG_NEXT + OperandCode(r), Next: next}
}

// AddrOperand returns the [next word] form. The next-word form is used
// for address literals regardless of their magnitude.
func AddrOperand(next Word) Operand {
	return Operand{Code: OPD_NEXT_ADDR, Next: next}
}

// LiteralOperand returns the canonical encoding of a literal value:
// values up to 31 inline into the operand code, larger values take the
// next-word literal form.
func LiteralOperand(v Word) Operand {
	if v <= SMALL_LITERAL_MAX {
		return Operand{Code: OPD_LITERAL + OperandCode(v)}
	}
	return Operand{Code: OPD_NEXT_LIT, Next: v}
}

// NextWordOperand returns the next-word literal form, bypassing the
// small-literal inlining. Label references resolve through this so that
// the addresses fixed in the layout pass stay valid.
func NextWordOperand(v Word) Operand {
	return Operand{Code: OPD_NEXT_LIT, Next: v}
}

// LabelOperand returns an unresolved reference to a label. It occupies
// one inline word, which the resolver fills in.
func LabelOperand(name string) Operand {
	return Operand{Code: OPD_NEXT_LIT, Label: name}
}

// Value returns the operand's immediate value for the literal forms.
func (o Operand) Value() Word {
	if o.Code.IsSmallLiteral() {
		return o.Code.Literal()
	}
	return o.Next
}

// Instruction is a decoded basic or non-basic instruction. Op is zero
// for non-basic instructions, in which case NB identifies the opcode
// and B is unused.
type Instruction struct {
	Op BasicOp
	NB NonBasicOp
	A  Operand
	B  Operand
}

// Basic creates a basic two-operand instruction.
func Basic(op BasicOp, a, b Operand) Instruction {
	return Instruction{Op: op, A: a, B: b}
}

// NonBasic creates a non-basic one-operand instruction.
func NonBasic(op NonBasicOp, a Operand) Instruction {
	return Instruction{NB: op, A: a}
}

// IsNonBasic reports whether the instruction carries a non-basic
// opcode.
func (in Instruction) IsNonBasic() bool {
	return in.Op == 0
}

// Length returns the total length of the instruction in words,
// including the inline words of its operands. Unresolved label
// references count as one inline word each.
func (in Instruction) Length() (n int) {
	n = 1
	if in.A.Code.HasNextWord() {
		n++
	}
	if !in.IsNonBasic() && in.B.Code.HasNextWord() {
		n++
	}
	return
}

// AppendWords appends the encoded instruction to dst, inline words in
// operand order.
func (in Instruction) AppendWords(dst []Word) []Word {
	if in.IsNonBasic() {
		dst = append(dst, MakeNonBasicWord(in.NB, in.A.Code))
		if in.A.Code.HasNextWord() {
			dst = append(dst, in.A.Next)
		}
		return dst
	}
	dst = append(dst, MakeBasicWord(in.Op, in.A.Code, in.B.Code))
	if in.A.Code.HasNextWord() {
		dst = append(dst, in.A.Next)
	}
	if in.B.Code.HasNextWord() {
		dst = append(dst, in.B.Next)
	}
	return dst
}

// Words returns the encoded instruction as a fresh word slice.
func (in Instruction) Words() []Word {
	return in.AppendWords(nil)
}

// DecodeInstruction decodes the instruction starting at offset in mem,
// reading inline words in operand order (a before b). It returns the
// instruction and the number of words consumed. Addresses wrap modulo
// the memory size.
func DecodeInstruction(mem []Word, offset Word) (in Instruction, n int) {
	w := mem[int(offset)%len(mem)]
	n = 1

	next := func() (v Word) {
		v = mem[(int(offset)+n)%len(mem)]
		n++
		return
	}

	if w&0xf == 0 {
		op, a := DecodeNonBasicWord(w)
		in = Instruction{NB: op, A: decodeOperand(a, next)}
		return
	}

	op, a, b := DecodeBasicWord(w)
	in = Instruction{Op: op}
	in.A = decodeOperand(a, next)
	in.B = decodeOperand(b, next)
	return
}

func decodeOperand(code OperandCode, next func() Word) (o Operand) {
	o.Code = code
	if code.HasNextWord() {
		o.Next = next()
	}
	return
}
