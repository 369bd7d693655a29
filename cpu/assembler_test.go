package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sampleSource is the example program of the DCPU-16 specification.
// The expected words match the hand-assembled listing in the comments
// word for word; that listing already uses the small-literal forms.
const sampleSource = `
; Try some basic stuff
              SET A, 0x30              ; 7c01 0030
              SET [0x1000], 0x20       ; 7de1 1000 0020
              SUB A, [0x1000]          ; 7803 1000
              IFN A, 0x10              ; c00d
                 SET PC, crash         ; 7dc1 001a

; Do a loopy thing
              SET I, 10                ; a861
              SET A, 0x2000            ; 7c01 2000
:loop         SET [0x2000+I], [A]      ; 2161 2000
              SUB I, 1                 ; 8463
              IFN I, 0                 ; 806d
                 SET PC, loop          ; 7dc1 000d

; Call a subroutine
              SET X, 0x4               ; 9031
              JSR testsub              ; 7c10 0018
              SET PC, crash            ; 7dc1 001a

:testsub      SHL X, 4                 ; 9037
              SET PC, POP              ; 61c1

; Hang forever. X should now be 0x40 if everything went right.
:crash        SET PC, crash            ; 7dc1 001a
`

func TestAssembleSample(t *testing.T) {
	assert := assert.New(t)

	words, err := Assemble(sampleSource)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Word{
		0x7c01, 0x0030, 0x7de1, 0x1000, 0x0020, 0x7803, 0x1000, 0xc00d,
		0x7dc1, 0x001a, 0xa861, 0x7c01, 0x2000, 0x2161, 0x2000, 0x8463,
		0x806d, 0x7dc1, 0x000d, 0x9031, 0x7c10, 0x0018, 0x7dc1, 0x001a,
		0x9037, 0x61c1, 0x7dc1, 0x001a,
	}

	assert.Equal(expected, words)
}

func TestAssembleAndRunSample(t *testing.T) {
	assert := assert.New(t)

	words, err := Assemble(sampleSource)
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	cpu := NewCpu(words)
	cpu.Run()

	// The crash loop is the last instruction of the program.
	assert.Equal(Word(len(words)-2), cpu.PC)
	assert.Equal(Word(0x2000), cpu.Register(REG_A))
	assert.Equal(Word(0x0040), cpu.Register(REG_X))
}

func TestSmallLiteralInlining(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		words  []Word
	}){
		// Literal 30 inlines as operand code 0x3e; one word total.
		{"SET A, 0x1E", []Word{0xf801}},
		{"SET A, 31", []Word{0xfc01}},
		// Literal 32 needs the next-word form.
		{"SET A, 0x20", []Word{0x7c01, 0x0020}},
		{"SET A, 65535", []Word{0x7c01, 0xffff}},
		// Address literals always use the next-word form.
		{"SET [0x10], 0x5", []Word{0x95e1, 0x0010}},
		// The offset form always consumes an inline word.
		{"SET [0x3+I], 0x5", []Word{0x9561, 0x0003}},
	}

	for _, entry := range table {
		words, err := Assemble(entry.source)
		assert.NoError(err, entry.source)
		assert.Equal(entry.words, words, entry.source)
	}
}

func TestLabelsAlwaysEmitNextWord(t *testing.T) {
	assert := assert.New(t)

	// Even though the label resolves to an address that would fit the
	// small-literal range, the reference keeps its inline word so that
	// the layout computed in the first pass stays valid.
	words, err := Assemble("SET PC, crash\n:crash SET PC, crash\n")
	assert.NoError(err)

	assert.Equal([]Word{0x7dc1, 0x0002, 0x7dc1, 0x0002}, words)
}

func TestForwardAndBackwardReferences(t *testing.T) {
	assert := assert.New(t)

	source := `
:start SET A, 1
       JSR sub
       SET PC, start
:sub   SET PC, POP
`
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(Word(0x0000), asm.Label["start"])
	assert.Equal(Word(0x0005), asm.Label["sub"])
	assert.Equal([]Word{0x8401, 0x7c10, 0x0005, 0x7dc1, 0x0000, 0x61c1}, prog.Words)
}

func TestLabelOnOwnLine(t *testing.T) {
	assert := assert.New(t)

	words, err := Assemble("SET PC, end\n:end\n")
	assert.NoError(err)

	assert.Equal([]Word{0x7dc1, 0x0002}, words)
}

func TestStackAndSpecialOperands(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		source string
		words  []Word
	}){
		{"SET PUSH, A", []Word{0x01a1}},
		{"SET A, POP", []Word{0x6001}},
		{"SET A, PEEK", []Word{0x6401}},
		{"SET A, SP", []Word{0x6c01}},
		{"SET A, PC", []Word{0x7001}},
		{"SET A, O", []Word{0x7401}},
		{"SET [A], B", []Word{0x0481}},
	}

	for _, entry := range table {
		words, err := Assemble(entry.source)
		assert.NoError(err, entry.source)
		assert.Equal(entry.words, words, entry.source)
	}
}

func TestProgramListing(t *testing.T) {
	assert := assert.New(t)

	source := `
SET A, 0x30
:loop ADD A, 1
SET PC, loop
`
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(3, len(prog.Entries))
	assert.Equal(Word(0), prog.Entries[0].Address)
	assert.Equal(Word(2), prog.Entries[1].Address)
	assert.Equal(Word(3), prog.Entries[2].Address)

	// The second word belongs to the first instruction.
	ent := prog.Debug(1)
	if assert.NotNil(ent) {
		assert.Equal(2, ent.LineNo)
		assert.Equal("SET A, 0x30", ent.Source)
	}

	assert.Nil(prog.Debug(5))
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		prog string
		line int
		err  error
	}){
		{"NOP A, B\n", 1, ErrMnemonicUnknown},
		{"SET A 1\n", 1, ErrCommaExpected},
		{"SET A,\n", 1, ErrValueExpected},
		{"SET , 1\n", 1, ErrValueExpected},
		{"SET A, 1 2\n", 1, ErrTrailingToken},
		{"SET [A, 1\n", 1, ErrBracketUnclosed},
		{"SET [0x10+A, 1\n", 1, ErrBracketUnclosed},
		{"SET [0x10+], 1\n", 1, ErrRegisterExpected},
		{"SET [], 1\n", 1, ErrValueExpected},
		{"SET A, 99999\n", 1, ErrLiteralRange},
		{"SET A, 123456\n", 1, ErrLiteralRange},
		{"SET A, 0xZZ\n", 1, ErrLiteralMalformed},
		{"SET A, 0x\n", 1, ErrLiteralMalformed},
		{"SET A, #1\n", 1, ErrUnexpectedCharacter('#')},
		{":\n", 1, ErrLabelExpected},
		{":[ SET A, 1\n", 1, ErrLabelExpected},
		{"SET A, 1\n:dup\n:dup\n", 3, ErrLabelDuplicate},
		{"SET crash, 1\n", 1, ErrValueExpected},
		{"SET A, 1\nADD B\n", 2, ErrCommaExpected},
	}

	for _, entry := range table {
		_, err := Assemble(entry.prog)
		var se *ErrSyntax
		assert.NotNil(err, entry.prog)
		if err == nil {
			continue
		}
		assert.True(errors.As(err, &se), entry.prog)
		if se != nil {
			assert.Equal(entry.line, se.LineNo, entry.prog)
			assert.Positive(se.Column, entry.prog)
		}
		assert.ErrorIs(err, entry.err, entry.prog)
	}
}

func TestUnknownLabel(t *testing.T) {
	assert := assert.New(t)

	_, err := Assemble("SET PC, nowhere\n")
	assert.Error(err)

	var missing ErrLabelMissing
	assert.True(errors.As(err, &missing))
	assert.Equal("nowhere", string(missing))

	var se *ErrSyntax
	assert.True(errors.As(err, &se))
	if se != nil {
		assert.Equal(1, se.LineNo)
	}
}

func TestAssembleEmpty(t *testing.T) {
	assert := assert.New(t)

	words, err := Assemble("")
	assert.NoError(err)
	assert.Empty(words)

	words, err = Assemble("; just a comment\n\n   \n")
	assert.NoError(err)
	assert.Empty(words)
}
