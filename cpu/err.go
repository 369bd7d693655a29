package cpu

import (
	"errors"

	"github.com/sunsided/dcpu-16/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrLabelExpected    = errors.New(f("label name expected after ':'"))
	ErrLabelDuplicate   = errors.New(f("label duplicated"))
	ErrMnemonicExpected = errors.New(f("mnemonic expected"))
	ErrMnemonicUnknown  = errors.New(f("mnemonic unknown"))
	ErrValueExpected    = errors.New(f("value expected"))
	ErrRegisterExpected = errors.New(f("register expected"))
	ErrCommaExpected    = errors.New(f("',' expected"))
	ErrBracketUnclosed  = errors.New(f("unterminated bracket"))
	ErrTrailingToken    = errors.New(f("trailing input after instruction"))
	ErrLiteralMalformed = errors.New(f("malformed literal"))
	ErrLiteralRange     = errors.New(f("literal out of 16-bit range"))
)

// ErrLabelMissing reports a reference to a label that is never
// declared.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrUnexpectedCharacter reports a byte outside the assembly grammar.
type ErrUnexpectedCharacter byte

func (ec ErrUnexpectedCharacter) Error() string {
	return f("unexpected character %q", string(rune(ec)))
}

// ErrSyntax wraps an assembly error with its source span.
type ErrSyntax struct {
	LineNo int
	Column int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d:%d '%v' %v", err.LineNo, err.Column, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
