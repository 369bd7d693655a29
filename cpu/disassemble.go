package cpu

import (
	"fmt"
)

// String returns the assembly language representation of the operand.
func (o Operand) String() string {
	code := o.Code
	switch {
	case code.IsRegister():
		return code.Register().String()
	case code.IsRegisterAddr():
		return fmt.Sprintf("[%v]", code.Register())
	case code.IsRegisterNext():
		return fmt.Sprintf("[0x%02X+%v]", uint16(o.Next), code.Register())
	case code.IsSmallLiteral():
		return fmt.Sprintf("0x%02X", uint16(code.Literal()))
	}

	switch code {
	case OPD_POP:
		return "POP"
	case OPD_PEEK:
		return "PEEK"
	case OPD_PUSH:
		return "PUSH"
	case OPD_SP:
		return "SP"
	case OPD_PC:
		return "PC"
	case OPD_O:
		return "O"
	case OPD_NEXT_ADDR:
		return fmt.Sprintf("[0x%02X]", uint16(o.Next))
	default: // OPD_NEXT_LIT
		if o.Label != "" {
			return o.Label
		}
		return fmt.Sprintf("0x%02X", uint16(o.Next))
	}
}

// String returns the assembly language representation of the
// instruction, e.g. "SET A, 0x30".
func (in Instruction) String() string {
	if in.IsNonBasic() {
		return fmt.Sprintf("%v %v", in.NB, in.A)
	}
	return fmt.Sprintf("%v %v, %v", in.Op, in.A, in.B)
}
