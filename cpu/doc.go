// Package cpu implements the DCPU-16 machine and its assembler.
//
// The CPU consists of eight 16-bit general purpose registers (A, B, C,
// X, Y, Z, I and J), a program counter, a stack pointer, an overflow
// register and 65,536 words of RAM. Programs are flat sequences of
// 16-bit words, loaded at the bottom of RAM and executed with Step or
// Run; a jump-to-self instruction ("crash loop") is the conventional
// halt.
//
// The assembler translates the textual assembly language of the
// DCPU-16 specification into word bytecode, resolving labels in a
// deterministic two-pass scheme and inlining literals up to 31 into the
// operand code.
package cpu
