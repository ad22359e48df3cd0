/* Package intcode implements a resumable Intcode virtual machine.

An Intcode program is a list of comma separated integers, loaded into memory
starting at address 0. Each instruction word encodes an opcode in its low two
decimal digits, and one addressing mode digit per operand above that:

	1  add  a b dst   dst = a + b
	2  mul  a b dst   dst = a * b
	3  in   dst       dst = next input value
	4  out  a         emit a
	5  jt   a target  if a != 0, jump to target
	6  jf   a target  if a == 0, jump to target
	7  lt   a b dst   dst = 1 if a < b else 0
	8  eq   a b dst   dst = 1 if a == b else 0
	9  arb  a         relative base += a
	99 halt

Mode 0 (position) takes an operand as an address, mode 1 (immediate) takes
it as a value, and mode 2 (relative) adds it to the relative base register to
form an address. Destinations are never immediate.

Two machines share one Engine implementation, generic over its Word type:

	NewInt boots the fixed-width machine: 64-bit words with wrapping
	arithmetic, the Classic instruction set (no opcode 9 and no relative
	mode), and memory bounded to the length of the program.

	NewBig boots the arbitrary precision machine: Big words, every opcode
	and mode, and sparse memory where any non-negative address reads zero
	until written.

Engines never block: when an input instruction finds no input queued,
RunToYield returns with the WaitInput reason, and the caller may Supply more
input and call it again to resume exactly where execution stopped. This lets
a caller wire several engines together; see the amplifier package.

A malformed program yields a *Fault, whose Reason tells what went wrong:
IncorrectOpcode, NoSuchArg, or NegativeAddress. A step that faults leaves
the engine untouched, so that it may be inspected with Peek or Dump.
*/
package intcode
