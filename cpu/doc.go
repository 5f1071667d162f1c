// Package cpu implements the CHIP-8 virtual machine.
//
// The machine has 4096 bytes of memory, sixteen 8-bit registers V0-VF,
// a 12-bit index register I, a program counter, a sixteen slot call
// stack, a 64x32 monochrome frame buffer and the delay and sound timers.
// VF doubles as the carry, borrow and collision flag.
//
// The Cpu runs one instruction per Tick. The only instruction that can
// not complete within a Tick is KEYD, which leaves the Cpu waiting for
// KeyEvent. Timers are decremented by the host through TickTimers, on
// its own schedule.
package cpu
