package cpu

// Introspection: component G. Exposes the register file, per-flag
// booleans, the cycle counter, and queries against the most recently
// executed instruction's descriptor.

func (c *Chip) FlagCarry() bool     { return c.flag(FlagCarry) }
func (c *Chip) FlagZero() bool      { return c.flag(FlagZero) }
func (c *Chip) FlagInterrupt() bool { return c.flag(FlagInterrupt) }
func (c *Chip) FlagDecimal() bool   { return c.flag(FlagDecimal) }
func (c *Chip) FlagBreak() bool     { return c.flag(FlagBreak) }
func (c *Chip) FlagOverflow() bool  { return c.flag(FlagOverflow) }
func (c *Chip) FlagNegative() bool  { return c.flag(FlagNegative) }

// LastWas reports whether the previously executed instruction's
// mnemonic matches name. A BRK executed under EndOnBreak never
// updates the last descriptor, so it can't satisfy this query either.
func (c *Chip) LastWas(name string) bool {
	return c.lastDescriptor != nil && c.lastDescriptor.Mnemonic == name
}

// LastWasMode additionally requires the addressing mode to match.
func (c *Chip) LastWasMode(name string, mode AddressingMode) bool {
	return c.lastDescriptor != nil &&
		c.lastDescriptor.Mnemonic == name &&
		c.lastDescriptor.Mode == mode
}

// LastWasTarget additionally requires the operand-target category to match.
func (c *Chip) LastWasTarget(name string, mode AddressingMode, target OperandCategory) bool {
	return c.lastDescriptor != nil &&
		c.lastDescriptor.Mnemonic == name &&
		c.lastDescriptor.Mode == mode &&
		c.lastDescriptor.Target == target
}

// LastDescriptor returns the descriptor for the most recently executed
// instruction, or nil if none has executed since Reset.
func (c *Chip) LastDescriptor() *Descriptor {
	return c.lastDescriptor
}

// LastOpcode returns the raw opcode byte of the most recently executed
// instruction.
func (c *Chip) LastOpcode() uint8 {
	return c.lastOpcode
}

// Halted reports whether the most recently executed instruction (by
// Step or Run) was a BRK under EndOnBreak, the condition that stops Run.
func (c *Chip) Halted() bool {
	return c.brkTerminated
}
