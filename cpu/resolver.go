package cpu

// resolve computes the source operand handle for the decoded
// descriptor and ticks the cycles the addressing mode costs beyond
// the opcode/operand fetch already accounted for. c.data holds the
// fetched immediate/zero-page operand byte; c.address holds the
// fetched 16-bit absolute/indirect operand for 3-byte instructions.
// The effective address (when one exists) is left in c.address for
// handlers that need it directly (JMP, JSR).
func (c *Chip) resolve(d *Descriptor) operand {
	switch d.Mode {
	case Accumulator:
		return c.registerOperand(CatAccumulator)
	case IndexX:
		return c.registerOperand(CatIndexX)
	case IndexY:
		return c.registerOperand(CatIndexY)
	case StackPointer:
		return c.registerOperand(CatStackPointer)
	case Immediate:
		return regOperand{&c.data}
	case Implied:
		c.tick(1) // dummy opcode read
		return noneOperand{}

	case Absolute:
		if !d.ReadOnly {
			c.tick(1)
		}
		return memOperand{c, c.address}

	case AbsoluteX:
		return c.resolveIndexedAbsolute(d, c.X)
	case AbsoluteY:
		return c.resolveIndexedAbsolute(d, c.Y)

	case Indirect:
		// JMP ($xxxx) page-boundary bug: if the pointer's low byte is
		// 0xFF, the high byte of the target is read from the start of
		// the same page rather than the start of the next one.
		ptr := c.address
		lo := c.bus.Read(ptr)
		c.tick(1)
		var hiAddr uint16
		if ptr&0x00FF == 0x00FF {
			hiAddr = ptr & 0xFF00
		} else {
			hiAddr = ptr + 1
		}
		hi := c.bus.Read(hiAddr)
		c.tick(1)
		c.address = uint16(hi)<<8 | uint16(lo)
		return memOperand{c, c.address}

	case XIndirect:
		ptr := uint16(uint8(c.data + c.X))
		c.address = c.readWord(ptr)
		return memOperand{c, c.address}

	case IndirectY:
		base := c.readWord(uint16(c.data))
		final := base + uint16(c.Y)
		if pageCrossed(base, final) || !d.ReadOnly {
			c.tick(1)
		}
		c.address = final
		return memOperand{c, c.address}

	case ZeroPage:
		c.address = uint16(c.data)
		c.tick(1)
		return memOperand{c, c.address}

	case ZeroPageX:
		c.address = uint16(uint8(c.data + c.X))
		c.tick(2)
		return memOperand{c, c.address}

	case ZeroPageY:
		c.address = uint16(uint8(c.data + c.Y))
		c.tick(2)
		return memOperand{c, c.address}
	}
	return noneOperand{}
}

func (c *Chip) resolveIndexedAbsolute(d *Descriptor, idx uint8) operand {
	base := c.address
	final := base + uint16(idx)
	c.tick(1)
	if pageCrossed(base, final) || !d.ReadOnly {
		c.tick(1)
	}
	c.address = final
	return memOperand{c, c.address}
}

// targetOperand returns the handle a handler should mutate: when the
// descriptor's target category is CatAddress the target aliases the
// already-resolved source (in-place read-modify-write); otherwise
// it's the named register.
func (c *Chip) targetOperand(d *Descriptor, src operand) operand {
	if d.Target == CatAddress {
		return src
	}
	return c.registerOperand(d.Target)
}
