package cpu

// Semantic handlers. Each receives the chip, its descriptor, and the
// operand the addressing-mode resolver produced. Flag effects are
// those of the documented NMOS 6502; Negative/Zero are written from
// the post-result target byte unless noted otherwise.

func hLoad(c *Chip, d *Descriptor, src operand) {
	val := src.Get()
	tgt := c.registerOperand(d.Target)
	tgt.Set(val)
	if d.Target != CatStackPointer { // TXS does not affect flags
		c.updateNZ(val)
	}
}

func hStore(c *Chip, d *Descriptor, src operand) {
	reg := c.registerOperand(d.Target)
	src.Set(reg.Get())
}

func hAnd(c *Chip, d *Descriptor, src operand) {
	c.A &= src.Get()
	c.updateNZ(c.A)
}

func hOra(c *Chip, d *Descriptor, src operand) {
	c.A |= src.Get()
	c.updateNZ(c.A)
}

func hEor(c *Chip, d *Descriptor, src operand) {
	c.A ^= src.Get()
	c.updateNZ(c.A)
}

func hCmp(c *Chip, d *Descriptor, src operand) {
	reg := c.registerOperand(d.Target).Get()
	val := src.Get()
	c.setFlag(FlagCarry, reg >= val)
	diff := reg - val
	c.setFlag(FlagZero, reg == val)
	c.setFlag(FlagNegative, diff&0x80 != 0)
}

func hShiftLeft(c *Chip, d *Descriptor, src operand) {
	tgt := c.targetOperand(d, src)
	v := tgt.Get()
	c.setFlag(FlagCarry, v&0x80 != 0)
	res := v << 1
	tgt.Set(res)
	c.updateNZ(res)
	if d.Target == CatAddress {
		c.tick(2) // modify/write
	}
}

func hShiftRight(c *Chip, d *Descriptor, src operand) {
	tgt := c.targetOperand(d, src)
	v := tgt.Get()
	c.setFlag(FlagCarry, v&0x01 != 0)
	res := v >> 1
	tgt.Set(res)
	c.updateNZ(res)
	if d.Target == CatAddress {
		c.tick(2) // modify/write
	}
}

func hRotateLeft(c *Chip, d *Descriptor, src operand) {
	tgt := c.targetOperand(d, src)
	v := tgt.Get()
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 1
	}
	c.setFlag(FlagCarry, v&0x80 != 0)
	res := (v << 1) | carryIn
	tgt.Set(res)
	c.updateNZ(res)
	if d.Target == CatAddress {
		c.tick(2) // modify/write
	}
}

func hRotateRight(c *Chip, d *Descriptor, src operand) {
	tgt := c.targetOperand(d, src)
	v := tgt.Get()
	carryIn := uint8(0)
	if c.flag(FlagCarry) {
		carryIn = 0x80
	}
	c.setFlag(FlagCarry, v&0x01 != 0)
	res := (v >> 1) | carryIn
	tgt.Set(res)
	c.updateNZ(res)
	if d.Target == CatAddress {
		c.tick(2) // modify/write
	}
}

func hInc(c *Chip, d *Descriptor, src operand) {
	tgt := c.targetOperand(d, src)
	res := tgt.Get() + 1
	tgt.Set(res)
	c.updateNZ(res)
	if d.Target == CatAddress {
		c.tick(2) // modify/write, INX/INY don't
	}
}

func hDec(c *Chip, d *Descriptor, src operand) {
	tgt := c.targetOperand(d, src)
	res := tgt.Get() - 1
	tgt.Set(res)
	c.updateNZ(res)
	if d.Target == CatAddress {
		c.tick(2) // modify/write, DEX/DEY don't
	}
}

func hAdc(c *Chip, d *Descriptor, src operand) {
	s := src.Get()
	t := c.A
	carry := uint16(0)
	if c.flag(FlagCarry) {
		carry = 1
	}

	if c.flag(FlagDecimal) {
		lo := (t & 0x0F) + (s & 0x0F) + uint8(carry)
		hi := (t >> 4) + (s >> 4)
		if lo >= 0x0A {
			lo = ((lo + 0x06) & 0x0F)
			hi++
		}
		bin := uint16(t) + uint16(s) + carry
		c.setFlag(FlagOverflow, ((t^uint8(bin))&(s^uint8(bin))&0x80) != 0)
		if hi >= 0x0A {
			hi = (hi + 6) & 0x0F
			c.setFlag(FlagCarry, true)
		} else {
			c.setFlag(FlagCarry, false)
		}
		c.A = (hi << 4) | (lo & 0x0F)
		c.updateNZ(uint8(bin))
		return
	}

	sum := uint16(t) + uint16(s) + carry
	res := uint8(sum)
	c.setFlag(FlagOverflow, (t^res)&(s^res)&0x80 != 0)
	c.setFlag(FlagCarry, sum&0x100 != 0)
	c.A = res
	c.updateNZ(res)
}

func hSbc(c *Chip, d *Descriptor, src operand) {
	s := src.Get()
	t := c.A
	borrow := uint16(0)
	if !c.flag(FlagCarry) {
		borrow = 1
	}

	if c.flag(FlagDecimal) {
		lo := int16(t&0x0F) - int16(s&0x0F) - int16(borrow)
		hi := int16(t>>4) - int16(s>>4)
		if lo < 0 {
			lo = (lo - 6) & 0x0F
			hi--
		}
		if hi < 0 {
			hi = (hi - 6) & 0x0F
		}
		comp := ^s
		bin := uint16(t) + uint16(comp) + (1 - borrow)
		c.setFlag(FlagOverflow, (^(s^uint8(bin)))&(t^uint8(bin))&0x80 != 0)
		c.setFlag(FlagCarry, bin&0x100 != 0)
		c.A = uint8(hi<<4) | uint8(lo)
		c.updateNZ(uint8(bin))
		return
	}

	comp := ^s
	sum := uint16(t) + uint16(comp) + (1 - borrow)
	res := uint8(sum)
	c.setFlag(FlagOverflow, (^(s^res))&(t^res)&0x80 != 0)
	c.setFlag(FlagCarry, sum&0x100 != 0)
	c.A = res
	c.updateNZ(res)
}

func hPush(c *Chip, d *Descriptor, src operand) {
	tgt := c.registerOperand(d.Target)
	v := tgt.Get()
	if d.Target == CatStatus {
		v |= FlagBreak | FlagReserved
	}
	c.push(v)
	c.tick(1)
}

func hPull(c *Chip, d *Descriptor, src operand) {
	tgt := c.registerOperand(d.Target)
	v := c.pull()
	c.tick(1) // discarded
	if d.Target == CatStatus {
		v |= FlagBreak | FlagReserved
		tgt.Set(v)
		return
	}
	tgt.Set(v)
	c.updateNZ(v)
}

func hBit(c *Chip, d *Descriptor, src operand) {
	tgt := c.targetOperand(d, src)
	v := tgt.Get()
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&FlagOverflow != 0)
	c.setFlag(FlagNegative, v&FlagNegative != 0)
}

func hNop(c *Chip, d *Descriptor, src operand) {}

func branchIf(c *Chip, src operand, taken bool) {
	offset := int8(src.Get())
	if !taken {
		return
	}
	c.tick(1)
	base := c.PC
	final := uint16(int32(base) + int32(offset))
	if pageCrossed(base, final) {
		c.tick(1)
	}
	c.PC = final
}

func hBcc(c *Chip, d *Descriptor, src operand) { branchIf(c, src, !c.flag(FlagCarry)) }
func hBcs(c *Chip, d *Descriptor, src operand) { branchIf(c, src, c.flag(FlagCarry)) }
func hBeq(c *Chip, d *Descriptor, src operand) { branchIf(c, src, c.flag(FlagZero)) }
func hBne(c *Chip, d *Descriptor, src operand) { branchIf(c, src, !c.flag(FlagZero)) }
func hBmi(c *Chip, d *Descriptor, src operand) { branchIf(c, src, c.flag(FlagNegative)) }
func hBpl(c *Chip, d *Descriptor, src operand) { branchIf(c, src, !c.flag(FlagNegative)) }
func hBvs(c *Chip, d *Descriptor, src operand) { branchIf(c, src, c.flag(FlagOverflow)) }
func hBvc(c *Chip, d *Descriptor, src operand) { branchIf(c, src, !c.flag(FlagOverflow)) }

func hJmp(c *Chip, d *Descriptor, src operand) {
	c.PC = c.address
}

func hJsr(c *Chip, d *Descriptor, src operand) {
	c.tick(1) // internal
	ret := c.PC - 1
	c.push(uint8(ret >> 8))
	c.push(uint8(ret))
	c.PC = c.address
}

func hRts(c *Chip, d *Descriptor, src operand) {
	c.tick(2) // internal
	lo := c.pull()
	hi := c.pull()
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.PC++
}

func hBrk(c *Chip, d *Descriptor, src operand) {
	if c.EndOnBreak {
		c.brkTerminated = true
		return
	}
	c.push(uint8((c.PC + 1) >> 8))
	c.push(uint8(c.PC + 1))
	c.push(c.P | FlagBreak | FlagReserved)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.readWord(IRQVector)
}

func hRti(c *Chip, d *Descriptor, src operand) {
	c.tick(1) // internal
	c.P = c.pull()
	lo := c.pull()
	hi := c.pull()
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func hClc(c *Chip, d *Descriptor, src operand) { c.setFlag(FlagCarry, false) }
func hSec(c *Chip, d *Descriptor, src operand) { c.setFlag(FlagCarry, true) }
func hCld(c *Chip, d *Descriptor, src operand) { c.setFlag(FlagDecimal, false) }
func hSed(c *Chip, d *Descriptor, src operand) { c.setFlag(FlagDecimal, true) }
func hCli(c *Chip, d *Descriptor, src operand) { c.setFlag(FlagInterrupt, false) }
func hSei(c *Chip, d *Descriptor, src operand) { c.setFlag(FlagInterrupt, true) }
func hClv(c *Chip, d *Descriptor, src operand) { c.setFlag(FlagOverflow, false) }
