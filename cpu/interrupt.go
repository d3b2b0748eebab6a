package cpu

// This file implements spec §4.E/§4.F: the interrupt and reset unit,
// and the outer step state machine (service reset, else fetch-decode-
// execute one instruction, then service a pending NMI in preference
// to a pending IRQ).

// Step performs exactly one of: servicing a pending reset, or one
// fetch-decode-execute cycle followed by at most one interrupt
// service. It returns an error only for a fatal condition (an
// undefined opcode).
func (c *Chip) Step() error {
	if c.resetPending {
		c.Reset()
		return nil
	}

	if err := c.execute(); err != nil {
		return err
	}

	if c.nmiPending {
		c.serviceNMI()
	} else if c.irqPending {
		c.serviceIRQ()
	}
	return nil
}

// StepN calls Step N times, stopping early (and returning the error)
// if any Step fails.
func (c *Chip) StepN(n int) error {
	for i := 0; i < n; i++ {
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Run repeats Step until the last executed opcode was BRK (0x00) and
// EndOnBreak is set, or forever otherwise. It's expected to be called
// only on programs that self-terminate with BRK or that the host
// bounds externally (Run never times out on its own).
func (c *Chip) Run() error {
	for {
		if err := c.Step(); err != nil {
			return err
		}
		if c.EndOnBreak && c.brkTerminated {
			return nil
		}
	}
}

// execute implements the Fetching/Executing portion of the state
// machine: fetch the opcode and operand bytes, resolve the addressing
// mode, and invoke the semantic handler.
func (c *Chip) execute() error {
	pc := c.PC
	opcode := c.bus.Read(c.PC)
	c.tick(1)
	c.PC++

	d := opcodeTable[opcode]
	if d == nil {
		return InvalidOpcode{Opcode: opcode, PC: pc}
	}
	c.opcode = opcode
	c.brkTerminated = false

	switch d.Length() {
	case 2:
		c.data = c.bus.Read(c.PC)
		c.tick(1)
		c.PC++
	case 3:
		lo := c.bus.Read(c.PC)
		c.tick(1)
		c.PC++
		hi := c.bus.Read(c.PC)
		c.tick(1)
		c.PC++
		c.address = uint16(hi)<<8 | uint16(lo)
	}

	src := c.resolve(d)
	d.Handler(c, d, src)

	if !(opcode == 0x00 && c.EndOnBreak) {
		c.lastDescriptor = d
		c.lastOpcode = opcode
	}
	return nil
}

// serviceIRQ implements spec §4.E Interrupt (IRQ): push PC (high then
// low), push P with Break cleared, set Interrupt-disable, vector
// through IRQVector.
func (c *Chip) serviceIRQ() {
	c.irqPending = false
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	c.push(c.P &^ FlagBreak)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.readWord(IRQVector)
}

// serviceNMI implements spec §4.E NonMaskableInterrupt: push PC, push
// P unmodified, set Interrupt-disable, vector through NMIVector.
func (c *Chip) serviceNMI() {
	c.nmiPending = false
	c.push(uint8(c.PC >> 8))
	c.push(uint8(c.PC))
	c.push(c.P)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.readWord(NMIVector)
}
