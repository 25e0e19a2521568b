package vm

// Cycle Loop (§4.8):
//
//	start:   RUN ← true; while RUN: cycle()
//	cycle(): op = fetch(); old_ip = IP; execute(op, old_ip)
//	         if IP == old_ip: IP ← old_ip + decode_length(op)
//
// The advance fires whenever IP still equals old_ip after Execute, so
// a branch that targets old_ip (a self-jump) is silently advanced past
// the branch instead of looping (§9).

// Cycle runs one fetch/execute step and applies the conditional
// advance. It is the single-step entry point a debugger drives.
func (m *Machine) Cycle() error {
	ip, err := m.ip()
	if err != nil {
		return err
	}

	opByte, err := m.mem.Read(ip, 1)
	if err != nil {
		return stampFaultIP(err, ip)
	}
	op := Opcode(opByte[0])

	m.log.Trace().
		Str("machine", m.id.String()).
		Uint64("ip", ip).
		Str("op", op.String()).
		Msg("gvm64: cycle")

	if err := m.Execute(op, ip); err != nil {
		return err
	}

	newIP, err := m.ip()
	if err != nil {
		return err
	}
	if newIP == ip {
		length, err := m.decodeLength(ip)
		if err != nil {
			return stampFaultIP(err, ip)
		}
		if err := m.setIP(ip + uint64(length)); err != nil {
			return err
		}
	}
	return nil
}

// CycleN runs Cycle n times, stopping early on the first error.
func (m *Machine) CycleN(n int) error {
	for i := 0; i < n; i++ {
		if err := m.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// Start sets RUN and repeatedly cycles until RUN clears (via the EXIT
// syscall) or a fault bubbles out. The fault, if any, is returned to
// the caller; RUN is not implicitly cleared on error (§7), leaving
// the decision to stop, report, or enter a debugger to the host.
func (m *Machine) Start() error {
	if err := m.setRunning(true); err != nil {
		return err
	}

	for {
		running, err := m.running()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}

		if err := m.Cycle(); err != nil {
			ip, _ := m.ip()
			m.log.Error().
				Str("machine", m.id.String()).
				Uint64("ip", ip).
				Err(err).
				Msg("gvm64: fault during cycle")
			return err
		}
	}
}
