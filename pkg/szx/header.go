package szx

import (
	"fmt"

	"github.com/samcharles93/szx/pkg/snap"
)

// Machine codes stored in the header.
const (
	machineCode16          byte = 0
	machineCode48          byte = 1
	machineCode128         byte = 2
	machineCodePlus2       byte = 3
	machineCodePlus2A      byte = 4
	machineCodePlus3       byte = 5
	machineCodePlus3E      byte = 6
	machineCodePentagon    byte = 7
	machineCodeTC2048      byte = 8
	machineCodeTC2068      byte = 9
	machineCodeScorpion    byte = 10
	machineCodeSE          byte = 11
	machineCodeTS2068      byte = 12
	machineCodePentagon512 byte = 13
	machineCodePent1024    byte = 14
	machineCode48NTSC      byte = 15
	machineCode128KE       byte = 16
)

var machineMappings = []struct {
	code    byte
	machine snap.Machine
}{
	{machineCode16, snap.Machine16},
	{machineCode48, snap.Machine48},
	{machineCode128, snap.Machine128},
	{machineCodePlus2, snap.MachinePlus2},
	{machineCodePlus2A, snap.MachinePlus2A},
	{machineCodePlus3, snap.MachinePlus3},
	{machineCodePlus3E, snap.MachinePlus3E},
	{machineCodePentagon, snap.MachinePentagon},
	{machineCodeTC2048, snap.MachineTC2048},
	{machineCodeTC2068, snap.MachineTC2068},
	{machineCodeScorpion, snap.MachineScorpion},
	{machineCodeSE, snap.MachineSE},
	{machineCodeTS2068, snap.MachineTS2068},
	{machineCodePentagon512, snap.MachinePentagon512},
	{machineCodePent1024, snap.MachinePentagon1024},
	{machineCode48NTSC, snap.Machine48NTSC},
	{machineCode128KE, snap.Machine128E},
}

func machineFromCode(code byte) (snap.Machine, bool) {
	for _, m := range machineMappings {
		if m.code == code {
			return m.machine, true
		}
	}
	return snap.MachineUnknown, false
}

func codeFromMachine(machine snap.Machine) (byte, bool) {
	for _, m := range machineMappings {
		if m.machine == machine {
			return m.code, true
		}
	}
	return 0, false
}

// Only the original Sinclair 48K-era models carry an alternate timings bit.
func hasTimingsFlag(code byte) bool {
	switch code {
	case machineCode16, machineCode48, machineCode48NTSC, machineCode128:
		return true
	}
	return false
}

// Header is the fixed 8 byte file preamble.
type Header struct {
	Version     Version
	MachineCode byte
	Machine     snap.Machine
	Flags       byte
}

// LateTimings reports whether the header selects alternate timings. The bit
// is ignored for machines outside the 16K/48K/128K family.
func (h Header) LateTimings() bool {
	return hasTimingsFlag(h.MachineCode) && h.Flags&flagAlternateTimings != 0
}

func parseHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, fmt.Errorf("%w: %d bytes is too short for a header", ErrCorrupt, len(data))
	}
	if string(data[:4]) != signature {
		return Header{}, ErrSignature
	}
	h := Header{
		Version:     Version(data[4])<<8 | Version(data[5]),
		MachineCode: data[6],
		Flags:       data[7],
	}
	m, ok := machineFromCode(h.MachineCode)
	if !ok {
		return Header{}, fmt.Errorf("%w: code %d", ErrUnknownMachine, h.MachineCode)
	}
	h.Machine = m
	return h, nil
}

func appendHeader(dst []byte, v Version, s *snap.Snap) ([]byte, error) {
	code, ok := codeFromMachine(s.Machine)
	if !ok {
		return dst, logicf("machine type is %s", s.Machine)
	}
	var flags byte
	if s.LateTimings {
		flags |= flagAlternateTimings
	}
	dst = append(dst, signature...)
	dst = append(dst, v.Major(), v.Minor(), code, flags)
	return dst, nil
}
