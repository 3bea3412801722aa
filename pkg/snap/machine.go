package snap

// Machine identifies the emulated Spectrum-family model a snapshot belongs to.
type Machine int

const (
	MachineUnknown Machine = iota
	Machine16
	Machine48
	Machine48NTSC
	Machine128
	Machine128E
	MachinePlus2
	MachinePlus2A
	MachinePlus3
	MachinePlus3E
	MachinePentagon
	MachinePentagon512
	MachinePentagon1024
	MachineScorpion
	MachineSE
	MachineTC2048
	MachineTC2068
	MachineTS2068
)

var machineNames = map[Machine]string{
	MachineUnknown:      "unknown",
	Machine16:           "ZX Spectrum 16K",
	Machine48:           "ZX Spectrum 48K",
	Machine48NTSC:       "ZX Spectrum 48K (NTSC)",
	Machine128:          "ZX Spectrum 128K",
	Machine128E:         "Spectrum 128Ke",
	MachinePlus2:        "ZX Spectrum +2",
	MachinePlus2A:       "ZX Spectrum +2A",
	MachinePlus3:        "ZX Spectrum +3",
	MachinePlus3E:       "ZX Spectrum +3e",
	MachinePentagon:     "Pentagon 128K",
	MachinePentagon512:  "Pentagon 512K",
	MachinePentagon1024: "Pentagon 1024K",
	MachineScorpion:     "Scorpion ZS 256",
	MachineSE:           "Spectrum SE",
	MachineTC2048:       "Timex TC2048",
	MachineTC2068:       "Timex TC2068",
	MachineTS2068:       "Timex TS2068",
}

func (m Machine) String() string {
	if name, ok := machineNames[m]; ok {
		return name
	}
	return "unknown"
}

// Capability is a bitmask of hardware features a machine provides.
type Capability uint32

const (
	CapAY Capability = 1 << iota
	Cap128Memory
	CapPlus3Memory
	CapPlus3Disk
	CapTimexMemory
	CapTimexVideo
	CapTimexDock
	CapTRDOSDisk
	CapScorpionMemory
	CapPentagon512Memory
	CapPentagon1024Memory
	CapSEMemory
	CapNTSC
)

var machineCapabilities = map[Machine]Capability{
	Machine16:     0,
	Machine48:     0,
	Machine48NTSC: CapNTSC,
	Machine128:    CapAY | Cap128Memory,
	Machine128E:   CapAY | Cap128Memory | CapTRDOSDisk,
	MachinePlus2:  CapAY | Cap128Memory,
	MachinePlus2A: CapAY | Cap128Memory | CapPlus3Memory,
	MachinePlus3:  CapAY | Cap128Memory | CapPlus3Memory | CapPlus3Disk,
	MachinePlus3E: CapAY | Cap128Memory | CapPlus3Memory | CapPlus3Disk,

	MachinePentagon:     CapAY | Cap128Memory | CapTRDOSDisk,
	MachinePentagon512:  CapAY | Cap128Memory | CapTRDOSDisk | CapPentagon512Memory,
	MachinePentagon1024: CapAY | Cap128Memory | CapTRDOSDisk | CapPentagon512Memory | CapPentagon1024Memory,
	MachineScorpion:     CapAY | Cap128Memory | CapTRDOSDisk | CapScorpionMemory,
	MachineSE:           CapAY | Cap128Memory | CapTimexVideo | CapSEMemory,

	MachineTC2048: CapTimexMemory | CapTimexVideo,
	MachineTC2068: CapAY | CapTimexMemory | CapTimexVideo | CapTimexDock,
	MachineTS2068: CapAY | CapTimexMemory | CapTimexVideo | CapTimexDock | CapNTSC,
}

// Capabilities returns the hardware feature set of m.
func (m Machine) Capabilities() Capability {
	return machineCapabilities[m]
}

// Has reports whether c includes every bit in bits.
func (c Capability) Has(bits Capability) bool {
	return c&bits == bits
}

// Any reports whether c includes at least one bit in bits.
func (c Capability) Any(bits Capability) bool {
	return c&bits != 0
}
