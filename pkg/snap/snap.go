// Package snap holds the in-memory state of an emulated Spectrum-family
// machine as captured by a snapshot. It has no knowledge of any file format;
// codecs read and write its fields directly.
package snap

// Memory and page geometry shared by codecs and emulators.
const (
	PageSize       = 0x4000
	MaxPages       = 64
	ZXATASPPages   = 32
	ZXCFPages      = 64
	DivIDEPages    = 4
	DockPages      = 8
	AYRegisters    = 16
	W5100Size      = 0x30
	SpectranetSize = 0x20000
)

// Snap is the complete machine state. The zero value has an unknown machine
// and every peripheral inactive.
type Snap struct {
	Machine     Machine
	LateTimings bool

	Z80 Z80
	ULA ULA

	// Pages holds the 16K RAM banks, indexed by bank number. A nil entry
	// means the bank is not present in the snapshot.
	Pages [MaxPages][]byte

	// CustomROM marks that ROMs holds the machine ROM images. Each entry is
	// one ROM page; all pages are 16K except possibly the last.
	CustomROM bool
	ROMs      [][]byte

	Joysticks []Joystick
	Issue2    bool

	AY            AY
	Beta          Beta
	Opus          Opus
	PlusD         PlusD
	ZXATASP       ZXATASP
	ZXCF          ZXCF
	Interface1    Interface1
	Interface2    Interface2
	Dock          Dock
	SimpleIDE     bool
	Specdrum      Specdrum
	Covox         Covox
	KempstonMouse bool
	DivIDE        DivIDE
	Spectranet    Spectranet
	ZXPrinter     bool
	Multiface     Multiface

	// Peripherals with no block representation. Their state is never
	// serialised, only reported as information loss.
	USourceActive    bool
	DiscipleActive   bool
	Didaktik80Active bool
}

// New returns an empty snapshot for machine m.
func New(m Machine) *Snap {
	return &Snap{Machine: m}
}

// CustomROMPages reports the number of custom ROM pages held.
func (s *Snap) CustomROMPages() int {
	return len(s.ROMs)
}

// CustomROMLength returns the combined byte length of all custom ROM pages.
func (s *Snap) CustomROMLength() int {
	n := 0
	for _, rom := range s.ROMs {
		n += len(rom)
	}
	return n
}

// Z80 is the CPU register file plus interrupt state.
type Z80 struct {
	A, F       byte
	BC, DE, HL uint16

	AltA, AltF          byte
	AltBC, AltDE, AltHL uint16

	IX, IY, SP, PC uint16
	I, R           byte
	IFF1, IFF2     byte
	IM             byte
	MemPtr         uint16

	Tstates uint32

	LastInstructionEI   bool
	Halted              bool
	LastInstructionSetF bool
}

// ULA covers the last values written to the machine's I/O ports.
type ULA struct {
	Out            byte
	Out128Memory   byte
	OutPlus3Memory byte
	SCLDHSR        byte
	SCLDDEC        byte
}

// AY is the state of the AY-3-8912 sound chip and its add-on variants.
type AY struct {
	FullerBox    bool
	Melodik      bool
	RegisterPort byte
	Registers    [AYRegisters]byte
}

// Beta is the Beta 128 (TR-DOS) disk interface.
type Beta struct {
	Active     bool
	Paged      bool
	Autoboot   bool
	Direction  bool
	CustomROM  bool
	DriveCount byte
	System     byte
	Track      byte
	Sector     byte
	Data       byte
	Status     byte
	ROM        []byte
}

// Opus is the Opus Discovery disk interface.
type Opus struct {
	Active     bool
	Paged      bool
	Direction  bool
	CustomROM  bool
	ControlA   byte
	DataRegA   byte
	DataDirA   byte
	ControlB   byte
	DataRegB   byte
	DataDirB   byte
	DriveCount byte
	Track      byte
	Sector     byte
	Data       byte
	Status     byte
	RAM        []byte
	ROM        []byte
}

// PlusD is the MGT +D disk interface.
type PlusD struct {
	Active     bool
	Paged      bool
	Direction  bool
	CustomROM  bool
	Control    byte
	DriveCount byte
	Track      byte
	Sector     byte
	Data       byte
	Status     byte
	RAM        []byte
	ROM        []byte
}

// ZXATASP is the ZXATASP IDE and RAM expansion.
type ZXATASP struct {
	Active       bool
	Upload       bool
	WriteProtect bool
	PortA        byte
	PortB        byte
	PortC        byte
	Control      byte
	Pages        byte
	CurrentPage  byte
	RAM          [ZXATASPPages][]byte
}

// ZXCF is the ZXCF CompactFlash interface.
type ZXCF struct {
	Active bool
	Upload bool
	MemCtl byte
	Pages  byte
	RAM    [ZXCFPages][]byte
}

// Interface1 is the ZX Interface 1.
type Interface1 struct {
	Active     bool
	Paged      bool
	DriveCount byte
	CustomROM  bool
	ROM        []byte
}

// Interface2 is the ZX Interface 2 cartridge port.
type Interface2 struct {
	Active bool
	ROM    []byte
}

// Dock holds the Timex EXROM and DOCK cartridge banks. The RAM flags mark
// which 8K chunks are writeable.
type Dock struct {
	Active   bool
	ExromRAM [DockPages]bool
	Exrom    [DockPages][]byte
	DockRAM  [DockPages]bool
	Cart     [DockPages][]byte
}

// Specdrum is the Cheetah SpecDrum DAC.
type Specdrum struct {
	Active bool
	DAC    int8
}

// Covox is the Covox DAC.
type Covox struct {
	Active bool
	DAC    byte
}

// DivIDE is the DivIDE interface with its EPROM and paged RAM.
type DivIDE struct {
	Active            bool
	EPROMWriteProtect bool
	Paged             bool
	Control           byte
	Pages             byte
	EPROM             []byte
	RAM               [DivIDEPages][]byte
}

// Spectranet is the Spectranet ethernet interface.
type Spectranet struct {
	Active                 bool
	Paged                  bool
	PagedViaIO             bool
	ProgrammableTrapActive bool
	ProgrammableTrapMSB    bool
	AllTrapsDisabled       bool
	RST8TrapDisabled       bool
	DenyDownstreamA15      bool
	NMIFlipFlop            bool
	PageA                  byte
	PageB                  byte
	ProgrammableTrap       uint16
	W5100                  [W5100Size]byte
	Flash                  []byte
	RAM                    []byte
}

// Multiface is the Romantic Robot Multiface family. At most one of the
// model flags is set. RAM is 8K, or 16K in 16K RAM mode.
type Multiface struct {
	Active            bool
	ModelOne          bool
	Model128          bool
	Model3            bool
	Paged             bool
	SoftwareLockout   bool
	RedButtonDisabled bool
	Disabled          bool
	RAM               []byte
}
