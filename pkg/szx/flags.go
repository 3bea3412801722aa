package szx

import "github.com/samcharles93/szx/pkg/snap"

// flagBit binds one bit of a flags field to a boolean in the snapshot.
//
// Most entries point at a field directly. An inverted entry stores the
// logical negation of the field. Entries whose meaning is not a plain
// boolean supply get and set instead of field.
type flagBit struct {
	mask   uint32
	field  func(*snap.Snap) *bool
	invert bool
	get    func(*snap.Snap) bool
	set    func(*snap.Snap, bool)
}

type flagTable []flagBit

// decompose applies every bit of v to s. Entries are independent, so table
// order does not matter.
func (t flagTable) decompose(s *snap.Snap, v uint32) {
	for _, f := range t {
		bit := v&f.mask != 0
		if f.set != nil {
			f.set(s, bit)
			continue
		}
		*f.field(s) = bit != f.invert
	}
}

// compose is the inverse of decompose.
func (t flagTable) compose(s *snap.Snap) uint32 {
	var v uint32
	for _, f := range t {
		var on bool
		if f.get != nil {
			on = f.get(s)
		} else {
			on = *f.field(s) != f.invert
		}
		if on {
			v |= f.mask
		}
	}
	return v
}

// AY block.
const (
	ayFullerBox = 1
	ay128AY     = 2
)

var ayFlags = flagTable{
	{mask: ayFullerBox, field: func(s *snap.Snap) *bool { return &s.AY.FullerBox }},
	{mask: ay128AY, field: func(s *snap.Snap) *bool { return &s.AY.Melodik }},
}

// B128 block.
const (
	betaConnected  = 1
	betaCustomROM  = 2
	betaPaged      = 4
	betaAutoboot   = 8
	betaSeekLower  = 16
	betaCompressed = 32
)

var betaFlags = flagTable{
	{mask: betaPaged, field: func(s *snap.Snap) *bool { return &s.Beta.Paged }},
	{mask: betaAutoboot, field: func(s *snap.Snap) *bool { return &s.Beta.Autoboot }},
	{mask: betaSeekLower, field: func(s *snap.Snap) *bool { return &s.Beta.Direction }, invert: true},
	{mask: betaCustomROM, field: func(s *snap.Snap) *bool { return &s.Beta.CustomROM }},
}

// OPUS block.
const (
	opusPaged      = 1
	opusCompressed = 2
	opusSeekLower  = 4
	opusCustomROM  = 8
)

var opusFlags = flagTable{
	{mask: opusPaged, field: func(s *snap.Snap) *bool { return &s.Opus.Paged }},
	{mask: opusSeekLower, field: func(s *snap.Snap) *bool { return &s.Opus.Direction }, invert: true},
	{mask: opusCustomROM, field: func(s *snap.Snap) *bool { return &s.Opus.CustomROM }},
}

// PLSD block. The custom ROM state lives in the ROM type byte, not here.
const (
	plusDPaged      = 1
	plusDCompressed = 2
	plusDSeekLower  = 4

	plusDROMGDOS   = 0
	plusDROMUniDOS = 1
	plusDROMCustom = 2
)

var plusDFlags = flagTable{
	{mask: plusDPaged, field: func(s *snap.Snap) *bool { return &s.PlusD.Paged }},
	{mask: plusDSeekLower, field: func(s *snap.Snap) *bool { return &s.PlusD.Direction }, invert: true},
}

// ZXAT block.
const (
	zxatUpload       = 1
	zxatWriteProtect = 2
)

var zxatFlags = flagTable{
	{mask: zxatUpload, field: func(s *snap.Snap) *bool { return &s.ZXATASP.Upload }},
	{mask: zxatWriteProtect, field: func(s *snap.Snap) *bool { return &s.ZXATASP.WriteProtect }},
}

// ZXCF block.
const zxcfUpload = 1

var zxcfFlags = flagTable{
	{mask: zxcfUpload, field: func(s *snap.Snap) *bool { return &s.ZXCF.Upload }},
}

// IF1 block.
const (
	if1Enabled    = 1
	if1Compressed = 2
	if1Paged      = 4
)

var if1Flags = flagTable{
	{mask: if1Enabled, field: func(s *snap.Snap) *bool { return &s.Interface1.Active }},
	{mask: if1Paged, field: func(s *snap.Snap) *bool { return &s.Interface1.Paged }},
}

// KEYB block.
const keybIssue2 = 1

var keybFlags = flagTable{
	{mask: keybIssue2, field: func(s *snap.Snap) *bool { return &s.Issue2 }},
}

// JOY block. Port 31 always being decoded is how the format records that a
// Kempston interface is attached, whatever drives it.
const joyAlwaysPort31 = 1

var joyFlags = flagTable{
	{
		mask: joyAlwaysPort31,
		get:  func(s *snap.Snap) bool { return s.HasJoystick(snap.JoystickKempston) },
		set: func(s *snap.Snap, on bool) {
			if on {
				s.AddJoystick(snap.JoystickKempston, snap.InputNone)
			}
		},
	},
}

// DIDE block.
const (
	divIDEWriteProtect = 1
	divIDEPaged        = 2
	divIDECompressed   = 4
)

var divIDEFlags = flagTable{
	{mask: divIDEWriteProtect, field: func(s *snap.Snap) *bool { return &s.DivIDE.EPROMWriteProtect }},
	{mask: divIDEPaged, field: func(s *snap.Snap) *bool { return &s.DivIDE.Paged }},
}

// SNET block.
const (
	snetPaged             = 1
	snetPagedViaIO        = 2
	snetProgTrapActive    = 4
	snetProgTrapMSB       = 8
	snetAllDisabled       = 16
	snetRST8Disabled      = 32
	snetDenyDownstreamA15 = 64
	snetNMIFlipFlop       = 128
)

var snetFlags = flagTable{
	{mask: snetPaged, field: func(s *snap.Snap) *bool { return &s.Spectranet.Paged }},
	{mask: snetPagedViaIO, field: func(s *snap.Snap) *bool { return &s.Spectranet.PagedViaIO }},
	{mask: snetProgTrapActive, field: func(s *snap.Snap) *bool { return &s.Spectranet.ProgrammableTrapActive }},
	{mask: snetProgTrapMSB, field: func(s *snap.Snap) *bool { return &s.Spectranet.ProgrammableTrapMSB }},
	{mask: snetAllDisabled, field: func(s *snap.Snap) *bool { return &s.Spectranet.AllTrapsDisabled }},
	{mask: snetRST8Disabled, field: func(s *snap.Snap) *bool { return &s.Spectranet.RST8TrapDisabled }},
	{mask: snetDenyDownstreamA15, field: func(s *snap.Snap) *bool { return &s.Spectranet.DenyDownstreamA15 }},
	{mask: snetNMIFlipFlop, field: func(s *snap.Snap) *bool { return &s.Spectranet.NMIFlipFlop }},
}

// SNEF and SNER blocks.
const (
	snefFlashCompressed = 1
	snerRAMCompressed   = 1
)

// MFCE block.
const (
	mfPagedIn           = 1
	mfCompressed        = 2
	mfSoftwareLockout   = 4
	mfRedButtonDisabled = 8
	mfDisabled          = 16
	mf16KRAMMode        = 32

	mfModel1   = 0
	mfModel128 = 1
)

var multifaceFlags = flagTable{
	{mask: mfPagedIn, field: func(s *snap.Snap) *bool { return &s.Multiface.Paged }},
	{mask: mfSoftwareLockout, field: func(s *snap.Snap) *bool { return &s.Multiface.SoftwareLockout }},
	{mask: mfRedButtonDisabled, field: func(s *snap.Snap) *bool { return &s.Multiface.RedButtonDisabled }},
	{mask: mfDisabled, field: func(s *snap.Snap) *bool { return &s.Multiface.Disabled }},
}

// Z80R block.
const (
	z80EILast = 1
	z80Halted = 2
	z80FSet   = 4
)

var z80Flags = flagTable{
	{mask: z80EILast, field: func(s *snap.Snap) *bool { return &s.Z80.LastInstructionEI }},
	{mask: z80Halted, field: func(s *snap.Snap) *bool { return &s.Z80.Halted }},
	{mask: z80FSet, field: func(s *snap.Snap) *bool { return &s.Z80.LastInstructionSetF }},
}

// ZXPR block.
const zxprEnabled = 1

var zxprFlags = flagTable{
	{mask: zxprEnabled, field: func(s *snap.Snap) *bool { return &s.ZXPrinter }},
}

// Memory page blocks (RAMP, ATRP, CFRP, DIRP, DOCK, ROM).
const (
	ramCompressed = 1

	dockRAM       = 2
	dockExromDock = 4
)

// AMXM mouse types.
const (
	mouseNone     = 0
	mouseAMX      = 1
	mouseKempston = 2
)

// Joystick type codes used by the JOY and KEYB blocks.
const (
	zxjtKempston     = 0
	zxjtFuller       = 1
	zxjtCursor       = 2
	zxjtSinclair1    = 3
	zxjtSinclair2    = 4
	zxjtSpectrumPlus = 5
	zxjtTimex1       = 6
	zxjtTimex2       = 7
	zxjtNone         = 8
)
