package szx

import (
	"bytes"
	"log/slog"
	"regexp"
	"strconv"

	"github.com/blang/semver"

	"github.com/samcharles93/szx/pkg/snap"
)

const (
	creatorMinSize = creatorProgramSize + 4
	z80RegsSize    = 37
	specRegsSize   = 8
	timexRegsSize  = 2
	zxPrinterSize  = 2
)

// libspectrum before 0.5.1 wrote the accumulator and flags swapped in Z80R.
const swapAFMarker = "libspectrum: "

var (
	swapAFFixed     = semver.Version{Major: 0, Minor: 5, Patch: 1}
	creatorVersionR = regexp.MustCompile(`^\s*(\d+)\.(\d+)\.(\d+)`)
)

func decodeCreator(ss *session, _ *snap.Snap, p []byte) error {
	cr, err := parseCreator(p)
	if err != nil {
		return err
	}
	ss.creator = cr

	if v, ok := creatorLibVersion(cr.Custom); ok && v.LT(swapAFFixed) {
		ss.swapAF = true
		ss.log.Debug("creator writes A and F swapped", slog.String("program", cr.Program), slog.String("version", v.String()))
	}
	return nil
}

func parseCreator(p []byte) (*Creator, error) {
	if err := wantMinLen(p, creatorMinSize); err != nil {
		return nil, err
	}
	c := newCursor(p)
	name := c.bytes(creatorProgramSize)
	cr := &Creator{
		Program: cString(name),
		Major:   c.u16(),
		Minor:   c.u16(),
	}
	if custom := c.rest(); len(custom) > 0 {
		cr.Custom = bytes.Clone(custom)
	}
	return cr, c.err
}

// creatorLibVersion extracts the library version embedded in a creator's
// free-form text, if any.
func creatorLibVersion(custom []byte) (semver.Version, bool) {
	if i := bytes.IndexByte(custom, 0); i >= 0 {
		custom = custom[:i]
	}
	i := bytes.Index(custom, []byte(swapAFMarker))
	if i < 0 {
		return semver.Version{}, false
	}
	m := creatorVersionR.FindSubmatch(custom[i+len(swapAFMarker):])
	if m == nil {
		return semver.Version{}, false
	}
	var parts [3]uint64
	for j := range parts {
		n, err := strconv.ParseUint(string(m[j+1]), 10, 32)
		if err != nil {
			return semver.Version{}, false
		}
		parts[j] = n
	}
	return semver.Version{Major: parts[0], Minor: parts[1], Patch: parts[2]}, true
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func encodeCreator(e *encoder, _ *snap.Snap) error {
	cr := e.creator
	if cr == nil {
		return nil
	}
	var name [creatorProgramSize]byte
	copy(name[:], cr.Program)
	e.blk.write(name[:])
	e.blk.u16(cr.Major)
	e.blk.u16(cr.Minor)
	e.blk.write(cr.Custom)
	return e.flush(TagCreator)
}

func decodeZ80Regs(ss *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, z80RegsSize); err != nil {
		return err
	}
	c := newCursor(p)
	z := &s.Z80
	if ss.swapAF {
		z.A, z.F = c.u8(), c.u8()
	} else {
		z.F, z.A = c.u8(), c.u8()
	}
	z.BC, z.DE, z.HL = c.u16(), c.u16(), c.u16()
	if ss.swapAF {
		z.AltA, z.AltF = c.u8(), c.u8()
	} else {
		z.AltF, z.AltA = c.u8(), c.u8()
	}
	z.AltBC, z.AltDE, z.AltHL = c.u16(), c.u16(), c.u16()
	z.IX, z.IY, z.SP, z.PC = c.u16(), c.u16(), c.u16(), c.u16()
	z.I, z.R = c.u8(), c.u8()
	z.IFF1, z.IFF2, z.IM = c.u8(), c.u8(), c.u8()
	z.Tstates = c.u32()

	switch {
	case ss.version >= Version101:
		c.skip(1) // interrupt hold cycles, derived from Tstates
		z80Flags.decompose(s, uint32(c.u8()))
		if ss.version >= Version104 {
			z.MemPtr = c.u16()
		} else {
			c.skip(2)
		}
	default:
		c.skip(4)
	}
	return c.err
}

func encodeZ80Regs(e *encoder, s *snap.Snap) error {
	z := &s.Z80
	b := &e.blk
	b.u8(z.F)
	b.u8(z.A)
	b.u16(z.BC)
	b.u16(z.DE)
	b.u16(z.HL)
	b.u8(z.AltF)
	b.u8(z.AltA)
	b.u16(z.AltBC)
	b.u16(z.AltDE)
	b.u16(z.AltHL)
	b.u16(z.IX)
	b.u16(z.IY)
	b.u16(z.SP)
	b.u16(z.PC)
	b.u8(z.I)
	b.u8(z.R)
	b.u8(z.IFF1)
	b.u8(z.IFF2)
	b.u8(z.IM)
	b.u32(z.Tstates)

	if e.version >= Version101 {
		var hold byte
		if z.Tstates < 48 {
			hold = byte(48 - z.Tstates)
		}
		b.u8(hold)
		b.u8(byte(z80Flags.compose(s)))
	} else {
		if z80Flags.compose(s) != 0 {
			e.lose(MinorInfoLoss, "Z80 state flags need format 1.1",
				slog.String("version", e.version.String()))
		}
		b.zeros(2)
	}
	if e.version >= Version104 {
		b.u16(z.MemPtr)
	} else {
		if z.MemPtr != 0 {
			e.lose(MinorInfoLoss, "MEMPTR needs format 1.4",
				slog.String("version", e.version.String()))
		}
		b.zeros(2)
	}
	return e.flush(TagZ80Regs)
}

// plus3PortMachines is the capability set that decodes port 0x1ffd (or the
// equivalent high paging port).
const plus3PortMachines = snap.CapPlus3Memory | snap.CapScorpionMemory | snap.CapPentagon1024Memory

func decodeSpecRegs(ss *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, specRegsSize); err != nil {
		return err
	}
	caps := s.Machine.Capabilities()
	c := newCursor(p)
	ula := c.u8() & 0x07
	s.ULA.Out128Memory = c.u8()
	if port := c.u8(); caps.Any(plus3PortMachines) {
		s.ULA.OutPlus3Memory = port
	}
	if full := c.u8(); ss.version >= Version101 {
		ula |= full & 0xf8
	}
	s.ULA.Out = ula
	c.skip(4)
	return c.err
}

func encodeSpecRegs(e *encoder, s *snap.Snap) error {
	caps := s.Machine.Capabilities()
	b := &e.blk
	b.u8(s.ULA.Out & 0x07)
	if caps.Has(snap.Cap128Memory) {
		b.u8(s.ULA.Out128Memory)
	} else {
		b.u8(0)
	}
	if caps.Any(plus3PortMachines) {
		b.u8(s.ULA.OutPlus3Memory)
	} else {
		b.u8(0)
	}
	if e.version >= Version101 {
		b.u8(s.ULA.Out)
	} else {
		if s.ULA.Out&^0x07 != 0 {
			e.lose(MinorInfoLoss, "full ULA output byte needs format 1.1",
				slog.String("version", e.version.String()))
		}
		b.u8(0)
	}
	b.zeros(4)
	return e.flush(TagSpecRegs)
}

func decodeTimexRegs(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, timexRegsSize); err != nil {
		return err
	}
	s.ULA.SCLDHSR = p[0]
	s.ULA.SCLDDEC = p[1]
	return nil
}

func encodeTimexRegs(e *encoder, s *snap.Snap) error {
	if !s.Machine.Capabilities().Any(snap.CapTimexMemory | snap.CapSEMemory) {
		return nil
	}
	e.blk.u8(s.ULA.SCLDHSR)
	e.blk.u8(s.ULA.SCLDDEC)
	return e.flush(TagTimexRegs)
}

func decodeZXPrinter(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, zxPrinterSize); err != nil {
		return err
	}
	c := newCursor(p)
	zxprFlags.decompose(s, uint32(c.u16()))
	return c.err
}

func encodeZXPrinter(e *encoder, s *snap.Snap) error {
	e.blk.u16(uint16(zxprFlags.compose(s)))
	return e.flush(TagZXPrinter)
}
