package szx

import (
	"log/slog"

	"github.com/samcharles93/szx/pkg/snap"
)

const (
	if1HeaderSize     = 40
	if1Reserved       = 3 + 32
	if1DefaultDrives  = 8
	if1ROMSmall       = 0x2000
	if1ROMLarge       = 0x4000
	if2ROMSize        = 0x4000
	if2HeaderSize     = 4
	dockPageSize      = 0x2000
	multifaceMinSize  = 2
	multifaceRAMSmall = 0x2000
	multifaceRAMLarge = 0x4000
)

func decodeIF1(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, if1HeaderSize); err != nil {
		return err
	}
	c := newCursor(p)
	flags := c.u16()
	if1Flags.decompose(s, uint32(flags))
	i := &s.Interface1
	i.DriveCount = c.u8()
	c.skip(if1Reserved)
	romLen := int(c.u16())
	rest := c.rest()
	if c.err != nil {
		return c.err
	}

	switch romLen {
	case 0:
		if len(rest) != 0 {
			return invalidf("%d bytes of ROM data with zero ROM length", len(rest))
		}
		i.CustomROM = false
		i.ROM = nil
		return nil
	case if1ROMSmall, if1ROMLarge:
	default:
		return invalidf("Interface 1 ROM length %d, want %d or %d", romLen, if1ROMSmall, if1ROMLarge)
	}
	rom, err := ss.readMemory(rest, flags&if1Compressed != 0, romLen)
	if err != nil {
		return err
	}
	i.CustomROM = true
	i.ROM = rom
	return nil
}

func encodeIF1(e *encoder, s *snap.Snap) error {
	i := &s.Interface1
	if !i.Active {
		return nil
	}
	var rom []byte
	compressed := false
	if i.CustomROM {
		if n := len(i.ROM); n != if1ROMSmall && n != if1ROMLarge {
			return logicf("Interface 1 ROM is %d bytes, want %d or %d", n, if1ROMSmall, if1ROMLarge)
		}
		rom, compressed = e.pack(i.ROM)
	}

	flags := uint16(if1Flags.compose(s))
	if compressed {
		flags |= if1Compressed
	}
	drives := i.DriveCount
	if drives == 0 {
		drives = if1DefaultDrives
	}
	e.blk.u16(flags)
	e.blk.u8(drives)
	e.blk.zeros(if1Reserved)
	if i.CustomROM {
		e.blk.u16(uint16(len(i.ROM)))
	} else {
		e.blk.u16(0)
	}
	e.blk.write(rom)
	return e.flush(TagIF1)
}

// The IF2R length word duplicates the block length and is not checked; some
// writers are known to get it wrong.
func decodeIF2ROM(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, if2HeaderSize); err != nil {
		return err
	}
	rom, err := ss.compressor.Decompress(p[if2HeaderSize:], if2ROMSize)
	if err != nil {
		return err
	}
	s.Interface2.Active = true
	s.Interface2.ROM = rom
	return nil
}

// IF2R only has a compressed form, so it is compressed whatever the
// compression mode.
func encodeIF2ROM(e *encoder, s *snap.Snap) error {
	if !s.Interface2.Active {
		return nil
	}
	if len(s.Interface2.ROM) != if2ROMSize {
		return logicf("Interface 2 ROM is %d bytes, want %d", len(s.Interface2.ROM), if2ROMSize)
	}
	packed, err := e.compressor.Compress(s.Interface2.ROM)
	if err != nil {
		e.lose(MajorInfoLoss, "Interface 2 ROM needs compression", slog.Any("error", err))
		return nil
	}
	e.blk.u32(uint32(len(packed)))
	e.blk.write(packed)
	return e.flush(TagIF2ROM)
}

func decodeDock(ss *session, s *snap.Snap, p []byte) error {
	page, flags, data, err := ss.readRAMPage(p, dockPageSize)
	if err != nil {
		return err
	}
	if page >= snap.DockPages {
		return invalidf("dock page %d out of range", page)
	}
	d := &s.Dock
	d.Active = true
	writeable := flags&dockRAM != 0
	if flags&dockExromDock != 0 {
		d.DockRAM[page] = writeable
		d.Cart[page] = data
	} else {
		d.ExromRAM[page] = writeable
		d.Exrom[page] = data
	}
	return nil
}

func encodeDock(e *encoder, s *snap.Snap) error {
	d := &s.Dock
	if !d.Active {
		return nil
	}
	for page := range snap.DockPages {
		if err := e.writeRAMPage(TagDock, d.Exrom[page], dockPageSize, page, dockFlags(d.ExromRAM[page], false)); err != nil {
			return err
		}
		if err := e.writeRAMPage(TagDock, d.Cart[page], dockPageSize, page, dockFlags(d.DockRAM[page], true)); err != nil {
			return err
		}
	}
	return nil
}

func dockFlags(writeable, dock bool) uint16 {
	var f uint16
	if writeable {
		f |= dockRAM
	}
	if dock {
		f |= dockExromDock
	}
	return f
}

func decodeMultiface(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, multifaceMinSize); err != nil {
		return err
	}
	model, flags := p[0], p[1]
	ramLen := multifaceRAMSmall
	if flags&mf16KRAMMode != 0 {
		ramLen = multifaceRAMLarge
	}
	ram, err := ss.readMemory(p[multifaceMinSize:], flags&mfCompressed != 0, ramLen)
	if err != nil {
		return err
	}

	m := &s.Multiface
	m.Active = true
	switch model {
	case mfModel1:
		m.ModelOne = true
	case mfModel128:
		// The format cannot tell a Multiface 3 from a 128; the machine can.
		if s.Machine.Capabilities().Has(snap.CapPlus3Memory) {
			m.Model3 = true
		} else {
			m.Model128 = true
		}
	}
	multifaceFlags.decompose(s, uint32(flags))
	m.RAM = ram
	return nil
}

func encodeMultiface(e *encoder, s *snap.Snap) error {
	m := &s.Multiface
	if !m.Active {
		return nil
	}
	n := len(m.RAM)
	if n != multifaceRAMSmall && n != multifaceRAMLarge {
		return logicf("Multiface RAM is %d bytes, want %d or %d", n, multifaceRAMSmall, multifaceRAMLarge)
	}
	ram, compressed := e.pack(m.RAM)

	model := byte(mfModel128)
	if m.ModelOne {
		model = mfModel1
	}
	flags := byte(multifaceFlags.compose(s))
	if compressed {
		flags |= mfCompressed
	}
	if n == multifaceRAMLarge {
		flags |= mf16KRAMMode
	}
	e.blk.u8(model)
	e.blk.u8(flags)
	e.blk.write(ram)
	return e.flush(TagMultiface)
}

func decodeSimpleIDE(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, 0); err != nil {
		return err
	}
	s.SimpleIDE = true
	return nil
}

func encodeSimpleIDE(e *encoder, s *snap.Snap) error {
	if !s.SimpleIDE {
		return nil
	}
	return e.flush(TagSimpleIDE)
}
