package szx

import (
	"log/slog"

	"github.com/samcharles93/szx/pkg/snap"
)

const (
	betaHeaderSize  = 10
	opusHeaderSize  = 23
	plusDHeaderSize = 19

	betaROMSize  = 0x4000
	opusRAMSize  = 0x800
	opusROMSize  = 0x2000
	plusDRAMSize = 0x2000
	plusDROMSize = 0x2000
)

func decodeBeta128(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, betaHeaderSize); err != nil {
		return err
	}
	c := newCursor(p)
	flags := c.u32()
	b := &s.Beta
	b.Active = true
	betaFlags.decompose(s, flags)
	b.DriveCount = c.u8()
	b.System = c.u8()
	b.Track = c.u8()
	b.Sector = c.u8()
	b.Data = c.u8()
	b.Status = c.u8()
	rest := c.rest()
	if c.err != nil {
		return c.err
	}

	if !b.CustomROM {
		if len(rest) > 0 {
			ss.log.Debug("ignoring trailing data in B128 block", slog.Int("length", len(rest)))
		}
		b.ROM = nil
		return nil
	}
	rom, err := ss.readMemory(rest, flags&betaCompressed != 0, betaROMSize)
	if err != nil {
		return err
	}
	b.ROM = rom
	return nil
}

func encodeBeta128(e *encoder, s *snap.Snap) error {
	b := &s.Beta
	if !b.Active {
		return nil
	}
	var rom []byte
	compressed := false
	if b.CustomROM {
		if len(b.ROM) != betaROMSize {
			return logicf("Beta 128 ROM is %d bytes, want %d", len(b.ROM), betaROMSize)
		}
		rom, compressed = e.pack(b.ROM)
	}

	flags := betaConnected | betaFlags.compose(s)
	if compressed {
		flags |= betaCompressed
	}
	e.blk.u32(flags)
	e.blk.u8(b.DriveCount)
	e.blk.u8(b.System)
	e.blk.u8(b.Track)
	e.blk.u8(b.Sector)
	e.blk.u8(b.Data)
	e.blk.u8(b.Status)
	e.blk.write(rom)
	return e.flush(TagBeta128)
}

func decodeOpus(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, opusHeaderSize); err != nil {
		return err
	}
	c := newCursor(p)
	flags := c.u32()
	ramLen, romLen := c.u32(), c.u32()
	o := &s.Opus
	o.Active = true
	opusFlags.decompose(s, flags)
	o.ControlA = c.u8()
	o.DataRegA = c.u8()
	o.DataDirA = c.u8()
	o.ControlB = c.u8()
	o.DataRegB = c.u8()
	o.DataDirB = c.u8()
	o.DriveCount = c.u8()
	o.Track = c.u8()
	o.Sector = c.u8()
	o.Data = c.u8()
	o.Status = c.u8()
	rest := c.rest()
	if c.err != nil {
		return c.err
	}

	ram, rom, err := ss.readPair(rest, ramLen, romLen, flags&opusCompressed != 0, o.CustomROM, opusRAMSize, opusROMSize)
	if err != nil {
		return err
	}
	o.RAM, o.ROM = ram, rom
	return nil
}

func encodeOpus(e *encoder, s *snap.Snap) error {
	o := &s.Opus
	if !o.Active {
		return nil
	}
	if len(o.RAM) != opusRAMSize {
		return logicf("Opus RAM is %d bytes, want %d", len(o.RAM), opusRAMSize)
	}
	var rom []byte
	if o.CustomROM {
		if len(o.ROM) != opusROMSize {
			return logicf("Opus ROM is %d bytes, want %d", len(o.ROM), opusROMSize)
		}
		rom = o.ROM
	}
	ram, rom, compressed := e.packPair(o.RAM, rom)

	flags := opusFlags.compose(s)
	if compressed {
		flags |= opusCompressed
	}
	e.blk.u32(flags)
	e.blk.u32(uint32(len(ram)))
	e.blk.u32(uint32(len(rom)))
	e.blk.u8(o.ControlA)
	e.blk.u8(o.DataRegA)
	e.blk.u8(o.DataDirA)
	e.blk.u8(o.ControlB)
	e.blk.u8(o.DataRegB)
	e.blk.u8(o.DataDirB)
	e.blk.u8(o.DriveCount)
	e.blk.u8(o.Track)
	e.blk.u8(o.Sector)
	e.blk.u8(o.Data)
	e.blk.u8(o.Status)
	e.blk.write(ram)
	e.blk.write(rom)
	return e.flush(TagOpus)
}

func decodePlusD(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, plusDHeaderSize); err != nil {
		return err
	}
	c := newCursor(p)
	flags := c.u32()
	ramLen, romLen := c.u32(), c.u32()
	romType := c.u8()
	d := &s.PlusD
	d.Active = true
	plusDFlags.decompose(s, flags)
	d.CustomROM = romType == plusDROMCustom
	d.Control = c.u8()
	d.DriveCount = c.u8()
	d.Track = c.u8()
	d.Sector = c.u8()
	d.Data = c.u8()
	d.Status = c.u8()
	rest := c.rest()
	if c.err != nil {
		return c.err
	}

	ram, rom, err := ss.readPair(rest, ramLen, romLen, flags&plusDCompressed != 0, d.CustomROM, plusDRAMSize, plusDROMSize)
	if err != nil {
		return err
	}
	d.RAM, d.ROM = ram, rom
	return nil
}

func encodePlusD(e *encoder, s *snap.Snap) error {
	d := &s.PlusD
	if !d.Active {
		return nil
	}
	if len(d.RAM) != plusDRAMSize {
		return logicf("+D RAM is %d bytes, want %d", len(d.RAM), plusDRAMSize)
	}
	var rom []byte
	romType := byte(plusDROMGDOS)
	if d.CustomROM {
		if len(d.ROM) != plusDROMSize {
			return logicf("+D ROM is %d bytes, want %d", len(d.ROM), plusDROMSize)
		}
		rom = d.ROM
		romType = plusDROMCustom
	}
	ram, rom, compressed := e.packPair(d.RAM, rom)

	flags := plusDFlags.compose(s)
	if compressed {
		flags |= plusDCompressed
	}
	e.blk.u32(flags)
	e.blk.u32(uint32(len(ram)))
	e.blk.u32(uint32(len(rom)))
	e.blk.u8(romType)
	e.blk.u8(d.Control)
	e.blk.u8(d.DriveCount)
	e.blk.u8(d.Track)
	e.blk.u8(d.Sector)
	e.blk.u8(d.Data)
	e.blk.u8(d.Status)
	e.blk.write(ram)
	e.blk.write(rom)
	return e.flush(TagPlusD)
}
