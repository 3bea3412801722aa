package szx

import "github.com/samcharles93/szx/pkg/snap"

const (
	zxatSize          = 8
	zxcfSize          = 4
	divIDEHeaderSize  = 4
	divIDEEPROMSize   = 0x2000
	divIDEPageSize    = 0x2000
	snetSize          = 6 + snap.W5100Size
	snetMemHeaderSize = 5
)

func decodeZXATASP(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, zxatSize); err != nil {
		return err
	}
	c := newCursor(p)
	z := &s.ZXATASP
	z.Active = true
	zxatFlags.decompose(s, uint32(c.u16()))
	z.PortA = c.u8()
	z.PortB = c.u8()
	z.PortC = c.u8()
	z.Control = c.u8()
	z.Pages = c.u8()
	z.CurrentPage = c.u8()
	return c.err
}

func encodeZXATASP(e *encoder, s *snap.Snap) error {
	z := &s.ZXATASP
	if !z.Active {
		return nil
	}
	if int(z.Pages) > snap.ZXATASPPages {
		return logicf("ZXATASP has %d pages, at most %d", z.Pages, snap.ZXATASPPages)
	}
	e.blk.u16(uint16(zxatFlags.compose(s)))
	e.blk.u8(z.PortA)
	e.blk.u8(z.PortB)
	e.blk.u8(z.PortC)
	e.blk.u8(z.Control)
	e.blk.u8(z.Pages)
	e.blk.u8(z.CurrentPage)
	return e.flush(TagZXATASP)
}

func decodeZXATASPRAMPage(ss *session, s *snap.Snap, p []byte) error {
	page, _, data, err := ss.readRAMPage(p, snap.PageSize)
	if err != nil {
		return err
	}
	if page >= snap.ZXATASPPages {
		return invalidf("ZXATASP page %d out of range", page)
	}
	s.ZXATASP.RAM[page] = data
	return nil
}

func encodeZXATASPRAMPages(e *encoder, s *snap.Snap) error {
	z := &s.ZXATASP
	if !z.Active {
		return nil
	}
	for page := range int(z.Pages) {
		if err := e.writeRAMPage(TagZXATASPRAMPage, z.RAM[page], snap.PageSize, page, 0); err != nil {
			return err
		}
	}
	return nil
}

func decodeZXCF(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, zxcfSize); err != nil {
		return err
	}
	c := newCursor(p)
	z := &s.ZXCF
	z.Active = true
	zxcfFlags.decompose(s, uint32(c.u16()))
	z.MemCtl = c.u8()
	z.Pages = c.u8()
	return c.err
}

func encodeZXCF(e *encoder, s *snap.Snap) error {
	z := &s.ZXCF
	if !z.Active {
		return nil
	}
	if int(z.Pages) > snap.ZXCFPages {
		return logicf("ZXCF has %d pages, at most %d", z.Pages, snap.ZXCFPages)
	}
	e.blk.u16(uint16(zxcfFlags.compose(s)))
	e.blk.u8(z.MemCtl)
	e.blk.u8(z.Pages)
	return e.flush(TagZXCF)
}

func decodeZXCFRAMPage(ss *session, s *snap.Snap, p []byte) error {
	page, _, data, err := ss.readRAMPage(p, snap.PageSize)
	if err != nil {
		return err
	}
	if page >= snap.ZXCFPages {
		return invalidf("ZXCF page %d out of range", page)
	}
	s.ZXCF.RAM[page] = data
	return nil
}

func encodeZXCFRAMPages(e *encoder, s *snap.Snap) error {
	z := &s.ZXCF
	if !z.Active {
		return nil
	}
	for page := range int(z.Pages) {
		if err := e.writeRAMPage(TagZXCFRAMPage, z.RAM[page], snap.PageSize, page, 0); err != nil {
			return err
		}
	}
	return nil
}

func decodeDivIDE(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, divIDEHeaderSize); err != nil {
		return err
	}
	c := newCursor(p)
	flags := c.u16()
	control := c.u8()
	pages := c.u8()
	eprom, err := ss.readMemory(c.rest(), flags&divIDECompressed != 0, divIDEEPROMSize)
	if err != nil {
		return err
	}
	d := &s.DivIDE
	d.Active = true
	divIDEFlags.decompose(s, uint32(flags))
	d.Control = control
	d.Pages = pages
	d.EPROM = eprom
	return nil
}

func encodeDivIDE(e *encoder, s *snap.Snap) error {
	d := &s.DivIDE
	if !d.Active {
		return nil
	}
	if len(d.EPROM) != divIDEEPROMSize {
		return logicf("DivIDE EPROM is %d bytes, want %d", len(d.EPROM), divIDEEPROMSize)
	}
	if int(d.Pages) > snap.DivIDEPages {
		return logicf("DivIDE has %d pages, at most %d", d.Pages, snap.DivIDEPages)
	}
	eprom, compressed := e.pack(d.EPROM)
	flags := uint16(divIDEFlags.compose(s))
	if compressed {
		flags |= divIDECompressed
	}
	e.blk.u16(flags)
	e.blk.u8(d.Control)
	e.blk.u8(d.Pages)
	e.blk.write(eprom)
	return e.flush(TagDivIDE)
}

func decodeDivIDERAMPage(ss *session, s *snap.Snap, p []byte) error {
	page, _, data, err := ss.readRAMPage(p, divIDEPageSize)
	if err != nil {
		return err
	}
	if page >= snap.DivIDEPages {
		return invalidf("DivIDE page %d out of range", page)
	}
	s.DivIDE.RAM[page] = data
	return nil
}

func encodeDivIDERAMPages(e *encoder, s *snap.Snap) error {
	d := &s.DivIDE
	if !d.Active {
		return nil
	}
	for page := range int(d.Pages) {
		if err := e.writeRAMPage(TagDivIDERAMPage, d.RAM[page], divIDEPageSize, page, 0); err != nil {
			return err
		}
	}
	return nil
}

func decodeSpectranet(_ *session, s *snap.Snap, p []byte) error {
	if err := wantLen(p, snetSize); err != nil {
		return err
	}
	c := newCursor(p)
	n := &s.Spectranet
	n.Active = true
	snetFlags.decompose(s, uint32(c.u16()))
	n.PageA = c.u8()
	n.PageB = c.u8()
	n.ProgrammableTrap = c.u16()
	copy(n.W5100[:], c.bytes(snap.W5100Size))
	return c.err
}

func encodeSpectranet(e *encoder, s *snap.Snap) error {
	n := &s.Spectranet
	if !n.Active {
		return nil
	}
	e.blk.u16(uint16(snetFlags.compose(s)))
	e.blk.u8(n.PageA)
	e.blk.u8(n.PageB)
	e.blk.u16(n.ProgrammableTrap)
	e.blk.write(n.W5100[:])
	return e.flush(TagSpectranet)
}

// readSpectranetMemory decodes the [flags u8][length u32][data] layout
// shared by SNEF and SNER. Neither block marks the interface active.
func (ss *session) readSpectranetMemory(p []byte, compressedBit byte) ([]byte, error) {
	if err := wantMinLen(p, snetMemHeaderSize); err != nil {
		return nil, err
	}
	c := newCursor(p)
	flags := c.u8()
	length := c.u32()
	rest := c.rest()
	if uint64(length) != uint64(len(rest)) {
		return nil, invalidf("stored length %d, block holds %d", length, len(rest))
	}
	return ss.readMemory(rest, flags&compressedBit != 0, snap.SpectranetSize)
}

func (e *encoder) writeSpectranetMemory(t Tag, data []byte, compressedBit byte) error {
	if data == nil {
		return nil
	}
	if len(data) != snap.SpectranetSize {
		return logicf("%s region is %d bytes, want %d", t, len(data), snap.SpectranetSize)
	}
	packed, compressed := e.pack(data)
	var flags byte
	if compressed {
		flags |= compressedBit
	}
	e.blk.u8(flags)
	e.blk.u32(uint32(len(packed)))
	e.blk.write(packed)
	return e.flush(t)
}

func decodeSpectranetFlash(ss *session, s *snap.Snap, p []byte) error {
	data, err := ss.readSpectranetMemory(p, snefFlashCompressed)
	if err != nil {
		return err
	}
	s.Spectranet.Flash = data
	return nil
}

func encodeSpectranetFlash(e *encoder, s *snap.Snap) error {
	if !s.Spectranet.Active {
		return nil
	}
	return e.writeSpectranetMemory(TagSpectranetFlash, s.Spectranet.Flash, snefFlashCompressed)
}

func decodeSpectranetRAM(ss *session, s *snap.Snap, p []byte) error {
	data, err := ss.readSpectranetMemory(p, snerRAMCompressed)
	if err != nil {
		return err
	}
	s.Spectranet.RAM = data
	return nil
}

func encodeSpectranetRAM(e *encoder, s *snap.Snap) error {
	if !s.Spectranet.Active {
		return nil
	}
	return e.writeSpectranetMemory(TagSpectranetRAM, s.Spectranet.RAM, snerRAMCompressed)
}
