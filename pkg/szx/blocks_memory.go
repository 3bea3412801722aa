package szx

import (
	"log/slog"

	"github.com/samcharles93/szx/pkg/snap"
)

const romHeaderSize = 6

func decodeRAMPage(ss *session, s *snap.Snap, p []byte) error {
	page, _, data, err := ss.readRAMPage(p, snap.PageSize)
	if err != nil {
		return err
	}
	if page >= snap.MaxPages {
		return invalidf("RAM page %d out of range", page)
	}
	s.Pages[page] = data
	return nil
}

// ramPageOrder lists the RAM banks a machine has, in the order they are
// written.
func ramPageOrder(m snap.Machine) []int {
	caps := m.Capabilities()
	pages := []int{5}
	if m != snap.Machine16 {
		pages = append(pages, 2, 0)
	}
	if caps.Has(snap.Cap128Memory) {
		pages = append(pages, 1, 3, 4, 6, 7)
		switch {
		case caps.Has(snap.CapScorpionMemory):
			pages = appendRange(pages, 8, 16)
		case caps.Has(snap.CapPentagon512Memory):
			pages = appendRange(pages, 8, 32)
			if caps.Has(snap.CapPentagon1024Memory) {
				pages = appendRange(pages, 32, 64)
			}
		}
	}
	if caps.Has(snap.CapSEMemory) {
		pages = append(pages, 8)
	}
	return pages
}

func appendRange(dst []int, from, to int) []int {
	for i := from; i < to; i++ {
		dst = append(dst, i)
	}
	return dst
}

func encodeRAMPages(e *encoder, s *snap.Snap) error {
	for _, page := range ramPageOrder(s.Machine) {
		if err := e.writeRAMPage(TagRAMPage, s.Pages[page], snap.PageSize, page, 0); err != nil {
			return err
		}
	}
	return nil
}

// romGeometry is the custom ROM layout a machine expects.
type romGeometry struct {
	pages  int
	length int
}

// customROMGeometry is shared by both directions so that anything Encode
// writes, Decode accepts.
func customROMGeometry(m snap.Machine) (romGeometry, bool) {
	switch m {
	case snap.Machine16, snap.Machine48, snap.Machine48NTSC, snap.MachineTC2048:
		return romGeometry{pages: 1, length: 0x4000}, true
	case snap.Machine128, snap.Machine128E, snap.MachinePentagon, snap.MachinePlus2, snap.MachineSE:
		return romGeometry{pages: 2, length: 0x8000}, true
	case snap.MachinePlus2A, snap.MachinePlus3, snap.MachinePlus3E, snap.MachineScorpion:
		return romGeometry{pages: 4, length: 0x10000}, true
	case snap.MachinePentagon512, snap.MachinePentagon1024:
		return romGeometry{pages: 3, length: 0xc000}, true
	case snap.MachineTC2068, snap.MachineTS2068:
		// One 16K ROM plus the 8K EXROM.
		return romGeometry{pages: 2, length: 0x6000}, true
	}
	return romGeometry{}, false
}

func decodeROM(ss *session, s *snap.Snap, p []byte) error {
	if err := wantMinLen(p, romHeaderSize); err != nil {
		return err
	}
	geo, ok := customROMGeometry(s.Machine)
	if !ok {
		return invalidf("no custom ROM layout for %s", s.Machine)
	}
	c := newCursor(p)
	flags := c.u16()
	length := c.u32()
	if uint64(length) != uint64(geo.length) {
		return invalidf("custom ROM is %d bytes, %s needs %d", length, s.Machine, geo.length)
	}
	data, err := ss.readMemory(c.rest(), flags&ramCompressed != 0, geo.length)
	if err != nil {
		return err
	}

	roms := make([][]byte, 0, geo.pages)
	for off := 0; off < len(data); off += snap.PageSize {
		end := min(off+snap.PageSize, len(data))
		roms = append(roms, data[off:end:end])
	}
	s.CustomROM = true
	s.ROMs = roms
	return nil
}

func encodeROM(e *encoder, s *snap.Snap) error {
	if !s.CustomROM {
		return nil
	}
	geo, ok := customROMGeometry(s.Machine)
	if !ok {
		return logicf("no custom ROM layout for %s", s.Machine)
	}
	if !romPagesFit(s.ROMs, geo) {
		e.lose(MajorInfoLoss, "custom ROM does not match machine layout",
			slog.String("machine", s.Machine.String()),
			slog.Int("pages", len(s.ROMs)),
			slog.Int("length", s.CustomROMLength()))
		return nil
	}

	data := make([]byte, 0, geo.length)
	for _, rom := range s.ROMs {
		data = append(data, rom...)
	}
	packed, compressed := e.pack(data)
	var flags uint16
	if compressed {
		flags |= ramCompressed
	}
	e.blk.u16(flags)
	e.blk.u32(uint32(len(data)))
	e.blk.write(packed)
	return e.flush(TagROM)
}

// romPagesFit reports whether roms has the page count and total size geo
// expects, with every page but the last a full 16K.
func romPagesFit(roms [][]byte, geo romGeometry) bool {
	if len(roms) != geo.pages {
		return false
	}
	total := 0
	for i, rom := range roms {
		if i < len(roms)-1 && len(rom) != snap.PageSize {
			return false
		}
		total += len(rom)
	}
	return total == geo.length
}
