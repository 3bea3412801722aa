package szx

import (
	"encoding/binary"
	"math/rand/v2"
	"testing"

	"github.com/samcharles93/szx/pkg/snap"
)

// pattern returns n bytes that deflate well.
func pattern(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)*7 + seed
	}
	return b
}

// noise returns n bytes that do not deflate.
func noise(n int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(r.Uint32())
	}
	return b
}

// image assembles a raw SZX file from a header and pre-built blocks.
func image(v Version, machineCode byte, blocks ...[]byte) []byte {
	out := []byte(signature)
	out = append(out, v.Major(), v.Minor(), machineCode, 0)
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

func block(t Tag, payload []byte) []byte {
	out := append([]byte{}, t[:]...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	return append(out, payload...)
}

type rawBlock struct {
	tag     Tag
	payload []byte
}

// splitBlocks returns every block of an encoded image in file order.
func splitBlocks(t *testing.T, data []byte) []rawBlock {
	t.Helper()
	var out []rawBlock
	off := headerSize
	for off < len(data) {
		tg, payload, next, err := nextBlock(data, off)
		if err != nil {
			t.Fatalf("nextBlock at %d: %v", off, err)
		}
		out = append(out, rawBlock{tg, payload})
		off = next
	}
	return out
}

func findBlocks(t *testing.T, data []byte, tg Tag) []rawBlock {
	t.Helper()
	var out []rawBlock
	for _, b := range splitBlocks(t, data) {
		if b.tag == tg {
			out = append(out, b)
		}
	}
	return out
}

func encode(t *testing.T, s *snap.Snap, opts Options) ([]byte, LossFlags) {
	t.Helper()
	data, loss, err := Encode(s, nil, opts)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data, loss
}

func decode(t *testing.T, data []byte, opts Options) *snap.Snap {
	t.Helper()
	s, err := Decode(data, opts)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return s
}

// fullSnapshot returns a +3 snapshot with every peripheral the format can
// store switched on, laid out the way Decode rebuilds it.
func fullSnapshot() *snap.Snap {
	s := snap.New(snap.MachinePlus3)

	s.Z80 = snap.Z80{
		A: 0x12, F: 0x34, BC: 0x5678, DE: 0x9abc, HL: 0xdef0,
		AltA: 0x21, AltF: 0x43, AltBC: 0x8765, AltDE: 0xcba9, AltHL: 0x0fed,
		IX: 0x1111, IY: 0x2222, SP: 0xfffe, PC: 0x8000,
		I: 0x3f, R: 0x7f, IFF1: 1, IFF2: 1, IM: 2,
		MemPtr:            0xbeef,
		Tstates:           10,
		LastInstructionEI: true,
		Halted:            true,
	}
	s.ULA = snap.ULA{Out: 0x1d, Out128Memory: 0x17, OutPlus3Memory: 0x04}

	for _, page := range []int{5, 2, 0, 1, 3, 4, 6, 7} {
		s.Pages[page] = pattern(snap.PageSize, byte(page))
	}
	s.Pages[7] = noise(snap.PageSize, 7)

	s.CustomROM = true
	for i := range 4 {
		s.ROMs = append(s.ROMs, pattern(snap.PageSize, byte(0x40+i)))
	}

	// Kempston first: the JOY flags bit attaches it before the port codes.
	s.Joysticks = []snap.Joystick{
		{Type: snap.JoystickKempston, Inputs: snap.InputJoy1},
		{Type: snap.JoystickSinclair1, Inputs: snap.InputJoy2},
		{Type: snap.JoystickCursor, Inputs: snap.InputKeyboard},
	}
	s.Issue2 = true

	s.AY = snap.AY{Melodik: true, RegisterPort: 7}
	for i := range s.AY.Registers {
		s.AY.Registers[i] = byte(i * 3)
	}

	s.Beta = snap.Beta{
		Active: true, Paged: true, Direction: true, CustomROM: true,
		DriveCount: 2, System: 0x3c, Track: 5, Sector: 9, Data: 0xaa, Status: 0x80,
		ROM: pattern(0x4000, 0x99),
	}
	s.Opus = snap.Opus{
		Active: true, Paged: true, Direction: true, CustomROM: true,
		ControlA: 1, DataRegA: 2, DataDirA: 3, ControlB: 4, DataRegB: 5, DataDirB: 6,
		DriveCount: 2, Track: 7, Sector: 8, Data: 9, Status: 10,
		RAM: pattern(opusRAMSize, 1), ROM: pattern(opusROMSize, 2),
	}
	s.PlusD = snap.PlusD{
		Active: true, Paged: true, CustomROM: true,
		Control: 0x10, DriveCount: 2, Track: 1, Sector: 2, Data: 3, Status: 4,
		RAM: pattern(plusDRAMSize, 3), ROM: pattern(plusDROMSize, 4),
	}
	s.ZXATASP = snap.ZXATASP{
		Active: true, Upload: true, PortA: 1, PortB: 2, PortC: 3, Control: 4,
		Pages: 2, CurrentPage: 1,
	}
	s.ZXATASP.RAM[0] = pattern(snap.PageSize, 0x50)
	s.ZXATASP.RAM[1] = pattern(snap.PageSize, 0x51)
	s.ZXCF = snap.ZXCF{Active: true, MemCtl: 0x21, Pages: 1}
	s.ZXCF.RAM[0] = pattern(snap.PageSize, 0x60)
	s.Interface1 = snap.Interface1{Active: true, Paged: true, DriveCount: 4, CustomROM: true, ROM: pattern(if1ROMSmall, 0x70)}
	s.Interface2 = snap.Interface2{Active: true, ROM: pattern(if2ROMSize, 0x71)}

	s.Dock.Active = true
	s.Dock.Exrom[0] = pattern(dockPageSize, 0x80)
	s.Dock.ExromRAM[0] = true
	s.Dock.Cart[3] = pattern(dockPageSize, 0x81)

	s.SimpleIDE = true
	s.Specdrum = snap.Specdrum{Active: true, DAC: -5}
	s.Covox = snap.Covox{Active: true, DAC: 0x42}
	s.KempstonMouse = true
	s.DivIDE = snap.DivIDE{
		Active: true, EPROMWriteProtect: true, Control: 0x83, Pages: 2,
		EPROM: pattern(divIDEEPROMSize, 0x90),
	}
	s.DivIDE.RAM[0] = pattern(divIDEPageSize, 0x91)
	s.DivIDE.RAM[1] = pattern(divIDEPageSize, 0x92)
	s.Spectranet = snap.Spectranet{
		Active: true, Paged: true, AllTrapsDisabled: true, NMIFlipFlop: true,
		PageA: 0xc0, PageB: 0x01, ProgrammableTrap: 0x3ff0,
		Flash: pattern(snap.SpectranetSize, 0xa0),
		RAM:   pattern(snap.SpectranetSize, 0xa1),
	}
	for i := range s.Spectranet.W5100 {
		s.Spectranet.W5100[i] = byte(0xff - i)
	}
	s.ZXPrinter = true
	s.Multiface = snap.Multiface{
		Active: true, Model3: true, Paged: true, RedButtonDisabled: true,
		RAM: pattern(multifaceRAMLarge, 0xb0),
	}
	return s
}
