// Package szx reads and writes ZX-State (.szx) snapshots.
//
// An SZX file is an 8 byte header followed by a sequence of tagged blocks:
//
//	"ZXST" | version major | version minor | machine | flags
//	tag[4] | length u32 | payload[length]  (repeated)
//
// All multi-byte integers are little-endian. The version is the only
// exception: it is stored as two separate bytes, major first.
package szx

import "strings"

// Version is a format revision, major in the high byte.
type Version uint16

// Format revisions that change block layouts.
const (
	Version100 Version = 0x0100
	Version101 Version = 0x0101
	Version104 Version = 0x0104
	Version105 Version = 0x0105

	// CurrentVersion is what Encode writes unless told otherwise.
	CurrentVersion = Version105
)

// Major returns the major revision number.
func (v Version) Major() byte { return byte(v >> 8) }

// Minor returns the minor revision number.
func (v Version) Minor() byte { return byte(v) }

const (
	headerSize      = 8
	blockHeaderSize = 8
	signature       = "ZXST"

	// Header flags.
	flagAlternateTimings = 1
)

// Tag identifies a block type. Short tags are padded with NUL bytes, which
// take part in comparisons.
type Tag [4]byte

func (t Tag) String() string {
	return strings.TrimRight(string(t[:]), "\x00")
}

func tag(s string) Tag {
	var t Tag
	copy(t[:], s)
	return t
}

// Block tags.
var (
	TagAY              = tag("AY")
	TagBeta128         = tag("B128")
	TagBetaDisk        = tag("BDSK")
	TagCovox           = tag("COVX")
	TagCreator         = tag("CRTR")
	TagDivIDE          = tag("DIDE")
	TagDivIDERAMPage   = tag("DIRP")
	TagDock            = tag("DOCK")
	TagDSKFile         = tag("DSK")
	TagGS              = tag("GS")
	TagGSRAMPage       = tag("GSRP")
	TagIF1             = tag("IF1")
	TagIF2ROM          = tag("IF2R")
	TagJoystick        = tag("JOY")
	TagKeyboard        = tag("KEYB")
	TagLEC             = tag("LEC")
	TagLECRAMPage      = tag("LCRP")
	TagMicrodrive      = tag("MDRV")
	TagMouse           = tag("AMXM")
	TagMultiface       = tag("MFCE")
	TagOpus            = tag("OPUS")
	TagOpusDisk        = tag("ODSK")
	TagPalette         = tag("PLTT")
	TagPlus3Disk       = tag("+3")
	TagPlusD           = tag("PLSD")
	TagPlusDDisk       = tag("PDSK")
	TagRAMPage         = tag("RAMP")
	TagROM             = tag("ROM")
	TagSimpleIDE       = tag("SIDE")
	TagSpecdrum        = tag("DRUM")
	TagSpecRegs        = tag("SPCR")
	TagSpectranet      = tag("SNET")
	TagSpectranetFlash = tag("SNEF")
	TagSpectranetRAM   = tag("SNER")
	TagTimexRegs       = tag("SCLD")
	TagUSpeech         = tag("USPE")
	TagZ80Regs         = tag("Z80R")
	TagZXATASP         = tag("ZXAT")
	TagZXATASPRAMPage  = tag("ATRP")
	TagZXCF            = tag("ZXCF")
	TagZXCFRAMPage     = tag("CFRP")
	TagZXPrinter       = tag("ZXPR")
	TagZXTape          = tag("TAPE")
)
