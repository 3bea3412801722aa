package szx

import (
	"fmt"
	"strings"

	"github.com/samcharles93/szx/pkg/logger"
)

// Compression selects when Encode compresses memory regions.
type Compression int

const (
	// CompressAuto stores a region compressed only when that makes it smaller.
	CompressAuto Compression = iota
	// CompressAlways stores every compressible region compressed.
	CompressAlways
	// CompressNone stores everything raw.
	CompressNone
)

func (c Compression) String() string {
	switch c {
	case CompressAlways:
		return "always"
	case CompressNone:
		return "none"
	default:
		return "auto"
	}
}

// ParseCompression maps a config string to a Compression mode.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return CompressAuto, nil
	case "always":
		return CompressAlways, nil
	case "none", "off":
		return CompressNone, nil
	default:
		return CompressAuto, fmt.Errorf("unknown compression mode %q", s)
	}
}

// ParseVersion parses a "major.minor" format version such as "1.4".
func ParseVersion(s string) (Version, error) {
	var major, minor uint8
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d.%d", &major, &minor); err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version(major)<<8 | Version(minor), nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// Options configures Decode and Encode. The zero value is usable.
type Options struct {
	// Logger receives diagnostics. Nil discards them.
	Logger logger.Logger
	// Compressor handles compressed regions. Nil selects ZlibCompressor.
	Compressor Compressor
	// Compression is the write-side compression policy.
	Compression Compression
	// Version is the format revision to write. Zero selects CurrentVersion.
	Version Version
}

func (o Options) logger() logger.Logger {
	if o.Logger == nil {
		return logger.Discard()
	}
	return o.Logger
}

func (o Options) compressor() Compressor {
	if o.Compressor == nil {
		return ZlibCompressor{}
	}
	return o.Compressor
}

func (o Options) version() (Version, error) {
	v := o.Version
	if v == 0 {
		return CurrentVersion, nil
	}
	if v.Major() != 1 || v > CurrentVersion {
		return 0, fmt.Errorf("%w: cannot write version %s", ErrUnsupported, v)
	}
	return v, nil
}

// LossFlags reports state that Encode could not represent.
type LossFlags uint8

const (
	// MinorInfoLoss means some detail was dropped, such as a second joystick
	// mapped to an input that already has one.
	MinorInfoLoss LossFlags = 1 << iota
	// MajorInfoLoss means a whole subsystem was dropped.
	MajorInfoLoss
)

func (f LossFlags) Major() bool { return f&MajorInfoLoss != 0 }
func (f LossFlags) Minor() bool { return f&MinorInfoLoss != 0 }

// Creator identifies the program that wrote a snapshot.
type Creator struct {
	Program string `json:"program"`
	Major   uint16 `json:"major"`
	Minor   uint16 `json:"minor"`
	Custom  []byte `json:"custom,omitempty"`
}

const creatorProgramSize = 32
