package szx

import (
	"slices"
	"testing"

	"github.com/samcharles93/szx/pkg/snap"
)

var allFlagTables = map[string]flagTable{
	"ay":        ayFlags,
	"beta":      betaFlags,
	"opus":      opusFlags,
	"plusd":     plusDFlags,
	"zxat":      zxatFlags,
	"zxcf":      zxcfFlags,
	"if1":       if1Flags,
	"keyb":      keybFlags,
	"joy":       joyFlags,
	"divide":    divIDEFlags,
	"snet":      snetFlags,
	"multiface": multifaceFlags,
	"z80":       z80Flags,
	"zxpr":      zxprFlags,
}

// mask returns the union of all bits the table handles.
func (t flagTable) mask() uint32 {
	var m uint32
	for _, f := range t {
		m |= f.mask
	}
	return m
}

func TestFlagTablesRoundTrip(t *testing.T) {
	t.Parallel()

	for name, table := range allFlagTables {
		mask := table.mask()
		for v := uint32(0); v <= mask; v++ {
			if v&^mask != 0 {
				continue
			}
			s := snap.New(snap.Machine48)
			table.decompose(s, v)
			if got := table.compose(s); got != v {
				t.Fatalf("%s: compose(decompose(%#x)): got %#x", name, v, got)
			}
		}
	}
}

func TestFlagTablesDistinctBits(t *testing.T) {
	t.Parallel()

	for name, table := range allFlagTables {
		var seen uint32
		for _, f := range table {
			if f.mask == 0 || f.mask&(f.mask-1) != 0 {
				t.Fatalf("%s: mask %#x is not a single bit", name, f.mask)
			}
			if seen&f.mask != 0 {
				t.Fatalf("%s: bit %#x bound twice", name, f.mask)
			}
			seen |= f.mask
		}
	}
}

func TestFlagTablesOrderIndependent(t *testing.T) {
	t.Parallel()

	for name, table := range allFlagTables {
		reversed := slices.Clone(table)
		slices.Reverse(reversed)
		mask := table.mask()
		for v := uint32(0); v <= mask; v++ {
			if v&^mask != 0 {
				continue
			}
			a, b := snap.New(snap.Machine48), snap.New(snap.Machine48)
			table.decompose(a, v)
			reversed.decompose(b, v)
			if table.compose(b) != reversed.compose(a) {
				t.Fatalf("%s: table order changes result for %#x", name, v)
			}
		}
	}
}

func TestFlagsIgnoreOtherBits(t *testing.T) {
	t.Parallel()

	s := snap.New(snap.Machine48)
	betaFlags.decompose(s, betaConnected|betaCompressed)
	if s.Beta.Paged || s.Beta.Autoboot || s.Beta.CustomROM {
		t.Fatalf("unexpected beta state: %+v", s.Beta)
	}
	if !s.Beta.Direction {
		t.Fatalf("seek lower clear should mean direction up")
	}
	if got := betaFlags.compose(s); got != 0 {
		t.Fatalf("compose: got %#x want 0", got)
	}
}
