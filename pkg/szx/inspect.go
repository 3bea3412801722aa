package szx

import (
	"bufio"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
)

// Chunk describes one block as it sits in the file.
type Chunk struct {
	Tag    string `json:"tag"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
	Known  bool   `json:"known"`
}

// Manifest is the structural view of an SZX image: the header and block
// directory, without decoding any block payloads except CRTR.
type Manifest struct {
	Version     string   `json:"version"`
	Machine     string   `json:"machine"`
	MachineCode byte     `json:"machine_code"`
	LateTimings bool     `json:"late_timings"`
	Creator     *Creator `json:"creator,omitempty"`
	Chunks      []Chunk  `json:"chunks"`
}

// Inspect walks the block structure of data. It fails on the same framing
// errors as Decode but does not validate block contents.
func Inspect(data []byte) (*Manifest, error) {
	h, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	m := &Manifest{
		Version:     h.Version.String(),
		Machine:     h.Machine.String(),
		MachineCode: h.MachineCode,
		LateTimings: h.LateTimings(),
		Chunks:      []Chunk{},
	}
	off := headerSize
	for off < len(data) {
		t, payload, next, err := nextBlock(data, off)
		if err != nil {
			return nil, err
		}
		m.Chunks = append(m.Chunks, Chunk{
			Tag:    t.String(),
			Offset: off,
			Length: len(payload),
			Known:  Known(t),
		})
		if t == TagCreator && m.Creator == nil {
			if cr, err := parseCreator(payload); err == nil {
				m.Creator = cr
			}
		}
		off = next
	}
	return m, nil
}

// WriteJSON writes m as indented JSON.
func (m *Manifest) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// WriteText writes a human-readable table of m. It returns the first error
// from w.
func (m *Manifest) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "SZX %s  %s", m.Version, m.Machine)
	if m.LateTimings {
		fmt.Fprint(bw, "  (late timings)")
	}
	fmt.Fprintln(bw)
	if m.Creator != nil {
		fmt.Fprintf(bw, "Creator: %s %d.%d\n", m.Creator.Program, m.Creator.Major, m.Creator.Minor)
	}

	tw := tabwriter.NewWriter(bw, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tOFFSET\tLENGTH\tKNOWN")
	for _, c := range m.Chunks {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%t\n", c.Tag, c.Offset, c.Length, c.Known)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return bw.Flush()
}
