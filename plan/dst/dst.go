// Package dst reads and writes Tajima DST embroidery machine files.
//
// A DST file is a 512-byte text header followed by 3-byte records. Each
// record moves the needle by up to ±121 units of 0.1 mm on each axis,
// encoded in balanced ternary, and says whether the move is a stitch, a
// jump or a color change. The y axis points up.
package dst

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/plan"
)

const (
	// HeaderSize is the fixed size of the DST header.
	HeaderSize = 512
	// MaxStep is the largest move a single record can encode.
	MaxStep = 121
	// DefaultMMPerPx is used when a plan does not record its scale.
	DefaultMMPerPx = 0.26
)

var (
	// ErrShortHeader is returned when the input ends inside the header.
	ErrShortHeader = errors.New("dst: short header")
	// ErrTruncated is returned when the input ends inside a record.
	ErrTruncated = errors.New("dst: truncated record")
)

type recordKind uint8

const (
	recStitch recordKind = iota
	recJump
	recColor
	recEnd
)

type record struct {
	dx, dy int // DST units, y up
	kind   recordKind
}

// Header is the decoded DST header.
type Header struct {
	Label        string
	Records      int
	ColorChanges int
	PlusX        int
	MinusX       int
	PlusY        int
	MinusY       int
	EndX, EndY   int
}

// Encode writes p as a DST file labelled name. Positions are converted
// from pixels with p.Info.MMPerPx and made relative to the first point. A
// leading color change only selects the first thread and is not written.
// Trims are written as jumps and stops as color changes. Moves longer than
// MaxStep are split into jumps followed by the final move.
func Encode(w io.Writer, p plan.Plan, name string) error {
	recs, hdr := records(p)
	hdr.Label = name

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header(hdr)); err != nil {
		return fmt.Errorf("dst: write header: %w", err)
	}
	for _, r := range recs {
		b := encodeRecord(r)
		if _, err := bw.Write(b[:]); err != nil {
			return fmt.Errorf("dst: write record: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dst: flush: %w", err)
	}
	embroider.Logger().Debug("dst: encoded", "label", name, "records", len(recs), "colors", hdr.ColorChanges)
	return nil
}

// records converts plan points to DST records, ending with an end record.
func records(p plan.Plan) ([]record, Header) {
	scale := p.Info.MMPerPx
	if scale <= 0 {
		scale = DefaultMMPerPx
	}
	var (
		recs   []record
		hdr    Header
		x, y   int
		origin embroider.Point
	)
	if len(p.Points) > 0 {
		origin = p.Points[0].Pos()
	}
	for i, pt := range p.Points {
		if i == 0 && pt.Kind == plan.KindColorChange {
			continue
		}
		// pixels to 0.1 mm, y flipped
		tx := int(math.Round((pt.X - origin.X) * scale * 10))
		ty := int(math.Round(-(pt.Y - origin.Y) * scale * 10))
		var kind recordKind
		switch pt.Kind {
		case plan.KindStitch:
			kind = recStitch
		case plan.KindJump, plan.KindTrim:
			kind = recJump
		case plan.KindColorChange, plan.KindStop:
			kind = recColor
			hdr.ColorChanges++
		case plan.KindEnd:
			continue
		}
		recs = appendMove(recs, tx-x, ty-y, kind)
		x, y = tx, ty
		hdr.PlusX, hdr.MinusX = max(hdr.PlusX, x), max(hdr.MinusX, -x)
		hdr.PlusY, hdr.MinusY = max(hdr.PlusY, y), max(hdr.MinusY, -y)
	}
	recs = append(recs, record{kind: recEnd})
	hdr.Records = len(recs)
	hdr.EndX, hdr.EndY = x, y
	return recs, hdr
}

// appendMove splits a move into steps no longer than MaxStep. All steps
// but the last are jumps.
func appendMove(recs []record, dx, dy int, kind recordKind) []record {
	n := max(1, (max(abs(dx), abs(dy))+MaxStep-1)/MaxStep)
	if kind == recColor {
		if n > 1 {
			recs = appendMove(recs, dx, dy, recJump)
			dx, dy = 0, 0
		}
		return append(recs, record{dx: dx, dy: dy, kind: recColor})
	}
	px, py := 0, 0
	for i := 1; i <= n; i++ {
		sx, sy := dx*i/n, dy*i/n
		k := recJump
		if i == n {
			k = kind
		}
		recs = append(recs, record{dx: sx - px, dy: sy - py, kind: k})
		px, py = sx, sy
	}
	return recs
}

func header(h Header) []byte {
	label := h.Label
	if len(label) > 16 {
		label = label[:16]
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "LA:%-16s\r", label)
	fmt.Fprintf(&b, "ST:%7d\r", h.Records)
	fmt.Fprintf(&b, "CO:%3d\r", h.ColorChanges)
	fmt.Fprintf(&b, "+X:%5d\r", h.PlusX)
	fmt.Fprintf(&b, "-X:%5d\r", h.MinusX)
	fmt.Fprintf(&b, "+Y:%5d\r", h.PlusY)
	fmt.Fprintf(&b, "-Y:%5d\r", h.MinusY)
	fmt.Fprintf(&b, "AX:%s%5d\r", sign(h.EndX), abs(h.EndX))
	fmt.Fprintf(&b, "AY:%s%5d\r", sign(h.EndY), abs(h.EndY))
	b.WriteString("MX:+    0\r")
	b.WriteString("MY:+    0\r")
	b.WriteString("PD:******\r")
	b.WriteByte(0x1a)
	for b.Len() < HeaderSize {
		b.WriteByte(' ')
	}
	return b.Bytes()[:HeaderSize]
}

// ternary digit tables: value, byte index and bit for x and y.
type trit struct {
	value      int
	idx        int
	pos, neg   byte
	yPos, yNeg byte
}

var trits = [...]trit{
	{value: 81, idx: 2, pos: 0x04, neg: 0x08, yPos: 0x20, yNeg: 0x10},
	{value: 27, idx: 1, pos: 0x04, neg: 0x08, yPos: 0x20, yNeg: 0x10},
	{value: 9, idx: 0, pos: 0x04, neg: 0x08, yPos: 0x20, yNeg: 0x10},
	{value: 3, idx: 1, pos: 0x01, neg: 0x02, yPos: 0x80, yNeg: 0x40},
	{value: 1, idx: 0, pos: 0x01, neg: 0x02, yPos: 0x80, yNeg: 0x40},
}

func encodeRecord(r record) [3]byte {
	var b [3]byte
	x, y := r.dx, r.dy
	for _, t := range trits {
		half := t.value / 2
		switch {
		case x > half:
			b[t.idx] |= t.pos
			x -= t.value
		case x < -half:
			b[t.idx] |= t.neg
			x += t.value
		}
		switch {
		case y > half:
			b[t.idx] |= t.yPos
			y -= t.value
		case y < -half:
			b[t.idx] |= t.yNeg
			y += t.value
		}
	}
	b[2] |= 0x03
	switch r.kind {
	case recJump:
		b[2] |= 0x80
	case recColor:
		b[2] |= 0xc0
	case recEnd:
		b = [3]byte{0, 0, 0xf3}
	}
	return b
}

func decodeRecord(b [3]byte) record {
	var r record
	for _, t := range trits {
		v := b[t.idx]
		if v&t.pos != 0 {
			r.dx += t.value
		}
		if v&t.neg != 0 {
			r.dx -= t.value
		}
		if v&t.yPos != 0 {
			r.dy += t.value
		}
		if v&t.yNeg != 0 {
			r.dy -= t.value
		}
	}
	switch {
	case b[2]&0xf3 == 0xf3:
		r.kind = recEnd
	case b[2]&0xc3 == 0xc3:
		r.kind = recColor
	case b[2]&0x80 != 0:
		r.kind = recJump
	}
	return r
}

// Decode reads a DST file into a plan in pixels at mmPerPx, with the
// first stitch at the origin. The plan opens with a color change marker
// like generated plans do. A missing end record is tolerated.
func Decode(r io.Reader, mmPerPx float64) (plan.Plan, Header, error) {
	if mmPerPx <= 0 {
		mmPerPx = DefaultMMPerPx
	}
	var hdr Header
	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return plan.Plan{}, hdr, fmt.Errorf("%w: %w", ErrShortHeader, err)
	}
	hdr = parseHeader(head)

	p := plan.Plan{Info: plan.Info{Name: hdr.Label, MMPerPx: mmPerPx}}
	p.Append(plan.Point{Kind: plan.KindColorChange})
	br := bufio.NewReader(r)
	x, y := 0, 0
	var buf [3]byte
	for {
		n, err := io.ReadFull(br, buf[:])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return p, hdr, fmt.Errorf("%w after %d bytes: %w", ErrTruncated, n, err)
		}
		rec := decodeRecord(buf)
		if rec.kind == recEnd {
			p.Append(plan.Point{X: px(x, mmPerPx), Y: -px(y, mmPerPx), Kind: plan.KindEnd})
			break
		}
		x += rec.dx
		y += rec.dy
		pt := plan.Point{X: px(x, mmPerPx), Y: -px(y, mmPerPx)}
		switch rec.kind {
		case recJump:
			pt.Kind = plan.KindJump
		case recColor:
			pt.Kind = plan.KindColorChange
		}
		p.Append(pt)
	}
	return p, hdr, nil
}

func px(units int, mmPerPx float64) float64 {
	return float64(units) / 10 / mmPerPx
}

func parseHeader(b []byte) Header {
	var h Header
	if i := bytes.IndexByte(b, 0x1a); i >= 0 {
		b = b[:i]
	}
	for _, field := range strings.Split(string(b), "\r") {
		if len(field) < 3 || field[2] != ':' {
			continue
		}
		key, val := field[:2], field[3:]
		switch key {
		case "LA":
			h.Label = strings.TrimSpace(val)
		case "ST":
			h.Records = atoi(val)
		case "CO":
			h.ColorChanges = atoi(val)
		case "+X":
			h.PlusX = atoi(val)
		case "-X":
			h.MinusX = atoi(val)
		case "+Y":
			h.PlusY = atoi(val)
		case "-Y":
			h.MinusY = atoi(val)
		case "AX":
			h.EndX = atoi(val)
		case "AY":
			h.EndY = atoi(val)
		}
	}
	return h
}

// atoi parses a space padded, optionally signed decimal; junk yields 0.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return 0
	}
	return n
}

func sign(v int) string {
	if v < 0 {
		return "-"
	}
	return "+"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
