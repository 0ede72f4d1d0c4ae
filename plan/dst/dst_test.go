package dst

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/embroider"
	"github.com/gogpu/embroider/plan"
)

func TestRecordRoundTrip(t *testing.T) {
	for dx := -MaxStep; dx <= MaxStep; dx++ {
		for _, dy := range []int{-121, -81, -40, -13, -1, 0, 1, 4, 5, 41, 121} {
			for _, k := range []recordKind{recStitch, recJump, recColor} {
				got := decodeRecord(encodeRecord(record{dx: dx, dy: dy, kind: k}))
				if got.dx != dx || got.dy != dy || got.kind != k {
					t.Fatalf("round trip (%d,%d,%d) = %+v", dx, dy, k, got)
				}
			}
		}
	}
}

func TestRecordBytes(t *testing.T) {
	tests := []struct {
		name string
		rec  record
		want [3]byte
	}{
		{"zero stitch", record{}, [3]byte{0x00, 0x00, 0x03}},
		{"x +1", record{dx: 1}, [3]byte{0x01, 0x00, 0x03}},
		{"y +1", record{dy: 1}, [3]byte{0x80, 0x00, 0x03}},
		{"x +81 jump", record{dx: 81, kind: recJump}, [3]byte{0x00, 0x00, 0x87}},
		{"color change", record{kind: recColor}, [3]byte{0x00, 0x00, 0xc3}},
		{"end", record{kind: recEnd}, [3]byte{0x00, 0x00, 0xf3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeRecord(tt.rec); got != tt.want {
				t.Errorf("encodeRecord = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestAppendMoveSplits(t *testing.T) {
	recs := appendMove(nil, 300, -10, recStitch)
	if len(recs) != 3 {
		t.Fatalf("records = %d, want 3", len(recs))
	}
	sx, sy := 0, 0
	for i, r := range recs {
		if abs(r.dx) > MaxStep || abs(r.dy) > MaxStep {
			t.Errorf("record %d too long: %+v", i, r)
		}
		want := recJump
		if i == len(recs)-1 {
			want = recStitch
		}
		if r.kind != want {
			t.Errorf("record %d kind = %d, want %d", i, r.kind, want)
		}
		sx, sy = sx+r.dx, sy+r.dy
	}
	if sx != 300 || sy != -10 {
		t.Errorf("sum = (%d,%d)", sx, sy)
	}
}

func TestEncodeDecode(t *testing.T) {
	pts := []embroider.Point{{X: 100, Y: 100}, {X: 160, Y: 100}, {X: 160, Y: 40}}
	p := plan.Generate(pts, plan.Options{MMPerPx: 0.5, StitchLenMM: 3})
	p.Append(plan.Point{X: 100, Y: 40, Kind: plan.KindColorChange, Color: "#ff0000"})
	p.Append(plan.Point{X: 130, Y: 40, Kind: plan.KindStitch})

	var buf bytes.Buffer
	if err := Encode(&buf, p, "shirt-logo"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() < HeaderSize || (buf.Len()-HeaderSize)%3 != 0 {
		t.Fatalf("file size %d", buf.Len())
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("LA:shirt-logo      \r")) {
		t.Errorf("header starts %q", buf.Bytes()[:20])
	}

	got, hdr, err := Decode(bytes.NewReader(buf.Bytes()), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if hdr.Label != "shirt-logo" || hdr.ColorChanges != 1 {
		t.Errorf("header = %+v", hdr)
	}
	if hdr.PlusX != 300 || hdr.PlusY != 300 || hdr.MinusX != 0 || hdr.MinusY != 0 {
		t.Errorf("extents = %+v, want +X 300 +Y 300", hdr)
	}
	if hdr.Records != (buf.Len()-HeaderSize)/3 {
		t.Errorf("header records %d, file has %d", hdr.Records, (buf.Len()-HeaderSize)/3)
	}
	want := plan.Summarize(p)
	have := plan.Summarize(got)
	if have.Stitches != want.Stitches || have.ColorChanges != want.ColorChanges {
		t.Errorf("decoded counts %+v, want %+v", have, want)
	}
	// positions survive relative to the first point, to 0.1 mm
	var stitches []plan.Point
	for _, pt := range got.Points {
		if pt.Kind == plan.KindStitch {
			stitches = append(stitches, pt)
		}
	}
	last := stitches[len(stitches)-1]
	if math.Abs(last.X-30) > 0.2 || math.Abs(last.Y+60) > 0.2 {
		t.Errorf("last stitch = (%v,%v), want (30,-60)", last.X, last.Y)
	}
	if end := got.Points[len(got.Points)-1]; end.Kind != plan.KindEnd {
		t.Errorf("last point kind = %v, want end", end.Kind)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, _, err := Decode(bytes.NewReader(make([]byte, 100)), 1); !errors.Is(err, ErrShortHeader) {
		t.Errorf("short header err = %v", err)
	}
	data := append(header(Header{Label: "x"}), 0x00, 0x00)
	if _, _, err := Decode(bytes.NewReader(data), 1); !errors.Is(err, ErrTruncated) {
		t.Errorf("truncated err = %v", err)
	}
}

func TestEncodeEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, plan.Plan{}, "empty"); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != HeaderSize+3 {
		t.Errorf("size = %d, want header plus end record", buf.Len())
	}
}
