package plan

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds statistics over a plan.
type Summary struct {
	Stitches     int
	Jumps        int
	Trims        int
	ColorChanges int
	// Lengths of stitch-to-stitch moves, in pixels.
	TotalLength  float64
	MeanLength   float64
	StdDevLength float64
	MaxLength    float64
	// Bounding box of all points.
	MinX, MinY, MaxX, MaxY float64
}

// Summarize counts the commands in p and measures its stitch lengths.
func Summarize(p Plan) Summary {
	var s Summary
	if len(p.Points) == 0 {
		return s
	}
	xs := make([]float64, len(p.Points))
	ys := make([]float64, len(p.Points))
	var lengths []float64
	for i, pt := range p.Points {
		xs[i], ys[i] = pt.X, pt.Y
		switch pt.Kind {
		case KindStitch:
			s.Stitches++
			if i > 0 && p.Points[i-1].Kind == KindStitch {
				lengths = append(lengths, pt.Pos().Distance(p.Points[i-1].Pos()))
			}
		case KindJump:
			s.Jumps++
		case KindTrim:
			s.Trims++
		case KindColorChange:
			s.ColorChanges++
		}
	}
	s.MinX, s.MaxX = floats.Min(xs), floats.Max(xs)
	s.MinY, s.MaxY = floats.Min(ys), floats.Max(ys)
	if len(lengths) > 0 {
		s.TotalLength = floats.Sum(lengths)
		s.MeanLength, s.StdDevLength = stat.MeanStdDev(lengths, nil)
		s.MaxLength = floats.Max(lengths)
		if len(lengths) == 1 {
			s.StdDevLength = 0
		}
	}
	return s
}
