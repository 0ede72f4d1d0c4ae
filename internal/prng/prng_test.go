package prng

import "testing"

func TestJoinArgs(t *testing.T) {
	tests := []struct {
		args []any
		want string
	}{
		{[]any{"a", 1, 2.5}, "a/1/2.5"},
		{[]any{"solo"}, "solo"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := JoinArgs(tt.args...); got != tt.want {
			t.Errorf("JoinArgs(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
	if JoinArgs("a", JoinArgs("b", "c")) != JoinArgs("a", "b", "c") {
		t.Error("JoinArgs should be associative")
	}
}

func TestUniformFloatsDeterministicAndInRange(t *testing.T) {
	a := UniformFloats("stitch", 7)
	b := UniformFloats("stitch", 7)
	if a != b {
		t.Fatal("same arguments produced different values")
	}
	if a == UniformFloats("stitch", 8) {
		t.Error("different arguments produced identical blocks")
	}
	for _, v := range a {
		if v < 0 || v > 1 {
			t.Errorf("value %v out of [0, 1]", v)
		}
	}
}

func TestStreamBlocks(t *testing.T) {
	s := NewStream("seed", 3)
	first := UniformFloats("seed/3", 0)
	second := UniformFloats("seed/3", 1)
	for i := range 2 * BlockSize {
		want := first[i%BlockSize]
		if i >= BlockSize {
			want = second[i-BlockSize]
		}
		if got := s.Next(); got != want {
			t.Fatalf("stream[%d] = %v, want %v", i, got, want)
		}
	}
	if NewStream("seed", 3).Next() != first[0] {
		t.Error("streams with the same key differ")
	}
}

func TestFloatSpread(t *testing.T) {
	var sum float64
	const n = 2000
	s := NewStream("spread")
	for i := 0; i < n; i++ {
		sum += s.Next()
	}
	if mean := sum / n; mean < 0.45 || mean > 0.55 {
		t.Errorf("mean = %v, want about 0.5", mean)
	}
}
