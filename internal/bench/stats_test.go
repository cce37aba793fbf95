package bench

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 2, 6, 8, 10})

	if got, want := s.Mean, 6.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("Mean = %v, want %v", got, want)
	}
	if got, want := s.Min, 2.0; got != want {
		t.Errorf("Min = %v, want %v", got, want)
	}
	if got, want := s.Median, 6.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("Median = %v, want %v", got, want)
	}
	// sample stddev of {2,4,6,8,10} is sqrt(10)
	if got, want := s.Std, math.Sqrt(10); math.Abs(got-want) > 1e-12 {
		t.Errorf("Std = %v, want %v", got, want)
	}
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]float64{5})

	if s.Mean != 5 || s.Min != 5 || s.Median != 5 {
		t.Errorf("single-sample summary = %+v", s)
	}
	if s.Std != 0 {
		t.Errorf("Std = %v, want 0", s.Std)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("empty summary = %+v, want zero", s)
	}
}

func TestSummarizeDoesNotMutate(t *testing.T) {
	in := []float64{3, 1, 2}
	Summarize(in)
	if in[0] != 3 || in[1] != 1 || in[2] != 2 {
		t.Errorf("input mutated: %v", in)
	}
}
