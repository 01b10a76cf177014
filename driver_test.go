package falseshare

import (
	"errors"
	"math"
	"testing"
)

func TestCompareScenario(t *testing.T) {
	cfg := testConfig(4, 1_000_000)
	rep, err := Compare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.PackedTrials) != 1 || len(rep.PaddedTrials) != 1 {
		t.Fatalf("trial sets = %d/%d samples, want 1/1",
			len(rep.PackedTrials), len(rep.PaddedTrials))
	}
	for _, ms := range []float64{rep.PackedTrials[0], rep.PaddedTrials[0]} {
		if ms < 0 || math.IsInf(ms, 0) || math.IsNaN(ms) {
			t.Errorf("trial time = %v, want non-negative finite", ms)
		}
	}
	if s := rep.Speedup; s < 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		t.Errorf("speedup = %v, want non-negative finite", s)
	}
	if s := rep.TrialSpeedup(0); s < 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		t.Errorf("trial speedup = %v, want non-negative finite", s)
	}
}

func TestCompareSingleWorker(t *testing.T) {
	// With one worker nothing can alias, so the harness must still produce
	// a sane report rather than a biased one.
	cfg := testConfig(1, 200_000)
	cfg.Trials = 2
	rep, err := Compare(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.PackedTrials) != 2 || len(rep.PaddedTrials) != 2 {
		t.Fatalf("trial sets = %d/%d samples, want 2/2",
			len(rep.PackedTrials), len(rep.PaddedTrials))
	}
	if s := rep.Speedup; s < 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		t.Errorf("speedup = %v, want non-negative finite", s)
	}
}

func TestCompareInvalidConfig(t *testing.T) {
	cfg := testConfig(0, 1000)
	if _, err := Compare(cfg); !errors.Is(err, ErrConfiguration) {
		t.Errorf("Compare err = %v, want ErrConfiguration", err)
	}
}

func TestCompareObserver(t *testing.T) {
	cfg := testConfig(2, 10_000)
	cfg.Trials = 3

	var calls int
	d := Driver{
		Observer: func(trial int, packedMS, paddedMS float64) {
			if trial != calls {
				t.Errorf("observer trial = %d, want %d", trial, calls)
			}
			if packedMS < 0 || paddedMS < 0 {
				t.Errorf("observer timings = %v/%v, want >= 0", packedMS, paddedMS)
			}
			calls++
		},
	}
	if _, err := d.Compare(cfg); err != nil {
		t.Fatal(err)
	}
	if calls != cfg.Trials {
		t.Errorf("observer called %d times, want %d", calls, cfg.Trials)
	}
}

func TestSingle(t *testing.T) {
	const iterations = 100_000
	cfg := testConfig(4, iterations)
	var d Driver
	for _, l := range testLayouts(t, cfg.WorkerCount) {
		res, err := d.Single(l, cfg)
		if err != nil {
			t.Fatalf("%s: Single: %v", l.Name(), err)
		}
		if len(res.Counters) != cfg.WorkerCount {
			t.Fatalf("%s: %d counters, want %d", l.Name(), len(res.Counters), cfg.WorkerCount)
		}
		for i, v := range res.Counters {
			if v != iterations {
				t.Errorf("%s: counter %d = %d, want %d", l.Name(), i, v, iterations)
			}
		}
		if res.ElapsedMS < 0 {
			t.Errorf("%s: elapsed = %v, want >= 0", l.Name(), res.ElapsedMS)
		}
	}
}

func TestTrialSetMean(t *testing.T) {
	cases := []struct {
		set  TrialSet
		want float64
	}{
		{nil, 0},
		{TrialSet{5}, 5},
		{TrialSet{1, 2, 3}, 2},
		{TrialSet{10, 20}, 15},
	}
	for _, tc := range cases {
		if got := tc.set.Mean(); got != tc.want {
			t.Errorf("Mean(%v) = %v, want %v", tc.set, got, tc.want)
		}
	}
}
