package fractal

import (
	"context"
	"errors"
	"slices"
	"testing"
)

func TestRegistry_BuiltinStrategies(t *testing.T) {
	names := Available()
	for _, want := range []string{StrategySequential, StrategyPooled} {
		if !slices.Contains(names, want) {
			t.Errorf("Available() = %v, missing %q", names, want)
		}
	}

	s, err := Get(StrategySequential)
	if err != nil {
		t.Fatalf("Get(%q): %v", StrategySequential, err)
	}
	if got := s.Label(); got != "Single-threaded CPU" {
		t.Errorf("Label() = %q", got)
	}
}

func TestRegistry_UnknownStrategy(t *testing.T) {
	_, err := Get("no-such-strategy")
	if !errors.Is(err, ErrStrategyNotAvailable) {
		t.Fatalf("Get(unknown) = %v, want ErrStrategyNotAvailable", err)
	}
}

func TestRegistry_RegisterUnregister(t *testing.T) {
	const name = "dummy"
	Register(name, func() Strategy { return NewSequential() })
	if _, err := Get(name); err != nil {
		t.Fatalf("Get after Register: %v", err)
	}
	Unregister(name)
	if _, err := Get(name); !errors.Is(err, ErrStrategyNotAvailable) {
		t.Fatalf("Get after Unregister = %v, want ErrStrategyNotAvailable", err)
	}
}

func TestSequential_MatchesEscape(t *testing.T) {
	s := NewSequential()
	g := NewGrid(32, ViewFullSet)

	res, err := s.Evaluate(context.Background(), g)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(res.Counts) != g.Len() {
		t.Fatalf("len(Counts) = %d, want %d", len(res.Counts), g.Len())
	}
	if res.Workers != 1 {
		t.Errorf("Workers = %d, want 1", res.Workers)
	}
	for i, sm := range g.Samples() {
		if want := Escape(sm.C); res.Counts[i] != want {
			t.Fatalf("Counts[%d] = %d, want %d (sample %v)", i, res.Counts[i], want, sm.C)
		}
	}
}

// The pooled strategy must produce counts identical to the sequential
// one for the same grid: parallel decomposition changes throughput,
// never results.
func TestPooled_MatchesSequential(t *testing.T) {
	p := NewPooled(4)
	defer p.Close()
	seq := NewSequential()

	for _, view := range []View{ViewFullSet, ViewLeftSpike} {
		for _, size := range []int{1, 7, 100} {
			g := NewGrid(size, view)

			want, err := seq.Evaluate(context.Background(), g)
			if err != nil {
				t.Fatalf("sequential: %v", err)
			}
			got, err := p.Evaluate(context.Background(), g)
			if err != nil {
				t.Fatalf("pooled: %v", err)
			}
			if !slices.Equal(got.Counts, want.Counts) {
				t.Fatalf("view %v size %d: pooled counts differ from sequential", view, size)
			}
		}
	}
}

func TestPooled_Workers(t *testing.T) {
	p := NewPooled(3)
	defer p.Close()

	if got := p.Workers(); got != 3 {
		t.Errorf("Workers() = %d, want 3", got)
	}
	if got := p.Label(); got != "Multi-threaded CPU (3 threads)" {
		t.Errorf("Label() = %q", got)
	}

	res, err := p.Evaluate(context.Background(), NewGrid(16, ViewFullSet))
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Workers != 3 {
		t.Errorf("Result.Workers = %d, want 3", res.Workers)
	}
}

func TestStrategies_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPooled(2)
	defer p.Close()

	g := NewGrid(8, ViewFullSet)
	for _, s := range []Strategy{NewSequential(), p} {
		if _, err := s.Evaluate(ctx, g); !errors.Is(err, context.Canceled) {
			t.Errorf("%s: Evaluate = %v, want context.Canceled", s.Label(), err)
		}
	}
}

// Evaluating the same grid twice yields byte-identical counts; the
// evaluator has no hidden state.
func TestPooled_Deterministic(t *testing.T) {
	p := NewPooled(8)
	defer p.Close()

	g := NewGrid(64, ViewLeftSpike)
	first, err := p.Evaluate(context.Background(), g)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	for i := 0; i < 3; i++ {
		res, err := p.Evaluate(context.Background(), g)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		if !slices.Equal(res.Counts, first.Counts) {
			t.Fatalf("run %d produced different counts", i+1)
		}
	}
}
