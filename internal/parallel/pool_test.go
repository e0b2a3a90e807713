package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_Workers(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPool(tt.workers)
			defer p.Close()
			if p.Workers() != tt.want {
				t.Errorf("Workers() = %d, want %d", p.Workers(), tt.want)
			}
		})
	}
}

func TestPool_ForEachVisitsEveryIndexOnce(t *testing.T) {
	p := NewPool(4)
	defer p.Close()

	const n = 257
	counts := make([]atomic.Int32, n)
	p.ForEach(n, func(i int) {
		counts[i].Add(1)
	})
	for i := range counts {
		if got := counts[i].Load(); got != 1 {
			t.Errorf("index %d ran %d times", i, got)
		}
	}
}

func TestPool_ForEachWaits(t *testing.T) {
	p := NewPool(2)
	defer p.Close()

	var done atomic.Int32
	p.ForEach(6, func(int) {
		time.Sleep(5 * time.Millisecond)
		done.Add(1)
	})
	if done.Load() != 6 {
		t.Errorf("ForEach returned with %d of 6 items done", done.Load())
	}
}

func TestPool_ForEachEmpty(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	p.ForEach(0, func(int) { t.Error("fn called for n=0") })
}

func TestPool_ClosedRunsInline(t *testing.T) {
	p := NewPool(2)
	p.Close()
	p.Close()

	sum := 0
	p.ForEach(4, func(i int) { sum += i })
	if sum != 6 {
		t.Errorf("sum = %d, want 6", sum)
	}
}

func TestPool_ConcurrentForEach(t *testing.T) {
	p := NewPool(3)
	defer p.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.ForEach(50, func(int) { total.Add(1) })
		}()
	}
	wg.Wait()
	if total.Load() != 400 {
		t.Errorf("total = %d, want 400", total.Load())
	}
}

func BenchmarkPool_ForEach(b *testing.B) {
	p := NewPool(0)
	defer p.Close()
	b.ReportAllocs()
	for b.Loop() {
		p.ForEach(64, func(int) {})
	}
}
