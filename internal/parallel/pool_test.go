package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_Create(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		expect  int
	}{
		{"explicit", 4, 4},
		{"zero uses GOMAXPROCS", 0, runtime.GOMAXPROCS(0)},
		{"negative uses GOMAXPROCS", -5, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPool(tt.workers)
			defer pool.Close()

			if pool.Workers() != tt.expect {
				t.Errorf("Workers() = %d, want %d", pool.Workers(), tt.expect)
			}
			if !pool.IsRunning() {
				t.Error("pool should be running after creation")
			}
		})
	}
}

func TestPool_ExecuteAll(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var mu sync.Mutex
	seen := make(map[int]bool)
	work := make([]func(), 100)
	for i := range work {
		work[i] = func() {
			mu.Lock()
			seen[i] = true
			mu.Unlock()
		}
	}
	pool.ExecuteAll(work)

	if len(seen) != len(work) {
		t.Errorf("executed %d items, want %d", len(seen), len(work))
	}
}

func TestPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestPool_ExecuteAll_Uneven(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 16)
	for i := range work {
		work[i] = func() {
			if i%4 == 0 {
				time.Sleep(5 * time.Millisecond)
			}
			counter.Add(1)
		}
	}
	pool.ExecuteAll(work)

	if counter.Load() != 16 {
		t.Errorf("counter = %d, want 16", counter.Load())
	}
}

func TestPool_Close(t *testing.T) {
	pool := NewPool(3)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}

	var executed atomic.Bool
	pool.ExecuteAll([]func(){func() { executed.Store(true) }})
	if executed.Load() {
		t.Error("ExecuteAll on a closed pool should be a no-op")
	}
}

func TestPool_NoGoroutineLeak(t *testing.T) {
	before := runtime.NumGoroutine()
	for range 10 {
		pool := NewPool(4)
		pool.ExecuteAll([]func(){func() {}, func() {}})
		pool.Close()
	}
	time.Sleep(10 * time.Millisecond)

	if after := runtime.NumGoroutine(); after > before+2 {
		t.Errorf("goroutines grew from %d to %d", before, after)
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name   string
		total  int
		parts  int
		expect []Range
	}{
		{"even", 10, 2, []Range{{0, 5}, {5, 10}}},
		{"uneven", 10, 3, []Range{{0, 4}, {4, 7}, {7, 10}}},
		{"more parts than items", 2, 5, []Range{{0, 1}, {1, 2}}},
		{"zero parts", 3, 0, []Range{{0, 3}}},
		{"empty", 0, 4, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.total, tt.parts)
			if len(got) != len(tt.expect) {
				t.Fatalf("Split(%d, %d) = %v, want %v", tt.total, tt.parts, got, tt.expect)
			}
			sum := 0
			for i := range got {
				if got[i] != tt.expect[i] {
					t.Errorf("Split(%d, %d)[%d] = %v, want %v", tt.total, tt.parts, i, got[i], tt.expect[i])
				}
				sum += got[i].Len()
			}
			if sum != tt.total {
				t.Errorf("Split(%d, %d) covers %d indices, want %d", tt.total, tt.parts, sum, tt.total)
			}
		})
	}
}

func BenchmarkPool_ExecuteAll(b *testing.B) {
	pool := NewPool(0)
	defer pool.Close()

	work := make([]func(), 64)
	for i := range work {
		work[i] = func() {}
	}
	b.ReportAllocs()
	for b.Loop() {
		pool.ExecuteAll(work)
	}
}
