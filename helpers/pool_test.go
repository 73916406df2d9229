package helpers

import (
	"errors"
	"sync"
	"testing"

	"github.com/gogpu/clipmap"
)

func TestParallelRowsZeroRowsIsNoop(t *testing.T) {
	if err := parallelRows(clipmap.NewWorkerPool(2), 0, func(y int) error {
		t.Fatalf("fn should not be called for 0 rows")
		return nil
	}); err != nil {
		t.Fatalf("parallelRows returned error: %v", err)
	}
}

func TestParallelRowsVisitsEveryRowExactlyOnce(t *testing.T) {
	const rows = 50
	var mu sync.Mutex
	seen := make(map[int]int)

	err := parallelRows(clipmap.NewWorkerPool(4), rows, func(y int) error {
		mu.Lock()
		seen[y]++
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("parallelRows returned error: %v", err)
	}
	if len(seen) != rows {
		t.Fatalf("visited %d distinct rows, want %d", len(seen), rows)
	}
	for y, count := range seen {
		if count != 1 {
			t.Fatalf("row %d visited %d times, want 1", y, count)
		}
	}
}

func TestParallelRowsPropagatesFirstError(t *testing.T) {
	wantErr := errors.New("boom")

	err := parallelRows(clipmap.NewWorkerPool(3), 10, func(y int) error {
		if y == 5 {
			return wantErr
		}
		return nil
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestParallelRowsWithNilPoolUsesSingleWorker(t *testing.T) {
	var count int
	err := parallelRows(nil, 5, func(y int) error {
		count++
		return nil
	})
	if err != nil {
		t.Fatalf("parallelRows returned error: %v", err)
	}
	if count != 5 {
		t.Fatalf("count = %d, want 5", count)
	}
}
