package ready

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pahmm/internal/fixture"
)

var fast = Options{Initial: time.Millisecond, Max: 4 * time.Millisecond, Timeout: 200 * time.Millisecond}

func TestPoll_SucceedsAfterRetries(t *testing.T) {
	n := 0
	err := Poll(context.Background(), fast, func() (bool, error) {
		n++
		return n >= 3, nil
	})
	if err != nil || n != 3 {
		t.Fatalf("err=%v calls=%d", err, n)
	}
}

func TestPoll_Timeout(t *testing.T) {
	opt := fast
	opt.Timeout = 20 * time.Millisecond
	half := errors.New("half written")
	err := Poll(context.Background(), opt, func() (bool, error) { return false, half })
	if !errors.Is(err, ErrTimeout) || !errors.Is(err, half) {
		t.Fatalf("want ErrTimeout wrapping the last check error, got %v", err)
	}
}

func TestPoll_ZeroTimeoutChecksOnce(t *testing.T) {
	n := 0
	err := Poll(context.Background(), Options{}, func() (bool, error) { n++; return false, nil })
	if !errors.Is(err, ErrTimeout) || n != 1 {
		t.Fatalf("err=%v calls=%d", err, n)
	}
}

func TestPoll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	opt := Options{Initial: 50 * time.Millisecond, Timeout: time.Minute}
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	err := Poll(ctx, opt, func() (bool, error) { return false, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestFileWaiter_WaitsForData(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "g.pos.txt")
	// header only: not ready yet
	if err := os.WriteFile(fn, []byte("Base Position e1 e2 e3 pASite e4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	go func() {
		time.Sleep(10 * time.Millisecond)
		tmp := fn + ".tmp"
		_ = os.WriteFile(tmp, []byte(fixture.Prediction("ACGT", []float64{1, 2, 3, 4})), 0o644)
		_ = os.Rename(tmp, fn)
	}()
	w := FileWaiter{Options: Options{Initial: time.Millisecond, Max: 5 * time.Millisecond, Timeout: 2 * time.Second}}
	recs, err := w.Table(context.Background(), fn)
	if err != nil {
		t.Fatalf("wait: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("want 4 records, got %d", len(recs))
	}
}

func TestFileWaiter_HeaderOnlyAtDeadline(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "g.pos.txt")
	if err := os.WriteFile(fn, []byte("Base Position e1 e2 e3 pASite e4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := FileWaiter{Options: Options{Initial: time.Millisecond, Max: 5 * time.Millisecond, Timeout: 30 * time.Millisecond}}
	recs, err := w.Table(context.Background(), fn)
	if err != nil {
		t.Fatalf("header-only file: want an empty table, got %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Fatalf("want empty non-nil table, got %#v", recs)
	}
}

func TestFileWaiter_MissingTimesOut(t *testing.T) {
	w := FileWaiter{Options: fast}
	_, err := w.Table(context.Background(), filepath.Join(t.TempDir(), "never.pos.txt"))
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
}

func TestWait_ExistingFile(t *testing.T) {
	fn := fixture.WritePrediction(t, t.TempDir(), "g.pos.txt", "A", []float64{1})
	if err := Wait(context.Background(), fn, Options{}); err != nil {
		t.Fatalf("wait: %v", err)
	}
	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Wait(context.Background(), empty, Options{}); !errors.Is(err, ErrTimeout) {
		t.Fatalf("empty file: want ErrTimeout, got %v", err)
	}
}
