package sampler

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestSampleEmptyTreeNeverFails(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	s := New(100*time.Millisecond, WithPaths(paths))
	sample := s.Sample()

	if sample.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if sample.Interval != 100*time.Millisecond {
		t.Errorf("Interval = %s", sample.Interval)
	}
	if len(sample.CPU.Cores) != 0 {
		t.Errorf("got %d cores from empty tree", len(sample.CPU.Cores))
	}
	if sample.Board.Model != "Unknown" {
		t.Errorf("Board.Model = %q", sample.Board.Model)
	}
	if sample.Profile.Current != -1 {
		t.Errorf("Profile.Current = %d, want -1", sample.Profile.Current)
	}
}

func TestSampleFirstTickUsageIsZero(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)
	writeFile(t, filepath.Join(paths.Proc, "stat"),
		"cpu  400 0 200 3400 0 0 0\ncpu0 100 0 50 850 0 0 0\ncpu1 300 0 150 2550 0 0 0\n")

	s := New(time.Second, WithPaths(paths))
	sample := s.Sample()

	if len(sample.CPU.Cores) != 2 {
		t.Fatalf("got %d cores, want 2", len(sample.CPU.Cores))
	}
	if sample.CPU.Usage != 0 {
		t.Errorf("first tick usage = %f, want 0", sample.CPU.Usage)
	}

	// Counters unchanged: second tick also reports zero.
	sample = s.Sample()
	if sample.CPU.Usage != 0 {
		t.Errorf("unchanged counters usage = %f, want 0", sample.CPU.Usage)
	}
}

func TestSampleComputesUsageAcrossTicks(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)
	statPath := filepath.Join(paths.Proc, "stat")

	writeFile(t, statPath, "cpu0 100 0 0 900 0 0 0\n")
	s := New(time.Second, WithPaths(paths))
	s.Sample()

	writeFile(t, statPath, "cpu0 175 0 0 925 0 0 0\n")
	sample := s.Sample()
	if sample.CPU.Usage != 75 {
		t.Errorf("usage = %f, want 75", sample.CPU.Usage)
	}
}

func TestStreamStopsOnCancel(t *testing.T) {
	t.Parallel()
	paths := testPaths(t)

	s := New(5*time.Millisecond, WithPaths(paths))
	ctx, cancel := context.WithCancel(context.Background())

	ch := s.Stream(ctx)
	if _, ok := <-ch; !ok {
		t.Fatal("stream closed before first sample")
	}
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after cancel")
		}
	}
}
