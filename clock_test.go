package striad

import (
	"testing"
	"time"
)

func TestNowIsMonotonic(t *testing.T) {
	prev := Now()
	for i := 0; i < 1000; i++ {
		now := Now()
		if now < prev {
			t.Fatalf("clock went backwards: %v after %v", now, prev)
		}
		prev = now
	}
}

func TestNowAdvances(t *testing.T) {
	start := Now()
	time.Sleep(20 * time.Millisecond)
	elapsed := Now() - start
	if elapsed < 0.015 || elapsed > 5 {
		t.Errorf("elapsed = %v s after a 20ms sleep", elapsed)
	}
}
