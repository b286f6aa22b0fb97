package engine

import (
	"testing"
	"time"
)

func TestAwait_ReturnsResultWithinDeadline(t *testing.T) {
	v, ok := await(1*time.Second, func() int { return 42 }, nil)
	if !ok {
		t.Fatal("expected result within deadline")
	}
	if v != 42 {
		t.Errorf("got %d, want 42", v)
	}
}

func TestAwait_TimesOutAndAbandons(t *testing.T) {
	abandoned := make(chan int, 1)

	v, ok := await(50*time.Millisecond, func() int {
		time.Sleep(200 * time.Millisecond)
		return 7
	}, func(late int) {
		abandoned <- late
	})

	if ok {
		t.Fatal("expected timeout")
	}
	if v != 0 {
		t.Errorf("zero value expected on timeout, got %d", v)
	}

	select {
	case late := <-abandoned:
		if late != 7 {
			t.Errorf("abandoned value = %d, want 7", late)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("abandon callback never received the late result")
	}
}

func TestAwait_TimeoutWithNilAbandon(t *testing.T) {
	_, ok := await(10*time.Millisecond, func() string {
		time.Sleep(100 * time.Millisecond)
		return "late"
	}, nil)
	if ok {
		t.Fatal("expected timeout")
	}
}
