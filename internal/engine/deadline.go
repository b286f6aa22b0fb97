package engine

import "time"

// await runs fn in its own goroutine and waits at most d for the result.
// On timeout the loser is abandoned: its eventual result is handed to
// abandon (may be nil) on a detached goroutine so nothing blocks or leaks.
func await[T any](d time.Duration, fn func() T, abandon func(T)) (T, bool) {
	ch := make(chan T, 1)
	go func() { ch <- fn() }()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case v := <-ch:
		return v, true
	case <-timer.C:
		if abandon != nil {
			go func() { abandon(<-ch) }()
		}
		var zero T
		return zero, false
	}
}
