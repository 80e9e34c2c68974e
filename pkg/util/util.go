package util

import (
	"time"
)

func PanicIfErr(err error) {
	if err != nil {
		panic(err)
	}
}

func Must[T any](val T, err error) T {
	PanicIfErr(err)
	return val
}

// SetInterval runs f every interval until the returned stop function is
// called.
func SetInterval(f func(start, now time.Time), interval time.Duration) (stop func()) {
	start := time.Now()
	ticker := time.NewTicker(interval)
	stopChan := make(chan struct{}, 1)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case now := <-ticker.C:
				f(start, now)
			case <-stopChan:
				close(stopChan)
				return
			}
		}
	}()

	return func() {
		stopChan <- struct{}{}
	}
}
