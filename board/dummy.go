package board

import "time"

// This file contains dummy devices, for boards which don't have a particular
// kind of device (or where it could not be configured).

// Dummy speaker that is silent but keeps the timing of a beep.
type noSpeaker struct{}

func (s noSpeaker) Configure() {
}

func (s noSpeaker) Beep(d time.Duration) {
	time.Sleep(d)
}
