package service

import "time"

// SetNow pins the clock of a Calendar built by New.
func SetNow(c Calendar, now func() time.Time) {
	c.(*serviceImpl).now = now
}
