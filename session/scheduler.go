package session

import "time"

// task is one deferred callback
type task struct {
	id   uint64
	due  time.Duration
	name string
	fn   func()
}

// Scheduler runs deferred callbacks in game time
// Time moves only through Advance, so paused or ended sessions never fire stale work
// Not safe for concurrent use; the controller calls it under its own lock
type Scheduler struct {
	now   time.Duration
	seq   uint64
	tasks []task
}

func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After registers fn to run once d of game time has elapsed
func (s *Scheduler) After(d time.Duration, name string, fn func()) uint64 {
	if d < 0 {
		d = 0
	}
	s.seq++
	s.tasks = append(s.tasks, task{id: s.seq, due: s.now + d, name: name, fn: fn})
	return s.seq
}

// Advance moves the clock forward and runs every due callback in due-time order
// Callbacks may schedule more work; anything already due runs in the same call
func (s *Scheduler) Advance(dt time.Duration) int {
	if dt > 0 {
		s.now += dt
	}
	ran := 0
	for {
		idx := s.nextDue()
		if idx < 0 {
			return ran
		}
		t := s.tasks[idx]
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		t.fn()
		ran++
	}
}

// nextDue returns the earliest due task, ties broken by registration order
func (s *Scheduler) nextDue() int {
	best := -1
	for i, t := range s.tasks {
		if t.due > s.now {
			continue
		}
		if best < 0 || t.due < s.tasks[best].due || (t.due == s.tasks[best].due && t.id < s.tasks[best].id) {
			best = i
		}
	}
	return best
}

// Cancel removes a pending task
func (s *Scheduler) Cancel(id uint64) bool {
	for i, t := range s.tasks {
		if t.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Clear drops every pending task
func (s *Scheduler) Clear() {
	s.tasks = nil
}

func (s *Scheduler) Pending() int { return len(s.tasks) }

func (s *Scheduler) Now() time.Duration { return s.now }

// Has reports whether a task with name is pending
func (s *Scheduler) Has(name string) bool {
	for _, t := range s.tasks {
		if t.name == name {
			return true
		}
	}
	return false
}
