package breakout

import (
	"cmp"
	"slices"
	"time"
)

// TaskID identifies a scheduled task. It doubles as the cancellation token.
type TaskID uint64

type task struct {
	id  TaskID
	due time.Time
	fn  func()
}

// Scheduler is the deferred-action list of one run. Tasks fire in
// (due, id) order when RunDue is called with a time at or after their due
// time. It is not safe for concurrent use; the run owns it.
type Scheduler struct {
	tasks []task
	next  TaskID
}

func compareTasks(a, b task) int {
	if c := a.due.Compare(b.due); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// After schedules fn to run at due and returns its token.
func (s *Scheduler) After(due time.Time, fn func()) TaskID {
	s.next++
	t := task{id: s.next, due: due, fn: fn}
	i, _ := slices.BinarySearchFunc(s.tasks, t, compareTasks)
	s.tasks = slices.Insert(s.tasks, i, t)
	return t.id
}

// Cancel removes a pending task. It reports false if the task already ran,
// was cancelled, or never existed.
func (s *Scheduler) Cancel(id TaskID) bool {
	i := slices.IndexFunc(s.tasks, func(t task) bool { return t.id == id })
	if i < 0 {
		return false
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return true
}

// Pending reports whether the task is still waiting to run.
func (s *Scheduler) Pending(id TaskID) bool {
	return slices.ContainsFunc(s.tasks, func(t task) bool { return t.id == id })
}

// RunDue runs every task due at or before now and returns how many ran.
// Tasks are popped one at a time, so a task cancelled by an earlier task in
// the same drain never runs.
func (s *Scheduler) RunDue(now time.Time) int {
	ran := 0
	for len(s.tasks) > 0 && !s.tasks[0].due.After(now) {
		t := s.tasks[0]
		s.tasks = slices.Delete(s.tasks, 0, 1)
		t.fn()
		ran++
	}
	return ran
}

// Clear drops every pending task.
func (s *Scheduler) Clear() {
	s.tasks = nil
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}
