package acquire

import (
	"sync"

	"github.com/tracklight/replay/pkg/core"
)

// WindowState tracks one entity-window fetch through its lifecycle.
type WindowState int

const (
	StatePending WindowState = iota
	StateRetrying
	StateSucceeded
	StateAbandoned
)

func (s WindowState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRetrying:
		return "retrying"
	case StateSucceeded:
		return "succeeded"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Task identifies one window fetch for one entity. Index is the window's
// position in the session plan.
type Task struct {
	Entity core.EntityID
	Index  int
	Window core.Window
}

type taskKey struct {
	entity core.EntityID
	index  int
}

// TaskStatus is the recorded state of one task. Attempts counts requests
// issued so far, including the one that settled the task.
type TaskStatus struct {
	State    WindowState
	Attempts int
}

// Progress records the state of every fetch task in a run. Workers for
// different entities update it concurrently; latency here is on the fetch
// path, so it stays a plain locked map.
type Progress struct {
	m      sync.Mutex
	states map[taskKey]TaskStatus
}

func NewProgress() *Progress {
	return &Progress{
		states: make(map[taskKey]TaskStatus),
	}
}

// Reset clears the table for a fresh run.
func (p *Progress) Reset() {
	p.m.Lock()
	defer p.m.Unlock()
	p.states = make(map[taskKey]TaskStatus)
}

// Pending registers a task before its first request.
func (p *Progress) Pending(t Task) {
	p.m.Lock()
	defer p.m.Unlock()
	p.states[taskKey{t.Entity, t.Index}] = TaskStatus{State: StatePending}
}

// Retrying marks a task waiting out a backoff delay after attempts
// rate-limited requests.
func (p *Progress) Retrying(t Task, attempts int) {
	p.m.Lock()
	defer p.m.Unlock()
	p.states[taskKey{t.Entity, t.Index}] = TaskStatus{State: StateRetrying, Attempts: attempts}
}

// Succeeded marks a task settled by a successful request.
func (p *Progress) Succeeded(t Task, attempts int) {
	p.m.Lock()
	defer p.m.Unlock()
	p.states[taskKey{t.Entity, t.Index}] = TaskStatus{State: StateSucceeded, Attempts: attempts}
}

// Abandoned marks a task given up on, either out of attempts or on a
// permanent failure.
func (p *Progress) Abandoned(t Task, attempts int) {
	p.m.Lock()
	defer p.m.Unlock()
	p.states[taskKey{t.Entity, t.Index}] = TaskStatus{State: StateAbandoned, Attempts: attempts}
}

// Status returns the recorded state of one task.
func (p *Progress) Status(t Task) (TaskStatus, bool) {
	p.m.Lock()
	defer p.m.Unlock()
	st, ok := p.states[taskKey{t.Entity, t.Index}]
	return st, ok
}

// Counts tallies registered tasks by state.
func (p *Progress) Counts() map[WindowState]int {
	p.m.Lock()
	defer p.m.Unlock()
	counts := make(map[WindowState]int)
	for _, st := range p.states {
		counts[st.State]++
	}
	return counts
}
