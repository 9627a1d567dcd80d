// Package panel holds the panel's UI state and the actions that mutate it.
package panel

import (
	"strings"
	"sync"
	"time"

	"dockpanel/internal/inventory"
)

// Form holds the free-text inputs of the run and compose forms
type Form struct {
	Image       string `json:"image" yaml:"image"`
	Ports       string `json:"ports" yaml:"ports"`
	EnvVars     string `json:"env_vars" yaml:"env_vars"`
	ComposeYAML string `json:"compose_yaml" yaml:"compose_yaml"`
}

// Snapshot is a point-in-time copy of the panel state
type Snapshot struct {
	Running   []inventory.ContainerRecord `json:"running" yaml:"running"`
	Stopped   []inventory.ContainerRecord `json:"stopped" yaml:"stopped"`
	Unused    []inventory.ImageRecord     `json:"unused" yaml:"unused"`
	Form      Form                        `json:"form" yaml:"form"`
	Console   string                      `json:"console" yaml:"console"`
	UpdatedAt time.Time                   `json:"updated_at" yaml:"updated_at"`
}

// State is the mutable panel state shared by the HTTP handlers and the fetch loop
type State struct {
	mu        sync.RWMutex
	running   []inventory.ContainerRecord
	stopped   []inventory.ContainerRecord
	unused    []inventory.ImageRecord
	form      Form
	console   strings.Builder
	updatedAt time.Time

	subMu  sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

// NewState creates an empty state
func NewState() *State {
	return &State{
		running: []inventory.ContainerRecord{},
		stopped: []inventory.ContainerRecord{},
		unused:  []inventory.ImageRecord{},
		subs:    make(map[int]chan Snapshot),
	}
}

// Snapshot returns a copy of the current state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Running:   append([]inventory.ContainerRecord{}, s.running...),
		Stopped:   append([]inventory.ContainerRecord{}, s.stopped...),
		Unused:    append([]inventory.ImageRecord{}, s.unused...),
		Form:      s.form,
		Console:   s.console.String(),
		UpdatedAt: s.updatedAt,
	}
}

// SetContainers replaces both container lists with a partition of records
func (s *State) SetContainers(records []inventory.ContainerRecord) {
	running, stopped := inventory.Partition(records)
	s.mutate(func() {
		s.running = running
		s.stopped = stopped
	})
}

// SetImages replaces the unused image list
func (s *State) SetImages(records []inventory.ImageRecord) {
	s.mutate(func() {
		s.unused = append([]inventory.ImageRecord{}, records...)
	})
}

// SetForm replaces the form fields
func (s *State) SetForm(form Form) {
	s.mutate(func() {
		s.form = form
	})
}

// UpdateForm applies fn to the current form fields
func (s *State) UpdateForm(fn func(*Form)) {
	s.mutate(func() {
		fn(&s.form)
	})
}

// Append adds a line to the console buffer. Every entry is prefixed with a newline.
func (s *State) Append(text string) {
	s.mutate(func() {
		s.console.WriteString("\n")
		s.console.WriteString(text)
	})
}

// Console returns the console buffer
func (s *State) Console() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.console.String()
}

// Subscribe returns a channel that receives the latest snapshot after every
// mutation. Slow subscribers only see the newest snapshot.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

func (s *State) mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.updatedAt = time.Now()
	// publish under mu so subscribers observe mutations in order
	s.publish(s.snapshotLocked())
}

func (s *State) publish(snap Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			// drop the stale snapshot in favour of the new one
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
}
