// Package registry holds the activity catalog and enforces roster invariants.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gyaneshwarpardhi/activities/internal/config"
	"github.com/gyaneshwarpardhi/activities/internal/event"
)

// Activity is a snapshot of one catalog entry.
type Activity struct {
	Name            string   `json:"-"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

func (a Activity) clone() Activity {
	out := a
	out.Participants = make([]string, len(a.Participants))
	copy(out.Participants, a.Participants)
	return out
}

// entry owns one activity. mu serialises every read and write of the roster
// so membership checks and the mutation that follows are atomic.
type entry struct {
	mu       sync.Mutex
	activity Activity
}

// Registry maps activity names to activities. The key set is fixed at
// construction; only rosters and descriptive metadata change afterwards.
type Registry struct {
	entries map[string]*entry
	order   []string

	enforceCapacity atomic.Bool

	lmu       sync.RWMutex
	listeners []func(event.RosterEvent)
}

// New builds a Registry from seed activities. Names must be unique and
// non-empty, and seeded rosters must not contain duplicates.
func New(seed []Activity, enforceCapacity bool) (*Registry, error) {
	r := &Registry{
		entries: make(map[string]*entry, len(seed)),
		order:   make([]string, 0, len(seed)),
	}
	for _, a := range seed {
		if a.Name == "" {
			return nil, fmt.Errorf("registry: activity name is required")
		}
		if _, dup := r.entries[a.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate activity %q", a.Name)
		}
		if a.MaxParticipants < 0 {
			return nil, fmt.Errorf("registry: activity %q: max_participants must be >= 0", a.Name)
		}
		seen := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := seen[p]; dup {
				return nil, fmt.Errorf("registry: activity %q: duplicate participant %q", a.Name, p)
			}
			seen[p] = struct{}{}
		}
		r.entries[a.Name] = &entry{activity: a.clone()}
		r.order = append(r.order, a.Name)
	}
	r.enforceCapacity.Store(enforceCapacity)
	return r, nil
}

// Build constructs a Registry from a validated catalog config.
func Build(cfg *config.CatalogConfig) (*Registry, error) {
	return New(seedFromConfig(cfg), cfg.Registry.EnforceCapacity)
}

func seedFromConfig(cfg *config.CatalogConfig) []Activity {
	out := make([]Activity, 0, len(cfg.Activities))
	for _, def := range cfg.Activities {
		out = append(out, Activity{
			Name:            def.Name,
			Description:     def.Description,
			Schedule:        def.Schedule,
			MaxParticipants: def.MaxParticipants,
			Participants:    def.Participants,
		})
	}
	return out
}

// OnChange registers a callback invoked after each successful Enroll or
// Withdraw. Callbacks run on the caller's goroutine with no registry lock held.
func (r *Registry) OnChange(fn func(event.RosterEvent)) {
	r.lmu.Lock()
	defer r.lmu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Registry) emit(ev event.RosterEvent) {
	r.lmu.RLock()
	callbacks := make([]func(event.RosterEvent), len(r.listeners))
	copy(callbacks, r.listeners)
	r.lmu.RUnlock()
	for _, fn := range callbacks {
		fn(ev)
	}
}

// ListActivities returns a deep copy of every activity keyed by name.
func (r *Registry) ListActivities() map[string]Activity {
	out := make(map[string]Activity, len(r.entries))
	for name, e := range r.entries {
		e.mu.Lock()
		out[name] = e.activity.clone()
		e.mu.Unlock()
	}
	return out
}

// Get returns a copy of a single activity.
func (r *Registry) Get(name string) (Activity, error) {
	e, ok := r.entries[name]
	if !ok {
		return Activity{}, &Error{Kind: KindActivityNotFound, Activity: name}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activity.clone(), nil
}

// Names returns activity names in catalog order.
func (r *Registry) Names() []string {
	return slices.Clone(r.order)
}

// Len returns the number of activities.
func (r *Registry) Len() int {
	return len(r.entries)
}

// EnforcesCapacity reports whether Enroll rejects signups at max_participants.
func (r *Registry) EnforcesCapacity() bool {
	return r.enforceCapacity.Load()
}

// Enroll appends participant to the activity's roster.
func (r *Registry) Enroll(activity, participant string) error {
	e, ok := r.entries[activity]
	if !ok {
		return &Error{Kind: KindActivityNotFound, Activity: activity, Participant: participant}
	}
	if strings.TrimSpace(participant) == "" {
		return &Error{Kind: KindInvalidParticipant, Activity: activity, Participant: participant}
	}

	e.mu.Lock()
	if slices.Contains(e.activity.Participants, participant) {
		e.mu.Unlock()
		return &Error{Kind: KindAlreadyEnrolled, Activity: activity, Participant: participant}
	}
	if r.enforceCapacity.Load() && len(e.activity.Participants) >= e.activity.MaxParticipants {
		e.mu.Unlock()
		return &Error{Kind: KindActivityFull, Activity: activity, Participant: participant}
	}
	e.activity.Participants = append(e.activity.Participants, participant)
	size := len(e.activity.Participants)
	e.mu.Unlock()

	r.emit(event.New(event.Enrolled, activity, participant, size))
	return nil
}

// Withdraw removes participant from the activity's roster, keeping the
// remaining participants in signup order.
func (r *Registry) Withdraw(activity, participant string) error {
	e, ok := r.entries[activity]
	if !ok {
		return &Error{Kind: KindActivityNotFound, Activity: activity, Participant: participant}
	}
	if strings.TrimSpace(participant) == "" {
		return &Error{Kind: KindInvalidParticipant, Activity: activity, Participant: participant}
	}

	e.mu.Lock()
	idx := slices.Index(e.activity.Participants, participant)
	if idx < 0 {
		e.mu.Unlock()
		return &Error{Kind: KindNotEnrolled, Activity: activity, Participant: participant}
	}
	e.activity.Participants = slices.Delete(e.activity.Participants, idx, idx+1)
	size := len(e.activity.Participants)
	e.mu.Unlock()

	r.emit(event.New(event.Withdrawn, activity, participant, size))
	return nil
}

// Refresh applies descriptive metadata and the capacity toggle from a
// reloaded catalog. Rosters and the key set are left untouched; the names
// reported by Unmatched are returned as ignored.
func (r *Registry) Refresh(cfg *config.CatalogConfig) (ignored []string) {
	for _, def := range cfg.Activities {
		e, ok := r.entries[def.Name]
		if !ok {
			continue
		}
		e.mu.Lock()
		e.activity.Description = def.Description
		e.activity.Schedule = def.Schedule
		e.activity.MaxParticipants = def.MaxParticipants
		e.mu.Unlock()
	}
	r.enforceCapacity.Store(cfg.Registry.EnforceCapacity)
	return r.Unmatched(cfg)
}

// Unmatched lists activities added to cfg (in file order) followed by
// activities missing from it (in catalog order).
func (r *Registry) Unmatched(cfg *config.CatalogConfig) []string {
	var out []string
	inFile := make(map[string]struct{}, len(cfg.Activities))
	for _, def := range cfg.Activities {
		inFile[def.Name] = struct{}{}
		if _, ok := r.entries[def.Name]; !ok {
			out = append(out, def.Name)
		}
	}
	for _, name := range r.order {
		if _, ok := inFile[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}
