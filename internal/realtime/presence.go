package realtime

import "sync"

// Entry is one online member of a cohort as shown in presence lists.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Presence is the in-memory record of who is online per cohort. It is owned
// by whoever constructs it (one per process in production, one per test
// otherwise) and holds no reference to transports or storage.
//
// A user with several open connections still gets a single entry; the entry
// is keyed by user id within the cohort. Buckets are created lazily on first
// join and kept for the life of the process.
type Presence struct {
	mu      sync.Mutex
	cohorts map[string]*presenceBucket
}

type presenceBucket struct {
	// order preserves insertion order for display; index maps user id to
	// its position in order.
	order []Entry
	index map[string]int
}

func NewPresence() *Presence {
	return &Presence{cohorts: make(map[string]*presenceBucket)}
}

// Join records userID as online in the cohort and returns the updated entry
// list. Joining twice overwrites the display name but never duplicates the
// entry.
func (p *Presence) Join(cohortID, userID, name string) []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	b := p.cohorts[cohortID]
	if b == nil {
		b = &presenceBucket{index: make(map[string]int)}
		p.cohorts[cohortID] = b
	}

	if i, ok := b.index[userID]; ok {
		b.order[i].Name = name
	} else {
		b.index[userID] = len(b.order)
		b.order = append(b.order, Entry{ID: userID, Name: name})
	}

	return snapshotLocked(b)
}

// Leave removes userID from the cohort and returns the updated entry list.
// Leaving a cohort or user that was never joined is a no-op.
func (p *Presence) Leave(cohortID, userID string) []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	b := p.cohorts[cohortID]
	if b == nil {
		return []Entry{}
	}

	if i, ok := b.index[userID]; ok {
		b.order = append(b.order[:i], b.order[i+1:]...)
		delete(b.index, userID)
		for j := i; j < len(b.order); j++ {
			b.index[b.order[j].ID] = j
		}
	}

	return snapshotLocked(b)
}

// Snapshot returns the current entry list for a cohort. Unknown cohorts
// yield an empty list, never an error.
func (p *Presence) Snapshot(cohortID string) []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	b := p.cohorts[cohortID]
	if b == nil {
		return []Entry{}
	}
	return snapshotLocked(b)
}

func snapshotLocked(b *presenceBucket) []Entry {
	out := make([]Entry, len(b.order))
	copy(out, b.order)
	return out
}
