// Package state holds the single scan snapshot shared by every observer.
package state

import (
	"slices"
	"sync"

	"github.com/cybedefend/cdscan/pkg/domain/model"
	"github.com/cybedefend/cdscan/pkg/domain/types"
)

type ListenerID uint64

type listener struct {
	id ListenerID
	fn func()
}

// Store owns the scan snapshot. Mutators apply the change under the state
// lock and then call every listener once, in registration order, after the
// lock is released. Deliveries of concurrent mutations do not interleave.
// Listeners may read the store but must not mutate it.
type Store struct {
	mutex     sync.RWMutex
	isLoading bool
	err       string
	lastState types.ScanState
	branch    types.BranchName
	sast      []model.Vulnerability
	iac       []model.Vulnerability
	sca       []model.Vulnerability

	listenerMutex sync.Mutex
	listeners     []listener
	lastID        ListenerID

	deliverMutex sync.Mutex
}

func New() *Store {
	return &Store{
		lastState: types.ScanStateUnknown,
	}
}

func (x *Store) IsLoading() bool {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return x.isLoading
}

// Error returns the stored error text. Empty means no error.
func (x *Store) Error() string {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return x.err
}

func (x *Store) TotalVulnerabilities() int {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return len(x.sast) + len(x.iac) + len(x.sca)
}

func (x *Store) LastScanState() types.ScanState {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return x.lastState
}

func (x *Store) CurrentBranch() types.BranchName {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return x.branch
}

func (x *Store) SAST() []model.Vulnerability {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return cloneList(x.sast)
}

func (x *Store) IaC() []model.Vulnerability {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return cloneList(x.iac)
}

func (x *Store) SCA() []model.Vulnerability {
	x.mutex.RLock()
	defer x.mutex.RUnlock()
	return cloneList(x.sca)
}

// Snapshot returns a consistent copy of every field.
func (x *Store) Snapshot() model.Snapshot {
	x.mutex.RLock()
	defer x.mutex.RUnlock()

	return model.Snapshot{
		IsLoading:            x.isLoading,
		Error:                x.err,
		TotalVulnerabilities: len(x.sast) + len(x.iac) + len(x.sca),
		LastScanState:        x.lastState,
		CurrentBranch:        x.branch,
		SAST:                 cloneList(x.sast),
		IaC:                  cloneList(x.iac),
		SCA:                  cloneList(x.sca),
	}
}

// SetLoading changes the loading flag. Setting it to true clears the error.
// Nothing happens when the flag already has the value.
func (x *Store) SetLoading(loading bool) {
	x.mutex.Lock()
	if x.isLoading == loading {
		x.mutex.Unlock()
		return
	}
	x.isLoading = loading
	if loading {
		x.err = ""
	}
	x.mutex.Unlock()

	x.notify()
}

// SetError records a failed run: loading stops and every result list is
// cleared.
func (x *Store) SetError(msg string) {
	x.mutex.Lock()
	x.err = msg
	x.isLoading = false
	x.clearResults()
	x.mutex.Unlock()

	x.notify()
}

// UpdateResults publishes a complete result set at once.
func (x *Store) UpdateResults(results *model.Results) {
	x.mutex.Lock()
	x.sast = cloneList(results.SAST)
	x.iac = cloneList(results.IaC)
	x.sca = cloneList(results.SCA)
	x.lastState = results.ScanState
	x.branch = results.Branch
	x.err = ""
	x.isLoading = false
	x.mutex.Unlock()

	x.notify()
}

// Reset returns the store to its initial state.
func (x *Store) Reset() {
	x.mutex.Lock()
	x.isLoading = false
	x.err = ""
	x.lastState = types.ScanStateUnknown
	x.branch = ""
	x.clearResults()
	x.mutex.Unlock()

	x.notify()
}

func (x *Store) clearResults() {
	x.sast = nil
	x.iac = nil
	x.sca = nil
}

// AddListener registers fn and returns an ID to remove it with.
func (x *Store) AddListener(fn func()) ListenerID {
	x.listenerMutex.Lock()
	defer x.listenerMutex.Unlock()

	x.lastID++
	x.listeners = append(x.listeners, listener{id: x.lastID, fn: fn})
	return x.lastID
}

// RemoveListener unregisters a listener. Unknown IDs are ignored.
func (x *Store) RemoveListener(id ListenerID) {
	x.listenerMutex.Lock()
	defer x.listenerMutex.Unlock()

	x.listeners = slices.DeleteFunc(x.listeners, func(l listener) bool {
		return l.id == id
	})
}

// Subscribe calls fn with a fresh snapshot after every mutation. The
// returned function unsubscribes.
func (x *Store) Subscribe(fn func(model.Snapshot)) func() {
	id := x.AddListener(func() {
		fn(x.Snapshot())
	})
	return func() { x.RemoveListener(id) }
}

func (x *Store) notify() {
	x.deliverMutex.Lock()
	defer x.deliverMutex.Unlock()

	x.listenerMutex.Lock()
	listeners := slices.Clone(x.listeners)
	x.listenerMutex.Unlock()

	for _, l := range listeners {
		l.fn()
	}
}

func cloneList(src []model.Vulnerability) []model.Vulnerability {
	dst := make([]model.Vulnerability, len(src))
	copy(dst, src)
	return dst
}
