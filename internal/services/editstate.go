package services

import "fmt"

// Explicit state machines replace the ad hoc "has this been fetched" and
// "is this dirty" booleans around trait-group editing. Illegal transitions
// are errors, not silently ignored flag writes.

type FetchState string

const (
	FetchIdle    FetchState = "idle"
	FetchLoading FetchState = "loading"
	FetchLoaded  FetchState = "loaded"
	FetchFailed  FetchState = "failed"
)

var fetchTransitions = map[FetchState][]FetchState{
	FetchIdle:    {FetchLoading},
	FetchLoading: {FetchLoaded, FetchFailed},
	FetchLoaded:  {FetchLoading},
	FetchFailed:  {FetchLoading},
}

func (s FetchState) Transition(to FetchState) (FetchState, error) {
	for _, allowed := range fetchTransitions[s] {
		if allowed == to {
			return to, nil
		}
	}
	return s, fmt.Errorf("illegal fetch transition %s -> %s", s, to)
}

type BufferState string

const (
	BufferClean   BufferState = "clean"
	BufferDirty   BufferState = "dirty"
	BufferSyncing BufferState = "syncing"
)

var bufferTransitions = map[BufferState][]BufferState{
	BufferClean:   {BufferDirty},
	BufferDirty:   {BufferDirty, BufferSyncing},
	BufferSyncing: {BufferClean, BufferDirty},
}

func (s BufferState) Transition(to BufferState) (BufferState, error) {
	for _, allowed := range bufferTransitions[s] {
		if allowed == to {
			return to, nil
		}
	}
	return s, fmt.Errorf("illegal buffer transition %s -> %s", s, to)
}
