package routing

import (
	"sort"
	"sync"
	"time"
)

// TurnStats is the tracker's bookkeeping for one turn. Downstream artifacts
// (transcript, translation, synthesized audio) are tagged from it.
type TurnStats struct {
	TurnID    int64
	Kind      TurnKind
	Speaker   SpeakerTag
	StartedAt time.Time
	EndedAt   time.Time

	// TranscribableFrames counts frames forwarded to transcription.
	TranscribableFrames int64
	// MeteringFrames counts frames attributed to the turn that fed metering
	// only. Unattributed metering frames are counted on the tracker instead.
	MeteringFrames int64

	// Empty is set on close when the turn produced zero transcribable
	// frames. Downstream should expect no artifact rather than an error.
	Empty bool
}

// turnTracker keeps per-turn counters while a turn is open and releases them
// once the turn's artifacts are flushed. Counter reads may come from other
// goroutines (diagnostics), so access is mutex-guarded even though all
// writes happen on the controller worker.
type turnTracker struct {
	mu   sync.RWMutex
	open map[int64]*TurnStats

	// Frames that never belonged to a turn, counted separately so turn
	// frame counts stay exact.
	orphanFrames   int64
	meteringFrames int64
}

func newTurnTracker() *turnTracker {
	return &turnTracker{open: map[int64]*TurnStats{}}
}

func (t *turnTracker) onTurnOpened(turn *Turn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.open[turn.ID] = &TurnStats{
		TurnID:    turn.ID,
		Kind:      turn.Kind,
		Speaker:   turn.Kind.Speaker(),
		StartedAt: turn.StartedAt,
	}
}

func (t *turnTracker) onFrameRouted(decision RoutingDecision) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !decision.Attributed() {
		switch decision.Action {
		case ActionForwardToMeteringOnly:
			t.meteringFrames++
		case ActionDrop:
			t.orphanFrames++
		}
		return
	}

	stats, ok := t.open[decision.TurnID]
	if !ok {
		// Attribution must never cross a turn boundary; an attributed frame
		// for an unknown turn means the turn already flushed.
		logger.Debug("frame attributed to unknown turn", "turn_id", decision.TurnID)
		return
	}

	switch decision.Action {
	case ActionForwardToTranscription:
		stats.TranscribableFrames++
	case ActionForwardToMeteringOnly:
		stats.MeteringFrames++
	}
}

// onTurnClosed finalizes and releases the turn's stats. The returned value
// is the closed turn's final bookkeeping; the tracker retains nothing after
// this call, so history retention stays a caller concern.
func (t *turnTracker) onTurnClosed(turn *Turn) TurnStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats, ok := t.open[turn.ID]
	if !ok {
		stats = &TurnStats{TurnID: turn.ID, Kind: turn.Kind, Speaker: turn.Kind.Speaker(), StartedAt: turn.StartedAt}
	}
	delete(t.open, turn.ID)

	stats.EndedAt = turn.EndedAt
	stats.Empty = stats.TranscribableFrames == 0
	return *stats
}

// Snapshot returns a copy of the stats of all open turns, sorted by turn id.
// Safe to call from any goroutine.
func (t *turnTracker) Snapshot() []TurnStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := make([]TurnStats, 0, len(t.open))
	for _, stats := range t.open {
		snapshot = append(snapshot, *stats)
	}
	sort.Slice(snapshot, func(i, j int) bool { return snapshot[i].TurnID < snapshot[j].TurnID })
	return snapshot
}

func (t *turnTracker) OrphanFrames() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.orphanFrames
}

func (t *turnTracker) UnattributedMeteringFrames() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.meteringFrames
}
