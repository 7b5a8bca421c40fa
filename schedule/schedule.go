// Package schedule merges the independently-timed tracks of a score into one
// globally ordered event stream.
package schedule

import (
	"container/heap"

	"github.com/Peacockli/webfishing-midi/midi"
	"github.com/Peacockli/webfishing-midi/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// eventHeap is a min-heap keyed by (absolute tick, track index). MIDI deltas
// legitimately coincide across tracks, so the track index is part of the key
// to keep dequeue order deterministic.
type eventHeap []model.TimedEvent

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].AbsTick != h[j].AbsTick {
		return h[i].AbsTick < h[j].AbsTick
	}
	return h[i].Track < h[j].Track
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(model.TimedEvent))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

// Queue is a single-pass, time-ascending stream of scheduled events. It is
// consumed by popping and must be rebuilt from the score for every loop
// iteration.
type Queue struct {
	events    eventHeap
	finalTick uint64
}

// Build scans every track of the score, accumulates per-track deltas into
// absolute ticks and pushes the results onto the queue. Meta events (tempo
// changes and friends) are always included regardless of track selection;
// musical events come only from active tracks. An empty selection means all
// tracks are active. A score without metrical timing is rejected here,
// before any pacing decision depends on it.
func Build(s *smf.SMF, activeTracks []int) (*Queue, error) {
	if _, err := midi.TicksPerBeat(s); err != nil {
		return nil, err
	}

	active := make(map[int]bool, len(activeTracks))
	for _, t := range activeTracks {
		active[t] = true
	}
	allActive := len(activeTracks) == 0

	q := &Queue{}
	for trackNum, track := range s.Tracks {
		shouldPlay := allActive || active[trackNum]

		var absTick uint64
		for _, event := range track {
			absTick += uint64(event.Delta)
			if !shouldPlay && !event.Message.IsMeta() {
				continue
			}
			heap.Push(&q.events, model.TimedEvent{
				AbsTick: absTick,
				Track:   trackNum,
				Event:   event,
			})
			if absTick > q.finalTick {
				q.finalTick = absTick
			}
		}
	}

	return q, nil
}

// Pop removes and returns the earliest remaining event. The second return is
// false once the stream is exhausted.
func (q *Queue) Pop() (model.TimedEvent, bool) {
	if q.events.Len() == 0 {
		return model.TimedEvent{}, false
	}
	return heap.Pop(&q.events).(model.TimedEvent), true
}

func (q *Queue) Len() int { return q.events.Len() }

// FinalTick is the largest absolute tick of any queued event, i.e. the
// length of the song in ticks.
func (q *Queue) FinalTick() uint64 { return q.finalTick }
