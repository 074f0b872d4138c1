// ==============================================================================================
// FILE: voice/repeat_tracker.go
// ==============================================================================================
// PACKAGE: voice
// PURPOSE: spec.md §6.2/§7's repeat-count escalation: the same error/anomaly
//          message seen again in a session gets progressively more detail —
//          terse the first time, a hint the second, full verbosity from the
//          third occurrence on.
// ==============================================================================================

package voice

import "fmt"

// escalation is how much detail an event's Nth occurrence gets.
type escalation int

const (
	terse escalation = iota
	hint
	verbose
)

func (e escalation) render(event, payload string) string {
	switch e {
	case terse:
		return fmt.Sprintf("[%s] %s", event, payload)
	case hint:
		return fmt.Sprintf("[%s] %s (seen before — check the line above for the full message)", event, payload)
	default:
		return fmt.Sprintf("[%s] VERBOSE: %s", event, payload)
	}
}

// RepeatTracker counts occurrences of identical (event, payload) pairs
// within a session and maps the count to an escalation tier.
type RepeatTracker struct {
	counts map[string]int
}

func NewRepeatTracker() *RepeatTracker {
	return &RepeatTracker{counts: make(map[string]int)}
}

// Observe records one occurrence of (event, payload) and returns the
// escalation tier that occurrence should be rendered at.
func (r *RepeatTracker) Observe(event, payload string) escalation {
	key := event + "\x00" + payload
	r.counts[key]++
	switch r.counts[key] {
	case 1:
		return terse
	case 2:
		return hint
	default:
		return verbose
	}
}
