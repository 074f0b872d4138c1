// ==============================================================================================
// FILE: voice/voice.go
// ==============================================================================================
// PACKAGE: voice
// PURPOSE: The external "voice channel" (spec.md §6.2): a message-granularity
//          sink the evaluator emits REPL/scheme/preview/override/absolute/
//          anomaly/error events to. Channel.Emit's (event, payload string)
//          signature is exactly evaluator.MessageSink's — the evaluator
//          package never imports voice, so satisfying that shape here is
//          what lets *HCLogChannel plug in as its Sink with no adapter.
// ==============================================================================================

package voice

import (
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Channel is the minimal surface spec.md §6.2 asks of a voice collaborator:
// receive an event name and its payload, message-granularity only.
type Channel interface {
	Emit(event string, payload string)
}

// HCLogChannel is the production Channel: every event becomes one leveled,
// structured hclog line tagged with a UUID correlation ID (so several
// events from one REPL turn can be grepped together); "error" and
// "anomaly" events are additionally escalated through a RepeatTracker
// before they reach the logger.
type HCLogChannel struct {
	logger  hclog.Logger
	repeats *RepeatTracker
}

// NewHCLogChannel builds a Channel logging at name, writing through
// hclog's default os.Stderr writer at Info level (spec.md never asks for
// a particular level split, so every event is Info — "error" events get
// their escalation from RepeatTracker, not from a different hclog level).
func NewHCLogChannel(name string) *HCLogChannel {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  name,
		Level: hclog.Info,
	})
	return &HCLogChannel{logger: logger, repeats: NewRepeatTracker()}
}

func (c *HCLogChannel) Emit(event string, payload string) {
	id := uuid.New().String()
	if event == "error" || event == "anomaly" {
		level := c.repeats.Observe(event, payload)
		c.logger.Info(level.render(event, payload), "correlation_id", id)
		return
	}
	c.logger.Info(payload, "event", event, "correlation_id", id)
}
