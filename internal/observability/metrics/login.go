package metrics

import (
	"time"

	obserrors "github.com/itec-institute/portal/internal/observability/errors"
	"github.com/itec-institute/portal/internal/observability/statsd"
)

// Login outcomes used as the "outcome" tag.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFault    = "fault"
)

// LoginMetric captures one credential submission for metric emission.
type LoginMetric struct {
	Outcome  string
	Role     string // only set on success
	Duration time.Duration
	Err      error
}

// EmitLoginAttempt emits the login counter and the lookup timing.
func EmitLoginAttempt(sink statsd.Sink, in LoginMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{"outcome": in.Outcome}
	if in.Role != "" {
		tags["role"] = in.Role
	}
	if in.Err != nil && in.Outcome == OutcomeFault {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("login.attempt", 1, tags)

	if in.Duration > 0 {
		sink.Timing("login.lookup_duration", in.Duration, CloneTags(tags))
	}
}

// EmitSessionSweep reports one reaper pass. Failed passes are counted separately.
func EmitSessionSweep(sink statsd.Sink, removed int, err error) {
	if sink == nil {
		return
	}
	if err != nil {
		sink.Count("session.sweep_error", 1, map[string]string{"error_class": obserrors.Classify(err)})
		return
	}
	sink.Count("session.evicted", int64(removed), nil)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
