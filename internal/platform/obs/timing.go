package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// DayKey carries the current simulation day through contexts so adapter
// timings can be correlated with the day loop.
const DayKey ctxKey = "sim_day"

// WithDay tags a context with the simulation day.
func WithDay(ctx context.Context, day int) context.Context {
	return context.WithValue(ctx, DayKey, day)
}

// Time logs the duration of an operation when the returned func runs.
// Use as: defer obs.Time(ctx, "history.RecordDay")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	day, hasDay := ctx.Value(DayKey).(int)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			if hasDay {
				log.Printf("op=%s day=%d dur=%dms err=%v", name, day, dur.Milliseconds(), *errp)
			} else {
				log.Printf("op=%s dur=%dms err=%v", name, dur.Milliseconds(), *errp)
			}
			return
		}
		if hasDay {
			log.Printf("op=%s day=%d dur=%dms", name, day, dur.Milliseconds())
			return
		}
		log.Printf("op=%s dur=%dms", name, dur.Milliseconds())
	}
}
