package events

import (
	"go.uber.org/zap"
)

var _ Observer = (*LogObserver)(nil)

// LogObserver writes every notification to a zap logger as a structured entry.
type LogObserver struct {
	lggr *zap.Logger
}

// NewLogObserver creates a LogObserver. A nil logger falls back to zap's no-op logger.
func NewLogObserver(lggr *zap.Logger) *LogObserver {
	if lggr == nil {
		lggr = zap.NewNop()
	}

	return &LogObserver{lggr: lggr.Named("timelock.events")}
}

// Notify logs the event.
func (o *LogObserver) Notify(ev Event) {
	o.lggr.Info(ev.Name(), Fields(ev)...)
}

// Fields returns the structured logging fields describing ev.
func Fields(ev Event) []zap.Field {
	switch e := ev.(type) {
	case MinDelayChange:
		return []zap.Field{
			zap.Uint64("oldDelay", uint64(e.OldDelay)),
			zap.Uint64("newDelay", uint64(e.NewDelay)),
		}
	case CallScheduled:
		return []zap.Field{
			zap.Stringer("id", e.ID),
			zap.Uint8("index", e.Index),
			zap.Stringer("target", e.Call.Target),
			zap.Stringer("value", e.Call.ValueOrZero()),
			zap.Int("dataLen", len(e.Call.Data)),
			zap.Stringer("predecessor", e.Predecessor),
			zap.Uint64("delay", uint64(e.Delay)),
		}
	case CallExecuted:
		return []zap.Field{
			zap.Stringer("id", e.ID),
			zap.Uint8("index", e.Index),
			zap.Stringer("target", e.Call.Target),
			zap.Stringer("value", e.Call.ValueOrZero()),
			zap.Int("dataLen", len(e.Call.Data)),
		}
	case Cancelled:
		return []zap.Field{zap.Stringer("id", e.ID)}
	case RoleGranted:
		return []zap.Field{
			zap.Stringer("role", e.Role),
			zap.Stringer("account", e.Account),
			zap.Stringer("sender", e.Sender),
		}
	case RoleRevoked:
		return []zap.Field{
			zap.Stringer("role", e.Role),
			zap.Stringer("account", e.Account),
			zap.Stringer("sender", e.Sender),
		}
	case RoleAdminChanged:
		return []zap.Field{
			zap.Stringer("role", e.Role),
			zap.Stringer("previousAdmin", e.PreviousAdmin),
			zap.Stringer("newAdmin", e.NewAdmin),
		}
	default:
		return []zap.Field{zap.Any("event", ev)}
	}
}
