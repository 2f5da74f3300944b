package events

// Multi fans a notification out to every observer in order.
type Multi []Observer

var _ Observer = Multi(nil)

// Notify forwards ev to each non-nil observer.
func (m Multi) Notify(ev Event) {
	for _, o := range m {
		if o != nil {
			o.Notify(ev)
		}
	}
}
