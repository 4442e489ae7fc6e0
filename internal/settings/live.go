package settings

import (
	"github.com/ib-77/validated/pkg/reactive"
	"github.com/ib-77/validated/pkg/validated"
	"github.com/ib-77/validated/pkg/validated/vreactive"
)

// snapshot is one generation of validated settings. The fields and the
// result always come from the same Raw.
type snapshot struct {
	fields Fields
	result validated.Validated[Settings]
}

func newSnapshot(raw Raw) snapshot {
	fields := Validate(raw)
	return snapshot{fields: fields, result: fields.Settings()}
}

func (s snapshot) report() Report {
	return newReport(s.fields, s.result)
}

// Live revalidates settings every time a new Raw value is published.
type Live struct {
	raw      *reactive.Var[Raw]
	snap     *reactive.Bound[snapshot]
	settings *vreactive.Binding[Settings]
}

func NewLive(initial Raw, opts ...reactive.Option) *Live {
	raw := reactive.NewVar(initial)
	snap := reactive.Map(raw, newSnapshot)
	return &Live{
		raw:  raw,
		snap: snap,
		settings: vreactive.Compose(reactive.Dependencies(snap), func(b *validated.Body[Settings]) Settings {
			return b.Terminate(snap.Now().result)
		}, opts...),
	}
}

// Update publishes raw; watchers run before Update returns.
func (l *Live) Update(raw Raw) {
	l.raw.Set(raw)
}

func (l *Live) Settings() vreactive.ReactiveValidated[Settings] {
	return l.settings
}

// Report describes the current settings.
func (l *Live) Report() Report {
	return l.snap.Now().report()
}

// OnChange calls fn with the report of every newly validated value.
func (l *Live) OnChange(fn func(Report)) reactive.Subscription {
	return l.snap.Watch(func(_, next snapshot) { fn(next.report()) })
}

func (l *Live) Close() {
	l.settings.Close()
	l.snap.Close()
}
