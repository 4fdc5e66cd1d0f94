package selection

// Snapshot is the observable state of a Controller.
// HasResult is true if and only if Phase is PhaseFinish.
type Snapshot[T any] struct {
	Phase     Phase
	Result    T
	HasResult bool
	Round     uint64 // incremented by every trigger
}

// Handlers are the per-phase callbacks of a Controller. Any slot may be nil.
type Handlers[T any] struct {
	OnInit   func(Snapshot[T])
	OnDelay  func(Snapshot[T])
	OnFinish func(Snapshot[T])
}

func (h Handlers[T]) table() [phaseCount]func(Snapshot[T]) {
	return [phaseCount]func(Snapshot[T]){
		PhaseInit:   h.OnInit,
		PhaseDelay:  h.OnDelay,
		PhaseFinish: h.OnFinish,
	}
}

// Dispatch calls the slot for s.Phase.
func (h Handlers[T]) Dispatch(s Snapshot[T]) {
	if s.Phase < 0 || int(s.Phase) >= phaseCount {
		return
	}
	if fn := h.table()[s.Phase]; fn != nil {
		fn(s)
	}
}
