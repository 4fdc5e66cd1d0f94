package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/xtding233/randomizer/internal/chooser"
	"github.com/xtding233/randomizer/internal/metrics"
	"github.com/xtding233/randomizer/internal/preset"
	"github.com/xtding233/randomizer/internal/render"
	"github.com/xtding233/randomizer/internal/selection"
)

// Config describes one interactive session.
type Config struct {
	// Resolve returns the preset to play. It is called again on Reload.
	Resolve func() (preset.Preset, error)

	Out     io.Writer
	Color   bool
	Chooser *chooser.Chooser
	Clock   selection.Clock
	Metrics *metrics.Metrics
	Logger  logrus.FieldLogger
}

// Session binds a preset to a controller and a terminal. Enter triggers.
type Session struct {
	cfg  Config
	log  logrus.FieldLogger
	term *render.Terminal

	mu     sync.Mutex
	preset preset.Preset
	ctrl   *selection.Controller[string]
	gen    int // bumped for every controller

	finished chan finish
	reload   chan struct{}
}

// finish is a settled round of controller generation gen.
type finish struct {
	gen    int
	round  uint64
	result string
}

func New(cfg Config) (*Session, error) {
	if cfg.Resolve == nil {
		return nil, fmt.Errorf("session: no preset resolver")
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.WithField("process", "session")
	}

	p, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:      cfg,
		log:      cfg.Logger.WithField("preset", p.Name),
		preset:   p,
		finished: make(chan finish, 1),
		reload:   make(chan struct{}, 1),
	}
	s.term = render.NewTerminal(cfg.Out, p, cfg.Color)
	s.term.Header()

	s.gen = 1
	ctrl, err := s.newController(p, s.gen)
	if err != nil {
		return nil, err
	}
	s.ctrl = ctrl
	return s, nil
}

// newController builds a controller whose callbacks only draw while gen is
// the current generation.
func (s *Session) newController(p preset.Preset, gen int) (*selection.Controller[string], error) {
	h := s.term.Handlers()
	draw := h.OnFinish
	h.OnFinish = func(snap selection.Snapshot[string]) {
		draw(snap)
		s.notifyFinished(finish{gen: gen, round: snap.Round, result: snap.Result})
	}

	return selection.New(p.Choices, selection.Options[string]{
		Delay:    p.DelayDuration(),
		Auto:     p.AutoStart(),
		Chooser:  s.cfg.Chooser,
		Clock:    s.cfg.Clock,
		Handlers: s.gated(gen, h),
		Name:     p.Name,
		Logger:   s.log,
		Metrics:  s.cfg.Metrics,
	})
}

// gated wraps every slot of h so it runs under s.mu and only for gen.
func (s *Session) gated(gen int, h selection.Handlers[string]) selection.Handlers[string] {
	wrap := func(fn func(selection.Snapshot[string])) func(selection.Snapshot[string]) {
		if fn == nil {
			return nil
		}
		return func(snap selection.Snapshot[string]) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.gen != gen {
				return
			}
			fn(snap)
		}
	}
	return selection.Handlers[string]{
		OnInit:   wrap(h.OnInit),
		OnDelay:  wrap(h.OnDelay),
		OnFinish: wrap(h.OnFinish),
	}
}

// notifyFinished keeps only the latest result in the buffer.
func (s *Session) notifyFinished(f finish) {
	for {
		select {
		case s.finished <- f:
			return
		default:
			select {
			case <-s.finished:
			default:
			}
		}
	}
}

// wait blocks until the round of the current controller has settled.
func (s *Session) wait(ctx context.Context, round uint64) (string, error) {
	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()
	for {
		select {
		case f := <-s.finished:
			if f.gen == gen && f.round >= round {
				return f.result, nil
			}
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Preset returns the preset currently played.
func (s *Session) Preset() preset.Preset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preset
}

// Snapshot returns the controller state.
func (s *Session) Snapshot() selection.Snapshot[string] {
	return s.controller().Snapshot()
}

func (s *Session) controller() *selection.Controller[string] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl
}

// Trigger starts a new round.
func (s *Session) Trigger() { s.controller().Trigger() }

// Reload asks Run to resolve the preset again. Safe to call from any goroutine.
func (s *Session) Reload() {
	select {
	case s.reload <- struct{}{}:
	default:
	}
}

// Once triggers a round and waits for its result.
func (s *Session) Once(ctx context.Context) (string, error) {
	ctrl := s.controller()
	ctrl.Trigger()
	return s.wait(ctx, ctrl.Snapshot().Round)
}

// Run reads commands from in until "q", end of input or ctx is done. An
// empty line triggers. At end of input the last round is waited for.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.reload:
			s.applyReload()
		case line, ok := <-lines:
			if !ok {
				return s.drain(ctx)
			}
			switch line {
			case "":
				s.Trigger()
			case "q", "quit", "exit":
				return nil
			default:
				fmt.Fprintln(s.cfg.Out, "press enter to go again, q to quit")
			}
		}
	}
}

func (s *Session) drain(ctx context.Context) error {
	snap := s.Snapshot()
	if snap.Round == 0 {
		return nil
	}
	// only fails when ctx is done, which ends the session anyway
	_, _ = s.wait(ctx, snap.Round)
	return nil
}

func (s *Session) applyReload() {
	p, err := s.cfg.Resolve()
	if err != nil {
		s.log.WithError(err).Warn("preset reload failed, keeping current preset")
		return
	}

	s.mu.Lock()
	old := s.preset
	gen := s.gen + 1
	if slices.Equal(old.Choices, p.Choices) && old.DelayDuration() == p.DelayDuration() {
		s.preset = p
		s.term.SetPreset(p)
		s.mu.Unlock()
		s.log.Info("preset texts reloaded")
		return
	}
	s.mu.Unlock()

	// callbacks stay silent until the swap below
	ctrl, err := s.newControllerQuiet(p, gen)
	if err != nil {
		s.log.WithError(err).Warn("preset reload failed, keeping current preset")
		return
	}

	s.mu.Lock()
	prev := s.ctrl
	s.gen = gen
	s.preset = p
	s.ctrl = ctrl
	s.term.SetPreset(p)
	s.term.Reset()
	s.term.Draw(ctrl.Snapshot())
	s.mu.Unlock()

	prev.Dispose()
	s.log.WithField("choices", len(p.Choices)).Info("preset reloaded")
}

// newControllerQuiet builds a controller that waits for the next trigger.
func (s *Session) newControllerQuiet(p preset.Preset, gen int) (*selection.Controller[string], error) {
	no := false
	p.Auto = &no
	return s.newController(p, gen)
}

// Close disposes the controller.
func (s *Session) Close() {
	s.controller().Dispose()
}
