package modelmanager

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/NeuralTrust/TrustImage/pkg/domain/audit"
	"github.com/NeuralTrust/TrustImage/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

type State string

const (
	StateIdle        State = "idle"
	StateLoading     State = "loading"
	StateReady       State = "ready"
	StateUnavailable State = "unavailable"
)

var states = []State{StateIdle, StateLoading, StateReady, StateUnavailable}

// Factory performs the expensive first-use initialization of one kind.
type Factory func(ctx context.Context, kind audit.Kind) (audit.Classifier, error)

// Status is the lifecycle snapshot of one kind.
type Status struct {
	Kind       audit.Kind `json:"kind"`
	State      State      `json:"state"`
	Classifier string     `json:"classifier,omitempty"`
	Error      string     `json:"error,omitempty"`
	LoadedAt   *time.Time `json:"loaded_at,omitempty"`
}

//go:generate mockery --name=Manager --dir=. --output=./mocks --filename=model_manager_mock.go --case=underscore --with-expecter
type Manager interface {
	// Get returns the classifier for kind, initializing it on first use.
	// A kind whose initialization failed stays unavailable for the life of
	// the process.
	Get(ctx context.Context, kind audit.Kind) (audit.Classifier, error)
	Status() []Status
}

// entry guards one kind. initMu is held for the whole initialization so
// concurrent first callers wait for the same attempt instead of racing; mu
// only protects the fields and is never held across the factory call.
type entry struct {
	initMu     sync.Mutex
	mu         sync.RWMutex
	state      State
	classifier audit.Classifier
	err        error
	loadedAt   time.Time
}

func (e *entry) snapshot() (State, audit.Classifier, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state, e.classifier, e.err
}

func (e *entry) set(state State, classifier audit.Classifier, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = state
	e.classifier = classifier
	e.err = err
	if state == StateReady {
		e.loadedAt = time.Now()
	}
}

type manager struct {
	logger  *logrus.Logger
	factory Factory
	enabled bool
	entries map[audit.Kind]*entry
}

// NewManager prepares an idle entry per kind. With enabled false nothing is
// ever initialized and every kind reports unavailable.
func NewManager(logger *logrus.Logger, factory Factory, enabled bool, kinds ...audit.Kind) Manager {
	if len(kinds) == 0 {
		kinds = audit.Kinds()
	}
	m := &manager{
		logger:  logger,
		factory: factory,
		enabled: enabled,
		entries: make(map[audit.Kind]*entry, len(kinds)),
	}
	for _, kind := range kinds {
		m.entries[kind] = &entry{state: StateIdle}
		setStateGauge(kind, StateIdle)
	}
	return m
}

func (m *manager) Get(ctx context.Context, kind audit.Kind) (audit.Classifier, error) {
	e, ok := m.entries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", audit.ErrUnknownKind, kind)
	}
	if !m.enabled {
		return nil, fmt.Errorf("%s: %w: moderation disabled", kind, audit.ErrClassifierUnavailable)
	}

	if classifier, ok, err := settled(kind, e); ok {
		return classifier, err
	}

	e.initMu.Lock()
	defer e.initMu.Unlock()
	// another caller may have finished while we waited
	if classifier, ok, err := settled(kind, e); ok {
		return classifier, err
	}
	e.set(StateLoading, nil, nil)
	setStateGauge(kind, StateLoading)

	start := time.Now()
	classifier, err := m.initialize(ctx, kind)
	elapsed := time.Since(start)
	if prometheus.Config.EnableLatency {
		prometheus.ClassifierInitLatency.WithLabelValues(string(kind)).Observe(float64(elapsed.Milliseconds()))
	}

	if err != nil {
		e.set(StateUnavailable, nil, err)
		setStateGauge(kind, StateUnavailable)
		m.logger.WithError(err).WithFields(logrus.Fields{
			"kind":     kind,
			"duration": elapsed.String(),
		}).Error("classifier initialization failed, kind disabled until restart")
		return nil, fmt.Errorf("%s: %w: %v", kind, audit.ErrClassifierUnavailable, err)
	}

	e.set(StateReady, classifier, nil)
	setStateGauge(kind, StateReady)
	m.logger.WithFields(logrus.Fields{
		"kind":       kind,
		"classifier": classifier.Name(),
		"duration":   elapsed.String(),
	}).Info("classifier ready")
	return classifier, nil
}

// settled reports the outcome of a finished initialization.
func settled(kind audit.Kind, e *entry) (audit.Classifier, bool, error) {
	state, classifier, err := e.snapshot()
	switch state {
	case StateReady:
		return classifier, true, nil
	case StateUnavailable:
		return nil, true, fmt.Errorf("%s: %w: %v", kind, audit.ErrClassifierUnavailable, err)
	}
	return nil, false, nil
}

// initialize runs the factory detached from the caller's cancellation: the
// result is shared by every later caller, so one impatient caller must not
// poison it.
func (m *manager) initialize(ctx context.Context, kind audit.Kind) (classifier audit.Classifier, err error) {
	defer func() {
		if r := recover(); r != nil {
			classifier = nil
			err = fmt.Errorf("panic during initialization: %v", r)
		}
	}()
	classifier, err = m.factory(context.WithoutCancel(ctx), kind)
	if err == nil && classifier == nil {
		err = fmt.Errorf("factory returned no classifier")
	}
	return classifier, err
}

func (m *manager) Status() []Status {
	out := make([]Status, 0, len(m.entries))
	for kind, e := range m.entries {
		e.mu.RLock()
		s := Status{Kind: kind, State: e.state}
		if !m.enabled {
			s.State = StateUnavailable
			s.Error = "moderation disabled"
		}
		if e.classifier != nil {
			s.Classifier = e.classifier.Name()
			loadedAt := e.loadedAt
			s.LoadedAt = &loadedAt
		}
		if e.err != nil {
			s.Error = e.err.Error()
		}
		e.mu.RUnlock()
		out = append(out, s)
	}
	order := make(map[audit.Kind]int)
	for i, k := range audit.Kinds() {
		order[k] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		oi, iok := order[out[i].Kind]
		oj, jok := order[out[j].Kind]
		if iok != jok {
			return iok
		}
		if iok {
			return oi < oj
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}

func setStateGauge(kind audit.Kind, current State) {
	for _, s := range states {
		v := 0.0
		if s == current {
			v = 1
		}
		prometheus.ClassifierState.WithLabelValues(string(kind), string(s)).Set(v)
	}
}
