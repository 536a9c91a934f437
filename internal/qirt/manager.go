// Package qirt keeps created states in memory and serves the operations the CLI and
// HTTP API expose on them.
package qirt

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jaskrrish/qirt-go/internal/models/qirt"
	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

// StateManager stores states under generated IDs until their TTL runs out
type StateManager struct {
	states     map[uuid.UUID]*qirt.StateRecord
	mutex      sync.RWMutex
	simulator  *quantum.Simulator
	logger     *log.Logger
	defaultTTL time.Duration
	now        func() time.Time
}

// NewStateManager creates a new state manager. ttl <= 0 selects qirt.DefaultTTLMinutes.
func NewStateManager(simulator *quantum.Simulator, logger *log.Logger, ttl time.Duration) *StateManager {
	if ttl <= 0 {
		ttl = qirt.DefaultTTLMinutes * time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &StateManager{
		states:     make(map[uuid.UUID]*qirt.StateRecord),
		simulator:  simulator,
		logger:     logger,
		defaultTTL: ttl,
		now:        time.Now,
	}
}

// Simulator returns the engine the manager evaluates states with
func (sm *StateManager) Simulator() *quantum.Simulator {
	return sm.simulator
}

// CreateState builds a state from labels or amplitudes and stores it
func (sm *StateManager) CreateState(req *qirt.StateCreateRequest) (*qirt.StateRecord, error) {
	if req.TTLMinutes == 0 {
		req.TTLMinutes = int(sm.defaultTTL / time.Minute)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var (
		st     *quantum.State
		source qirt.StateSource
		err    error
	)
	if len(req.Labels) > 0 {
		labels := make([]quantum.Label, len(req.Labels))
		for i, l := range req.Labels {
			labels[i] = l.ToLabel()
		}
		st, err = sm.simulator.FromLabels(labels...)
		source = qirt.SourceLabels
	} else {
		amps := make([]complex128, len(req.Amplitudes))
		for i, a := range req.Amplitudes {
			amps[i] = a.ToComplex()
		}
		st, err = sm.simulator.NewState(amps)
		source = qirt.SourceAmplitudes
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build state: %w", err)
	}

	now := sm.now()
	record := sm.register(st, source, nil, "", now, now.Add(time.Duration(req.TTLMinutes)*time.Minute))
	return record, nil
}

// register stores st under a fresh ID
func (sm *StateManager) register(st *quantum.State, source qirt.StateSource, parent *uuid.UUID, outcome string, createdAt, expiresAt time.Time) *qirt.StateRecord {
	record := &qirt.StateRecord{
		StateID:     uuid.New(),
		NumQubits:   st.NumQubits(),
		Fingerprint: st.Fingerprint(),
		Source:      source,
		ParentID:    parent,
		Outcome:     outcome,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
		State:       st,
	}

	sm.mutex.Lock()
	sm.states[record.StateID] = record
	sm.mutex.Unlock()

	sm.logger.Debug("state registered", "id", record.StateID, "qubits", record.NumQubits, "source", source)
	return record
}

// GetState retrieves a state by ID
func (sm *StateManager) GetState(stateID uuid.UUID) (*qirt.StateRecord, error) {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	record, exists := sm.states[stateID]
	if !exists {
		return nil, qirt.ErrStateNotFound
	}

	if sm.now().After(record.ExpiresAt) {
		return nil, qirt.ErrStateExpired
	}

	return record, nil
}

// DescribeState expresses a stored state in basis (empty for all-Z, auto entries allowed)
func (sm *StateManager) DescribeState(stateID uuid.UUID, basis string) (*qirt.StateResponse, error) {
	record, err := sm.GetState(stateID)
	if err != nil {
		return nil, err
	}

	a, err := sm.simulator.Assignment(basis, record.NumQubits)
	if err != nil {
		return nil, err
	}
	converted, used, err := sm.simulator.Convert(record.State, a)
	if err != nil {
		return nil, err
	}
	terms, err := quantum.Terms(record.State, used, sm.simulator.Table())
	if err != nil {
		return nil, err
	}

	return &qirt.StateResponse{
		State:   record,
		Basis:   used.String(),
		Entropy: converted.Entropy(),
		Terms:   termViews(terms),
	}, nil
}

func termViews(terms []quantum.Term) []qirt.TermView {
	views := make([]qirt.TermView, len(terms))
	for i, t := range terms {
		views[i] = qirt.TermView{
			Symbols:     t.Symbols,
			Coefficient: qirt.FromComplex(t.Coefficient),
			Probability: t.Probability,
		}
	}
	return views
}

// Measure computes every outcome of measuring the requested qubits. Each possible
// post-measurement state with qubits left is stored and its ID returned; children
// expire with their parent.
func (sm *StateManager) Measure(stateID uuid.UUID, req *qirt.MeasureRequest) (*qirt.MeasureResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := sm.GetState(stateID)
	if err != nil {
		return nil, err
	}

	a, err := sm.simulator.Assignment(req.Basis, record.NumQubits)
	if err != nil {
		return nil, err
	}
	set, err := sm.simulator.Measure(record.State, req.Qubits, a)
	if err != nil {
		return nil, err
	}

	table := sm.simulator.Table()
	remainingBases := set.RemainingBases()
	now := sm.now()

	response := &qirt.MeasureResponse{
		StateID:   stateID,
		Basis:     set.Basis.String(),
		Measured:  set.Measured,
		Remaining: set.Remaining,
		Outcomes:  make([]qirt.OutcomeView, len(set.Outcomes)),
	}
	for j, o := range set.Outcomes {
		view := qirt.OutcomeView{
			Index:       o.Index,
			Bits:        quantum.FormatBits(o.Bits),
			Ket:         set.Ket(table, j),
			Probability: o.Probability,
		}

		if o.Possible() && len(set.Remaining) > 0 {
			parent := stateID
			child := sm.register(o.State, qirt.SourceMeasurement, &parent, view.Bits, now, record.ExpiresAt)
			view.StateID = &child.StateID

			terms, err := quantum.Terms(o.State, remainingBases, table)
			if err != nil {
				return nil, err
			}
			view.Terms = termViews(terms)
		}
		response.Outcomes[j] = view
	}

	sm.logger.Info("state measured", "id", stateID, "qubits", req.Qubits, "basis", response.Basis)
	return response, nil
}

// Sample draws req.Shots measurement outcomes. A request seed makes the result
// reproducible.
func (sm *StateManager) Sample(stateID uuid.UUID, req *qirt.SampleRequest) (*qirt.SampleResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	record, err := sm.GetState(stateID)
	if err != nil {
		return nil, err
	}

	a, err := sm.simulator.Assignment(req.Basis, record.NumQubits)
	if err != nil {
		return nil, err
	}
	resolved, err := sm.simulator.Resolve(record.State, a)
	if err != nil {
		return nil, err
	}

	var src rand.Source
	if req.Seed != nil {
		src = rand.NewPCG(*req.Seed, 0)
	}
	counts, err := quantum.Sample(record.State, req.Qubits, resolved, req.Shots, src)
	if err != nil {
		return nil, err
	}

	return &qirt.SampleResponse{
		StateID:     stateID,
		Basis:       resolved.String(),
		Shots:       req.Shots,
		Counts:      counts,
		Frequencies: counts.Frequencies(),
	}, nil
}

// DeleteState removes a state
func (sm *StateManager) DeleteState(stateID uuid.UUID) error {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	if _, exists := sm.states[stateID]; !exists {
		return qirt.ErrStateNotFound
	}
	delete(sm.states, stateID)

	return nil
}

// CleanupExpiredStates removes expired states
func (sm *StateManager) CleanupExpiredStates() int {
	sm.mutex.Lock()
	defer sm.mutex.Unlock()

	now := sm.now()
	removed := 0

	for id, record := range sm.states {
		if now.After(record.ExpiresAt) {
			delete(sm.states, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of stored states, expired ones included
func (sm *StateManager) Count() int {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()

	return len(sm.states)
}
