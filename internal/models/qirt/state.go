package qirt

import (
	"time"

	"github.com/google/uuid"

	"github.com/jaskrrish/qirt-go/internal/qirt/quantum"
)

// StateSource records how a stored state was produced
type StateSource string

const (
	SourceLabels      StateSource = "labels"
	SourceAmplitudes  StateSource = "amplitudes"
	SourceMeasurement StateSource = "measurement"
)

// Limits applied to API requests
const (
	DefaultTTLMinutes = 60
	MaxTTLMinutes     = 10080 // 7 days
	DefaultShots      = 1024
	MaxShots          = 1_000_000
)

// Complex is the JSON form of a complex number
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// ToComplex converts to complex128
func (c Complex) ToComplex() complex128 {
	return complex(c.Re, c.Im)
}

// FromComplex converts from complex128
func FromComplex(c complex128) Complex {
	return Complex{Re: real(c), Im: imag(c)}
}

// LabelTerm is one ket label of a state creation request. A missing coefficient means 1.
type LabelTerm struct {
	Coefficient *Complex `json:"coefficient,omitempty"`
	Symbols     string   `json:"symbols"`
}

// ToLabel converts to the engine's label type
func (l LabelTerm) ToLabel() quantum.Label {
	if l.Coefficient == nil {
		return quantum.L(l.Symbols)
	}
	return quantum.C(l.Coefficient.ToComplex(), l.Symbols)
}

// StateRecord is a stored state together with its bookkeeping
type StateRecord struct {
	StateID     uuid.UUID      `json:"state_id"`
	NumQubits   int            `json:"num_qubits"`
	Fingerprint string         `json:"fingerprint"`
	Source      StateSource    `json:"source"`
	ParentID    *uuid.UUID     `json:"parent_id,omitempty"`
	Outcome     string         `json:"outcome,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
	State       *quantum.State `json:"-"` // served through terms only
}

// StateCreateRequest creates a state from labels or from a raw amplitude vector
type StateCreateRequest struct {
	Labels     []LabelTerm `json:"labels,omitempty"`
	Amplitudes []Complex   `json:"amplitudes,omitempty"`
	TTLMinutes int         `json:"ttl_minutes,omitempty"`
}

// TermView is one ket of a state in some basis
type TermView struct {
	Symbols     string  `json:"symbols"`
	Coefficient Complex `json:"coefficient"`
	Probability float64 `json:"probability"`
}

// StateResponse represents the response when creating or querying a state
type StateResponse struct {
	State   *StateRecord `json:"state"`
	Basis   string       `json:"basis,omitempty"`
	Entropy float64      `json:"entropy"`
	Terms   []TermView   `json:"terms,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// MeasureRequest measures a subset of qubits. An empty basis means all-Z.
type MeasureRequest struct {
	Qubits []int  `json:"qubits"`
	Basis  string `json:"basis,omitempty"`
}

// OutcomeView is one outcome of a measurement
type OutcomeView struct {
	Index       int        `json:"index"`
	Bits        string     `json:"bits"`
	Ket         string     `json:"ket"`
	Probability float64    `json:"probability"`
	StateID     *uuid.UUID `json:"state_id,omitempty"`
	Terms       []TermView `json:"terms,omitempty"`
}

// MeasureResponse lists every outcome of a measurement
type MeasureResponse struct {
	StateID   uuid.UUID     `json:"state_id"`
	Basis     string        `json:"basis"`
	Measured  []int         `json:"measured"`
	Remaining []int         `json:"remaining"`
	Outcomes  []OutcomeView `json:"outcomes"`
}

// SampleRequest samples repeated measurements
type SampleRequest struct {
	Qubits []int   `json:"qubits"`
	Basis  string  `json:"basis,omitempty"`
	Shots  int     `json:"shots,omitempty"`
	Seed   *uint64 `json:"seed,omitempty"`
}

// SampleResponse reports sampled counts
type SampleResponse struct {
	StateID     uuid.UUID          `json:"state_id"`
	Basis       string             `json:"basis"`
	Shots       int                `json:"shots"`
	Counts      map[string]int     `json:"counts"`
	Frequencies map[string]float64 `json:"frequencies"`
}

// Validate validates a state create request
func (r *StateCreateRequest) Validate() error {
	if (len(r.Labels) == 0) == (len(r.Amplitudes) == 0) {
		return ErrInvalidStateSource
	}

	for _, l := range r.Labels {
		if l.Symbols == "" {
			return ErrEmptyLabel
		}
	}

	// Set default TTL if not specified
	if r.TTLMinutes == 0 {
		r.TTLMinutes = DefaultTTLMinutes
	}

	if r.TTLMinutes < 1 || r.TTLMinutes > MaxTTLMinutes {
		return ErrInvalidTTL
	}

	return nil
}

// Validate validates a measure request
func (r *MeasureRequest) Validate() error {
	return validateQubits(r.Qubits)
}

// Validate validates a sample request
func (r *SampleRequest) Validate() error {
	if err := validateQubits(r.Qubits); err != nil {
		return err
	}

	if r.Shots == 0 {
		r.Shots = DefaultShots
	}

	if r.Shots < 1 || r.Shots > MaxShots {
		return ErrInvalidShots
	}

	return nil
}

func validateQubits(qubits []int) error {
	for _, q := range qubits {
		if q < 0 {
			return ErrInvalidQubits
		}
	}
	return nil
}

// Custom errors
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

var (
	ErrInvalidStateSource = &APIError{"exactly one of labels or amplitudes is required"}
	ErrEmptyLabel         = &APIError{"labels must not be empty"}
	ErrInvalidTTL         = &APIError{"TTL must be between 1 and 10080 minutes"}
	ErrInvalidShots       = &APIError{"shots must be between 1 and 1000000"}
	ErrInvalidQubits      = &APIError{"qubit indices must be non-negative"}
	ErrInvalidStateID     = &APIError{"invalid state ID"}
	ErrStateNotFound      = &APIError{"state not found"}
	ErrStateExpired       = &APIError{"state has expired"}
)
