package network

import (
	"fmt"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/units"
)

var (
	// ErrDuplicateSegment is returned when a segment id is reused outside the
	// one allowed shared-loop repetition.
	ErrDuplicateSegment = fmt.Errorf("network: duplicate segment id: %w", pipenet.ErrInvalidConfiguration)

	// ErrSharedSegment is returned when the second row of a shared segment
	// does not describe the same pipe.
	ErrSharedSegment = fmt.Errorf("network: inconsistent shared segment: %w", pipenet.ErrInvalidConfiguration)

	// ErrWrongMode is returned when an operation does not match the network mode.
	ErrWrongMode = fmt.Errorf("network: operation not valid in this mode: %w", pipenet.ErrInvalidConfiguration)

	// ErrSegmentNotFound is returned for an unknown segment id.
	ErrSegmentNotFound = fmt.Errorf("network: segment not found: %w", pipenet.ErrInvalidConfiguration)

	// ErrPseudoSegment is returned when a pipe-only operation targets a pseudo segment.
	ErrPseudoSegment = fmt.Errorf("network: operation needs a real segment: %w", pipenet.ErrInvalidConfiguration)

	// ErrMissingNodes is returned when supply or exit node ids are empty.
	ErrMissingNodes = fmt.Errorf("network: supply and exit node ids are required: %w", pipenet.ErrInvalidConfiguration)
)

// SegmentError attaches a segment id to an error.
type SegmentError struct {
	Segment string
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("network: segment %q: %v", e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

func segErr(id string, err error) error {
	if err == nil {
		return nil
	}
	return &SegmentError{Segment: id, Err: err}
}

// Mode selects how a network is built and solved.
type Mode int

const (
	// Analysis: fixed diameters, flow found by the Hardy-Cross solver.
	Analysis Mode = iota
	// Design: fixed flows, diameters or losses solved per segment.
	Design
)

func (m Mode) String() string {
	switch m {
	case Analysis:
		return "analysis"
	case Design:
		return "design"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Kind tags the segment variant.
type Kind int

const (
	KindPipe Kind = iota
	KindPump
	KindPseudo
)

func (k Kind) String() string {
	switch k {
	case KindPipe:
		return "pipe"
	case KindPump:
		return "pump"
	case KindPseudo:
		return "pseudo"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// AnalysisSpec is one row of the analysis table. FlowRate is signed with
// respect to the loop's positive sense. FixedDrop marks a pseudo segment;
// otherwise Pump marks a pump segment.
type AnalysisSpec struct {
	Loop            string
	ID              string
	Start, End      string
	NominalDiameter units.Length
	Length          units.Length
	SumZeta         float64
	Pump            *hydraulics.PumpCurve
	FixedDrop       *units.Pressure
	FlowRate        units.FlowRate
}

// DesignSpec is one row of the design table. A nil FlowRate marks a pseudo
// segment; otherwise exactly one of NominalDiameter and FrictionLoss is set.
type DesignSpec struct {
	ID              string
	Start           string
	StartElevation  units.Length
	End             string
	EndElevation    units.Length
	Length          units.Length
	NominalDiameter *units.Length
	FlowRate        *units.FlowRate
	FrictionLoss    *units.Pressure
}
