package engine

import (
	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/value"
)

// Registers holds the three frame registers described in spec.md §3: a
// permanent GF, an optional TF, and a stack of LFs whose top is the active
// LF.
type Registers struct {
	GF      *value.Frame
	TF      *value.Frame // nil when absent
	LFStack []*value.Frame
}

// NewRegisters returns the initial register state: an empty GF, no TF, and
// an empty LF stack.
func NewRegisters() *Registers {
	return &Registers{GF: value.NewFrame()}
}

// FrameOf resolves a frame tag to its backing frame. GF is always present;
// TF and LF fail with a Frame-classified error when absent.
func (r *Registers) FrameOf(tag value.FrameTag) (*value.Frame, error) {
	switch tag {
	case value.GF:
		return r.GF, nil
	case value.TF:
		if r.TF == nil {
			return nil, errcode.New(errcode.Frame, "TF is not present")
		}

		return r.TF, nil
	case value.LF:
		if len(r.LFStack) == 0 {
			return nil, errcode.New(errcode.Frame, "no active LF")
		}

		return r.LFStack[len(r.LFStack)-1], nil
	default:
		return nil, errcode.New(errcode.Frame, "unknown frame tag")
	}
}

// CreateFrame replaces TF with a fresh, empty frame, discarding any prior
// contents (spec.md §9 Open Question (b)).
func (r *Registers) CreateFrame() {
	r.TF = value.NewFrame()
}

// PushFrame moves TF onto the LF stack and clears TF. It fails with a
// Frame-classified error if TF is absent.
func (r *Registers) PushFrame() error {
	if r.TF == nil {
		return errcode.New(errcode.Frame, "PUSHFRAME: no temporary frame")
	}

	r.LFStack = append(r.LFStack, r.TF)
	r.TF = nil

	return nil
}

// PopFrame moves the top of the LF stack back into TF. It fails with a
// Frame-classified error if the LF stack is empty.
func (r *Registers) PopFrame() error {
	n := len(r.LFStack)
	if n == 0 {
		return errcode.New(errcode.Frame, "POPFRAME: no local frame")
	}

	r.TF = r.LFStack[n-1]
	r.LFStack = r.LFStack[:n-1]

	return nil
}
