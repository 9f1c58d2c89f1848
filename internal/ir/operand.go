package ir

import "github.com/ippcode/ippc21/internal/value"

// Kind is an operand's declared shape, as carried by the XML document's
// `type` attribute, before §4.3's normalization step collapses the four
// literal kinds into Symb.
type Kind uint8

const (
	KindVar Kind = iota
	KindLabel
	KindType
	KindInt
	KindString
	KindBool
	KindNil
)

// AbstractKind is an operand kind after normalization: the shape the
// signature table is keyed on.
type AbstractKind uint8

const (
	AbstractVar AbstractKind = iota
	AbstractLabel
	AbstractType
	AbstractSymb
)

// Normalize collapses a literal kind, or a var operand in a symb position,
// to the abstract kind used for signature matching.
func (k Kind) Normalize(wantSymb bool) AbstractKind {
	switch k {
	case KindVar:
		if wantSymb {
			return AbstractSymb
		}

		return AbstractVar
	case KindLabel:
		return AbstractLabel
	case KindType:
		return AbstractType
	default: // KindInt, KindString, KindBool, KindNil
		return AbstractSymb
	}
}

// Operand is a single validated instruction argument: its declared kind,
// its raw text, and — for var operands — the parsed frame tag and name, or
// — for literal operands — the already-decoded Value.
type Operand struct {
	Kind Kind
	Text string

	// Populated by the loader once the operand has been validated.
	FrameTag value.FrameTag // meaningful iff Kind == KindVar
	Name     string         // meaningful iff Kind == KindVar
	Literal  value.Value    // meaningful iff Kind is a literal kind
}

// IsVar reports whether the operand is a variable reference.
func (o Operand) IsVar() bool { return o.Kind == KindVar }
