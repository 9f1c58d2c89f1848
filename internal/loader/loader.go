// Package loader consumes a parsed XML program document and produces a
// validated, sorted ir.Program, per spec.md §4.3.
package loader

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/ippcode/ippc21/internal/errcode"
	"github.com/ippcode/ippc21/internal/ir"
	"github.com/ippcode/ippc21/internal/lex"
	"github.com/ippcode/ippc21/internal/value"
)

var programAttrs = map[string]bool{"language": true, "name": true, "description": true}

// Load parses and validates an IPPcode21 source document and returns its
// instructions sorted by order. Malformed XML is classified InvalidFormat
// (31); every structural or lexical violation is classified InvalidStruct
// (32).
func Load(r io.Reader) (*ir.Program, error) {
	var root node

	dec := xml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, errcode.Wrap(errcode.InvalidFormat, fmt.Errorf("parsing source XML: %w", err))
	}

	if root.XMLName.Local != "program" {
		return nil, errcode.New(errcode.InvalidStruct, "root element must be <program>")
	}

	for _, name := range root.attrNames() {
		if !programAttrs[name] {
			return nil, errcode.New(errcode.InvalidStruct, fmt.Sprintf("unexpected <program> attribute %q", name))
		}
	}

	if lang, ok := root.attr("language"); !ok || lang != "IPPcode21" {
		return nil, errcode.New(errcode.InvalidStruct, `<program> requires language="IPPcode21"`)
	}

	instrs := make([]ir.Instruction, 0, len(root.Nodes))

	seenOrder := make(map[int]bool)

	for _, child := range root.Nodes {
		instr, err := loadInstruction(child)
		if err != nil {
			return nil, err
		}

		if seenOrder[instr.Order] {
			return nil, errcode.New(errcode.InvalidStruct, fmt.Sprintf("duplicate instruction order %d", instr.Order))
		}

		seenOrder[instr.Order] = true

		instrs = append(instrs, instr)
	}

	prog, err := ir.Sort(instrs)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidStruct, err)
	}

	return prog, nil
}

func loadInstruction(n node) (ir.Instruction, error) {
	if n.XMLName.Local != "instruction" {
		return ir.Instruction{}, errcode.New(errcode.InvalidStruct,
			fmt.Sprintf("unexpected <program> child <%s>", n.XMLName.Local))
	}

	for _, name := range n.attrNames() {
		if name != "opcode" && name != "order" {
			return ir.Instruction{}, errcode.New(errcode.InvalidStruct,
				fmt.Sprintf("unexpected <instruction> attribute %q", name))
		}
	}

	opcodeText, ok := n.attr("opcode")
	if !ok {
		return ir.Instruction{}, errcode.New(errcode.InvalidStruct, "<instruction> missing opcode attribute")
	}

	orderText, ok := n.attr("order")
	if !ok {
		return ir.Instruction{}, errcode.New(errcode.InvalidStruct, "<instruction> missing order attribute")
	}

	order, err := strconv.Atoi(orderText)
	if err != nil || order <= 0 {
		return ir.Instruction{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid instruction order %q", orderText))
	}

	opcode, ok := ir.LookupOpcode(opcodeText)
	if !ok {
		return ir.Instruction{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("unknown opcode %q", opcodeText))
	}

	sig, _ := ir.Signature(opcode)

	operands, err := loadOperands(n.Nodes, sig)
	if err != nil {
		return ir.Instruction{}, err
	}

	return ir.Instruction{Opcode: opcode, Order: order, Operands: operands}, nil
}

// loadOperands reorders an instruction's <argN> children by tag name (§6:
// "must be reordered by tag name"), checks that they form an unbroken
// arg1..argK run, validates each against its lexical predicate, and matches
// the normalized kinds against sig.
func loadOperands(children []node, sig []ir.AbstractKind) ([]ir.Operand, error) {
	args := make([]node, len(children))
	copy(args, children)

	sort.Slice(args, func(i, j int) bool { return args[i].XMLName.Local < args[j].XMLName.Local })

	for i, a := range args {
		if want := fmt.Sprintf("arg%d", i+1); a.XMLName.Local != want {
			return nil, errcode.New(errcode.InvalidStruct,
				fmt.Sprintf("expected <%s>, found <%s>", want, a.XMLName.Local))
		}
	}

	if len(args) != len(sig) {
		return nil, errcode.New(errcode.InvalidStruct,
			fmt.Sprintf("expected %d operand(s), found %d", len(sig), len(args)))
	}

	operands := make([]ir.Operand, len(args))

	for i, a := range args {
		if len(a.Attrs) != 1 {
			return nil, errcode.New(errcode.InvalidStruct, fmt.Sprintf("<%s> must have exactly one attribute", a.XMLName.Local))
		}

		typeAttr, ok := a.attr("type")
		if !ok {
			return nil, errcode.New(errcode.InvalidStruct, fmt.Sprintf("<%s> missing type attribute", a.XMLName.Local))
		}

		operand, err := loadOperand(typeAttr, a.Content)
		if err != nil {
			return nil, err
		}

		wantSymb := sig[i] == ir.AbstractSymb
		if got := operand.Kind.Normalize(wantSymb); got != sig[i] {
			return nil, errcode.New(errcode.InvalidStruct,
				fmt.Sprintf("operand %d: expected kind %d, got %d", i+1, sig[i], got))
		}

		operands[i] = operand
	}

	return operands, nil
}

func loadOperand(typeAttr, text string) (ir.Operand, error) {
	switch typeAttr {
	case "var":
		if !lex.Variable(text) {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid variable operand %q", text))
		}

		frameText, name := lex.SplitVariable(text)

		frameTag, ok := value.ParseFrameTag(frameText)
		if !ok {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid frame tag %q", frameText))
		}

		return ir.Operand{Kind: ir.KindVar, Text: text, FrameTag: frameTag, Name: name}, nil

	case "label":
		if !lex.Label(text) {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid label operand %q", text))
		}

		return ir.Operand{Kind: ir.KindLabel, Text: text}, nil

	case "type":
		if !lex.Type(text) {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid type operand %q", text))
		}

		return ir.Operand{Kind: ir.KindType, Text: text}, nil

	case "int":
		if !lex.Int(text) {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid int operand %q", text))
		}

		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("int operand %q out of range", text))
		}

		return ir.Operand{Kind: ir.KindInt, Text: text, Literal: value.NewInt(n)}, nil

	case "bool":
		if !lex.Bool(text) {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid bool operand %q", text))
		}

		return ir.Operand{Kind: ir.KindBool, Text: text, Literal: value.NewBool(text == "true")}, nil

	case "nil":
		if !lex.Nil(text) {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid nil operand %q", text))
		}

		return ir.Operand{Kind: ir.KindNil, Text: text, Literal: value.NewNil()}, nil

	case "string":
		if !lex.String(text) {
			return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("invalid string operand %q", text))
		}

		decoded, err := lex.DecodeString(text)
		if err != nil {
			return ir.Operand{}, errcode.Wrap(errcode.StringErr, fmt.Errorf("decoding string operand: %w", err))
		}

		return ir.Operand{Kind: ir.KindString, Text: text, Literal: value.NewString(decoded)}, nil

	default:
		return ir.Operand{}, errcode.New(errcode.InvalidStruct, fmt.Sprintf("unknown operand type %q", typeAttr))
	}
}
