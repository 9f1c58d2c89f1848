// Package lex implements the lexical validator predicates of spec.md §4.1:
// one regular-grammar predicate per declared operand kind.
package lex

import "regexp"

// identPattern matches the alphabet allowed in identifiers: Unicode letters,
// digits (never first), and the punctuation IPPcode21 carves out for
// symbols. The first character may be a letter or one of the special
// characters, but never a digit.
const identPattern = `[\pL_\-$&%*!?][\pL\p{Nd}_\-$&%*!?]*`

var (
	identRe    = regexp.MustCompile(`^` + identPattern + `$`)
	variableRe = regexp.MustCompile(`^(GF|LF|TF)@(` + identPattern + `)$`)
	typeRe     = regexp.MustCompile(`^(int|string|bool)$`)
	intRe      = regexp.MustCompile(`^-?[0-9]+$`)
	boolRe     = regexp.MustCompile(`^(true|false)$`)
	nilRe      = regexp.MustCompile(`^nil$`)

	// A string operand is any run of characters excluding whitespace, '#'
	// and backslash, except that a backslash introduces exactly three
	// decimal digits.
	stringRe = regexp.MustCompile(`^([^\s#\\]|\\[0-9]{3})*$`)
)

// Identifier reports whether s is a valid bare identifier.
func Identifier(s string) bool { return identRe.MatchString(s) }

// Variable reports whether s is a valid `FRAME@name` operand.
func Variable(s string) bool { return variableRe.MatchString(s) }

// SplitVariable decomposes an already-validated variable operand into its
// frame tag text and bare name.
func SplitVariable(s string) (frame, name string) {
	m := variableRe.FindStringSubmatch(s)
	if m == nil {
		return "", ""
	}

	return m[1], m[2]
}

// Label reports whether s is a valid label operand (a bare identifier).
func Label(s string) bool { return Identifier(s) }

// Type reports whether s is one of the type keywords int|string|bool.
func Type(s string) bool { return typeRe.MatchString(s) }

// Int reports whether s is a valid signed-decimal int operand.
func Int(s string) bool { return intRe.MatchString(s) }

// Bool reports whether s is exactly "true" or "false".
func Bool(s string) bool { return boolRe.MatchString(s) }

// Nil reports whether s is exactly "nil".
func Nil(s string) bool { return nilRe.MatchString(s) }

// String reports whether s is a valid string operand: any text excluding
// whitespace, '#' and backslash, save for \DDD escapes. The empty string is
// valid.
func String(s string) bool { return stringRe.MatchString(s) }
