// Package recovery diagnoses rejected BRP values and, where possible,
// transforms them into an accepted form. Recovery escalates through
// levels: error-pattern classification, schema-based guidance, live
// format discovery on capable targets, and finally a value transform
// confirmed by a retry.
package recovery

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/natepiano/bevy-brp-sub002/brp"
)

// PatternKind is the closed set of known rejection shapes. Unrecognized
// messages classify as PatternUnknown and recovery proceeds without the
// extra hint.
type PatternKind int

const (
	PatternUnknown PatternKind = iota
	PatternExpectedSequence
	PatternExpectedType
	PatternUnknownField
	PatternMissingField
	PatternUnknownVariant
	PatternAccessError
)

// patternInfo is the classification result for one error message.
type patternInfo struct {
	Kind        PatternKind
	Hint        string
	SequenceLen int    // PatternExpectedSequence
	Field       string // PatternUnknownField / PatternMissingField
	Expected    string // PatternExpectedType
}

var (
	reExpectedSeqN = regexp.MustCompile(`expected a sequence of (\d+)`)
	reExpectedSeq  = regexp.MustCompile(`expected a sequence`)
	reUnknownField = regexp.MustCompile("unknown field `([^`]+)`")
	reMissingField = regexp.MustCompile("missing field `([^`]+)`")
	reUnknownVar   = regexp.MustCompile("unknown variant `([^`]+)`")
	reExpectedVar  = regexp.MustCompile(`expected variant`)
	reInvalidType  = regexp.MustCompile(`invalid type: [^,]+, expected (.+)`)
	reAccessError  = regexp.MustCompile(`(?i)error accessing element`)
)

// classify maps an error message onto the known pattern set.
func classify(message string) (patternInfo, bool) {
	if m := reExpectedSeqN.FindStringSubmatch(message); m != nil {
		n, _ := strconv.Atoi(m[1])
		return patternInfo{
			Kind:        PatternExpectedSequence,
			SequenceLen: n,
			Hint:        fmt.Sprintf("the target expects a sequence of %d values, not an object", n),
		}, true
	}
	if reExpectedSeq.MatchString(message) {
		return patternInfo{
			Kind: PatternExpectedSequence,
			Hint: "the target expects a sequence, not an object",
		}, true
	}
	if m := reUnknownField.FindStringSubmatch(message); m != nil {
		return patternInfo{
			Kind:  PatternUnknownField,
			Field: m[1],
			Hint:  fmt.Sprintf("the target does not recognize the field `%s`", m[1]),
		}, true
	}
	if m := reMissingField.FindStringSubmatch(message); m != nil {
		return patternInfo{
			Kind:  PatternMissingField,
			Field: m[1],
			Hint:  fmt.Sprintf("the target requires the field `%s`", m[1]),
		}, true
	}
	if m := reUnknownVar.FindStringSubmatch(message); m != nil {
		return patternInfo{
			Kind:  PatternUnknownVariant,
			Field: m[1],
			Hint:  fmt.Sprintf("`%s` is not a variant of the target enum", m[1]),
		}, true
	}
	if reExpectedVar.MatchString(message) {
		return patternInfo{
			Kind: PatternUnknownVariant,
			Hint: "the target expects an enum variant",
		}, true
	}
	if m := reInvalidType.FindStringSubmatch(message); m != nil {
		return patternInfo{
			Kind:     PatternExpectedType,
			Expected: m[1],
			Hint:     fmt.Sprintf("the target expects %s", m[1]),
		}, true
	}
	if reAccessError.MatchString(message) {
		return patternInfo{
			Kind: PatternAccessError,
			Hint: "the mutation path does not resolve against the current value",
		}, true
	}
	return patternInfo{}, false
}

// DefaultFormatErrorCodes is the set of error codes treated as
// format-related and therefore worth recovery. The set is empirically
// tuned and probably broader than strictly necessary; it is a tunable
// heuristic, not a protocol guarantee.
var DefaultFormatErrorCodes = []brp.ErrorCode{
	brp.CodeInvalidRequest,
	brp.CodeInvalidParams,
	brp.CodeComponentError,
}
