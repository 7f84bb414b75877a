package recovery

import (
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    PatternKind
		seqLen  int
		field   string
	}{
		{
			name:    "sequence with length",
			message: "invalid type: map, expected a sequence of 3 values",
			want:    PatternExpectedSequence,
			seqLen:  3,
		},
		{
			name:    "sequence without length",
			message: "expected a sequence",
			want:    PatternExpectedSequence,
		},
		{
			name:    "unknown field",
			message: "unknown field `translations`, expected one of `translation`, `rotation`, `scale`",
			want:    PatternUnknownField,
			field:   "translations",
		},
		{
			name:    "missing field",
			message: "missing field `rotation`",
			want:    PatternMissingField,
			field:   "rotation",
		},
		{
			name:    "unknown variant",
			message: "unknown variant `Visable`, expected one of `Inherited`, `Hidden`, `Visible`",
			want:    PatternUnknownVariant,
			field:   "Visable",
		},
		{
			name:    "variant identifier",
			message: "invalid type: map, expected variant identifier",
			want:    PatternUnknownVariant,
		},
		{
			name:    "invalid type",
			message: "invalid type: map, expected a string",
			want:    PatternExpectedType,
		},
		{
			name:    "access error",
			message: "Error accessing element with `.translation` access",
			want:    PatternAccessError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info, ok := classify(tc.message)
			if !ok {
				t.Fatalf("classify(%q) did not match", tc.message)
			}
			if info.Kind != tc.want {
				t.Fatalf("kind = %v, want %v", info.Kind, tc.want)
			}
			if info.SequenceLen != tc.seqLen {
				t.Fatalf("sequence len = %d, want %d", info.SequenceLen, tc.seqLen)
			}
			if info.Field != tc.field {
				t.Fatalf("field = %q, want %q", info.Field, tc.field)
			}
			if info.Hint == "" {
				t.Fatal("classified pattern carries no hint")
			}
		})
	}
}

func TestClassifyUnknownMessage(t *testing.T) {
	info, ok := classify("the hobgoblins rejected your request")
	if ok {
		t.Fatalf("unexpected classification: %+v", info)
	}
	if info.Kind != PatternUnknown {
		t.Fatalf("kind = %v, want PatternUnknown", info.Kind)
	}
}

func TestExpectedTypeCapture(t *testing.T) {
	info, ok := classify("invalid type: map, expected a sequence of 4 values at line 1")
	if !ok || info.Kind != PatternExpectedSequence {
		t.Fatalf("sequence pattern must win over the generic invalid-type pattern, got %+v", info)
	}

	info, ok = classify("invalid type: integer, expected f32")
	if !ok || info.Expected != "f32" {
		t.Fatalf("expected capture = %q", info.Expected)
	}
	if !strings.Contains(info.Hint, "f32") {
		t.Fatalf("hint %q does not name the expected type", info.Hint)
	}
}
