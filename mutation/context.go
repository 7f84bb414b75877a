package mutation

import "github.com/natepiano/bevy-brp-sub002/knowledge"

// Exposure controls whether a subtree's paths are surfaced to the
// caller. Skip is sticky: once an ancestor sets it, every descendant
// walks in Skip mode and contributes examples only. Map and Set
// containers use this to keep key-dependent paths out of the output.
type Exposure int

const (
	ExposureCreate Exposure = iota
	ExposureSkip
)

// Context is the immutable per-level state of the walk. Every descent
// derives a fresh copy, so sibling branches can never observe each
// other's path or variant chain.
type Context struct {
	path         string
	typeName     string
	variantChain []VariantRef
	depth        int
	exposure     Exposure
	override     *knowledge.Entry
}

// Path returns the accumulated accessor path ("" at the root).
func (c Context) Path() string { return c.path }

// TypeName returns the type being walked at this level.
func (c Context) TypeName() string { return c.typeName }

// Depth returns the recursion depth (0 at the root).
func (c Context) Depth() int { return c.depth }

// Exposure returns the current exposure mode.
func (c Context) Exposure() Exposure { return c.exposure }

// VariantChain returns a copy of the enum variants entered so far.
func (c Context) VariantChain() []VariantRef {
	out := make([]VariantRef, len(c.variantChain))
	copy(out, c.variantChain)
	return out
}

// child derives the context for descending one level via the given
// accessor segment into typeName. Any knowledge override belongs to the
// level that set it and is cleared.
func (c Context) child(segment, typeName string) Context {
	next := c
	next.path = c.path + segment
	next.typeName = typeName
	next.depth = c.depth + 1
	next.override = nil
	return next
}

// withSkip switches the subtree to Skip exposure. There is no inverse;
// Skip is monotonic by design of the exposure rules.
func (c Context) withSkip() Context {
	next := c
	next.exposure = ExposureSkip
	return next
}

// withOverride attaches a knowledge entry resolved by the parent (a
// struct-field or variant-element entry) for this level to apply.
func (c Context) withOverride(e *knowledge.Entry) Context {
	next := c
	next.override = e
	return next
}

// withVariant appends a variant step to the chain. The backing array is
// copied so siblings sharing the parent context are unaffected.
func (c Context) withVariant(ref VariantRef) Context {
	next := c
	chain := make([]VariantRef, len(c.variantChain), len(c.variantChain)+1)
	copy(chain, c.variantChain)
	next.variantChain = append(chain, ref)
	return next
}
