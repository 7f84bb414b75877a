// Package bevybrp bridges a running Bevy application's reflection
// registry and the BRP wire protocol. Given only structural schemas it
// computes every legal mutation path into a type, each with a
// wire-correct example and a mutability verdict, and when the target
// rejects a wire value it diagnoses why and attempts a confirmed
// correction.
//
// The subpackages are layered leaf to root: brp (wire client),
// registry (schema store and classification), knowledge (hand-authored
// example overrides), mutation (the recursive path builder), typeguide
// (the unified per-type record), and recovery (the layered
// format-recovery engine). This package wires them together behind a
// small Service facade for the outer tool-dispatch layer.
package bevybrp
