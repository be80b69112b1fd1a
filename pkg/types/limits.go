package types

// MaxNestingDepth is the deepest map nesting accepted when decoding. Steam's
// files nest a handful of levels; deeper input is rejected as malformed.
const MaxNestingDepth = 512
