// Package regex implements Sortle's bespoke pattern language used by the
// '?' operator (spec §4.3-§4.5). It is not a standard regex flavor: groups
// do not nest, at most one capturing group is allowed, and the only
// quantifiers are lazy "one-or-more" (!) and lazy "zero-or-one" (@), each
// binding to the single preceding element. The compiled form and the
// recursive-descent grammar below follow the shape of a small backtracking
// engine (see re1-style element lists), adapted to this language's simpler,
// non-alternating grammar.
package regex
