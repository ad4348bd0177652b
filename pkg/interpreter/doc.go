// Package interpreter implements Sortle's rewrite engine and its stack
// machine evaluator: the program state (a sorted list of named
// expressions), the single-step rewrite rule, and the run loop that drives
// it to termination. It mirrors the shared tree-walking evaluation style
// used across this module's sibling packages, adapted to a state machine
// whose only moving part is a sorted list.
package interpreter
