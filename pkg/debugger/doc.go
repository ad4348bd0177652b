// Package debugger drives a Sortle program one rewrite step at a time,
// exposing the single-step entry point a front-end (a TUI, a web view, a
// test harness) needs without re-implementing the rewrite engine itself.
package debugger
