// Package houlang provides the tree-sitter grammar for houlang, the
// week-planning DSL served by houls.
//
// The parser sources under src/ are generated from grammar.js and are
// compiled into the package through cgo.
package houlang

// #cgo CFLAGS: -std=c11 -fPIC -I${SRCDIR}/src
// #include "src/parser.c"
import "C"

import "unsafe"

// Node kinds produced by the grammar.
const (
	KindSourceFile = "source_file"
	KindWeek       = "week"
	KindDate       = "date"
	KindDayLine    = "day_line"
	KindDay        = "day"
	KindHour       = "hour"
)

// Language returns the tree-sitter Language for houlang.
func Language() unsafe.Pointer {
	return unsafe.Pointer(C.tree_sitter_houlang())
}
