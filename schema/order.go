package schema

import (
	"strconv"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
)

// orderIndexOf derives e's YANG order index — a statement's positional
// rank among its parent's data-node children, defining canonical
// sibling order — from its source location. goyang
// keeps *yang.Entry children in a map (Dir), which carries no iteration
// order, but every Entry retains a reference to the yang.Node it was
// built from, whose Statement().Location() encodes "file:line:col" in the
// original YANG source — declaration order in the source text is exactly
// the YANG order index. Only line and column feed the index; parseLocation
// discards the file segment entirely, so an augmenting statement in a
// different file that happens to share line and column with another
// statement ties with it rather than breaking the tie by file name.
func orderIndexOf(e *yang.Entry) (int, bool) {
	if e == nil || e.Node == nil {
		return 0, false
	}
	stmt := e.Node.Statement()
	if stmt == nil {
		return 0, false
	}
	line, col, ok := parseLocation(stmt.Location())
	if !ok {
		return 0, false
	}
	return line*100000 + col, true
}

// parseLocation parses goyang's "file:line:col" Location() format.
func parseLocation(loc string) (line, col int, ok bool) {
	idx := strings.LastIndexByte(loc, ':')
	if idx < 0 {
		return 0, 0, false
	}
	colStr := loc[idx+1:]
	rest := loc[:idx]
	idx2 := strings.LastIndexByte(rest, ':')
	if idx2 < 0 {
		return 0, 0, false
	}
	lineStr := rest[idx2+1:]
	l, err1 := strconv.Atoi(lineStr)
	c, err2 := strconv.Atoi(colStr)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return l, c, true
}
