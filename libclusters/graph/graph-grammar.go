package graph

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// EdgeExpr is a graph written as comma (or whitespace) separated edge runs, e.g. "0-1-2, 2-3, 4".
//
// A run "a-b-c" adds edges a-b and b-c.  A run of a single vertex ("4") adds no edges but
// ensures the vertex exists.
type EdgeExpr struct {
	Runs []*EdgeRun `parser:"(@@ ( \",\"? @@ )*)?"`
}

type EdgeRun struct {
	StartVtx int   `parser:"@Int"`
	NextVtx  []int `parser:"( \"-\" @Int )*"`
}

var sEdgeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[-,]`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var sParseEdgeExpr = participle.MustBuild[EdgeExpr](
	participle.Lexer(sEdgeLexer),
	participle.Elide("whitespace"),
)

// ParseEdgeExpr builds a Graph from an EdgeExpr string.
func ParseEdgeExpr(expr string) (*Graph, error) {
	Xexpr, err := sParseEdgeExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrap(ErrBadEdgeExpr, err.Error())
	}

	Nv := 0
	var edges []Edge
	for _, run := range Xexpr.Runs {
		onVtx := run.StartVtx
		Nv = max(Nv, onVtx+1)
		for _, nextVtx := range run.NextVtx {
			Nv = max(Nv, nextVtx+1)
			edges = append(edges, Edge{A: onVtx, B: nextVtx})
			onVtx = nextVtx
		}
	}

	X, err := NewGraph(Nv, edges)
	if err != nil {
		return nil, errors.Wrapf(err, "edge expression %q", expr)
	}
	return X, nil
}
