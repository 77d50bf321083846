package entrypoint

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// RenderDOT renders a CallInfo tree as a Graphviz DOT document, one node
// per frame labelled with its storage address and entry-point type, edges
// following InnerCalls. It exists for debugging a failed or unexpectedly
// expensive call tree with `dot -Tpng`, not for anything this package
// consumes itself.
func (c *CallInfo) RenderDOT() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("calltree"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}

	n := 0
	var addNodes func(frame *CallInfo) string
	addNodes = func(frame *CallInfo) string {
		id := fmt.Sprintf("n%d", n)
		n++
		label := fmt.Sprintf("\"%s\\n%s\"", frame.Call.StorageAddress.Hex(), frame.Call.EntryPointType.String())
		attrs := map[string]string{"label": label}
		if frame.Execution.Failed {
			attrs["color"] = "red"
		}
		_ = g.AddNode("calltree", id, attrs)
		for _, inner := range frame.InnerCalls {
			childID := addNodes(inner)
			_ = g.AddEdge(id, childID, true, nil)
		}
		return id
	}
	addNodes(c)

	return g.String(), nil
}
