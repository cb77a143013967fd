package script

import "github.com/signadot/docbuild/ir"

// Record returns the steps that build node: containers are opened and
// closed explicitly and every leaf is a value step. Replaying them yields a
// document equal to node, unless node repeats a key within one object.
func Record(node *ir.Node) []Step {
	var steps []Step
	_ = node.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if !isPost && y != node && y.Parent.IsObject() {
			steps = append(steps, Key(y.Parent.Fields[y.ParentIndex].String))
		}
		switch y.Type {
		case ir.ObjectType:
			if isPost {
				steps = append(steps, EndDict())
			} else {
				steps = append(steps, StartDict())
			}
		case ir.ArrayType:
			if isPost {
				steps = append(steps, EndArray())
			} else {
				steps = append(steps, StartArray())
			}
		default:
			if !isPost {
				steps = append(steps, Value(detach(y)))
			}
		}
		return true, nil
	})
	return steps
}
