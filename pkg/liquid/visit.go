package liquid

import (
	"fmt"
	"strings"
)

// Visitor receives every node during a walk.
type Visitor interface {
	Visit(n Node) error
}

// Walk calls the visitor on the node, then recurses into block bodies.
func Walk(n Node, v Visitor) error {
	if err := v.Visit(n); err != nil {
		return err
	}
	switch t := n.(type) {
	case *ifTag:
		for _, block := range t.blocks {
			if err := walkBody(block.body, v); err != nil {
				return err
			}
		}
	case *captureTag:
		return walkBody(t.body, v)
	case *commentTag:
		return walkBody(t.body, v)
	}
	return nil
}

func walkBody(body *BlockBody, v Visitor) error {
	for _, child := range body.Nodes() {
		if err := Walk(child, v); err != nil {
			return err
		}
	}
	return nil
}

// WalkTemplate walks every top-level node of the template.
func WalkTemplate(t *Template, v Visitor) error {
	return walkBody(t.body, v)
}

// Pretty formats the parse tree one node per line, indented by nesting.
func Pretty(t *Template) string {
	var sb strings.Builder
	for _, n := range t.body.Nodes() {
		ppNode(&sb, n, 0)
	}
	return sb.String()
}

func ppNode(sb *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch t := n.(type) {
	case *TextNode:
		fmt.Fprintf(sb, "%sText %q\n", indent, t.Text)
	case *ObjectNode:
		fmt.Fprintf(sb, "%sObject %s\n", indent, t.Expr)
	case *assignTag:
		fmt.Fprintf(sb, "%sAssign %s = %s\n", indent, t.name, t.expr)
	case *incrementTag:
		fmt.Fprintf(sb, "%sIncrement %s\n", indent, t.name)
	case *decrementTag:
		fmt.Fprintf(sb, "%sDecrement %s\n", indent, t.name)
	case *captureTag:
		fmt.Fprintf(sb, "%sCapture %s\n", indent, t.name)
		ppBody(sb, t.body, depth+1)
	case *commentTag:
		fmt.Fprintf(sb, "%sComment\n", indent)
		ppBody(sb, t.body, depth+1)
	case *ifTag:
		for i, block := range t.blocks {
			switch {
			case i == 0 && t.unless:
				fmt.Fprintf(sb, "%sUnless %s\n", indent, block.cond)
			case i == 0:
				fmt.Fprintf(sb, "%sIf %s\n", indent, block.cond)
			case block.isElse:
				fmt.Fprintf(sb, "%sElse\n", indent)
			default:
				fmt.Fprintf(sb, "%sElsif %s\n", indent, block.cond)
			}
			ppBody(sb, block.body, depth+1)
		}
	default:
		fmt.Fprintf(sb, "%s%T\n", indent, n)
	}
}

func ppBody(sb *strings.Builder, body *BlockBody, depth int) {
	for _, child := range body.Nodes() {
		ppNode(sb, child, depth)
	}
}
