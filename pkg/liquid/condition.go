package liquid

import "strings"

// Operator is a comparison operator inside a condition. OpNone marks a bare
// expression tested for truthiness.
type Operator int

const (
	OpNone Operator = iota
	OpEqual
	OpNotEqual
	OpLessThan
	OpGreaterThan
	OpGreaterOrEqual
	OpLessOrEqual
	OpContains
)

func (op Operator) String() string {
	switch op {
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpLessOrEqual:
		return "<="
	case OpContains:
		return "contains"
	}
	return ""
}

// LogicalOperator joins a condition to the next link in a chain.
type LogicalOperator int

const (
	LogicalNone LogicalOperator = iota
	LogicalAnd
	LogicalOr
)

func (op LogicalOperator) String() string {
	switch op {
	case LogicalAnd:
		return "and"
	case LogicalOr:
		return "or"
	}
	return ""
}

// Condition is one comparison plus an optional chain to further conditions.
// Chains evaluate strictly left to right: each link combines the accumulated
// result with its child's own comparison, so and and or carry no relative
// precedence.
type Condition struct {
	Left      Expression
	Op        Operator
	Right     Expression
	LogicalOp LogicalOperator
	Child     *Condition
}

// ParseCondition parses a condition chain from the markup cursor.
func ParseCondition(p *Parser) (*Condition, error) {
	cond, err := parseComparison(p)
	if err != nil {
		return nil, err
	}
	if p.Look(TokenOperator) {
		if lop := logicalOperator(p.Peek().Value); lop != LogicalNone {
			p.next()
			child, err := ParseCondition(p)
			if err != nil {
				return nil, err
			}
			cond.LogicalOp = lop
			cond.Child = child
		}
	}
	return cond, nil
}

func parseComparison(p *Parser) (*Condition, error) {
	left, err := ParseExpression(p)
	if err != nil {
		return nil, err
	}
	cond := &Condition{Left: left}
	if p.Look(TokenOperator) {
		if op := comparisonOperator(p.Peek().Value); op != OpNone {
			p.next()
			right, err := ParseExpression(p)
			if err != nil {
				return nil, err
			}
			cond.Op = op
			cond.Right = right
		}
	}
	return cond, nil
}

func comparisonOperator(s string) Operator {
	switch s {
	case "==":
		return OpEqual
	case "!=":
		return OpNotEqual
	case "<":
		return OpLessThan
	case ">":
		return OpGreaterThan
	case ">=":
		return OpGreaterOrEqual
	case "<=":
		return OpLessOrEqual
	case "contains":
		return OpContains
	}
	return OpNone
}

func logicalOperator(s string) LogicalOperator {
	switch s {
	case "and":
		return LogicalAnd
	case "or":
		return LogicalOr
	}
	return LogicalNone
}

// Evaluate walks the chain, folding each link's comparison into the running
// result in order of appearance.
func (c *Condition) Evaluate(ctx Context) (bool, error) {
	result, err := c.compare(ctx)
	if err != nil {
		return false, err
	}
	for link := c; link.Child != nil; link = link.Child {
		next, err := link.Child.compare(ctx)
		if err != nil {
			return false, err
		}
		switch link.LogicalOp {
		case LogicalAnd:
			result = result && next
		case LogicalOr:
			result = result || next
		}
	}
	return result, nil
}

// compare evaluates this link's own comparison, ignoring the chain.
func (c *Condition) compare(ctx Context) (bool, error) {
	left, err := resolveExpression(c.Left, ctx)
	if err != nil {
		return false, err
	}
	if c.Op == OpNone {
		return left.Truth(), nil
	}
	right, err := resolveExpression(c.Right, ctx)
	if err != nil {
		return false, err
	}
	switch c.Op {
	case OpEqual:
		return Equal(left, right), nil
	case OpNotEqual:
		return !Equal(left, right), nil
	case OpLessThan:
		return toFloat(left) < toFloat(right), nil
	case OpGreaterThan:
		return toFloat(left) > toFloat(right), nil
	case OpGreaterOrEqual:
		return toFloat(left) >= toFloat(right), nil
	case OpLessOrEqual:
		return toFloat(left) <= toFloat(right), nil
	case OpContains:
		return contains(left, right), nil
	}
	return false, nil
}

// contains tests substring membership for strings and element membership for
// arrays. Other left-hand values never contain anything.
func contains(left, right Value) bool {
	switch l := left.(type) {
	case StringValue:
		return strings.Contains(string(l), right.String())
	case ArrayValue:
		for _, elem := range l {
			if Equal(elem, right) {
				return true
			}
		}
	}
	return false
}

func (c *Condition) String() string {
	var sb strings.Builder
	sb.WriteString(c.Left.String())
	if c.Op != OpNone {
		sb.WriteByte(' ')
		sb.WriteString(c.Op.String())
		sb.WriteByte(' ')
		sb.WriteString(c.Right.String())
	}
	if c.Child != nil {
		sb.WriteByte(' ')
		sb.WriteString(c.LogicalOp.String())
		sb.WriteByte(' ')
		sb.WriteString(c.Child.String())
	}
	return sb.String()
}
