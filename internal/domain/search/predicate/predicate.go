// Package predicate is a shape-agnostic boolean predicate tree over logical field
// names. Storage adapters render it into their own query language.
package predicate

// Kind tags the variant held by a Node.
type Kind int

// Node kinds.
const (
	// KindNone is the empty predicate; it matches everything.
	KindNone Kind = iota
	KindAnd
	KindOr
	// KindEq matches a scalar field against a single value.
	KindEq
	// KindIn matches a scalar field against any of several values.
	KindIn
	// KindContains is a case-insensitive substring match on a text field.
	KindContains
	// KindOverlaps matches an array field sharing at least one element
	// (case-insensitive) with the given values.
	KindOverlaps
	// KindExists matches when at least one related record satisfies the inner predicate.
	KindExists
)

// Field is a logical field name resolved by the storage adapter.
type Field string

// Node is a single predicate tree node.
type Node struct {
	kind     Kind
	field    Field
	value    any
	values   []string
	children []Node
	relation string
}

// And joins predicates with conjunction. Empty operands are dropped and nested
// conjunctions are flattened; a single operand is returned unwrapped.
func And(nodes ...Node) Node {
	return join(KindAnd, nodes)
}

// Or joins predicates with disjunction. Empty operands are dropped; a
// disjunction with no operands is the empty predicate.
func Or(nodes ...Node) Node {
	return join(KindOr, nodes)
}

func join(kind Kind, nodes []Node) Node {
	children := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		switch {
		case n.IsEmpty():
			continue
		case n.kind == kind:
			children = append(children, n.children...)
		default:
			children = append(children, n)
		}
	}
	switch len(children) {
	case 0:
		return Node{}
	case 1:
		return children[0]
	}
	return Node{kind: kind, children: children}
}

// Eq matches field == value. value is a string, bool or integer.
func Eq(field Field, value any) Node {
	return Node{kind: KindEq, field: field, value: value}
}

// In matches field against any of values. No values yields the empty predicate.
func In(field Field, values ...string) Node {
	if len(values) == 0 {
		return Node{}
	}
	if len(values) == 1 {
		return Eq(field, values[0])
	}
	return Node{kind: KindIn, field: field, values: values}
}

// Contains matches a case-insensitive substring. An empty needle yields the empty predicate.
func Contains(field Field, needle string) Node {
	if needle == "" {
		return Node{}
	}
	return Node{kind: KindContains, field: field, value: needle}
}

// Overlaps matches an array field intersecting values. No values yields the empty predicate.
func Overlaps(field Field, values ...string) Node {
	if len(values) == 0 {
		return Node{}
	}
	return Node{kind: KindOverlaps, field: field, values: values}
}

// Exists matches when a related record of relation satisfies inner.
func Exists(relation string, inner Node) Node {
	return Node{kind: KindExists, relation: relation, children: []Node{inner}}
}

// Kind returns the node variant.
func (n Node) Kind() Kind { return n.kind }

// Field returns the field for leaf nodes.
func (n Node) Field() Field { return n.field }

// Value returns the scalar operand of Eq and Contains nodes.
func (n Node) Value() any { return n.value }

// Values returns the operands of In and Overlaps nodes.
func (n Node) Values() []string { return n.values }

// Children returns the operands of And/Or nodes, or the inner predicate of Exists.
func (n Node) Children() []Node { return n.children }

// Relation returns the related record set of an Exists node.
func (n Node) Relation() string { return n.relation }

// IsEmpty reports whether the node places no constraint.
func (n Node) IsEmpty() bool { return n.kind == KindNone }

// Order is a single sort key.
type Order struct {
	Field Field
	Desc  bool
}

// Query is a compiled, storage-independent read request.
type Query struct {
	Where   Node
	OrderBy []Order
	Limit   int
}
