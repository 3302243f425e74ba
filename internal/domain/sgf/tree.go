package sgf

import "strings"

// Collection — корневой элемент SGF-файла: одно или несколько деревьев.
type Collection struct {
	GameTrees []*GameTree
}

// GameTree представляет одно дерево в SGF (последовательность узлов +
// вариативные линии). Each child is owned outright: no sharing, no cycles.
type GameTree struct {
	Sequence Sequence
	Children []*GameTree
}

// Sequence — основная линия дерева, всегда хотя бы один узел.
type Sequence struct {
	Nodes []Node
}

// Node представляет один узел SGF (набор свойств, таких как B[pd], W[dd]).
type Node struct {
	Properties []Property
}

// Property — свойство с повторяющимися значениями (например, AB[aa][bb]).
// Ident is all-uppercase letters and Values is never empty; "[]" parses to
// one empty-string value.
type Property struct {
	Ident  string
	Values []string
}

// String renders the canonical form: no whitespace between structural
// elements, value text verbatim. Parsing the result yields a tree equal to
// this one.
func (c *Collection) String() string {
	var builder strings.Builder
	for _, gt := range c.GameTrees {
		gt.write(&builder)
	}
	return builder.String()
}

func (g *GameTree) String() string {
	var builder strings.Builder
	g.write(&builder)
	return builder.String()
}

func (g *GameTree) write(builder *strings.Builder) {
	builder.WriteString("(")
	g.Sequence.write(builder)
	for _, child := range g.Children {
		child.write(builder)
	}
	builder.WriteString(")")
}

func (s Sequence) write(builder *strings.Builder) {
	for _, node := range s.Nodes {
		node.write(builder)
	}
}

func (n Node) write(builder *strings.Builder) {
	builder.WriteString(";")
	for _, prop := range n.Properties {
		prop.write(builder)
	}
}

func (p Property) write(builder *strings.Builder) {
	builder.WriteString(p.Ident)
	for _, v := range p.Values {
		builder.WriteString("[")
		builder.WriteString(v)
		builder.WriteString("]")
	}
}

// StripKey returns a fresh collection in which every property named key has
// its values replaced by a single empty string. Everything else is copied
// by value; the input is not touched. Commonly used to redact properties
// carrying player names (PB, PW).
func (c *Collection) StripKey(key string) *Collection {
	trees := make([]*GameTree, 0, len(c.GameTrees))
	for _, gt := range c.GameTrees {
		trees = append(trees, gt.StripKey(key))
	}
	return &Collection{GameTrees: trees}
}

func (g *GameTree) StripKey(key string) *GameTree {
	children := make([]*GameTree, 0, len(g.Children))
	for _, child := range g.Children {
		children = append(children, child.StripKey(key))
	}
	return &GameTree{Sequence: g.Sequence.stripKey(key), Children: children}
}

func (s Sequence) stripKey(key string) Sequence {
	nodes := make([]Node, 0, len(s.Nodes))
	for _, node := range s.Nodes {
		nodes = append(nodes, node.stripKey(key))
	}
	return Sequence{Nodes: nodes}
}

func (n Node) stripKey(key string) Node {
	props := make([]Property, 0, len(n.Properties))
	for _, prop := range n.Properties {
		props = append(props, prop.stripKey(key))
	}
	return Node{Properties: props}
}

func (p Property) stripKey(key string) Property {
	if p.Ident == key {
		return Property{Ident: p.Ident, Values: []string{""}}
	}
	values := make([]string, len(p.Values))
	copy(values, p.Values)
	return Property{Ident: p.Ident, Values: values}
}

// Equal compares structure only: idents, values and tree shape. Source
// positions never participate in equality.
func (c *Collection) Equal(o *Collection) bool {
	if c == nil || o == nil {
		return c == o
	}
	if len(c.GameTrees) != len(o.GameTrees) {
		return false
	}
	for i := range c.GameTrees {
		if !c.GameTrees[i].Equal(o.GameTrees[i]) {
			return false
		}
	}
	return true
}

func (g *GameTree) Equal(o *GameTree) bool {
	if g == nil || o == nil {
		return g == o
	}
	if !g.Sequence.Equal(o.Sequence) || len(g.Children) != len(o.Children) {
		return false
	}
	for i := range g.Children {
		if !g.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

func (s Sequence) Equal(o Sequence) bool {
	if len(s.Nodes) != len(o.Nodes) {
		return false
	}
	for i := range s.Nodes {
		if !s.Nodes[i].Equal(o.Nodes[i]) {
			return false
		}
	}
	return true
}

func (n Node) Equal(o Node) bool {
	if len(n.Properties) != len(o.Properties) {
		return false
	}
	for i := range n.Properties {
		if !n.Properties[i].Equal(o.Properties[i]) {
			return false
		}
	}
	return true
}

func (p Property) Equal(o Property) bool {
	if p.Ident != o.Ident || len(p.Values) != len(o.Values) {
		return false
	}
	for i := range p.Values {
		if p.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

// RootProperty returns the first value of the named property in the root
// node of the first game tree. Game information (PB, PW, DT, RE) lives
// there by convention.
func (c *Collection) RootProperty(ident string) (string, bool) {
	if len(c.GameTrees) == 0 || len(c.GameTrees[0].Sequence.Nodes) == 0 {
		return "", false
	}
	for _, prop := range c.GameTrees[0].Sequence.Nodes[0].Properties {
		if prop.Ident == ident {
			return prop.Values[0], true
		}
	}
	return "", false
}

// CountNodes возвращает общее число узлов во всех деревьях.
func (c *Collection) CountNodes() int {
	total := 0
	for _, gt := range c.GameTrees {
		total += gt.countNodes()
	}
	return total
}

func (g *GameTree) countNodes() int {
	total := len(g.Sequence.Nodes)
	for _, child := range g.Children {
		total += child.countNodes()
	}
	return total
}

// CountProperties tallies how many times each property identifier occurs
// across the whole collection.
func (c *Collection) CountProperties() map[string]int {
	counts := make(map[string]int)
	for _, gt := range c.GameTrees {
		gt.countProperties(counts)
	}
	return counts
}

func (g *GameTree) countProperties(counts map[string]int) {
	for _, node := range g.Sequence.Nodes {
		for _, prop := range node.Properties {
			counts[prop.Ident]++
		}
	}
	for _, child := range g.Children {
		child.countProperties(counts)
	}
}
