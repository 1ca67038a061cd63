package trie

// node is one trie level keyed by the reversed path from the TLD-ward end
type node struct {
	label    string
	rule     *Rule
	children map[string]*node
}

func (n *node) getChild(s string) *node {
	return n.children[s]
}

func (n *node) hasChild(s string) bool {
	return n.getChild(s) != nil
}

func (n *node) addChild(s string, child *node) {
	n.children[s] = child
}

func newNode(label string) *node {
	return &node{
		label:    label,
		children: map[string]*node{},
	}
}
