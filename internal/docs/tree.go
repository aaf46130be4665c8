package docs

import (
	"sort"
	"strings"
)

// TreeNode is a namespace in the navigation tree. A node whose Longname is
// set is itself a documented entity; it may also have children when other
// entities are nested under its name.
type TreeNode struct {
	Segment  string      `json:"segment" yaml:"segment"`
	Prefix   string      `json:"prefix" yaml:"prefix"`
	Longname string      `json:"longname,omitempty" yaml:"longname,omitempty"`
	Children []*TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// BuildTree nests the longnames under root by their dotted segments.
// Names outside root are skipped. It returns nil when root is empty or no
// name falls under it.
func BuildTree(root string, longnames []string) *TreeNode {
	if root == "" {
		return nil
	}
	top := &TreeNode{Segment: root, Prefix: root}
	found := false
	for _, ln := range longnames {
		segs := strings.Split(ln, ".")
		if segs[0] != root {
			continue
		}
		found = true
		node := top
		for _, seg := range segs[1:] {
			node = node.child(seg)
		}
		node.Longname = ln
	}
	if !found {
		return nil
	}
	top.sort()
	return top
}

func (n *TreeNode) child(seg string) *TreeNode {
	for _, c := range n.Children {
		if c.Segment == seg {
			return c
		}
	}
	c := &TreeNode{Segment: seg, Prefix: n.Prefix + "." + seg}
	n.Children = append(n.Children, c)
	return c
}

func (n *TreeNode) sort() {
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Segment < n.Children[j].Segment
	})
	for _, c := range n.Children {
		c.sort()
	}
}

// Walk visits n and its descendants depth-first.
func (n *TreeNode) Walk(fn func(node *TreeNode, depth int)) {
	n.walk(fn, 0)
}

func (n *TreeNode) walk(fn func(*TreeNode, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}
