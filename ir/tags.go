package ir

// Tag returns a copy of n carrying the type identifier id. The registry is
// not consulted, so id need not be resolvable yet. Children are shared with n.
func Tag(id string, n *Node) *Node {
	res := *n
	res.Tag = id
	return &res
}

// Untag returns the tag of n and a copy of n without it. Children are shared
// with n.
func Untag(n *Node) (string, *Node) {
	res := *n
	res.Tag = ""
	return n.Tag, &res
}
