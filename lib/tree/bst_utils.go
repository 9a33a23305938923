package tree

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/benz9527/bstviz/lib/infra"
)

func isNilNode[K infra.OrderedKey](node BSTNode[K]) bool {
	return node == nil || !node.HasKey()
}

// bst rule validation utilities.

// Inorder traversal to validate the strict order and the element count.
func OrderViolationValidate[K infra.OrderedKey](tree BST[K]) error {
	cmp := infra.AscCompare[K]
	if t, ok := tree.(*bstTree[K]); ok && t.cmp != nil {
		cmp = t.cmp
	}

	keys := Inorder[K](tree.Root())
	if int64(len(keys)) != tree.Len() {
		return errors.Newf("[bst] count violation, len %d but %d reachable keys", tree.Len(), len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if cmp(keys[i-1], keys[i]) >= 0 {
			return errors.Newf("[bst] order violation at %v, %v", keys[i-1], keys[i])
		}
	}
	return nil
}

// BFS output must never contain a child before its parent.
func LevelOrderParentValidate[K infra.OrderedKey](tree BST[K]) error {
	keys := tree.LevelOrder()
	pos := make(map[K]int, len(keys))
	for i, key := range keys {
		pos[key] = i
	}

	var walk func(node BSTNode[K]) error
	walk = func(node BSTNode[K]) error {
		if isNilNode[K](node) {
			return nil
		}
		for _, child := range []BSTNode[K]{node.Left(), node.Right()} {
			if isNilNode[K](child) {
				continue
			}
			if pos[child.Key()] <= pos[node.Key()] {
				return errors.Newf("[bst] level order yields child %v before parent %v", child.Key(), node.Key())
			}
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(tree.Root())
}

/*
DebugString dumps the tree in preorder, one node per line, indented by depth
and prefixed by the direction from its parent.

	- 5
	  L 3
	    L 1
	    R 4
	  R 8
*/
func DebugString[K infra.OrderedKey](tree BST[K]) string {
	builder := &strings.Builder{}
	var dump func(node BSTNode[K], depth int, dir Direction)
	dump = func(node BSTNode[K], depth int, dir Direction) {
		if isNilNode[K](node) {
			return
		}
		_, _ = fmt.Fprintf(builder, "%s%s %v\n", strings.Repeat("  ", depth), dir, node.Key())
		dump(node.Left(), depth+1, Left)
		dump(node.Right(), depth+1, Right)
	}
	dump(tree.Root(), 0, Root)
	if builder.Len() == 0 {
		return "<empty>\n"
	}
	return builder.String()
}

// EventsString formats visit events one per line as "color key path".
func EventsString[K infra.OrderedKey](events []VisitEvent[K]) string {
	builder := &strings.Builder{}
	for _, ev := range events {
		_, _ = fmt.Fprintf(builder, "%s %v %s\n", ev.Color, ev.Key, ev.PathString())
	}
	if builder.Len() == 0 {
		return "<none>\n"
	}
	return builder.String()
}
