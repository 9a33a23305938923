package tree

import (
	"github.com/cockroachdb/errors"

	"github.com/benz9527/bstviz/lib/infra"
)

type bstNode[K infra.OrderedKey] struct {
	left   *bstNode[K]
	right  *bstNode[K]
	key    K
	hasKey bool
}

func (node *bstNode[K]) Key() K {
	return node.key
}

func (node *bstNode[K]) HasKey() bool {
	if node == nil {
		return false
	}
	return node.hasKey
}

func (node *bstNode[K]) Left() BSTNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *bstNode[K]) Right() BSTNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *bstNode[K]) minimum() *bstNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *bstNode[K]) unlink() {
	node.left = nil
	node.right = nil
	node.hasKey = false
}

// sealPath caps the prefix so that an append by the reader reallocates.
// A descent only appends to its path, the prefix is never overwritten.
func sealPath(path []Direction) []Direction {
	if len(path) == 0 {
		return nil
	}
	return path[:len(path):len(path)]
}

type eventRecorder[K infra.OrderedKey] struct {
	events []VisitEvent[K]
}

func (rec *eventRecorder[K]) record(key K, color HighlightColor, path []Direction) {
	rec.events = append(rec.events, VisitEvent[K]{
		Key:   key,
		Color: color,
		Path:  sealPath(path),
	})
}

// The result of a comparator guided descent from the root.
// If hit is nil, parent and dir name the empty slot where the key belongs
// and path is the path of that slot.
type locateResult[K infra.OrderedKey] struct {
	rec    eventRecorder[K]
	parent *bstNode[K]
	hit    *bstNode[K]
	path   []Direction
	dir    Direction
}

type bstTree[K infra.OrderedKey] struct {
	root  *bstNode[K]
	cmp   infra.OrderedKeyComparator[K]
	count int64
}

func (tree *bstTree[K]) Len() int64 {
	return tree.count
}

func (tree *bstTree[K]) Root() BSTNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *bstTree[K]) locate(key K) *locateResult[K] {
	res := &locateResult[K]{
		path: make([]Direction, 0, 8),
		dir:  Root,
	}
	for aux := tree.root; aux != nil; {
		res.rec.record(aux.key, Visiting, res.path)
		cmp := tree.cmp(key, aux.key)
		if /* equal */ cmp == 0 {
			res.hit = aux
			return res
		}
		res.parent = aux
		if /* less */ cmp < 0 {
			res.dir, aux = Left, aux.left
		} else /* greater */ {
			res.dir, aux = Right, aux.right
		}
		res.path = append(res.path, res.dir)
	}
	return res
}

func (tree *bstTree[K]) Search(key K) ([]VisitEvent[K], BSTNode[K]) {
	res := tree.locate(key)
	if res.hit == nil {
		return res.rec.events, nil
	}
	return res.rec.events, res.hit
}

func (tree *bstTree[K]) Insert(key K) ([]VisitEvent[K], error) {
	z := &bstNode[K]{
		key:    key,
		hasKey: true,
	}
	if tree.root == nil {
		tree.root = z
		tree.count++
		return []VisitEvent[K]{
			{Key: key, Color: Found},
		}, nil
	}

	res := tree.locate(key)
	if res.hit != nil {
		return res.rec.events, errors.Wrapf(ErrDuplicateKey, "key %v", key)
	}

	switch res.dir {
	case Left:
		res.parent.left = z
	case Right:
		res.parent.right = z
	default:
		// impossible run to here
		panic( /* debug assertion */ "[bst] insert into a slot without direction")
	}
	tree.count++
	res.rec.record(key, Found, res.path)
	return res.rec.events, nil
}

func (tree *bstTree[K]) Remove(key K) []VisitEvent[K] {
	rec := &eventRecorder[K]{
		events: make([]VisitEvent[K], 0, 8),
	}
	var removed bool
	tree.root, removed = tree.removeRecursively(tree.root, key, make([]Direction, 0, 8), rec)
	if removed {
		tree.count--
	}
	return rec.events
}

/*
d1: Matched node X has no left child, X is replaced by its right child (or nil).

d2: Matched node X has a left child but no right child, X is replaced by it.

d3: Matched node X has both children. Borrow the minimum M of the right
subtree, overwrite X's key with M's key, then remove M's key from the
right subtree. M has no left child, so the nested removal ends in d1.

	  |                    |
	  X                    M
	 / \                  / \
	L   R   promote(M)   L   R
	   /    =========>      /
	  M                   (M.right)
	   \
	   ..
*/
func (tree *bstTree[K]) removeRecursively(
	node *bstNode[K],
	key K,
	path []Direction,
	rec *eventRecorder[K],
) (*bstNode[K], bool) {
	if /* miss */ node == nil {
		return nil, false
	}
	rec.record(node.key, Visiting, path)

	removed := false
	if cmp := tree.cmp(key, node.key); /* less */ cmp < 0 {
		node.left, removed = tree.removeRecursively(node.left, key, append(path, Left), rec)
	} else /* greater */ if cmp > 0 {
		node.right, removed = tree.removeRecursively(node.right, key, append(path, Right), rec)
	} else /* equal */ {
		rec.record(node.key, Deleting, path)
		if /* d1 */ node.left == nil {
			replace := node.right
			node.unlink()
			return replace, true
		}
		if /* d2 */ node.right == nil {
			replace := node.left
			node.unlink()
			return replace, true
		}
		/* d3 */
		succ := node.right.minimum()
		node.key = succ.key
		node.right, removed = tree.removeRecursively(node.right, succ.key, append(path, Right), rec)
		if !removed {
			// impossible run to here
			panic( /* debug assertion */ "[bst] successor vanished from the right subtree")
		}
	}
	return node, removed
}

func (tree *bstTree[K]) LevelOrder() []K {
	res := make([]K, 0, tree.count)
	if tree.root == nil {
		return res
	}

	queue := make([]*bstNode[K], 0, tree.count)
	defer func() {
		clear(queue)
	}()
	queue = append(queue, tree.root)

	for len(queue) > 0 {
		aux := queue[0]
		res = append(res, aux.key)
		if aux.left != nil {
			queue = append(queue, aux.left)
		}
		if aux.right != nil {
			queue = append(queue, aux.right)
		}
		queue = queue[1:]
	}
	return res
}

func (tree *bstTree[K]) Traverse(kind TraversalKind) []K {
	switch kind {
	case TraversalInorder:
		return Inorder[K](tree.Root())
	case TraversalPreorder:
		return Preorder[K](tree.Root())
	case TraversalPostorder:
		return Postorder[K](tree.Root())
	case TraversalLevelOrder:
		return tree.LevelOrder()
	default:
	}
	return []K{}
}

func (tree *bstTree[K]) Release() {
	aux := tree.root
	tree.root = nil
	tree.count = 0
	if aux == nil {
		return
	}

	stack := make([]*bstNode[K], 0, 16)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		aux.unlink()
	}
}

// Inorder returns left subtree, node, right subtree. Nil node yields an
// empty, non-nil slice.
func Inorder[K infra.OrderedKey](node BSTNode[K]) []K {
	return inorder[K](node, make([]K, 0, 16))
}

func inorder[K infra.OrderedKey](node BSTNode[K], res []K) []K {
	if isNilNode[K](node) {
		return res
	}
	res = inorder[K](node.Left(), res)
	res = append(res, node.Key())
	return inorder[K](node.Right(), res)
}

func Preorder[K infra.OrderedKey](node BSTNode[K]) []K {
	return preorder[K](node, make([]K, 0, 16))
}

func preorder[K infra.OrderedKey](node BSTNode[K], res []K) []K {
	if isNilNode[K](node) {
		return res
	}
	res = append(res, node.Key())
	res = preorder[K](node.Left(), res)
	return preorder[K](node.Right(), res)
}

func Postorder[K infra.OrderedKey](node BSTNode[K]) []K {
	return postorder[K](node, make([]K, 0, 16))
}

func postorder[K infra.OrderedKey](node BSTNode[K], res []K) []K {
	if isNilNode[K](node) {
		return res
	}
	res = postorder[K](node.Left(), res)
	res = postorder[K](node.Right(), res)
	return append(res, node.Key())
}

type BSTOpt[K infra.OrderedKey] func(*bstTree[K])

func WithBSTDesc[K infra.OrderedKey]() BSTOpt[K] {
	return func(tree *bstTree[K]) {
		tree.cmp = infra.DescCompare[K]
	}
}

func NewBST[K infra.OrderedKey](opts ...BSTOpt[K]) BST[K] {
	tree := &bstTree[K]{
		cmp: infra.AscCompare[K],
	}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(tree)
	}
	return tree
}
