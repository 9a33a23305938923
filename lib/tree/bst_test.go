package tree

import (
	randv2 "math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func buildBST(t *testing.T, keys ...int) BST[int] {
	bst := NewBST[int]()
	for _, key := range keys {
		_, err := bst.Insert(key)
		require.NoError(t, err)
	}
	return bst
}

func TestNilBSTNode(t *testing.T) {
	var nilNode BSTNode[int] = nil
	require.True(t, isNilNode[int](nilNode))

	var nilNode2 *bstNode[int] = nil
	nilNode = nilNode2
	require.True(t, nilNode != nil)
	require.False(t, nilNode.HasKey())
	require.Nil(t, nilNode.Left())
	require.Nil(t, nilNode.Right())
	require.True(t, isNilNode[int](nilNode))

	require.Empty(t, Inorder[int](nilNode))
	require.NotNil(t, Inorder[int](nil))
	require.NotNil(t, Preorder[int](nil))
	require.NotNil(t, Postorder[int](nil))
}

func TestBSTReferenceTraversals(t *testing.T) {
	bst := buildBST(t, 5, 3, 8, 1, 4, 7, 9)
	require.Equal(t, int64(7), bst.Len())
	require.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, bst.Traverse(TraversalInorder))
	require.Equal(t, []int{5, 3, 1, 4, 8, 7, 9}, bst.Traverse(TraversalPreorder))
	require.Equal(t, []int{1, 4, 3, 7, 9, 8, 5}, bst.Traverse(TraversalPostorder))
	require.Equal(t, []int{5, 3, 8, 1, 4, 7, 9}, bst.Traverse(TraversalLevelOrder))

	// Subtree traversals.
	require.Equal(t, []int{1, 3, 4}, Inorder[int](bst.Root().Left()))
	require.Equal(t, []int{8, 7, 9}, Preorder[int](bst.Root().Right()))
	require.Equal(t, []int{7}, Postorder[int](bst.Root().Right().Left()))

	// Idempotent.
	require.Equal(t, bst.Traverse(TraversalInorder), bst.Traverse(TraversalInorder))
	require.Equal(t, bst.LevelOrder(), bst.LevelOrder())
}

func TestBSTEmpty(t *testing.T) {
	bst := NewBST[int]()
	require.Nil(t, bst.Root())
	require.Equal(t, int64(0), bst.Len())
	for _, kind := range TraversalKinds {
		require.Empty(t, bst.Traverse(kind))
	}
	require.Empty(t, bst.Remove(1))
	events, node := bst.Search(1)
	require.Empty(t, events)
	require.Nil(t, node)
	require.Equal(t, "<empty>\n", DebugString[int](bst))
}

func TestBSTInsertEvents(t *testing.T) {
	bst := NewBST[int]()
	events, err := bst.Insert(5)
	require.NoError(t, err)
	require.Equal(t, []VisitEvent[int]{{Key: 5, Color: Found}}, events)

	_, err = bst.Insert(3)
	require.NoError(t, err)
	events, err = bst.Insert(4)
	require.NoError(t, err)
	require.Equal(t, []VisitEvent[int]{
		{Key: 5, Color: Visiting},
		{Key: 3, Color: Visiting, Path: []Direction{Left}},
		{Key: 4, Color: Found, Path: []Direction{Left, Right}},
	}, events)
	require.Equal(t, 2, events[2].Depth())
	require.Equal(t, "LR", events[2].PathString())
}

func TestBSTInsertDuplicate(t *testing.T) {
	bst := buildBST(t, 5, 3, 8, 1, 4, 7, 9)
	before := bst.Traverse(TraversalInorder)

	events, err := bst.Insert(4)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDuplicateKey))
	require.Len(t, events, 3)
	require.Equal(t, Visiting, events[2].Color)
	require.Equal(t, 4, events[2].Key)

	require.Equal(t, before, bst.Traverse(TraversalInorder))
	require.Equal(t, int64(7), bst.Len())

	_, err = bst.Insert(5)
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestBSTRemoveTwoChildrenPromotesSuccessor(t *testing.T) {
	bst := buildBST(t, 5, 3, 8, 1, 4, 7, 9)
	root := bst.Root()

	events := bst.Remove(5)
	require.Equal(t, "visiting 5 -\ndeleting 5 -\nvisiting 8 R\nvisiting 7 RL\ndeleting 7 RL\n", EventsString[int](events))

	// The root node survives with the successor key, the successor node is gone.
	require.Same(t, root.(*bstNode[int]), bst.Root().(*bstNode[int]))
	require.Equal(t, 7, bst.Root().Key())
	require.Nil(t, bst.Root().Right().Left())
	require.Equal(t, []int{1, 3, 4, 7, 8, 9}, bst.Traverse(TraversalInorder))
	require.Equal(t, int64(6), bst.Len())
	require.NoError(t, OrderViolationValidate[int](bst))
}

func TestBSTRemoveLeaf(t *testing.T) {
	bst := buildBST(t, 5, 3, 8, 1, 4, 7, 9)
	bst.Remove(1)
	require.Equal(t, []int{3, 4, 5, 7, 8, 9}, bst.Traverse(TraversalInorder))
	require.Nil(t, bst.Root().Left().Left())
}

func TestBSTRemoveMiss(t *testing.T) {
	bst := buildBST(t, 5, 3, 8, 1, 4, 7, 9)
	before := DebugString[int](bst)

	events := bst.Remove(6)
	for _, ev := range events {
		require.Equal(t, Visiting, ev.Color)
	}
	require.Equal(t, before, DebugString[int](bst))
	require.Equal(t, int64(7), bst.Len())
}

func TestBSTSearch(t *testing.T) {
	bst := buildBST(t, 5, 3, 8, 1, 4, 7, 9)

	events, node := bst.Search(7)
	require.NotNil(t, node)
	require.Equal(t, 7, node.Key())
	require.Equal(t, "visiting 5 -\nvisiting 8 R\nvisiting 7 RL\n", EventsString[int](events))

	events, node = bst.Search(6)
	require.Nil(t, node)
	require.Len(t, events, 3)
}

func TestBSTDesc(t *testing.T) {
	bst := NewBST[int](WithBSTDesc[int]())
	for _, key := range []int{5, 3, 8, 1, 4, 7, 9} {
		_, err := bst.Insert(key)
		require.NoError(t, err)
	}
	require.Equal(t, []int{9, 8, 7, 5, 4, 3, 1}, bst.Traverse(TraversalInorder))
	require.NoError(t, OrderViolationValidate[int](bst))

	bst.Remove(5)
	require.Equal(t, []int{9, 8, 7, 4, 3, 1}, bst.Traverse(TraversalInorder))
	require.Equal(t, 4, bst.Root().Key())
	require.NoError(t, OrderViolationValidate[int](bst))
}

func TestBSTStringKeys(t *testing.T) {
	bst := NewBST[string]()
	for _, key := range []string{"m", "c", "x", "a"} {
		_, err := bst.Insert(key)
		require.NoError(t, err)
	}
	require.Equal(t, []string{"a", "c", "m", "x"}, bst.Traverse(TraversalInorder))
	require.Equal(t, []string{"m", "c", "x", "a"}, bst.LevelOrder())
}

func TestBSTRelease(t *testing.T) {
	bst := buildBST(t, 5, 3, 8, 1, 4, 7, 9)
	left := bst.Root().Left()
	bst.Release()
	require.Nil(t, bst.Root())
	require.Equal(t, int64(0), bst.Len())
	require.False(t, left.HasKey())
	require.Nil(t, left.Left())
}

func TestParseTraversalKind(t *testing.T) {
	testcases := []struct {
		in   string
		kind TraversalKind
	}{
		{"inorder", TraversalInorder},
		{"PREORDER", TraversalPreorder},
		{" postorder ", TraversalPostorder},
		{"levelorder", TraversalLevelOrder},
		{"level-order", TraversalLevelOrder},
	}
	for _, tc := range testcases {
		t.Run(tc.in, func(t *testing.T) {
			kind, err := ParseTraversalKind(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.kind, kind)
		})
	}

	_, err := ParseTraversalKind("zigzag")
	require.ErrorIs(t, err, ErrUnknownTraversal)
}

func TestBSTRandomInsertRemove(t *testing.T) {
	const n = 512
	keys := make([]int, 0, n)
	seen := make(map[int]struct{}, n)
	for len(keys) < n {
		key := randv2.IntN(n * 8)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	bst := NewBST[int]()
	for _, key := range keys {
		_, err := bst.Insert(key)
		require.NoError(t, err)
	}
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	require.Equal(t, sorted, bst.Traverse(TraversalInorder))
	require.NoError(t, OrderViolationValidate[int](bst))
	require.NoError(t, LevelOrderParentValidate[int](bst))

	// Re-inserting any key must be rejected without changes.
	for _, key := range keys[:32] {
		_, err := bst.Insert(key)
		require.ErrorIs(t, err, ErrDuplicateKey)
	}
	require.Equal(t, int64(n), bst.Len())

	randv2.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	for i, key := range keys {
		before := len(bst.Traverse(TraversalInorder))
		bst.Remove(key)
		require.Equal(t, before-1, len(bst.Traverse(TraversalInorder)))
		require.Equal(t, int64(n-i-1), bst.Len())
		if i%64 == 0 {
			require.NoError(t, OrderViolationValidate[int](bst))
			require.NoError(t, LevelOrderParentValidate[int](bst))
		}
		// Absent key is a no-op.
		bst.Remove(key)
		require.Equal(t, int64(n-i-1), bst.Len())
	}
	require.Nil(t, bst.Root())
}

func TestBSTSortedInsertChain(t *testing.T) {
	const n = 3000
	bst := NewBST[int]()
	begin := time.Now()
	for key := 0; key < n-1; key++ {
		_, err := bst.Insert(key)
		require.NoError(t, err)
	}
	events, err := bst.Insert(n - 1)
	require.NoError(t, err)
	require.Less(t, time.Since(begin), 5*time.Second)
	require.Equal(t, int64(n), bst.Len())

	// One event per level, every path is a capped prefix of the deepest one.
	require.Len(t, events, n)
	require.Nil(t, events[0].Path)
	last := events[n-1].Path
	require.Len(t, last, n-1)
	for i, ev := range events {
		require.Equal(t, i, ev.Depth())
		require.Equal(t, i, cap(ev.Path))
	}
	require.Equal(t, Found, events[n-1].Color)

	// Appending to a shared prefix never leaks into the other events.
	grown := append(events[1].Path, Left)
	require.Equal(t, []Direction{Right, Left}, grown)
	require.Equal(t, Right, last[1])

	removed := bst.Remove(n - 1)
	require.Len(t, removed, n+1)
	require.Equal(t, Deleting, removed[n].Color)
	require.Len(t, removed[n].Path, n-1)
	require.NoError(t, OrderViolationValidate[int](bst))
}
