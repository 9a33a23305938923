package tree

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/benz9527/bstviz/lib/infra"
)

var (
	ErrDuplicateKey     = errors.New("[bst] duplicate key")
	ErrUnknownTraversal = errors.New("[bst] unknown traversal kind")
)

type HighlightColor uint8

const (
	Visiting HighlightColor = iota
	Found
	Deleting
	TraversalOrder
)

func (c HighlightColor) String() string {
	switch c {
	case Visiting:
		return "visiting"
	case Found:
		return "found"
	case Deleting:
		return "deleting"
	case TraversalOrder:
		return "traversal"
	default:
	}
	return "unknown"
}

type Direction int8

const (
	Left Direction = -1 + iota
	Root
	Right
)

func (dir Direction) String() string {
	switch dir {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
	}
	return "-"
}

// VisitEvent is a single animation step emitted by a tree operation.
// Path locates the node from the root at the moment the event was emitted;
// an empty Path is the root itself. Key is a snapshot, the node may have
// been unlinked or overwritten since.
// Events of one operation share the backing array of Path, treat it as
// read only.
type VisitEvent[K infra.OrderedKey] struct {
	Key   K
	Color HighlightColor
	Path  []Direction
}

func (ev VisitEvent[K]) Depth() int {
	return len(ev.Path)
}

func (ev VisitEvent[K]) PathString() string {
	if len(ev.Path) == 0 {
		return "-"
	}
	builder := strings.Builder{}
	for _, dir := range ev.Path {
		builder.WriteString(dir.String())
	}
	return builder.String()
}

type TraversalKind uint8

const (
	TraversalInorder TraversalKind = iota
	TraversalPreorder
	TraversalPostorder
	TraversalLevelOrder
)

var TraversalKinds = []TraversalKind{TraversalInorder, TraversalPreorder, TraversalPostorder, TraversalLevelOrder}

func (kind TraversalKind) String() string {
	switch kind {
	case TraversalInorder:
		return "inorder"
	case TraversalPreorder:
		return "preorder"
	case TraversalPostorder:
		return "postorder"
	case TraversalLevelOrder:
		return "levelorder"
	default:
	}
	return "unknown"
}

func ParseTraversalKind(kind string) (TraversalKind, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "inorder":
		return TraversalInorder, nil
	case "preorder":
		return TraversalPreorder, nil
	case "postorder":
		return TraversalPostorder, nil
	case "levelorder", "level-order":
		return TraversalLevelOrder, nil
	default:
	}
	return 0, errors.Wrapf(ErrUnknownTraversal, "%q", kind)
}

type BSTNode[K infra.OrderedKey] interface {
	Key() K
	HasKey() bool
	Left() BSTNode[K]
	Right() BSTNode[K]
}

// BST is an unbalanced binary search tree with unique keys.
// It is not thread safe, callers serialize every operation.
type BST[K infra.OrderedKey] interface {
	Len() int64
	Root() BSTNode[K]
	// Insert returns ErrDuplicateKey (tree unchanged) if the key is present.
	Insert(key K) ([]VisitEvent[K], error)
	// Remove of an absent key is a silent no-op.
	Remove(key K) []VisitEvent[K]
	Search(key K) ([]VisitEvent[K], BSTNode[K])
	LevelOrder() []K
	Traverse(kind TraversalKind) []K
	Release()
}
