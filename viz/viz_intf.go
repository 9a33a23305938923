package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/benz9527/bstviz/lib/tree"
)

var (
	ErrEmptyInput        = errors.New("[viz] empty input")
	ErrInvalidInput      = errors.New("[viz] invalid input")
	ErrOperationInFlight = errors.New("[viz] operation in flight")
	ErrSessionClosed     = errors.New("[viz] session closed")
)

const (
	MsgEmptyInsertInput = "Please enter a value."
	MsgEmptyDeleteInput = "Please enter a value to delete."
	MsgInvalidInput     = "Please enter a valid integer."
	msgDuplicateFormat  = "Value %d already exists in the tree!"
)

// Notifier receives the user-facing alerts, such as a rejected duplicate.
type Notifier func(msg string)

// OutputFunc receives the text of the traversal output area.
type OutputFunc func(text string)

type TraversalResult struct {
	Kind tree.TraversalKind
	Keys []int
}

func (res TraversalResult) Joined() string {
	return strings.Join(lo.Map(res.Keys, func(key int, _ int) string {
		return strconv.Itoa(key)
	}), ", ")
}

// String formats as "INORDER TRAVERSAL: 1, 3, 5".
func (res TraversalResult) String() string {
	return fmt.Sprintf("%s TRAVERSAL: %s", strings.ToUpper(res.Kind.String()), res.Joined())
}
