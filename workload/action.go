package workload

import "fmt"

// Kind is the on-disk tag of an action record.
type Kind uint32

const (
	KindInsert Kind = 0
	KindLookup Kind = 1
	KindRemove Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindLookup:
		return "lookup"
	case KindRemove:
		return "remove"
	default:
		return fmt.Sprintf("kind(%d)", uint32(k))
	}
}

// Action is one benchmark operation. The set of implementations is closed:
// Insert, Lookup and Remove are the only arms.
type Action interface {
	Kind() Kind
	action()
}

// Insert stores Value under Key.
type Insert struct {
	Key   uint32
	Value uint32
}

// Lookup reads Key.
type Lookup struct {
	Key uint32
}

// Remove deletes Key.
type Remove struct {
	Key uint32
}

func (Insert) Kind() Kind { return KindInsert }
func (Lookup) Kind() Kind { return KindLookup }
func (Remove) Kind() Kind { return KindRemove }

func (Insert) action() {}
func (Lookup) action() {}
func (Remove) action() {}

// ActionKey returns the key an action targets.
func ActionKey(a Action) uint32 {
	switch a := a.(type) {
	case Insert:
		return a.Key
	case Lookup:
		return a.Key
	case Remove:
		return a.Key
	default:
		panic(fmt.Sprintf("workload: unknown action %T", a))
	}
}
