package value

// Visibility controls whether a member key participates in visible-key
// iteration (Normal, Unconditional) or is suppressed from it (Hidden).
// Hidden members still exist and are addressable by direct key lookup;
// they just never appear in `ds.keysOf`, serialization, or any
// combinator that walks "the object's keys". Unconditional exists
// alongside Normal to let object-merge operators mark a key as always
// surviving a merge regardless of a later conditional field omission —
// both are visible; they differ only to the merge/update implementations
// in stdlib/objects.go.
type Visibility int

const (
	VisNormal Visibility = iota
	VisHidden
	VisUnconditional
)

// Member is one key's binding inside an Obj: a visibility flag plus the
// lazy cell producing its value under the scope captured at construction
// time.
type Member struct {
	Visibility Visibility
	Cell       *Cell
}

// Obj is an ordered string-keyed mapping. Key order is insertion order
// and is part of the value's observable identity: two objects with the
// same keys and values but constructed in a different order are still
// structurally equal (equality doesn't consider order — see equality.go)
// but serializing them or iterating their keys yields different byte
// sequences, which is why every combinator that builds a new Obj must
// preserve or deliberately redefine that order rather than drop it.
type Obj struct {
	keys    []string
	members map[string]*Member
}

func (*Obj) Kind() Kind         { return KindObj }
func (*Obj) PrettyName() string { return "object" }

// NewObj creates an empty object ready for Set calls in insertion order.
func NewObj() *Obj {
	return &Obj{members: make(map[string]*Member)}
}

// Set inserts or replaces the member at key. Replacing an existing key
// keeps its original position in the key order (matching how the
// scripting language's object literal re-declares a key in place);
// inserting a new key appends it.
func (o *Obj) Set(key string, vis Visibility, cell *Cell) {
	if _, exists := o.members[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.members[key] = &Member{Visibility: vis, Cell: cell}
}

// SetValue is a convenience for Set with an already-computed value and
// Normal visibility.
func (o *Obj) SetValue(key string, v Value) {
	o.Set(key, VisNormal, NewCell(v))
}

// Get returns the member at key, or (nil, false) if absent. It does not
// check visibility — direct lookup sees hidden members too.
func (o *Obj) Get(key string) (*Member, bool) {
	m, ok := o.members[key]
	return m, ok
}

// Has reports whether key is bound, visible or not.
func (o *Obj) Has(key string) bool {
	_, ok := o.members[key]
	return ok
}

// AllKeys returns every bound key (visible or hidden) in insertion order.
func (o *Obj) AllKeys() []string {
	return o.keys
}

// VisibleKeys returns keys whose member is Normal or Unconditional, in
// insertion order. This is the order used by serialization, keysOf,
// entriesOf, and every combinator that iterates "the object".
func (o *Obj) VisibleKeys() []string {
	out := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if o.members[k].Visibility != VisHidden {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of visible keys.
func (o *Obj) Len() int {
	n := 0
	for _, k := range o.keys {
		if o.members[k].Visibility != VisHidden {
			n++
		}
	}
	return n
}

// Arr is an ordered sequence of lazy cells. Element access forces the
// corresponding cell; iterating the array without touching an element's
// cell never evaluates it (the flatten-preserves-null invariant depends
// on exactly this).
type Arr struct {
	Elems []*Cell
}

func (*Arr) Kind() Kind         { return KindArr }
func (*Arr) PrettyName() string { return "array" }

// NewArr wraps pre-built cells into an array value.
func NewArr(cells ...*Cell) *Arr {
	return &Arr{Elems: cells}
}

// NewArrOfValues wraps already-computed values into an array, one cell
// per value (each cell starts forced — no additional laziness).
func NewArrOfValues(vals ...Value) *Arr {
	cells := make([]*Cell, len(vals))
	for i, v := range vals {
		cells[i] = NewCell(v)
	}
	return &Arr{Elems: cells}
}

// Len returns the element count.
func (a *Arr) Len() int { return len(a.Elems) }

// Force forces and returns every element, in order, stopping at the
// first error.
func (a *Arr) Force() ([]Value, error) {
	out := make([]Value, len(a.Elems))
	for i, c := range a.Elems {
		v, err := c.Force()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
