package pix

import (
	"fmt"
)

// Kind tags the entity variants that attribute computations can apply
// to. Kinds combine as a bit mask, so an attribute registered for
// KindFrame|KindCluster applies to any grid-backed entity.
type Kind uint8

const (
	// KindFrame marks attributes computed over a whole sensor frame.
	KindFrame Kind = 1 << iota
	// KindCluster marks attributes computed over a single cluster.
	KindCluster
)

// KindAny matches every entity variant.
const KindAny = KindFrame | KindCluster

// Entity is anything attribute computations can run against: a frame or
// a cluster. The closed set of variants is dispatched by Kind tag rather
// than by dynamic field injection.
type Entity interface {
	Kind() Kind
	Grid() *PixelGrid
}

// Computation derives one value from an entity. Computations must be
// pure: same entity state, same result.
type Computation func(Entity) any

// Attribute is one entry of the process-wide attribute table.
type Attribute struct {
	// Name is the unique human-readable label shown in UIs and used as
	// the table key.
	Name string

	// Applies is the mask of entity kinds the computation accepts.
	Applies Kind

	// Plottable marks the attribute for inclusion in plotting UIs.
	Plottable bool

	// Trainable marks the attribute for inclusion in exported training
	// rows. Column order in those rows is registration order.
	Trainable bool

	Compute Computation
}

// The attribute table is process-wide state: populated once during init
// by attribute definitions, read thereafter. Registration order is an
// observable contract (it fixes training-row column order), not an
// incidental property.
var (
	attrOrder []string
	attrTable = make(map[string]*Attribute)
)

// RegisterOption adjusts a registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	plottable    bool
	trainable    bool
	trainableSet bool
}

// Plottable marks the attribute as available to plotting UIs.
func Plottable() RegisterOption {
	return func(o *registerOptions) { o.plottable = true }
}

// Trainable sets the trainable flag explicitly. When absent, trainable
// inherits the plottable flag.
func Trainable(v bool) RegisterOption {
	return func(o *registerOptions) {
		o.trainable = v
		o.trainableSet = true
	}
}

// Register adds a named computation to the attribute table for the given
// entity kinds. Re-registering an existing name overwrites the entry in
// place: the new computation wins but the name keeps its original
// position in the table order.
func Register(applies Kind, name string, compute Computation, opts ...RegisterOption) {
	var o registerOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.trainableSet {
		o.trainable = o.plottable
	}
	if _, ok := attrTable[name]; !ok {
		attrOrder = append(attrOrder, name)
	}
	attrTable[name] = &Attribute{
		Name:      name,
		Applies:   applies,
		Plottable: o.plottable,
		Trainable: o.trainable,
		Compute:   compute,
	}
}

// Filter restricts attribute listings by flag.
type Filter struct {
	PlottableOnly bool
	TrainableOnly bool
}

// Attributes enumerates table entries applicable to kind, preserving
// registration order.
func Attributes(kind Kind, filter Filter) []*Attribute {
	var attrs []*Attribute
	for _, name := range attrOrder {
		a := attrTable[name]
		if a.Applies&kind == 0 {
			continue
		}
		if filter.PlottableOnly && !a.Plottable {
			continue
		}
		if filter.TrainableOnly && !a.Trainable {
			continue
		}
		attrs = append(attrs, a)
	}
	return attrs
}

// Lookup returns the attribute registered under name.
func Lookup(name string) (*Attribute, bool) {
	a, ok := attrTable[name]
	return a, ok
}

// Evaluate runs the named computation against e after checking that the
// attribute applies to e's kind.
func Evaluate(e Entity, name string) (any, error) {
	a, ok := attrTable[name]
	if !ok {
		return nil, fmt.Errorf("no attribute registered under %q", name)
	}
	if a.Applies&e.Kind() == 0 {
		return nil, fmt.Errorf("attribute %q does not apply to this entity", name)
	}
	return a.Compute(e), nil
}
