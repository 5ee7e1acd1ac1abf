package seq

// Element is a value paired with its position in a sequence.
type Element struct {
	Index int
	Value any
}

// Indexed is the iteration protocol shared by every sequence function. Err
// reports the failure, if any, that caused HasNext to return false.
type Indexed interface {
	HasNext() bool
	Next() Element
	Err() error
}

// IntoIndexed normalizes an array-like, iterator-like or enumeration-like
// value into an Indexed iterator. Nothing is read from v until the iterator is
// advanced, and each advance reads exactly one element.
func IntoIndexed(v any) (Indexed, error) {
	if a, ok := asArrayLike(v); ok {
		return &arrayIndexed{a: a}, nil
	}
	switch v := v.(type) {
	case IteratorLike:
		return &iteratorIndexed{it: v}, nil
	case EnumerationLike:
		return &iteratorIndexed{it: enumeration{v}}, nil
	}
	return nil, &TypeError{Op: "iterate", Want: "array, iterator or enumeration", Value: v}
}

type arrayIndexed struct {
	a   ArrayLike
	pos int
}

func (ai *arrayIndexed) HasNext() bool { return ai.pos < ai.a.Len() }
func (ai *arrayIndexed) Err() error    { return nil }

func (ai *arrayIndexed) Next() Element {
	if !ai.HasNext() {
		return Element{Index: ai.pos, Value: Null}
	}
	e := Element{Index: ai.pos, Value: ai.a.At(ai.pos)}
	ai.pos++
	return e
}

type iteratorIndexed struct {
	it    IteratorLike
	index int
}

func (ii *iteratorIndexed) HasNext() bool { return ii.it.HasNext() }

func (ii *iteratorIndexed) Next() Element {
	e := Element{Index: ii.index, Value: ii.it.Next()}
	ii.index++
	return e
}

func (ii *iteratorIndexed) Err() error {
	if r, ok := ii.it.(errReporter); ok {
		return r.Err()
	}
	return nil
}

type enumeration struct {
	e EnumerationLike
}

func (e enumeration) HasNext() bool { return e.e.HasMoreElements() }
func (e enumeration) Next() any     { return e.e.NextElement() }

func (e enumeration) Err() error {
	if r, ok := e.e.(errReporter); ok {
		return r.Err()
	}
	return nil
}

// Collect drains any sequence into an Array.
func Collect(v any) (Array, error) {
	if a, ok := v.(Array); ok {
		return a, nil
	}
	it, err := IntoIndexed(v)
	if err != nil {
		return nil, err
	}
	var elems Array
	for it.HasNext() {
		elems = append(elems, it.Next().Value)
	}
	return elems, it.Err()
}
