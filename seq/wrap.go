package seq

type iterState uint8

const (
	needsAdvance iterState = iota
	buffered
	exhausted
)

// Iterator is a lazily evaluated sequence returned by concat, filter, map and
// toArray. It satisfies IteratorLike, so it can be passed back into any
// sequence function.
//
// HasNext is idempotent: it computes the next element at most once and keeps
// it until Next is called. If computing an element fails, the iterator is
// exhausted and Err reports the failure.
type Iterator struct {
	state   iterState
	buf     any
	err     error
	advance func() (v any, ok bool, err error)
}

func newIterator(advance func() (any, bool, error)) *Iterator {
	return &Iterator{advance: advance}
}

// WrapIterator exposes an arbitrary pull iterator as an *Iterator.
func WrapIterator(it IteratorLike) *Iterator {
	if w, ok := it.(*Iterator); ok {
		return w
	}
	src := &iteratorIndexed{it: it}
	return newIterator(func() (any, bool, error) {
		if src.HasNext() {
			return src.Next().Value, true, nil
		}
		return nil, false, src.Err()
	})
}

// WrapArray exposes already-materialized values as an array-like sequence.
func WrapArray(values []any) Array { return Array(values) }

// HasNext reports whether another element is available.
func (it *Iterator) HasNext() bool {
	if it.state == needsAdvance {
		v, ok, err := it.advance()
		switch {
		case err != nil:
			it.state, it.err = exhausted, err
		case ok:
			it.state, it.buf = buffered, v
		default:
			it.state = exhausted
		}
	}
	return it.state == buffered
}

// Next returns the next element, or Null if the iterator is exhausted.
func (it *Iterator) Next() any {
	if !it.HasNext() {
		return Null
	}
	v := it.buf
	it.state, it.buf = needsAdvance, nil
	return v
}

// Err returns the error that ended iteration, if any.
func (it *Iterator) Err() error { return it.err }

func (it *Iterator) String() string { return "<iterator>" }
