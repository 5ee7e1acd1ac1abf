package seq

import (
	"cmp"
	"slices"
	"sort"

	"github.com/pkg/errors"
)

// A Function is one of the library's sequence operations. Functions are
// stateless and may be called any number of times.
type Function struct {
	name     string
	min, max int
	impl     func(args []any) (any, error)
}

// Name returns the name the function is registered under.
func (f *Function) Name() string { return f.name }

func (f *Function) String() string { return "<function " + f.name + ">" }

// Call validates the argument count and then runs the function.
func (f *Function) Call(args ...any) (any, error) {
	if len(args) < f.min || len(args) > f.max {
		return nil, &ArityError{Func: f.name, Min: f.min, Max: f.max, Actual: len(args)}
	}
	return f.impl(args)
}

// The sequence functions.
var (
	Concat   = &Function{"concat", 2, 2, concat}
	Contains = &Function{"contains", 2, 2, contains}
	Count    = &Function{"count", 1, 2, count}
	Filter   = &Function{"filter", 2, 2, filter}
	Length   = &Function{"length", 1, 1, length}
	Map      = &Function{"map", 2, 2, mapSeq}
	Max      = &Function{"max", 1, 2, maxSeq}
	Min      = &Function{"min", 1, 2, minSeq}
	Sort     = &Function{"sort", 1, 2, sortSeq}
	Sum      = &Function{"sum", 1, 2, sum}
	ToArray  = &Function{"toArray", 1, 1, toArray}
	Unique   = &Function{"unique", 1, 1, unique}
)

var registry = map[string]*Function{}

func init() {
	for _, f := range []*Function{Concat, Contains, Count, Filter, Length, Map, Max, Min, Sort, Sum, ToArray, Unique} {
		registry[f.name] = f
	}
}

// Lookup returns the function registered under name.
func Lookup(name string) (*Function, bool) {
	f, ok := registry[name]
	return f, ok
}

// Functions returns every registered function, sorted by name.
func Functions() []*Function {
	fns := make([]*Function, 0, len(registry))
	for _, f := range registry {
		fns = append(fns, f)
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].name < fns[j].name })
	return fns
}

func concat(args []any) (any, error) {
	a, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	b, err := IntoIndexed(args[1])
	if err != nil {
		return nil, err
	}
	return newIterator(func() (any, bool, error) {
		if a.HasNext() {
			return a.Next().Value, true, nil
		} else if err := a.Err(); err != nil {
			return nil, false, err
		}
		if b.HasNext() {
			return b.Next().Value, true, nil
		}
		return nil, false, b.Err()
	}), nil
}

func contains(args []any) (any, error) {
	pred, err := ResolveCallback(args[1], "it", "index", "array")
	if err != nil {
		return nil, err
	}
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	for it.HasNext() {
		e := it.Next()
		r, err := pred.Call(e.Value, e.Index, args[0])
		if err != nil {
			return nil, errors.Wrapf(err, "contains: predicate failed at index %v", e.Index)
		}
		if Truthy(r) {
			return true, nil
		}
	}
	return false, it.Err()
}

func count(args []any) (any, error) {
	if len(args) == 1 {
		return length(args)
	}
	pred, err := ResolveCallback(args[1], "it", "index", "array")
	if err != nil {
		return nil, err
	}
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	n := 0
	for it.HasNext() {
		e := it.Next()
		r, err := pred.Call(e.Value, e.Index, args[0])
		if err != nil {
			return nil, errors.Wrapf(err, "count: predicate failed at index %v", e.Index)
		}
		if Truthy(r) {
			n++
		}
	}
	return n, it.Err()
}

func filter(args []any) (any, error) {
	pred, err := ResolveCallback(args[1], "it", "index", "array", "result")
	if err != nil {
		return nil, err
	}
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	// the predicate may refer to the sequence it is building
	result := new(Iterator)
	result.advance = func() (any, bool, error) {
		for it.HasNext() {
			e := it.Next()
			r, err := pred.Call(e.Value, e.Index, args[0], result)
			if err != nil {
				return nil, false, errors.Wrapf(err, "filter: predicate failed at index %v", e.Index)
			}
			if Truthy(r) {
				return e.Value, true, nil
			}
		}
		return nil, false, it.Err()
	}
	return result, nil
}

func length(args []any) (any, error) {
	if a, ok := asArrayLike(args[0]); ok {
		return a.Len(), nil
	}
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	n := 0
	for it.HasNext() {
		it.Next()
		n++
	}
	return n, it.Err()
}

func mapSeq(args []any) (any, error) {
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	fn, err := ResolveCallback(args[1], "it", "index", "array", "result")
	if err != nil {
		return nil, err
	}
	return newIterator(func() (any, bool, error) {
		if !it.HasNext() {
			return nil, false, it.Err()
		}
		e := it.Next()
		// the fourth argument is the callback itself, not the output
		v, err := fn.Call(e.Value, e.Index, args[0], fn)
		if err != nil {
			return nil, false, errors.Wrapf(err, "map: callback failed at index %v", e.Index)
		}
		return v, true, nil
	}), nil
}

// extremum returns the element that wins every replace(candidate, current)
// contest, seeded with the first element.
func extremum(name string, args []any, replace func(candidate, current any) (bool, error)) (any, error) {
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	if !it.HasNext() {
		if err := it.Err(); err != nil {
			return nil, err
		}
		return Null, nil
	}
	current := it.Next().Value
	for it.HasNext() {
		e := it.Next()
		ok, err := replace(e.Value, current)
		if err != nil {
			return nil, errors.Wrapf(err, "%v: cannot compare element at index %v", name, e.Index)
		}
		if ok {
			current = e.Value
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	if current == nil {
		return Null, nil
	}
	return current, nil
}

func comparatorReplace(cmpFn any) (func(candidate, current any) (bool, error), error) {
	cb, err := ResolveCallback(cmpFn, "lhs", "rhs")
	if err != nil {
		return nil, err
	}
	return func(candidate, current any) (bool, error) {
		r, err := cb.Call(candidate, current)
		return Truthy(r), err
	}, nil
}

func maxSeq(args []any) (any, error) {
	replace := func(candidate, current any) (bool, error) {
		c, err := CompareNumeric(current, candidate)
		return c < 0, err
	}
	if len(args) == 2 {
		var err error
		// cmp(lhs, rhs) is true when lhs is greater than rhs
		if replace, err = comparatorReplace(args[1]); err != nil {
			return nil, err
		}
	}
	return extremum("max", args, replace)
}

func minSeq(args []any) (any, error) {
	replace := func(candidate, current any) (bool, error) {
		c, err := CompareNumeric(current, candidate)
		return c > 0, err
	}
	if len(args) == 2 {
		var err error
		// cmp(lhs, rhs) is true when lhs is less than rhs
		if replace, err = comparatorReplace(args[1]); err != nil {
			return nil, err
		}
	}
	return extremum("min", args, replace)
}

func sortSeq(args []any) (any, error) {
	compare := CompareNumeric
	if len(args) == 2 {
		cb, err := ResolveCallback(args[1], "lhs", "rhs")
		if err != nil {
			return nil, err
		}
		compare = func(a, b any) (int, error) {
			r, err := cb.Call(a, b)
			if err != nil {
				return 0, err
			}
			n, err := AsIntegral(r)
			if err != nil {
				return 0, err
			}
			return cmp.Compare(n, 0), nil
		}
	}
	items, err := Collect(args[0])
	if err != nil {
		return nil, err
	}
	// Collect may hand back the caller's own Array
	items = slices.Clone(items)

	var sortErr error
	slices.SortStableFunc(items, func(a, b any) int {
		if sortErr != nil {
			return 0
		}
		c, err := compare(a, b)
		if err != nil {
			sortErr = errors.Wrapf(err, "sort: cannot compare %v and %v", a, b)
		}
		return c
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return WrapArray(items), nil
}

func sum(args []any) (any, error) {
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	var fn Callable
	if len(args) == 2 {
		if fn, err = ResolveCallback(args[1], "it", "index", "array"); err != nil {
			return nil, err
		}
	}

	// both totals are kept from the start; the integral one is exact for as
	// long as every element is integral
	var isum int64
	var fsum float64
	integral := true
	for it.HasNext() {
		e := it.Next()
		n := e.Value
		if fn != nil {
			if n, err = fn.Call(e.Value, e.Index, args[0]); err != nil {
				return nil, errors.Wrapf(err, "sum: callback failed at index %v", e.Index)
			}
		}
		if integral {
			if i, ok := TryAsIntegral(n); ok {
				isum += i
				fsum += float64(i)
				continue
			}
			integral = false
		}
		f, ok := TryAsFloating(n)
		if !ok {
			return nil, &TypeError{Op: "sum", Want: "number", Value: n}
		}
		fsum += f
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	if integral {
		return isum, nil
	}
	return fsum, nil
}

func toArray(args []any) (any, error) {
	if _, ok := asArrayLike(args[0]); ok {
		return args[0], nil
	}
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	return newIterator(func() (any, bool, error) {
		if it.HasNext() {
			return it.Next().Value, true, nil
		}
		return nil, false, it.Err()
	}), nil
}

func unique(args []any) (any, error) {
	it, err := IntoIndexed(args[0])
	if err != nil {
		return nil, err
	}
	var set orderedSet
	for it.HasNext() {
		set.add(it.Next().Value)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return WrapArray(set.elems), nil
}
