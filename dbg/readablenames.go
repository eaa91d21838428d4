package dbg

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
)

// This converts arbitrary comparable values (outline segments, pixels,
// pointers) into random readable names. It leaks memory but generates the
// names lazily, so it's not a problem unless you're actually using it. Two
// log lines mentioning "BraveOtter" are talking about the same segment, which
// is a lot easier to follow than a pair of float coordinates.

var (
	memo   = make(map[interface{}]string)
	memoMu sync.Mutex
)

func init() {
	// Since the ids are generated in order of demand, we make them
	// nondeterministic to remind the user that the same name doesn't refer to
	// the same thing between runs.
	petname.NonDeterministicMode()
}

// Name returns the readable name for obj, inventing one on first use. obj
// must be comparable.
func Name(obj interface{}) string {
	if obj == nil || isNilPointer(obj) {
		return "Ø"
	}

	memoMu.Lock()
	defer memoMu.Unlock()
	if r, ok := memo[obj]; ok {
		return r
	}
	r := fmt.Sprintf("%s%s", strings.Title(petname.Adjective()), strings.Title(petname.Name()))
	memo[obj] = r
	return r
}

// Named defers Name until a log handler actually formats the value, so
// disabled log lines never invent names.
func Named(obj interface{}) slog.LogValuer {
	return lazyName{obj}
}

type lazyName struct{ obj interface{} }

func (n lazyName) LogValue() slog.Value {
	return slog.StringValue(Name(n.obj))
}

func isNilPointer(obj interface{}) bool {
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
