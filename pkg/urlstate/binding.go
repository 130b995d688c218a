package urlstate

import (
	"math"
	"net/url"
	"reflect"
	"strconv"
	"sync"
)

// Value lists the kinds a binding can hold. Named types are allowed.
type Value interface {
	~string | ~bool |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Binding ties one query key of a Location to a typed value with a
// default. The default is never written to the URL.
type Binding[T Value] struct {
	loc          *Location
	key          string
	defaultValue T

	mu       sync.Mutex
	last     T
	handlers []func(T)
	release  func()
}

func Bind[T Value](loc *Location, key string, defaultValue T) *Binding[T] {
	b := &Binding[T]{
		loc:          loc,
		key:          key,
		defaultValue: defaultValue,
	}
	b.last = b.Value()
	b.release = loc.OnPopState(b.popped)
	return b
}

func (b *Binding[T]) Key() string {
	return b.key
}

func (b *Binding[T]) Default() T {
	return b.defaultValue
}

// Value parses the key from the current location, falling back to the
// default when it is missing or does not parse.
func (b *Binding[T]) Value() T {
	query := b.loc.Query()
	if !query.Has(b.key) {
		return b.defaultValue
	}
	return Parse(query.Get(b.key), b.defaultValue)
}

// SetValue writes v to the location, or removes the key when v is the
// default.
func (b *Binding[T]) SetValue(v T) {
	b.loc.Update(func(query url.Values) {
		if v == b.defaultValue {
			query.Del(b.key)
			return
		}
		query.Set(b.key, Format(v))
	})
	b.mu.Lock()
	b.last = v
	b.mu.Unlock()
}

func (b *Binding[T]) ClearValue() {
	b.SetValue(b.defaultValue)
}

// OnChange registers fn to be called when history navigation changes the
// value.
func (b *Binding[T]) OnChange(fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, fn)
}

func (b *Binding[T]) popped() {
	v := b.Value()
	b.mu.Lock()
	if v == b.last {
		b.mu.Unlock()
		return
	}
	b.last = v
	handlers := append([]func(T){}, b.handlers...)
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(v)
	}
}

// Close stops listening to the location.
func (b *Binding[T]) Close() {
	b.release()
}

// Parse converts raw into T. Numbers that fail to parse, overflow, are NaN
// or carry a fraction for an integer kind give def.
func Parse[T Value](raw string, def T) T {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(raw)
	case reflect.Bool:
		rv.SetBool(raw == "true")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || rv.OverflowInt(n) {
			return def
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || rv.OverflowUint(n) {
			return def
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, rv.Type().Bits())
		if err != nil || math.IsNaN(f) {
			return def
		}
		rv.SetFloat(f)
	default:
		return def
	}
	return v
}

func Format[T Value](v T) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits())
	}
	return ""
}
