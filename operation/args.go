package operation

import (
	"fmt"

	"github.com/code19m/errx"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap/zapcore"
)

// Error codes returned by Args accessors.
const (
	CodeArgMissing    = "ARG_MISSING"
	CodeArgConversion = "ARG_CONVERSION"
)

// Args is a uniform argument bag: an ordered sequence of positional inputs
// plus named inputs kept in insertion order. Wrappers forward it untouched.
type Args struct {
	positional []any
	named      *orderedmap.OrderedMap[string, any]
}

// NewArgs creates an Args bag holding the given positional inputs.
func NewArgs(positional ...any) Args {
	return Args{
		positional: positional,
		named:      orderedmap.New[string, any](),
	}
}

// With returns a copy of a with one more named input.
func (a Args) With(key string, value any) Args {
	named := orderedmap.New[string, any]()
	if a.named != nil {
		for pair := a.named.Oldest(); pair != nil; pair = pair.Next() {
			named.Set(pair.Key, pair.Value)
		}
	}
	named.Set(key, value)

	return Args{positional: a.positional, named: named}
}

// Len returns the number of positional inputs.
func (a Args) Len() int {
	return len(a.positional)
}

// Positional returns a copy of the positional inputs.
func (a Args) Positional() []any {
	out := make([]any, len(a.positional))
	copy(out, a.positional)
	return out
}

// Keys returns the named input keys in insertion order.
func (a Args) Keys() []string {
	if a.named == nil {
		return nil
	}
	keys := make([]string, 0, a.named.Len())
	for pair := a.named.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// At returns the positional input at index i.
func (a Args) At(i int) (any, error) {
	if i < 0 || i >= len(a.positional) {
		return nil, errx.New(
			"[operation]: positional argument missing",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeArgMissing),
			errx.WithDetails(errx.D{"index": i, "len": len(a.positional)}),
		)
	}
	return a.positional[i], nil
}

// Get returns the named input stored under key.
func (a Args) Get(key string) (any, error) {
	if a.named != nil {
		if v, ok := a.named.Get(key); ok {
			return v, nil
		}
	}
	return nil, errx.New(
		"[operation]: named argument missing",
		errx.WithType(errx.T_Validation),
		errx.WithCode(CodeArgMissing),
		errx.WithDetails(errx.D{"key": key}),
	)
}

// IntAt returns the positional input at index i converted to int.
func (a Args) IntAt(i int) (int, error) {
	v, err := a.At(i)
	if err != nil {
		return 0, err
	}
	return convert(cast.ToIntE, v, fmt.Sprintf("#%d", i))
}

// StrAt returns the positional input at index i converted to string.
func (a Args) StrAt(i int) (string, error) {
	v, err := a.At(i)
	if err != nil {
		return "", err
	}
	return convert(cast.ToStringE, v, fmt.Sprintf("#%d", i))
}

// NamedInt returns the named input stored under key converted to int.
func (a Args) NamedInt(key string) (int, error) {
	v, err := a.Get(key)
	if err != nil {
		return 0, err
	}
	return convert(cast.ToIntE, v, key)
}

// NamedStr returns the named input stored under key converted to string.
func (a Args) NamedStr(key string) (string, error) {
	v, err := a.Get(key)
	if err != nil {
		return "", err
	}
	return convert(cast.ToStringE, v, key)
}

// MarshalLogObject lets zap log the bag with its inputs visible.
func (a Args) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	err := enc.AddArray("args", zapcore.ArrayMarshalerFunc(func(ae zapcore.ArrayEncoder) error {
		for _, v := range a.positional {
			if err := ae.AppendReflected(v); err != nil {
				return err
			}
		}
		return nil
	}))
	if err != nil {
		return err
	}

	return enc.AddObject("kwargs", zapcore.ObjectMarshalerFunc(func(oe zapcore.ObjectEncoder) error {
		if a.named == nil {
			return nil
		}
		for pair := a.named.Oldest(); pair != nil; pair = pair.Next() {
			if err := oe.AddReflected(pair.Key, pair.Value); err != nil {
				return err
			}
		}
		return nil
	}))
}

func convert[T any](fn func(any) (T, error), v any, arg string) (T, error) {
	out, err := fn(v)
	if err != nil {
		return out, errx.New(
			"[operation]: argument conversion failed",
			errx.WithType(errx.T_Validation),
			errx.WithCode(CodeArgConversion),
			errx.WithDetails(errx.D{"argument": arg, "value": fmt.Sprintf("%v", v), "cause": err.Error()}),
		)
	}
	return out, nil
}
