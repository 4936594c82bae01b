package operation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/rise-and-shine/decorators/operation"
)

func TestFunc(t *testing.T) {
	op := operation.Func("double", func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	res, err := op.Execute(t.Context(), 21)

	require.NoError(t, err)
	assert.Equal(t, 42, res)
	assert.Equal(t, "double", op.Name())
}

func TestFuncPropagatesError(t *testing.T) {
	errBoom := errors.New("boom")
	op := operation.Func("fail", func(context.Context, int) (int, error) {
		return 0, errBoom
	})

	_, err := op.Execute(t.Context(), 1)

	assert.Same(t, errBoom, err)
}

// tagging appends tag to the string result so the wrapping order is visible.
func tagging(tag string) operation.WrapFunc[string, string] {
	return func(next operation.Operation[string, string]) operation.Operation[string, string] {
		return operation.Func(next.Name(), func(ctx context.Context, in string) (string, error) {
			res, err := next.Execute(ctx, in+tag)
			return res + tag, err
		})
	}
}

func TestChain(t *testing.T) {
	echo := operation.Func("echo", func(_ context.Context, in string) (string, error) {
		return "[" + in + "]", nil
	})

	t.Run("first wrapper is outermost", func(t *testing.T) {
		op := operation.Chain(echo, tagging("a"), tagging("b"))

		res, err := op.Execute(t.Context(), "")

		require.NoError(t, err)
		assert.Equal(t, "[ab]ba", res)
	})

	t.Run("no wrappers returns the original", func(t *testing.T) {
		assert.Same(t, echo, operation.Chain(echo))
	})
}

func TestArgs(t *testing.T) {
	args := operation.NewArgs(5, "6", "x").With("scale", "10").With("label", "sum")

	t.Run("positional", func(t *testing.T) {
		a, err := args.IntAt(0)
		require.NoError(t, err)
		assert.Equal(t, 5, a)

		b, err := args.IntAt(1)
		require.NoError(t, err)
		assert.Equal(t, 6, b)

		s, err := args.StrAt(2)
		require.NoError(t, err)
		assert.Equal(t, "x", s)

		assert.Equal(t, 3, args.Len())
		assert.Equal(t, []any{5, "6", "x"}, args.Positional())
	})

	t.Run("named keep insertion order", func(t *testing.T) {
		assert.Equal(t, []string{"scale", "label"}, args.Keys())

		scale, err := args.NamedInt("scale")
		require.NoError(t, err)
		assert.Equal(t, 10, scale)

		label, err := args.NamedStr("label")
		require.NoError(t, err)
		assert.Equal(t, "sum", label)
	})

	t.Run("missing positional", func(t *testing.T) {
		_, err := args.IntAt(7)
		assert.True(t, errx.IsCodeIn(err, operation.CodeArgMissing))
	})

	t.Run("missing named", func(t *testing.T) {
		_, err := args.NamedInt("nope")
		assert.True(t, errx.IsCodeIn(err, operation.CodeArgMissing))
	})

	t.Run("conversion failure", func(t *testing.T) {
		_, err := args.IntAt(2)
		assert.True(t, errx.IsCodeIn(err, operation.CodeArgConversion))
	})

	t.Run("With does not mutate the receiver", func(t *testing.T) {
		base := operation.NewArgs(1)
		_ = base.With("k", 1)
		assert.Empty(t, base.Keys())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var zero operation.Args
		assert.Equal(t, 0, zero.Len())
		assert.Empty(t, zero.Keys())
		_, err := zero.Get("k")
		require.Error(t, err)
	})
}

func TestArgsMarshalLogObject(t *testing.T) {
	enc := zapcore.NewMapObjectEncoder()

	err := operation.NewArgs(3, "four").With("scale", 2).With("mode", "fast").MarshalLogObject(enc)

	require.NoError(t, err)
	assert.Equal(t, []any{3, "four"}, enc.Fields["args"])
	assert.Equal(t, map[string]any{"scale": 2, "mode": "fast"}, enc.Fields["kwargs"])
}
