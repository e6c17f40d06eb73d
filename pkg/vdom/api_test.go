package vdom

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fooCtor = &Ctor{Name: "Foo"}

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindComponent, "Component"},
		{KindText, "Text"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestC(t *testing.T) {
	t.Run("resolves circular factory", func(t *testing.T) {
		calls := 0
		ref := Circular(func() *Ctor {
			calls++
			return fooCtor
		})

		node, err := C("x-foo", ref, Config{ClassName: "foo"})
		require.NoError(t, err)
		assert.Same(t, fooCtor, node.Ctor)
		assert.Equal(t, 1, calls)

		_, err = C("x-foo", ref, Config{})
		require.NoError(t, err)
		assert.Equal(t, 2, calls, "factory result must not be cached across builds")
	})

	t.Run("direct constructor", func(t *testing.T) {
		node, err := C("x-foo", fooCtor, Config{})
		require.NoError(t, err)
		assert.Equal(t, KindComponent, node.Kind)
		assert.Equal(t, "x-foo", node.Sel)
		assert.Equal(t, "x-foo", node.Tag)
		assert.True(t, node.IsComponent())
		assert.False(t, node.Forced())
	})

	t.Run("className to class map", func(t *testing.T) {
		node, err := C("x-foo", fooCtor, Config{ClassName: "foo"})
		require.NoError(t, err)
		assert.Equal(t, ClassMap{"foo": true}, node.Data.Class)
	})

	t.Run("splits className on whitespace", func(t *testing.T) {
		node, err := C("x-foo", fooCtor, Config{ClassName: "foo bar   baz"})
		require.NoError(t, err)
		assert.Equal(t, ClassMap{"foo": true, "bar": true, "baz": true}, node.Data.Class)
	})

	t.Run("className with classMap fails", func(t *testing.T) {
		_, err := C("x-foo", fooCtor, Config{
			ClassName: "foo",
			ClassMap:  ClassMap{"foo": true},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "className")

		var cfgErr *ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "className", cfgErr.Field)
		assert.Equal(t, "x-foo", cfgErr.Sel)
	})

	t.Run("styleMap", func(t *testing.T) {
		node, err := C("x-foo", fooCtor, Config{StyleMap: StyleMap{"color": "red"}})
		require.NoError(t, err)
		m, ok := node.Data.Style.Map()
		require.True(t, ok)
		assert.Equal(t, StyleMap{"color": "red"}, m)
	})

	t.Run("style string", func(t *testing.T) {
		ref := Circular(func() *Ctor { return fooCtor })
		node, err := C("x-foo", ref, Config{Style: "color:red"})
		require.NoError(t, err)
		text, ok := node.Data.Style.Text()
		require.True(t, ok)
		assert.Equal(t, "color:red", text)
	})

	t.Run("style object is coerced", func(t *testing.T) {
		ref := Circular(func() *Ctor { return fooCtor })
		node, err := C("x-foo", ref, Config{Style: map[string]string{"color": "red"}})
		require.NoError(t, err)
		assert.Equal(t, "[object Object]", node.Data.Style.String())
	})

	t.Run("children pass through", func(t *testing.T) {
		child := T("x")
		node, err := C("x-foo", fooCtor, Config{}, child, nil)
		require.NoError(t, err)
		assert.Equal(t, []*VNode{child, nil}, node.Children)
	})

	t.Run("nil constructor", func(t *testing.T) {
		_, err := C("x-foo", nil, Config{})
		assert.ErrorIs(t, err, ErrNilCtor)

		var missing *Ctor
		_, err = C("x-foo", missing, Config{})
		assert.ErrorIs(t, err, ErrNilCtor)
	})

	t.Run("factory returning nil", func(t *testing.T) {
		_, err := C("x-foo", Circular(func() *Ctor { return nil }), Config{})
		assert.ErrorIs(t, err, ErrUnresolvedCtor)
	})
}

func TestCForceTagName(t *testing.T) {
	bar := &Ctor{Name: "Bar", ForceTagName: "div"}

	t.Run("substitutes tag and records selector", func(t *testing.T) {
		attrs := Attrs{"title": "hello"}
		node, err := C("x-bar", bar, Config{Attrs: attrs})
		require.NoError(t, err)
		assert.Equal(t, "div", node.Tag)
		assert.Equal(t, "x-bar", node.Sel)
		assert.True(t, node.Forced())
		assert.Equal(t, Attrs{"title": "hello", "is": "x-bar"}, node.Data.Attrs)
		assert.Equal(t, Attrs{"title": "hello"}, attrs, "caller attrs must not be mutated")
	})

	t.Run("explicit is attribute wins", func(t *testing.T) {
		node, err := C("span", bar, Config{Attrs: Attrs{"is": "x-bar"}})
		require.NoError(t, err)
		assert.Equal(t, "span", node.Tag)
		assert.Equal(t, "x-bar", node.Data.Attrs["is"])
		assert.False(t, node.Forced())
	})

	t.Run("circular constructor with forced tag", func(t *testing.T) {
		node, err := C("x-bar", Circular(func() *Ctor { return bar }), Config{})
		require.NoError(t, err)
		assert.Equal(t, "div", node.Tag)
		assert.Equal(t, "x-bar", node.Data.Attrs["is"])
	})
}

func TestH(t *testing.T) {
	t.Run("className to class map", func(t *testing.T) {
		node, err := H("p", Config{ClassName: "foo"}, []any{})
		require.NoError(t, err)
		assert.Equal(t, ClassMap{"foo": true}, node.Data.Class)
		assert.Nil(t, node.Ctor)
		assert.Equal(t, KindElement, node.Kind)
		assert.Equal(t, "p", node.Tag)
	})

	t.Run("allows nil children", func(t *testing.T) {
		node, err := H("p", Config{}, []any{nil})
		require.NoError(t, err)
		assert.Equal(t, []*VNode{nil}, node.Children)
	})

	t.Run("keeps positions of nil children", func(t *testing.T) {
		a, b := T("a"), T("b")
		var typedNil *VNode
		node, err := H("ul", Config{}, []any{a, nil, typedNil, b})
		require.NoError(t, err)
		assert.Equal(t, []*VNode{a, nil, nil, b}, node.Children)
	})

	t.Run("splits className on whitespace", func(t *testing.T) {
		node, err := H("p", Config{ClassName: "foo bar   baz"}, nil)
		require.NoError(t, err)
		assert.Equal(t, ClassMap{"foo": true, "bar": true, "baz": true}, node.Data.Class)
		assert.Empty(t, node.Children)
	})

	t.Run("className with classMap fails", func(t *testing.T) {
		_, err := H("p", Config{ClassName: "foo", ClassMap: ClassMap{"foo": true}}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "className")
	})

	t.Run("rejects non node children", func(t *testing.T) {
		tests := []struct {
			name     string
			children []any
			index    int
			typ      string
		}{
			{"string", []any{"text"}, 0, "string"},
			{"placeholder value", []any{T("ok"), struct{}{}}, 1, "struct {}"},
			{"number", []any{nil, nil, 42}, 2, "int"},
			{"node value", []any{VNode{}}, 0, "vdom.VNode"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := H("p", Config{}, tt.children)
				var childErr *InvalidChildError
				require.True(t, errors.As(err, &childErr))
				assert.Equal(t, tt.index, childErr.Index)
				assert.Equal(t, tt.typ, childErr.Type)
				assert.Equal(t, "p", childErr.Sel)
			})
		}
	})

	t.Run("style precedence", func(t *testing.T) {
		node, err := H("p", Config{StyleMap: StyleMap{"color": "red"}}, nil)
		require.NoError(t, err)
		m, ok := node.Data.Style.Map()
		require.True(t, ok)
		assert.Equal(t, StyleMap{"color": "red"}, m)

		node, err = H("p", Config{Style: "color:red"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "color:red", node.Data.Style.String())

		node, err = H("p", Config{Style: map[string]any{"color": "red"}}, nil)
		require.NoError(t, err)
		assert.Equal(t, "[object Object]", node.Data.Style.String())
	})

	t.Run("opaque fields pass through", func(t *testing.T) {
		node, err := H("p", Config{
			Attrs: Attrs{"id": "x"},
			Key:   7,
			Is:    "x-p",
			Props: map[string]any{"ref": "para"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, Attrs{"id": "x"}, node.Data.Attrs)
		assert.Equal(t, 7, node.Data.Key)
		assert.Equal(t, "x-p", node.Data.Is)
		assert.Equal(t, "para", node.Data.Props["ref"])
		assert.True(t, node.Data.Style.IsZero())
		assert.Nil(t, node.Data.Class)
	})
}

func TestT(t *testing.T) {
	node := T("hello")
	assert.Equal(t, KindText, node.Kind)
	assert.Equal(t, "hello", node.Text)
	assert.Equal(t, "n=3", Tf("n=%d", 3).Text)
}

func TestIsCircular(t *testing.T) {
	tests := []struct {
		name string
		ref  CtorRef
		want bool
	}{
		{"nil", nil, false},
		{"constructor", fooCtor, false},
		{"factory", Circular(func() *Ctor { return fooCtor }), true},
		{"factory returning nil", Circular(func() *Ctor { return nil }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCircular(tt.ref))
		})
	}
}
