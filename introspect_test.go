package lazydi

import (
	"errors"
	"testing"

	"github.com/a-peyrard/lazydi/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntrospect(t *testing.T) {
	t.Run("it should not expose accessors by default", func(t *testing.T) {
		// WHEN
		introspector, ok := New().Introspect()

		// THEN
		assert.False(t, ok)
		assert.Nil(t, introspector)
	})

	t.Run("it should expose accessors when enabled by settings", func(t *testing.T) {
		// WHEN
		_, ok := New(WithSettings(config.Settings{Introspection: true})).Introspect()

		// THEN
		assert.True(t, ok)
	})

	t.Run("it should describe the store without resolving anything", func(t *testing.T) {
		// GIVEN
		calls := 0
		container := New(WithIntrospection(true)).
			Add("value", 42).
			Add("lazy", func() any {
				calls++
				return "lazy"
			}).
			Add("broken", func() (any, error) {
				return nil, errors.New("boom")
			})
		container.Add("injected", container.InjectFunction(func(Deps, ...any) (any, error) {
			return "injected", nil
		}))
		_, _ = container.Resolve("broken")
		introspector, ok := container.Introspect()
		require.True(t, ok)

		// WHEN
		infos := introspector.Injectables()

		// THEN
		require.Len(t, infos, 4)
		assert.Equal(t, "broken", infos[0].Name)
		assert.Equal(t, Failed, infos[0].State)
		assert.ErrorIs(t, infos[0].Err, ErrCouldNotResolveDeps)
		assert.Equal(t, "injected", infos[1].Name)
		assert.True(t, infos[1].Injected)
		assert.Equal(t, "lazy", infos[2].Name)
		assert.Equal(t, Unresolved, infos[2].State)
		assert.True(t, infos[2].HasFactory)
		assert.Equal(t, "value", infos[3].Name)
		assert.Equal(t, Resolved, infos[3].State)
		assert.False(t, infos[3].HasFactory)
		assert.Equal(t, 42, infos[3].Value)
		assert.Equal(t, 0, calls)
	})

	t.Run("it should resolve through a getter only when asked", func(t *testing.T) {
		// GIVEN
		calls := 0
		container := New(WithIntrospection(true)).Add("lazy", func() any {
			calls++
			return "lazy"
		})
		introspector, _ := container.Introspect()

		// WHEN
		getter := introspector.Getter("lazy")
		require.Equal(t, 0, calls)
		value, err := getter.Get()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "lazy", value)
		assert.Equal(t, 1, calls)
		info, found := introspector.Injectable("lazy")
		assert.True(t, found)
		assert.Equal(t, Resolved, info.State)
	})

	t.Run("it should fail a getter of an unknown name on Get only", func(t *testing.T) {
		// GIVEN
		introspector, _ := New(WithIntrospection(true)).Introspect()
		getter := introspector.Getter("service2")

		// WHEN
		_, err := getter.Get()

		// THEN
		assert.ErrorIs(t, err, &Error{Kind: NotRegistered, Name: "service2"})
		_, found := introspector.Injectable("service2")
		assert.False(t, found)
	})
}

func TestDescribe(t *testing.T) {
	t.Run("it should dump every injectable with its state", func(t *testing.T) {
		// GIVEN
		container := New().
			Add("value", 42).
			Add("lazy", func() any { return "lazy" }).
			Add("broken", func() (any, error) { return nil, errors.New("boom") })
		_, _ = container.Resolve("broken")

		// WHEN
		description := container.Describe()

		// THEN
		assert.Contains(t, description, container.ID().String())
		assert.Contains(t, description, "\t- value (value, resolved)\n\t\tvalue: 42\n")
		assert.Contains(t, description, "\t- lazy (factory, unresolved)\n")
		assert.Contains(t, description, "\t- broken (factory, failed)\n\t\terror: CouldNotResolveDeps, broken:\n\tboom\n")
	})
}
