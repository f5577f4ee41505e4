// api/cache/key_test.go
package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	t.Run("SortsParameterNames", func(t *testing.T) {
		key := BuildKey("student_list", map[string]any{"page": 1, "grade": "5A", "limit": 10})
		assert.Equal(t, "student_list:grade:5A|limit:10|page:1", key)
	})

	t.Run("PermutationInvariant", func(t *testing.T) {
		a := map[string]any{}
		b := map[string]any{}
		names := []string{"z", "y", "x", "w", "v"}
		for i, n := range names {
			a[n] = i
		}
		for i := len(names) - 1; i >= 0; i-- {
			b[names[i]] = i
		}
		for i := 0; i < 20; i++ {
			assert.Equal(t, BuildKey("p", a), BuildKey("p", b))
		}
	})

	t.Run("DistinctValuesDistinctKeys", func(t *testing.T) {
		assert.NotEqual(t,
			BuildKey("p", map[string]any{"a": 1, "b": 2}),
			BuildKey("p", map[string]any{"a": 2, "b": 1}))
		assert.NotEqual(t,
			BuildKey("student", map[string]any{"a": 1}),
			BuildKey("user", map[string]any{"a": 1}))
	})

	t.Run("OmitsUndefined", func(t *testing.T) {
		var missing *string
		grade := "5A"
		key := BuildKey("student_list", map[string]any{"grade": &grade, "section": missing, "year": nil})
		assert.Equal(t, "student_list:grade:5A", key)
	})

	t.Run("EmptyParams", func(t *testing.T) {
		assert.Equal(t, "student:", BuildKey("student", nil))
		assert.Equal(t, "student:", BuildKey("student", map[string]any{}))
	})

	t.Run("RendersValues", func(t *testing.T) {
		active := false
		at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		key := BuildKey("k", map[string]any{"active": &active, "at": at})
		assert.Equal(t, "k:active:false|at:2024-03-01T12:00:00Z", key)
	})
}

func TestEntityKeys(t *testing.T) {
	assert.Equal(t, "student:42", EntityKey("student", "42"))
	assert.Equal(t, "student_list:*", ListPattern("student"))
	assert.Equal(t, "student_list", ListPrefix("student"))
}
