package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("creates device with all fields", func(t *testing.T) {
		d, err := New("uuid-1", "android", "phone", "Pixel 9", "Android", "15")
		require.NoError(t, err)

		assert.Equal(t, "uuid-1", d.UUID)
		assert.Equal(t, "android", d.Platform)
		assert.Equal(t, "phone", d.Type)
		assert.Equal(t, "Pixel 9", d.Name)
		assert.Equal(t, "Android", d.OS)
		assert.Equal(t, "15", d.OSVersion)
		assert.False(t, d.CreatedAt.IsZero())
		assert.Equal(t, d.CreatedAt, d.ModifiedAt)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		tests := []struct {
			name string
			args [6]string
		}{
			{"empty uuid", [6]string{"", "android", "phone", "Pixel", "Android", "15"}},
			{"empty platform", [6]string{"uuid-1", "", "phone", "Pixel", "Android", "15"}},
			{"empty type", [6]string{"uuid-1", "android", "", "Pixel", "Android", "15"}},
			{"empty name", [6]string{"uuid-1", "android", "phone", "", "Android", "15"}},
			{"empty os", [6]string{"uuid-1", "android", "phone", "Pixel", "", "15"}},
			{"empty os version", [6]string{"uuid-1", "android", "phone", "Pixel", "Android", ""}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				a := tt.args
				_, err := New(a[0], a[1], a[2], a[3], a[4], a[5])
				assert.Error(t, err)
			})
		}
	})
}

func TestDevice_UpdateOS(t *testing.T) {
	t.Run("updates changed os and version", func(t *testing.T) {
		d, err := New("uuid-1", "ios", "tablet", "iPad", "iOS", "17.1")
		require.NoError(t, err)
		created := d.ModifiedAt

		changed := d.UpdateOS("iOS", "18.0")
		assert.True(t, changed)
		assert.Equal(t, "iOS", d.OS)
		assert.Equal(t, "18.0", d.OSVersion)
		assert.True(t, d.ModifiedAt.Equal(created) || d.ModifiedAt.After(created))
	})

	t.Run("no change when values match", func(t *testing.T) {
		d, err := New("uuid-1", "ios", "tablet", "iPad", "iOS", "17.1")
		require.NoError(t, err)

		changed := d.UpdateOS("iOS", "17.1")
		assert.False(t, changed)
	})

	t.Run("ignores empty values", func(t *testing.T) {
		d, err := New("uuid-1", "ios", "tablet", "iPad", "iOS", "17.1")
		require.NoError(t, err)

		changed := d.UpdateOS("", "")
		assert.False(t, changed)
		assert.Equal(t, "iOS", d.OS)
		assert.Equal(t, "17.1", d.OSVersion)
	})
}
