package kernel_test

import (
	"testing"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.False(t, id1.IsZero())
	assert.False(t, id1.IsEqual(id2))
	assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("accepted forms", func(t *testing.T) {
		for _, input := range []string{
			canonical,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)
			require.NoError(t, err, input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("rejected forms", func(t *testing.T) {
		for _, input := range []string{
			"",
			"not-a-uuid",
			"550e8400-e29b-41d4-a716",
			"550e8400-e29b-41d4-a716-44665544000g",
		} {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("nil uuid parses but does not validate", func(t *testing.T) {
		id, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		require.NoError(t, err)
		assert.True(t, id.IsZero())
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("valid bytes", func(t *testing.T) {
		id, err := kernel.UUIDFromBytes([]byte{
			0x55, 0x0e, 0x84, 0x00, 0xe2, 0x9b, 0x41, 0xd4,
			0xa7, 0x16, 0x44, 0x66, 0x55, 0x44, 0x00, 0x00,
		})

		require.NoError(t, err)
		assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
	})

	t.Run("short slice", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e, 0x84})
		assert.ErrorContains(t, err, "invalid UUID format")
	})

	t.Run("nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_GoogleRoundTrip(t *testing.T) {
	raw := uuid.New()
	id := kernel.UUIDFromGoogle(raw)

	assert.Equal(t, raw, id.Bytes())
	assert.Equal(t, raw.String(), id.String())
}

func TestUUID_Compare(t *testing.T) {
	a, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000001")
	b, _ := kernel.UUIDFromString("00000000-0000-0000-0000-000000000002")

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestUUID_ZeroValue(t *testing.T) {
	var id kernel.UUID

	assert.True(t, id.IsZero())
	assert.True(t, id.IsEqual(kernel.UUID{}))
	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
}

func TestUUID_BytesIsACopy(t *testing.T) {
	original := kernel.NewUUID()
	text := original.String()

	b := original.Bytes()
	for i := range b {
		b[i] = 0xFF
	}

	assert.Equal(t, text, original.String())
}
