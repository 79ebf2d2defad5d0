package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_SetQuantity(t *testing.T) {
	cart := NewCart()

	cart.SetQuantity(5, 2)
	assert.Equal(t, 2, cart.Quantity(5))

	// Overwrites, never accumulates
	cart.SetQuantity(5, 3)
	assert.Equal(t, 3, cart.Quantity(5))

	// Zero removes the entry
	cart.SetQuantity(5, 0)
	assert.Equal(t, 0, cart.Quantity(5))
	assert.True(t, cart.IsEmpty())

	// Negative quantities are clamped to removal
	cart.SetQuantity(7, 4)
	cart.SetQuantity(7, -1)
	assert.Equal(t, 0, cart.Quantity(7))
}

func TestCart_TotalQuantity(t *testing.T) {
	cart := NewCart()
	assert.Equal(t, 0, cart.TotalQuantity())

	cart.SetQuantity(5, 2)
	cart.SetQuantity(7, 1)
	assert.Equal(t, 3, cart.TotalQuantity())
}

func TestCart_TicketTypeIDs(t *testing.T) {
	cart := NewCart()
	cart.SetQuantity(42, 1)
	cart.SetQuantity(7, 2)
	cart.SetQuantity(19, 3)

	assert.Equal(t, []int{7, 19, 42}, cart.TicketTypeIDs())
}

func TestCart_SerializeRoundTrip(t *testing.T) {
	cart := NewCart()
	cart.SetQuantity(5, 2)
	cart.SetQuantity(7, 1)

	restored, err := DeserializeCart(cart.Serialize())
	require.NoError(t, err)

	assert.Equal(t, cart.Quantities, restored.Quantities)
}

func TestCart_SerializeEmpty(t *testing.T) {
	cart := NewCart()
	assert.Equal(t, "{}", cart.Serialize())

	restored, err := DeserializeCart("{}")
	require.NoError(t, err)
	assert.True(t, restored.IsEmpty())
}

func TestDeserializeCart(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[int]int
		wantErr bool
	}{
		{
			name:  "valid cart",
			input: `{"5":2,"7":1}`,
			want:  map[int]int{5: 2, 7: 1},
		},
		{
			name:  "zero quantities are dropped",
			input: `{"5":2,"7":0}`,
			want:  map[int]int{5: 2},
		},
		{
			name:  "empty object",
			input: `{}`,
			want:  map[int]int{},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not JSON",
			input:   "not json at all",
			wantErr: true,
		},
		{
			name:    "JSON array instead of object",
			input:   `[1,2,3]`,
			wantErr: true,
		},
		{
			name:    "JSON null",
			input:   `null`,
			wantErr: true,
		},
		{
			name:    "non-integer key",
			input:   `{"vip":2}`,
			wantErr: true,
		},
		{
			name:    "fractional quantity",
			input:   `{"5":1.5}`,
			wantErr: true,
		},
		{
			name:    "negative quantity",
			input:   `{"5":-1}`,
			wantErr: true,
		},
		{
			name:    "string quantity",
			input:   `{"5":"2"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart, err := DeserializeCart(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				var malformed *MalformedCartError
				assert.ErrorAs(t, err, &malformed)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, cart.Quantities)
		})
	}
}
