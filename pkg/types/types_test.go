package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltins(t *testing.T) {
	store := NewStore()

	tests := []struct {
		name string
		kind Kind
	}{
		{name: "UUID", kind: KindUUID},
		{name: "String", kind: KindString},
		{name: "DateTime", kind: KindDateTime},
		{name: "Encrypted", kind: KindString},
	}
	for _, tt := range tests {
		typ, ok := store.Get(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.name, typ.Name())
		assert.Equal(t, tt.kind, typ.Kind())
	}

	_, ok := store.Get("Blob")
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	store := NewEmptyStore()
	require.NoError(t, store.Register(New("Token", KindString)))

	typ, ok := store.Get("Token")
	require.True(t, ok)
	assert.Equal(t, KindString, typ.Kind())

	err := store.Register(New("Token", KindUUID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `type "Token" already exists`)
}
