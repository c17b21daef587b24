package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRole_UnmarshalJSON(t *testing.T) {
	var r UserRole
	require.NoError(t, json.Unmarshal([]byte(`"admin"`), &r))
	assert.Equal(t, RoleAdmin, r)

	assert.Error(t, json.Unmarshal([]byte(`"owner"`), &r))
	assert.Equal(t, RoleAdmin, r)
}

func TestUserRole_Scan(t *testing.T) {
	var r UserRole
	require.NoError(t, r.Scan([]byte("cashier")))
	assert.Equal(t, RoleCashier, r)

	require.NoError(t, r.Scan(nil))
	assert.Equal(t, RoleCashier, r)

	assert.Error(t, r.Scan(42))
}
