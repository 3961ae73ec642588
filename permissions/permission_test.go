package permissions

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)

	for _, endpoint := range data.Endpoints {
		assert.NotEmpty(t, endpoint.Permissions, "%s %s has no roles", endpoint.Method, endpoint.Path)
		assert.Contains(t, endpoint.Permissions, "admin", "%s %s", endpoint.Method, endpoint.Path)
	}
}

func TestFindPermissions(t *testing.T) {
	data := Get()
	require.NotNil(t, data)

	tests := []struct {
		name   string
		path   string
		method string
		roles  []string
	}{
		{
			name:   "convention status is admin only",
			path:   "/v1/conventions/{id}/status",
			method: http.MethodPost,
			roles:  []string{"admin"},
		},
		{
			name:   "quotes are open to operators",
			path:   "/v1/conventions/{id}/quote",
			method: http.MethodPost,
			roles:  []string{"admin", "gestionnaire", "operateur"},
		},
		{
			name:   "trailing slash ignored",
			path:   "/v1/reservations/",
			method: http.MethodPost,
			roles:  []string{"admin", "gestionnaire", "operateur"},
		},
		{
			name:   "hotel delete is admin only",
			path:   "/v1/hotels/{id}",
			method: http.MethodDelete,
			roles:  []string{"admin"},
		},
		{
			name:   "advancing a process excludes operators",
			path:   "/v1/processes/{reservation_id}/advance",
			method: http.MethodPost,
			roles:  []string{"admin", "gestionnaire"},
		},
		{
			name:   "unknown route",
			path:   "/v1/unknown",
			method: http.MethodGet,
			roles:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.roles, permission.Permissions)
		})
	}
}

func TestPermission_Allows(t *testing.T) {
	permission := Permission{Permissions: []string{"admin", "gestionnaire"}}

	assert.True(t, permission.Allows("gestionnaire"))
	assert.False(t, permission.Allows("operateur"))
	assert.False(t, Permission{}.Allows("admin"))
	assert.True(t, Permission{Skip: true}.Allows(""))
}

func TestParse(t *testing.T) {
	t.Run("duplicate route", func(t *testing.T) {
		_, err := parse([]byte(`{"endpoints":[
			{"path":"/v1/hotels","method":"GET","permissions":["admin"]},
			{"path":"/v1/hotels/","method":"get","permissions":["operateur"]}
		]}`))

		assert.ErrorIs(t, err, ErrDuplicateRoute)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := parse([]byte(`{"endpoints":`))

		assert.Error(t, err)
	})
}
