// Package permissions holds the role table checked by the RBAC middleware. Routes are keyed
// by method and chi route pattern, for example "PATCH /v1/hotels/{id}".
package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var ErrDuplicateRoute = errors.New("route listed twice")

type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. Skipped routes allow everyone.
func (p Permission) Allows(role string) bool {
	return p.Skip || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	once  sync.Once
	index map[string]int
}

func routeKey(method, path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// FindPermissions returns the entry of a route pattern, or a zero Permission that allows
// nobody. A trailing slash is ignored.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	r.once.Do(func() {
		r.index = make(map[string]int, len(r.Endpoints))
		for i, endpoint := range r.Endpoints {
			r.index[routeKey(endpoint.Method, endpoint.Path)] = i
		}
	})

	i, ok := r.index[routeKey(method, path)]
	if !ok {
		return Permission{}
	}

	return r.Endpoints[i]
}

func parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decoding permissions: %w", err)
	}

	seen := make(map[string]struct{}, len(data.Endpoints))

	for _, endpoint := range data.Endpoints {
		key := routeKey(endpoint.Method, endpoint.Path)
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, key)
		}

		seen[key] = struct{}{}
	}

	return &data, nil
}

// Get loads the embedded table. It returns nil when the table is invalid, which makes the
// RBAC middleware refuse every protected route.
func Get() *PermissionData {
	data, err := parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return data
}
