package authz

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mukta-28/Movie-Review-Project/internal/core/domain"
)

func TestCheck(t *testing.T) {
	user := &domain.Identity{UserID: 1, Email: "u@example.com", Role: domain.RoleUser}
	admin := &domain.Identity{UserID: 2, Email: "a@example.com", Role: domain.RoleAdmin}

	tests := []struct {
		name string
		id   *domain.Identity
		req  Requirement
		want error
	}{
		{"public anonymous", nil, None(), nil},
		{"public user", user, None(), nil},
		{"authenticated anonymous", nil, AnyAuthenticated(), domain.ErrUnauthorized},
		{"authenticated user", user, AnyAuthenticated(), nil},
		{"admin route anonymous", nil, RoleIn(domain.RoleAdmin), domain.ErrUnauthorized},
		{"admin route user", user, RoleIn(domain.RoleAdmin), domain.ErrForbidden},
		{"admin route admin", admin, RoleIn(domain.RoleAdmin), nil},
		{"user or admin route user", user, RoleIn(domain.RoleUser, domain.RoleAdmin), nil},
		{"user or admin route admin", admin, RoleIn(domain.RoleUser, domain.RoleAdmin), nil},
		{"empty role set", admin, RoleIn(), domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, Check(tt.id, tt.req), tt.want)
			if tt.want == nil {
				assert.NoError(t, Check(tt.id, tt.req))
			}
		})
	}
}

func TestRoleInCopiesRoles(t *testing.T) {
	roles := []domain.Role{domain.RoleAdmin}
	req := RoleIn(roles...)
	roles[0] = domain.RoleUser

	err := Check(&domain.Identity{Role: domain.RoleUser}, req)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPolicyLookup(t *testing.T) {
	p := NewPolicy(AnyAuthenticated(),
		Rule{Method: http.MethodGet, Path: "/api/movies", Requirement: None()},
		Rule{Method: http.MethodPost, Path: "/api/movies", Requirement: RoleIn(domain.RoleAdmin)},
	)

	assert.True(t, p.Lookup(http.MethodGet, "/api/movies").Public())
	assert.True(t, p.Lookup("get", "/api/movies").Public())
	assert.Equal(t, "role in [ADMIN]", p.Lookup(http.MethodPost, "/api/movies").String())
	assert.Equal(t, "authenticated", p.Lookup(http.MethodDelete, "/api/unknown").String())
}
