package integration

import (
	"testing"

	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
)

func TestAdminAuth(t *testing.T) {
	app, db := newApp(t)

	admin := testdb.SeedUser(t, db, entity.UserTierAdmin, 0)
	member := testdb.SeedUser(t, db, entity.UserTierT2, 0)
	adminToken := login(t, app, admin.Email)
	memberToken := login(t, app, member.Email)

	t.Run("Invalid Password", func(t *testing.T) {
		status, _ := call(t, app, "POST", "/api/auth/login", "", map[string]string{"email": admin.Email, "password": "wrongpassword"})
		assert.Equal(t, 401, status)
	})

	t.Run("Admin reaches admin routes", func(t *testing.T) {
		for _, path := range []string{"/api/admin/users", "/api/admin/orders", "/api/admin/cancellation-requests", "/api/admin/pricing-rules"} {
			status, res := call(t, app, "GET", path, adminToken, nil)
			assert.Equal(t, 200, status, path)
			assert.True(t, res.Success, path)
		}
	})

	t.Run("Regular user denied", func(t *testing.T) {
		for _, path := range []string{"/api/admin/users", "/api/admin/orders", "/api/admin/cancellation-requests", "/api/admin/pricing-rules"} {
			status, _ := call(t, app, "GET", path, memberToken, nil)
			assert.Equal(t, 403, status, path)
		}
	})

	t.Run("Missing token", func(t *testing.T) {
		status, _ := call(t, app, "GET", "/api/admin/users", "", nil)
		assert.Equal(t, 401, status)
	})
}
