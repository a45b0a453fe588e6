package integration

import (
	"encoding/json"
	"testing"

	"adorder-be/internal/entity"
	"adorder-be/internal/model"
	"adorder-be/internal/pkg/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminUserCRUD(t *testing.T) {
	app, db := newApp(t)
	admin := testdb.SeedUser(t, db, entity.UserTierAdmin, 0)
	token := login(t, app, admin.Email)

	email := "agency-" + uuid.NewString()[:8] + "@example.com"
	var created struct {
		Id          uuid.UUID `json:"id"`
		AccountCode string    `json:"account_code"`
	}

	t.Run("Create", func(t *testing.T) {
		status, res := call(t, app, "POST", "/api/admin/users", token, map[string]string{
			"email":        email,
			"password":     "password123",
			"tier":         "T3",
			"display_name": "Agency",
		})
		require.Equal(t, 201, status, res.Message)
		require.NoError(t, json.Unmarshal(res.Data, &created))
		assert.Regexp(t, `^AD\d{6}$`, created.AccountCode)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		status, res := call(t, app, "POST", "/api/admin/users", token, map[string]string{
			"email":        email,
			"password":     "password123",
			"tier":         "T1",
			"display_name": "Again",
		})
		assert.Equal(t, 400, status)
		require.NotNil(t, res.Error)
		assert.Equal(t, "Conflict", res.Error.Kind)
		assert.Equal(t, "Duplicate", res.Error.Reason)
	})

	t.Run("List by tier", func(t *testing.T) {
		status, res := call(t, app, "GET", "/api/admin/users?tier=T3&limit=100", token, nil)
		require.Equal(t, 200, status)
		var page struct {
			Items []struct {
				Id uuid.UUID `json:"id"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(res.Data, &page))
		ids := []uuid.UUID{}
		for _, u := range page.Items {
			ids = append(ids, u.Id)
		}
		assert.Contains(t, ids, created.Id)
	})

	t.Run("New user logs in and is credited", func(t *testing.T) {
		userToken := login(t, app, email)

		status, res := call(t, app, "POST", "/api/admin/users/"+created.Id.String()+"/ledger-adjustments", token,
			map[string]interface{}{"amount": 15000, "memo": "opening credit"})
		require.Equal(t, 200, status, res.Message)

		status, res = call(t, app, "GET", "/api/wallet", userToken, nil)
		require.Equal(t, 200, status)
		var wallet struct {
			Balance int64 `json:"balance"`
		}
		require.NoError(t, json.Unmarshal(res.Data, &wallet))
		assert.Equal(t, int64(15000), wallet.Balance)
	})

	t.Cleanup(func() {
		db.Where("user_id = ?", created.Id).Delete(&model.LedgerEntry{})
		db.Where("user_id = ?", created.Id).Delete(&model.Wallet{})
		db.Where("id = ?", created.Id).Delete(&model.User{})
	})
}
