package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/workflow"
	"github.com/sangkips/ddms-api/pkg/ddms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadBaseURL(t *testing.T) {
	_, err := New(Config{BaseURL: "not a url"}, nil)
	assert.Error(t, err)
}

func TestRequestsCarryBearerAndStoreHeaders(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))
		assert.Equal(t, "s-1", r.Header.Get(ddms.HeaderStoreID))
		writeOK(w, map[string]any{"id": "r-1", "receiptState": "DRAFT", "totalAmount": "250.50"})
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	rec, err := c.GetReceipt(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStateDraft, rec.ReceiptState)
	assert.Equal(t, "250.5", rec.TotalAmount.String())
}

func TestUnauthorizedRefreshesOnceAndRetries(t *testing.T) {
	api := newFakeAPI(t)
	var refreshes int
	api.mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refresh-1", body["refreshToken"])
		writeOK(w, map[string]string{"token": "access-2", "refreshToken": "refresh-2"})
	})
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			writeFail(w, http.StatusUnauthorized, ddms.CodeTokenExpired)
			return
		}
		writeOK(w, map[string]any{"id": "r-1", "receiptState": "UNPAID"})
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	rec, err := c.GetReceipt(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, enum.ReceiptStateUnpaid, rec.ReceiptState)
	assert.Equal(t, 1, refreshes)

	tok := c.Session().Token()
	require.NotNil(t, tok)
	assert.Equal(t, "access-2", tok.AccessToken)
	assert.Equal(t, "refresh-2", tok.RefreshToken)
	assert.True(t, c.Session().IsAuthenticated())
}

func TestRefreshKeepsOldRefreshTokenWhenNoneReturned(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]string{"token": "access-2"})
	})
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			writeFail(w, http.StatusUnauthorized, "")
			return
		}
		writeOK(w, map[string]any{"id": "r-1"})
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	_, err := c.GetReceipt(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", c.Session().Token().RefreshToken)
}

func TestSecondUnauthorizedForcesLogout(t *testing.T) {
	api := newFakeAPI(t)
	var refreshes, logouts int
	api.mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshes++
		writeOK(w, map[string]string{"token": "access-2", "refreshToken": "refresh-2"})
	})
	api.mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		logouts++
		writeFail(w, http.StatusUnauthorized, "")
	})
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusUnauthorized, ddms.CodeTokenExpired)
	})

	user := testUser()
	c := newTestClient(t, api, &user)
	redirected := 0
	c.Session().OnLogout(func() { redirected++ })

	_, err := c.GetReceipt(context.Background(), "r-1")
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, refreshes)
	assert.Equal(t, 1, logouts)
	assert.Equal(t, 1, redirected)
	assert.False(t, c.Session().IsAuthenticated())
	assert.Nil(t, c.Session().Token())
}

func TestFailedRefreshForcesLogout(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusUnauthorized, ddms.CodeInvalidToken)
	})
	api.mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	})
	var reads int
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		reads++
		writeFail(w, http.StatusUnauthorized, ddms.CodeTokenExpired)
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	_, err := c.GetReceipt(context.Background(), "r-1")
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, reads)
	assert.False(t, c.Session().IsAuthenticated())
}

func TestUnauthorizedWithoutRefreshTokenRequiresLogin(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	})
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusUnauthorized, "")
	})

	c := newTestClient(t, api, nil)
	c.Session().SetAuth(testUser(), "access-1", "")

	_, err := c.GetReceipt(context.Background(), "r-1")
	require.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.False(t, c.Session().IsAuthenticated())
}

func TestLoggedOutLoginStatusClearsSession(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, nil)
	})
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, ddms.Envelope[any]{
			Status:      ddms.StatusSuccess,
			LoginStatus: ddms.LoginUnauthenticated,
		})
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	_, err := c.GetReceipt(context.Background(), "r-1")
	require.ErrorIs(t, err, ErrAuthenticationRequired)
	assert.False(t, c.Session().IsAuthenticated())
}

func TestErrorEnvelopeSurfacesCode(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/receipts/r-1/pay", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusUnprocessableEntity, ddms.CodeOverpayment)
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	_, err := c.PayReceipt(context.Background(), "r-1", mustDecimal(t, "5000"), "cash")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ddms.CodeOverpayment, apiErr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, ddms.CodeOverpayment, err.Error())
	assert.True(t, c.Session().IsAuthenticated())
}

func TestLogoutIsBestEffortAndRepeatable(t *testing.T) {
	api := newFakeAPI(t)
	var logouts int
	api.mux.HandleFunc("POST /api/v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		logouts++
		writeFail(w, http.StatusInternalServerError, ddms.CodeInternal)
	})

	user := testUser()
	c := newTestClient(t, api, &user)
	redirected := 0
	c.Session().OnLogout(func() { redirected++ })

	err := c.Logout(context.Background())
	assert.Error(t, err)
	assert.False(t, c.Session().IsAuthenticated())
	assert.Equal(t, 1, redirected)

	assert.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, 1, logouts)
}

func TestLoginAndSwitchStore(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeOK(w, map[string]any{
			"user":         testUser(access.Grant{Resource: "receipts", Action: "read"}),
			"token":        "access-1",
			"refreshToken": "refresh-1",
		})
	})
	api.mux.HandleFunc("POST /api/v1/store-context/switch", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s-2", body["storeId"])
		writeOK(w, map[string]any{
			"token":        "access-s2",
			"refreshToken": "refresh-s2",
			"store":        Store{ID: "s-2", Name: "Annex"},
			"user":         testUser(access.Grant{Resource: "receipts", Action: "read"}),
		})
	})

	c := newTestClient(t, api, nil)
	user, err := c.Login(context.Background(), "9800000001", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)

	store, ok := c.Session().CurrentStore()
	require.True(t, ok)
	assert.Equal(t, "s-1", store.ID)
	assert.True(t, c.Session().HasPermission("receipts", "read"))

	_, err = c.SwitchStore(context.Background(), "s-2")
	require.NoError(t, err)
	store, _ = c.Session().CurrentStore()
	assert.Equal(t, "s-2", store.ID)
	assert.Equal(t, "access-s2", c.Session().Token().AccessToken)
	assert.Equal(t, "refresh-s2", c.Session().Token().RefreshToken)
}

func TestRefreshAfterSwitchUsesStoreToken(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/store-context/switch", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]any{
			"token":        "access-s2",
			"refreshToken": "refresh-s2",
			"store":        Store{ID: "s-2", Name: "Annex"},
			"user":         testUser(),
		})
	})
	var exchanged string
	api.mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		exchanged = body["refreshToken"]
		writeOK(w, map[string]string{"token": "access-s2b", "refreshToken": "refresh-s2b"})
	})
	api.mux.HandleFunc("GET /api/v1/receipts/r-1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "s-2", r.Header.Get(ddms.HeaderStoreID))
		if r.Header.Get("Authorization") != "Bearer access-s2b" {
			writeFail(w, http.StatusUnauthorized, ddms.CodeTokenExpired)
			return
		}
		writeOK(w, map[string]any{"id": "r-1", "receiptState": "UNPAID"})
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	_, err := c.SwitchStore(context.Background(), "s-2")
	require.NoError(t, err)
	_, err = c.GetReceipt(context.Background(), "r-1")
	require.NoError(t, err)
	assert.Equal(t, "refresh-s2", exchanged)
	assert.Equal(t, "refresh-s2b", c.Session().Token().RefreshToken)
}

func TestSwitchStoreReplacesGrants(t *testing.T) {
	api := newFakeAPI(t)
	inAnnex := testUser(access.Grant{Resource: access.ResourceReceipts, Action: access.ActionUpdate})
	inAnnex.Roles = []access.RoleGrant{{RoleName: "CASHIER", StoreID: "s-2"}}
	api.mux.HandleFunc("POST /api/v1/store-context/switch", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]any{
			"token":        "access-s2",
			"refreshToken": "refresh-s2",
			"store":        Store{ID: "s-2", Name: "Annex"},
			"user":         inAnnex,
		})
	})

	user := testUser(
		access.Grant{Resource: access.ResourceReceipts, Action: access.ActionUpdate},
		access.Grant{Resource: access.ResourceReceipts, Action: access.ActionApprove},
	)
	c := newTestClient(t, api, &user)

	kinds := func() []workflow.ActionKind {
		var out []workflow.ActionKind
		for _, a := range workflow.Actions(enum.ReceiptStatePendingApproval, c.Session()) {
			out = append(out, a.Kind)
		}
		return out
	}
	assert.Contains(t, kinds(), workflow.ActionApprove)

	_, err := c.SwitchStore(context.Background(), "s-2")
	require.NoError(t, err)
	assert.NotContains(t, kinds(), workflow.ActionApprove)
	assert.Contains(t, kinds(), workflow.ActionReject)

	u, ok := c.Session().User()
	require.True(t, ok)
	assert.Equal(t, "s-2", u.CurrentStoreID)
	assert.Len(t, u.Stores, 2)
}

func TestSwitchStoreWithoutUserReloadsProfile(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/store-context/switch", func(w http.ResponseWriter, r *http.Request) {
		writeOK(w, map[string]any{"token": "access-s2", "store": Store{ID: "s-2", Name: "Annex"}})
	})
	api.mux.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer access-s2", r.Header.Get("Authorization"))
		assert.Equal(t, "s-2", r.Header.Get(ddms.HeaderStoreID))
		writeOK(w, testUser())
	})

	user := testUser(access.Grant{Resource: access.ResourceReceipts, Action: access.ActionApprove})
	c := newTestClient(t, api, &user)

	_, err := c.SwitchStore(context.Background(), "s-2")
	require.NoError(t, err)
	assert.False(t, c.Session().HasPermission(access.ResourceReceipts, access.ActionApprove))
	assert.Equal(t, "refresh-1", c.Session().Token().RefreshToken)
}

func TestInvalidLoginDoesNotRefresh(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeFail(w, http.StatusUnauthorized, ddms.CodeInvalidCredentials)
	})

	c := newTestClient(t, api, nil)
	_, err := c.Login(context.Background(), "9800000001", "wrong")
	assert.Equal(t, ddms.CodeInvalidCredentials, ErrorCode(err))
	assert.EqualValues(t, 1, api.hits.Load())
}

func TestListReceiptsQuery(t *testing.T) {
	api := newFakeAPI(t)
	api.mux.HandleFunc("GET /api/v1/receipts", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "pending_approval", r.URL.Query().Get("state"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		writeOK(w, map[string]any{
			"receipts":   []map[string]any{{"id": "r-1", "receiptState": "PENDING_APPROVAL"}},
			"pagination": map[string]any{"current_page": 2, "per_page": 15, "total": 16, "total_pages": 2},
		})
	})

	user := testUser()
	c := newTestClient(t, api, &user)

	list, err := c.ListReceipts(context.Background(), ListReceiptsParams{State: enum.ReceiptStatePendingApproval, Page: 2})
	require.NoError(t, err)
	require.Len(t, list.Receipts, 1)
	assert.Equal(t, int64(16), list.Pagination.Total)
}
