package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/pkg/ddms"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeAPI struct {
	*httptest.Server
	mux  *http.ServeMux
	hits atomic.Int32
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{mux: http.NewServeMux()}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func writeOK(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, ddms.Envelope[any]{
		Status:      ddms.StatusSuccess,
		LoginStatus: ddms.LoginAuthenticated,
		Data:        data,
	})
}

func writeFail(w http.ResponseWriter, code int, errorCode string) {
	login := ddms.LoginAuthenticated
	if code == http.StatusUnauthorized {
		login = ddms.LoginExpired
	}
	writeEnvelope(w, code, ddms.Envelope[any]{
		Status:      ddms.StatusError,
		LoginStatus: login,
		ErrorCode:   errorCode,
	})
}

func writeEnvelope(w http.ResponseWriter, code int, env ddms.Envelope[any]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(env)
}

func testUser(grants ...access.Grant) User {
	return User{
		ID:          "u-1",
		Name:        "Asha",
		Mobile:      "9800000001",
		Roles:       []access.RoleGrant{{RoleName: "CASHIER", StoreID: "s-1"}},
		Permissions: grants,
		Stores:      []Store{{ID: "s-1", Name: "Main Temple"}, {ID: "s-2", Name: "Annex"}},
	}
}

func newTestClient(t *testing.T, api *fakeAPI, user *User) *Client {
	t.Helper()
	session := NewSession()
	if user != nil {
		session.SetAuth(*user, "access-1", "refresh-1")
	}
	c, err := New(Config{BaseURL: api.URL + "/api/v1", Logger: zaptest.NewLogger(t).Sugar()}, session)
	require.NoError(t, err)
	return c
}
