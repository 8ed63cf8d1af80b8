package client

import (
	"sync"

	"github.com/sangkips/ddms-api/internal/domain/access"
	"golang.org/x/oauth2"
)

// User is the authenticated operator as returned by /auth/login.
type User struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Mobile         string             `json:"mobile"`
	Email          string             `json:"email,omitempty"`
	Roles          []access.RoleGrant `json:"roles"`
	Permissions    []access.Grant     `json:"permissions,omitempty"`
	CurrentStoreID string             `json:"currentStoreId,omitempty"`
	Stores         []Store            `json:"stores"`
}

// Subject returns the permission view of the user.
func (u *User) Subject() *access.Subject {
	if u == nil {
		return nil
	}
	return &access.Subject{Roles: u.Roles, Permissions: u.Permissions}
}

// Store is a tenant the user can work in.
type Store struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Address            string `json:"address,omitempty"`
	City               string `json:"city,omitempty"`
	State              string `json:"state,omitempty"`
	Contact            string `json:"contact,omitempty"`
	SubscriptionStatus string `json:"subscriptionStatus,omitempty"`
}

// Session is the process-wide authentication context: the user, the
// token pair and the selected store. It is mutated only through its
// methods and is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	user   *User
	token  *oauth2.Token
	store  *Store
	hooks  []func()
	hookMu sync.Mutex
}

// NewSession returns an unauthenticated session.
func NewSession() *Session {
	return &Session{}
}

// SetAuth installs a freshly authenticated user. The first store, if
// any, becomes the current store unless the user already names one.
func (s *Session) SetAuth(user User, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.token = &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}
	s.store = nil
	for i := range user.Stores {
		if user.CurrentStoreID == "" || user.Stores[i].ID == user.CurrentStoreID {
			st := user.Stores[i]
			s.store = &st
			break
		}
	}
}

// IsAuthenticated reports whether a user and access token are present.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.token != nil && s.token.AccessToken != ""
}

// User returns a copy of the current user.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Token returns a copy of the token pair, or nil when logged out.
func (s *Session) Token() *oauth2.Token {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == nil {
		return nil
	}
	t := *s.token
	return &t
}

// CurrentStore returns the selected store.
func (s *Session) CurrentStore() (Store, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.store == nil {
		return Store{}, false
	}
	return *s.store, true
}

// HasPermission implements access.Authorizer for the current user.
func (s *Session) HasPermission(resource, action string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Subject().HasPermission(resource, action)
}

// Subject returns the permission view of the current user.
func (s *Session) Subject() *access.Subject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.Subject()
}

// OnLogout registers fn to run after every logout, once local state is
// cleared. It is the hand-off to the login entry point.
func (s *Session) OnLogout(fn func()) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// swapTokens replaces the token pair in one step. An empty refresh
// token keeps the previous one. It reports false if the session was
// cleared in the meantime.
func (s *Session) swapTokens(accessToken, refreshToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.token == nil {
		return false
	}
	next := *s.token
	next.AccessToken = accessToken
	if refreshToken != "" {
		next.RefreshToken = refreshToken
	}
	s.token = &next
	return true
}

// setStore moves the session to store. The token pair is replaced in
// one step; an empty refresh token keeps the previous one. A non-nil
// user replaces the grants of the current user.
func (s *Session) setStore(store Store, user *User, accessToken, refreshToken string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || s.token == nil {
		return false
	}
	s.store = &store
	s.user.CurrentStoreID = store.ID
	if user != nil {
		s.replaceGrantsLocked(*user)
	}
	if accessToken != "" {
		next := *s.token
		next.AccessToken = accessToken
		if refreshToken != "" {
			next.RefreshToken = refreshToken
		}
		s.token = &next
	}
	return true
}

// setGrants replaces the roles and permissions of the current user.
func (s *Session) setGrants(user User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.replaceGrantsLocked(user)
}

func (s *Session) replaceGrantsLocked(user User) {
	next := *s.user
	next.Roles = user.Roles
	next.Permissions = user.Permissions
	s.user = &next
}

// clear drops all credentials and runs the logout hooks. It does
// nothing when the session is already empty.
func (s *Session) clear() {
	s.mu.Lock()
	if s.user == nil && s.token == nil {
		s.mu.Unlock()
		return
	}
	s.user = nil
	s.token = nil
	s.store = nil
	s.mu.Unlock()

	s.hookMu.Lock()
	hooks := make([]func(), len(s.hooks))
	copy(hooks, s.hooks)
	s.hookMu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}
