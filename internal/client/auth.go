package client

import (
	"context"
	"net/http"
)

type loginResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// Login authenticates with mobile number and password and installs the
// result in the session.
func (c *Client) Login(ctx context.Context, mobile, password string) (*User, error) {
	r, err := c.newRequest(http.MethodPost, pathLogin, nil, map[string]string{
		"mobile":   mobile,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	var out loginResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	c.session.SetAuth(out.User, out.Token, out.RefreshToken)
	return &out.User, nil
}

// Me returns the current user as the server sees it.
func (c *Client) Me(ctx context.Context) (*User, error) {
	r, err := c.newRequest(http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var out User
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStores returns the stores the user may switch to.
func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	r, err := c.newRequest(http.MethodGet, "/stores", nil, nil)
	if err != nil {
		return nil, err
	}
	var out []Store
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type switchStoreResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Store        Store  `json:"store"`
	User         *User  `json:"user"`
}

// SwitchStore moves the session to another store. The server issues a
// token pair scoped to that store, and the user's roles and permissions
// are replaced with those in force there.
func (c *Client) SwitchStore(ctx context.Context, storeID string) (*Store, error) {
	r, err := c.newRequest(http.MethodPost, "/store-context/switch", nil, map[string]string{
		"storeId": storeID,
	})
	if err != nil {
		return nil, err
	}
	var out switchStoreResponse
	if err := c.do(ctx, r, &out); err != nil {
		return nil, err
	}
	if !c.session.setStore(out.Store, out.User, out.Token, out.RefreshToken) {
		return nil, ErrAuthenticationRequired
	}
	if out.User == nil {
		user, err := c.Me(ctx)
		if err != nil {
			return nil, err
		}
		c.session.setGrants(*user)
	}
	return &out.Store, nil
}
