package backend

import (
	"context"
	"encoding/json/v2"
	"log"
	"net/http"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is what the backend returns on successful authentication
type LoginResult struct {
	IDUsuario   int    `json:"id_usuario"`
	Username    string `json:"username"`
	Rol         string `json:"rol"`
	AccessToken string `json:"token"`
}

// Login authenticates a user against the backend. Wrong credentials are an
// expected outcome, not a failure: a 401 yields (nil, nil).
func (c *Client) Login(ctx context.Context, username string, password string) (*LoginResult, error) {
	const endpoint = "/login"
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}
	upstrRes, err := c.RequestJSON(ctx, "", http.MethodPost, endpoint, body)
	if err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	defer func() {
		if closeErr := upstrRes.Body.Close(); closeErr != nil {
			log.Printf("[WARN] %v [BACKEND]", closeErr)
		}
	}()
	if upstrRes.StatusCode == http.StatusUnauthorized {
		return nil, nil
	}
	if upstrRes.StatusCode != http.StatusOK {
		return nil, &FetchError{Endpoint: endpoint, Status: upstrRes.StatusCode}
	}
	var result LoginResult
	if err = json.UnmarshalRead(upstrRes.Body, &result); err != nil {
		return nil, &FetchError{Endpoint: endpoint, Err: err}
	}
	return &result, nil
}
