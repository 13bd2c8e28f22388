package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// The state file holds the cookies the jar has for the backend origin, as
// opaque name/value pairs. Nothing in it is ever parsed beyond that; the
// credential stays a black box per the jar contract.

type persistedState struct {
	Cookies []persistedCookie `json:"cookies"`
}

type persistedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DefaultStatePath returns the conventional location of the client state
// file, under the user's config directory.
func DefaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "authify", "state.json"), nil
}

func (c *HTTPClient) loadState() error {
	data, err := os.ReadFile(c.statePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("parse state file: %w", err)
	}

	cookies := make([]*http.Cookie, 0, len(state.Cookies))
	for _, pc := range state.Cookies {
		cookies = append(cookies, &http.Cookie{Name: pc.Name, Value: pc.Value})
	}
	c.http.Jar.SetCookies(c.baseURL, cookies)
	return nil
}

func (c *HTTPClient) saveState() error {
	var state persistedState
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		state.Cookies = append(state.Cookies, persistedCookie{Name: cookie.Name, Value: cookie.Value})
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.statePath), 0o700); err != nil {
		return err
	}
	// 0600: the file carries the session credential.
	return os.WriteFile(c.statePath, data, 0o600)
}
