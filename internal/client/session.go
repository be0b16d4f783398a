package client

import (
	"net/http"
	"net/url"
)

// SessionCookie is the http-only cookie the server issues on login.
const SessionCookie = "__quack_token"

// WithSession resumes a session saved from an earlier login.
func WithSession(token string) Option {
	return func(c *Client) {
		c.session = token
	}
}

func (c *Client) restoreSession(token string) {
	cookie := &http.Cookie{Name: SessionCookie, Value: token, Path: "/"}

	jar := c.http.GetClient().Jar
	u, err := url.Parse(c.http.BaseURL)
	if jar == nil || err != nil {
		c.http.SetCookie(cookie)
		return
	}
	jar.SetCookies(u, []*http.Cookie{cookie})
}

// Session returns the current session token, or "" when not logged in.
func (c *Client) Session() string {
	jar := c.http.GetClient().Jar
	if jar == nil {
		return c.session
	}

	u, err := url.Parse(c.http.BaseURL)
	if err != nil {
		return ""
	}
	for _, cookie := range jar.Cookies(u) {
		if cookie.Name == SessionCookie {
			return cookie.Value
		}
	}
	return ""
}
