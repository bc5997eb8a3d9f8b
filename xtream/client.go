// Package xtream implements the slice of the Xtream Codes panel API
// the player needs: account verification, live categories, live
// streams, and playable stream addresses.
package xtream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrAuth reports that the panel rejected the credentials.
var ErrAuth = errors.New("xtream: authentication rejected")

// defaultTimeout bounds panel API calls when the caller supplies no
// client of its own.
const defaultTimeout = 10 * time.Second

// Client talks to one Xtream panel on behalf of one account.
type Client struct {
	host string
	user string
	pass string
	http *http.Client
}

// NewClient normalizes the host (a bare host:port gets an http
// scheme) and returns a client. A nil http.Client gets a timeout-
// bounded default.
func NewClient(host, username, password string, client *http.Client) (*Client, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return nil, errors.New("xtream: host required")
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("xtream: parse host: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("xtream: host %q has no address", host)
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		host: strings.TrimRight(u.String(), "/"),
		user: username,
		pass: password,
		http: client,
	}, nil
}

// Host returns the normalized panel address.
func (c *Client) Host() string {
	return c.host
}

func (c *Client) api(action string) string {
	q := url.Values{}
	q.Set("username", c.user)
	q.Set("password", c.pass)
	if action != "" {
		q.Set("action", action)
	}
	return c.host + "/player_api.php?" + q.Encode()
}

func (c *Client) get(ctx context.Context, action string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.api(action), nil)
	if err != nil {
		return fmt.Errorf("xtream: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("xtream: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("xtream: unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("xtream: decode response: %w", err)
	}
	return nil
}

// Login verifies the account against the panel. Credentials the panel
// refuses yield ErrAuth; transport and decoding problems yield their
// own errors.
func (c *Client) Login(ctx context.Context) error {
	var reply struct {
		UserInfo struct {
			Auth   FlexInt `json:"auth"`
			Status string  `json:"status"`
		} `json:"user_info"`
	}
	if err := c.get(ctx, "", &reply); err != nil {
		return err
	}
	if reply.UserInfo.Auth != 1 {
		return ErrAuth
	}
	return nil
}

// LiveCategories fetches the panel's live TV categories.
func (c *Client) LiveCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.get(ctx, "get_live_categories", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// LiveStreams fetches every live stream the account can see.
func (c *Client) LiveStreams(ctx context.Context) ([]Stream, error) {
	var streams []Stream
	if err := c.get(ctx, "get_live_streams", &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// StreamURL returns the playable address of a live stream.
func (c *Client) StreamURL(id FlexInt) string {
	return fmt.Sprintf("%s/live/%s/%s/%d.ts",
		c.host, url.PathEscape(c.user), url.PathEscape(c.pass), int(id))
}
