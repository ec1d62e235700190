// Package api is the flat catalog of typed request builders, one method per
// backend endpoint. Methods decode and normalize the response entity and do
// nothing else: no retry, no caching, no derived state.
package api

import (
	"github.com/moharam-dev/hotelbook/internal/httpx"
)

type Client struct {
	http *httpx.Client
}

func NewClient(http *httpx.Client) *Client {
	return &Client{http: http}
}
