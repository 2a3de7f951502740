package ipc

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"resty.dev/v3"
)

type Client struct {
	rc *resty.Client
}

// NewClient talks to a running photoframe over the unix socket at path.
func NewClient(path string) *Client {
	return newClient("http://photoframe", &http.Client{
		Transport: &http.Transport{
			DialContext: func(_ context.Context, _, _ string) (net.Conn, error) {
				return net.Dial("unix", path)
			},
		},
	})
}

func newClient(baseURL string, hc *http.Client) *Client {
	client := resty.NewWithClient(hc)
	client.SetBaseURL(baseURL)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", "photoframe")
	return &Client{rc: client}
}

func (c *Client) Status() (*StatusResponse, error) {
	result := StatusResponse{}

	res, err := c.rc.R().SetResult(&result).Get("/status")
	if err != nil {
		return nil, fmt.Errorf("error getting status: %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("error getting status: %s", res.Status())
	}
	return &result, nil
}

func (c *Client) Next() error {
	return c.post("/next")
}

func (c *Client) Stop() error {
	return c.post("/stop")
}

func (c *Client) post(path string) error {
	result := Response{}

	res, err := c.rc.R().SetResult(&result).Post(path)
	if err != nil {
		return fmt.Errorf("error sending %s: %w", path, err)
	}
	if res.StatusCode() != http.StatusOK {
		return fmt.Errorf("error sending %s: %s", path, res.Status())
	}
	return nil
}

func SendStatus() (*StatusResponse, error) {
	return NewClient(SocketPath()).Status()
}

func SendNext() error {
	return NewClient(SocketPath()).Next()
}

func SendStop() error {
	return NewClient(SocketPath()).Stop()
}
