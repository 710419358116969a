package restapi

import (
	"context"
	"net/http"

	"github.com/SotorivaXL/academic-event-manag-main/core/client"
)

var _ client.Repository = (*Client)(nil)

func (c *Client) GetClient(ctx context.Context) (client.Client, error) {
	var res apiClient
	if err := c.get(ctx, "/client", nil, &res); err != nil {
		return client.Client{}, err
	}
	return res.client(), nil
}

func (c *Client) CreateClient(ctx context.Context, nc client.NewClient) (client.Client, error) {
	var res apiClient
	if err := c.write(ctx, http.MethodPost, "/client", nc, &res); err != nil {
		return client.Client{}, err
	}
	return res.client(), nil
}

func (c *Client) UpdateClient(ctx context.Context, uc client.UpdateClient) (client.Client, error) {
	var res apiClient
	if err := c.write(ctx, http.MethodPut, "/client", uc, &res); err != nil {
		return client.Client{}, err
	}
	return res.client(), nil
}
