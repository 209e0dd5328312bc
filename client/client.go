package client

import (
	"context"

	"reportserver/models"

	"github.com/a-h/jsonapi"
)

func New(baseURL string) Client {
	return Client{
		baseURL: baseURL,
	}
}

type Client struct {
	baseURL string
}

func (c Client) SummarizePost(ctx context.Context, req models.SummarizeRequest) (resp models.SummarizeResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("api", "summarize").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.SummarizeRequest, models.SummarizeResponse](ctx, url, req)
}

func (c Client) HealthGet(ctx context.Context) (resp models.HealthResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("health").String()
	if err != nil {
		return resp, err
	}
	resp, _, err = jsonapi.Get[models.HealthResponse](ctx, url)
	return resp, err
}
