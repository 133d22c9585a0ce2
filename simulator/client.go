package simulator

import (
	"context"
	"fmt"
	"time"

	"fritter/internal/api"

	"resty.dev/v3"
)

// APIError is returned for any non-2xx answer from the engine.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// Client talks to the fritter HTTP API.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         timeout,
		DialerKeepAlive:       30 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: timeout,
	}).
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Client{client: client}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context, token string) *resty.Request {
	req := c.client.R().WithContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func check(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if res.IsError() {
		return &APIError{Status: res.StatusCode(), Body: res.String()}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, username, password string) (*api.UserView, error) {
	type created struct {
		User *api.UserView `json:"user"`
	}

	res, err := c.r(ctx, "").
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&created{}).
		Post("/users")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*created).User, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	res, err := c.r(ctx, "").
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&api.LoginResponse{}).
		Post("/users/session")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*api.LoginResponse), nil
}

func (c *Client) CreateFreet(ctx context.Context, token, content string) (*api.FreetView, error) {
	type created struct {
		Freet *api.FreetView `json:"freet"`
	}

	res, err := c.r(ctx, token).
		SetBody(map[string]string{"content": content}).
		SetResult(&created{}).
		Post("/freets")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*created).Freet, nil
}

// CreateComment comments on a freet or on another comment.
func (c *Client) CreateComment(ctx context.Context, token, referenceID, content string) (*api.CommentView, error) {
	type created struct {
		Comment *api.CommentView `json:"comment"`
	}

	res, err := c.r(ctx, token).
		SetPathParam("referenceId", referenceID).
		SetBody(map[string]string{"content": content}).
		SetResult(&created{}).
		Post("/comments/{referenceId}")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*created).Comment, nil
}

func (c *Client) Like(ctx context.Context, token, referenceID string) (*api.LikeView, error) {
	type created struct {
		Like *api.LikeView `json:"like"`
	}

	res, err := c.r(ctx, token).
		SetBody(map[string]string{"referenceId": referenceID}).
		SetResult(&created{}).
		Post("/likes")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*created).Like, nil
}

func (c *Client) Unlike(ctx context.Context, token, referenceID string) error {
	res, err := c.r(ctx, token).
		SetPathParam("referenceId", referenceID).
		Delete("/likes/{referenceId}")
	return check(res, err)
}

func (c *Client) RespondToPrompt(ctx context.Context, token, content string) (*api.PromptResponseView, error) {
	type created struct {
		Response *api.PromptResponseView `json:"response"`
	}

	res, err := c.r(ctx, token).
		SetBody(map[string]string{"content": content}).
		SetResult(&created{}).
		Post("/prompts")
	if err := check(res, err); err != nil {
		return nil, err
	}
	return res.Result().(*created).Response, nil
}

func (c *Client) CountLikes(ctx context.Context, referenceID string) (int64, error) {
	res, err := c.r(ctx, "").
		SetQueryParam("referenceId", referenceID).
		SetResult(&api.CountResponse{}).
		Get("/likes/count")
	if err := check(res, err); err != nil {
		return 0, err
	}
	return res.Result().(*api.CountResponse).Count, nil
}
