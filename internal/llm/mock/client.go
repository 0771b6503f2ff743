package mock

import (
	"context"
	"time"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
)

type Client struct {
	Response string
	Error    error
	Delay    time.Duration

	CallCount  int
	LastConfig llm.RequestConfig
	LastSystem string
	LastPrompt string
	AllCalls   []Call
}

type Call struct {
	Config llm.RequestConfig
	System string
	Prompt string
}

func New() *Client {
	return &Client{
		Response: "Role: assistant\n\nTask: mock improved prompt.",
	}
}

func (c *Client) WithResponse(response string) *Client {
	c.Response = response
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Complete(ctx context.Context, cfg llm.RequestConfig, system, prompt string) (string, error) {
	c.CallCount++
	c.LastConfig = cfg
	c.LastSystem = system
	c.LastPrompt = prompt
	c.AllCalls = append(c.AllCalls, Call{Config: cfg, System: system, Prompt: prompt})

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	if c.Error != nil {
		return "", c.Error
	}

	return c.Response, nil
}

func (c *Client) Reset() {
	c.CallCount = 0
	c.LastConfig = llm.RequestConfig{}
	c.LastSystem = ""
	c.LastPrompt = ""
	c.AllCalls = nil
}

var _ llm.Client = (*Client)(nil)
