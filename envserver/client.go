package envserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ronaldiscool/ReAgent/envs"
)

// Client drives a remote environment served by Server. It implements
// the environment contract, so a remote environment can be used
// anywhere a local one can.
type Client struct {
	baseURL string
	client  *http.Client

	obsSpace    *envs.Box
	actionSpace envs.Space
}

var _ envs.Environment = &Client{}

// NewClient for the server at baseURL, fetching the spaces once
func NewClient(baseURL string) (*Client, error) {
	c := &Client{
		baseURL: baseURL,
		client:  http.DefaultClient,
	}

	resp, err := c.client.Get(baseURL + "/spaces")
	if err != nil {
		return nil, fmt.Errorf("envserver client: fetching spaces: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("envserver client: fetching spaces: status %d", resp.StatusCode)
	}
	var spaces spacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&spaces); err != nil {
		return nil, fmt.Errorf("envserver client: decoding spaces: %w", err)
	}

	c.obsSpace = envs.NewBox(spaces.ObservationLow, spaces.ObservationHigh)
	if spaces.ActionDiscrete > 0 {
		c.actionSpace = envs.NewDiscrete(spaces.ActionDiscrete)
	} else {
		c.actionSpace = envs.NewBox(spaces.ActionLow, spaces.ActionHigh)
	}
	return c, nil
}

func (c *Client) ObservationSpace() *envs.Box {
	return c.obsSpace
}

func (c *Client) ActionSpace() envs.Space {
	return c.actionSpace
}

func (c *Client) Reset() ([]float64, error) {
	var out struct {
		Obs []float64 `json:"obs"`
	}
	if err := c.post("/reset", struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Obs, nil
}

func (c *Client) Step(action envs.Action) (*envs.StepResult, error) {
	req := stepRequest{}
	switch a := action.(type) {
	case envs.DiscreteAction:
		idx := int(a)
		req.Discrete = &idx
	case envs.ContinuousAction:
		req.Continuous = a
	default:
		return nil, fmt.Errorf("envserver client: unsupported action %T", action)
	}

	var out stepResponse
	if err := c.post("/step", req, &out); err != nil {
		return nil, err
	}
	return &envs.StepResult{
		Observation: out.Observation,
		Reward:      out.Reward,
		Terminal:    out.Terminal,
		Info:        out.Info,
	}, nil
}

func (c *Client) Seed(seed int64) {
	var out map[string]interface{}
	c.post("/seed", seedRequest{Seed: seed}, &out)
}

func (c *Client) post(route string, body interface{}, out interface{}) error {
	bs, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.baseURL+route, "application/json", bytes.NewReader(bs))
	if err != nil {
		return fmt.Errorf("envserver client: %s: %w", route, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("envserver client: %s: status %d: %s", route, resp.StatusCode, string(data))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
