package rowstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client implements Store against the hosted tabular REST API:
//
//	GET    {base}/tables/{table}/rows
//	POST   {base}/tables/{table}/rows
//	PUT    {base}/tables/{table}/rows/{index}
//	DELETE {base}/tables/{table}/rows/{index}
//
// Requests carry a bearer token. No retries; each operation is attempted once.
type Client struct {
	base  string
	token string
	http  *http.Client
	log   *logrus.Logger
}

func NewClient(baseURL, token string, logger *logrus.Logger) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
		log:   logger,
	}
}

func (c *Client) rowsPath(table string) string {
	return c.base + "/tables/" + url.PathEscape(table) + "/rows"
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, rd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrRowNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.log.Warnf("rowstore: %s %s returned %d", method, path, resp.StatusCode)
		return fmt.Errorf("%w: %s %s: status %d", ErrUnavailable, method, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func (c *Client) ListRows(ctx context.Context, table string) ([]Row, error) {
	var rows []Row
	if err := c.do(ctx, http.MethodGet, c.rowsPath(table), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) AppendRow(ctx context.Context, table string, fields Row) (Row, error) {
	var stored Row
	if err := c.do(ctx, http.MethodPost, c.rowsPath(table), fields, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (c *Client) ReplaceRow(ctx context.Context, table string, index int, fields Row) (Row, error) {
	var stored Row
	path := c.rowsPath(table) + "/" + strconv.Itoa(index)
	if err := c.do(ctx, http.MethodPut, path, fields, &stored); err != nil {
		return nil, err
	}
	return stored, nil
}

func (c *Client) RemoveRow(ctx context.Context, table string, index int) error {
	path := c.rowsPath(table) + "/" + strconv.Itoa(index)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
