package talenthub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const contentType = "application/json"

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded):
			return nil, fmt.Errorf("%w: %s %s", ErrTimeout, req.Method, req.URL.Path)
		case errors.Is(err, context.Canceled):
			return nil, err
		default:
			return nil, fmt.Errorf("cannot reach the server: %w", err)
		}
	}

	return resp, nil
}

// getJSON performs a GET within the given budget and decodes the body into
// target. Non-2xx responses become normalized APIErrors.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, budget time.Duration, target any) error {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)
	if q != nil {
		req.URL.RawQuery = q.Encode()
	}

	return c.roundTrip(req, target)
}

// postMultipart sends form fields plus an optional file within the given
// budget. A nil file reader sends the fields alone.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string]string, fileField, filename string, file io.Reader, budget time.Duration, target any) error {
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	var b bytes.Buffer
	w := multipart.NewWriter(&b)
	for key, val := range fields {
		field, err := w.CreateFormField(key)
		if err != nil {
			return err
		}
		if _, err = io.Copy(field, strings.NewReader(val)); err != nil {
			return err
		}
	}

	if file != nil {
		part, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			return err
		}
		if _, err = io.Copy(part, file); err != nil {
			return fmt.Errorf("reading upload: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, &b)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.roundTrip(req, target)
}

func (c *Client) deleteJSON(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.APIURL+path, nil)
	if err != nil {
		return err
	}

	return c.roundTrip(c.setHeaders(req), nil)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, target any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL+path, body)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	return c.roundTrip(req, target)
}

// download streams a binary resource. The caller owns the returned body.
func (c *Client) download(ctx context.Context, path string) (io.ReadCloser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+path, nil)
	if err != nil {
		cancel()
		return nil, err
	}

	resp, err := c.do(c.setHeaders(req))
	if err != nil {
		cancel()
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		cancel()
		return nil, apiError(resp.StatusCode, body)
	}

	return &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel}, nil
}

func (c *Client) roundTrip(req *http.Request, target any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, body)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (r *cancelReadCloser) Close() error {
	defer r.cancel()

	return r.ReadCloser.Close()
}
