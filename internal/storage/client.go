// Package storage talks to the Supabase Storage REST API. Reads are served
// from the public object URL; writes go to the authenticated object path.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"bizprofile/internal/apperror"
	"bizprofile/internal/media"
)

const (
	publicSegment = "/object/public/"
	writeSegment  = "/object/"
)

// Object is a stored media object as seen by the rest of the application.
type Object struct {
	URL  string
	MIME string
}

// Config holds storage endpoint details.
type Config struct {
	BaseURL string // e.g. https://<project>.supabase.co/storage/v1
	APIKey  string
	Timeout time.Duration
}

// Client uploads and overwrites objects in Supabase Storage.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

// NewClient creates a new storage Client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
	}
}

// PublicURL is the public read URL of name inside bucket.
func (c *Client) PublicURL(bucket, name string) string {
	return c.baseURL + publicSegment + bucket + "/" + name
}

// Upload stores data as a new object with a generated name in bucket.
func (c *Client) Upload(ctx context.Context, bucket string, data []byte) (Object, error) {
	mime := media.DetectMIME(data)
	name := uuid.New().String() + media.Extension(data)
	target := c.baseURL + writeSegment + bucket + "/" + name

	if err := c.send(ctx, fiber.Post(target), mime, data); err != nil {
		return Object{}, apperror.Upload(bucket, err)
	}

	url := c.PublicURL(bucket, name)
	logrus.WithFields(logrus.Fields{"bucket": bucket, "url": url, "mime": mime}).Info("uploaded object")
	return Object{URL: url, MIME: mime}, nil
}

// Overwrite replaces the bytes behind an existing public URL. The URL itself
// does not change.
//
// The write path is derived by swapping the public segment of the URL for the
// authenticated one, so this breaks if the provider changes its URL layout.
func (c *Client) Overwrite(ctx context.Context, publicURL string, data []byte) (Object, error) {
	if !strings.Contains(publicURL, publicSegment) {
		return Object{}, apperror.Overwrite(publicURL, errors.New("not a public storage URL"))
	}
	target := strings.Replace(publicURL, publicSegment, writeSegment, 1)
	mime := media.DetectMIME(data)

	if err := c.send(ctx, fiber.Put(target), mime, data); err != nil {
		return Object{}, apperror.Overwrite(publicURL, err)
	}

	logrus.WithFields(logrus.Fields{"url": publicURL, "mime": mime}).Info("overwrote object")
	return Object{URL: publicURL, MIME: mime}, nil
}

func (c *Client) send(ctx context.Context, agent *fiber.Agent, mime string, data []byte) error {
	if err := ctx.Err(); err != nil {
		fiber.ReleaseAgent(agent)
		return err
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	agent.Set("apikey", c.apiKey).
		Set(fiber.HeaderAuthorization, "Bearer "+c.apiKey).
		ContentType(mime).
		Body(data).
		Timeout(timeout)
	if err := agent.Parse(); err != nil {
		fiber.ReleaseAgent(agent)
		return fmt.Errorf("failed to prepare storage request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("storage request failed: %w", errors.Join(errs...))
	}
	if code < 200 || code >= 300 {
		return fmt.Errorf("storage responded with status %d: %s", code, body)
	}
	return nil
}
