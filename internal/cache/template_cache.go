package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"questionnaire-api/internal/model"
)

// TemplateCache handles Redis operations for resolved template views. Entries
// are deleted when a template changes and flushed wholesale when a question
// collection changes; the TTL is a backstop.
type TemplateCache interface {
	Set(ctx context.Context, id string, view *model.ResolvedTemplate) error
	Get(ctx context.Context, id string) (*model.ResolvedTemplate, error)
	Delete(ctx context.Context, id string) error
	Flush(ctx context.Context) error
}

type templateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTemplateCache creates a new template cache
func NewTemplateCache(client *redis.Client) TemplateCache {
	return &templateCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *templateCache) key(id string) string {
	return "template:" + id + ":resolved"
}

func (c *templateCache) Set(ctx context.Context, id string, view *model.ResolvedTemplate) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(id), data, c.ttl).Err()
}

func (c *templateCache) Get(ctx context.Context, id string) (*model.ResolvedTemplate, error) {
	data, err := c.client.Get(ctx, c.key(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var view model.ResolvedTemplate
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *templateCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

// Flush drops every resolved-template entry. Called when a question collection
// changes, since any template may reference it.
func (c *templateCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "template:*:resolved", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
