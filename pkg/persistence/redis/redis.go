// Package redis provides Redis persistence for projects: one JSON string per project
// plus a sorted set indexing projects by creation time.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dukex/codeeasy/pkg/models"
	"github.com/dukex/codeeasy/pkg/persistence"
	"github.com/dukex/codeeasy/pkg/schema"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "codeeasy:project:"
	indexKey  = "codeeasy:projects"
)

// Persistence implements the persistence layer for Redis.
type Persistence struct {
	client *redis.Client
	logger *slog.Logger
}

// NewPersistence connects to the server at databaseURL (redis://[user:password@]host:port/db).
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	options, err := redis.ParseURL(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Persistence{client: client, logger: logger}, nil
}

// Close closes the client.
func (p *Persistence) Close(_ context.Context) error {
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("failed to close redis client: %w", err)
	}

	return nil
}

// HealthCheck pings the server.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}

	return nil
}

// Projects returns every project, most recently created first.
func (p *Persistence) Projects(ctx context.Context) ([]*models.Project, error) {
	ids, err := p.client.ZRevRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*models.Project, 0, len(ids))

	if len(ids) == 0 {
		return projects, nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, keyPrefix+id)
	}

	documents, err := p.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch projects: %w", err)
	}

	for i, document := range documents {
		body, ok := document.(string)
		if !ok {
			p.logger.WarnContext(ctx, "Project indexed without document", "project_id", ids[i])

			continue
		}

		project, err := schema.Decode([]byte(body))
		if err != nil {
			return nil, persistence.NewProjectError("Projects", ids[i], err)
		}

		projects = append(projects, project)
	}

	return projects, nil
}

// ProjectByID returns the project with the given ID.
func (p *Persistence) ProjectByID(ctx context.Context, id string) (*models.Project, error) {
	body, err := p.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, persistence.NewProjectError("ProjectByID", id, persistence.ErrProjectNotFound)
		}

		return nil, fmt.Errorf("failed to fetch project %s: %w", id, err)
	}

	project, err := schema.Decode(body)
	if err != nil {
		return nil, persistence.NewProjectError("ProjectByID", id, err)
	}

	return project, nil
}

// SaveProject stores the document and indexes it in one transaction.
func (p *Persistence) SaveProject(ctx context.Context, project *models.Project) error {
	if err := persistence.Stamp(project); err != nil {
		return err
	}

	document, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project %s: %w", project.ID, err)
	}

	_, err = p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyPrefix+project.ID, document, 0)
		pipe.ZAdd(ctx, indexKey, redis.Z{Score: float64(project.CreatedAt.UnixMilli()), Member: project.ID})

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save project %s: %w", project.ID, err)
	}

	return nil
}

// DeleteProject removes the document and its index entry.
func (p *Persistence) DeleteProject(ctx context.Context, id string) error {
	var deleted *redis.IntCmd

	_, err := p.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, keyPrefix+id)
		pipe.ZRem(ctx, indexKey, id)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, err)
	}

	if deleted.Val() == 0 {
		return persistence.NewProjectError("DeleteProject", id, persistence.ErrProjectNotFound)
	}

	return nil
}
