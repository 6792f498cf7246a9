package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"fitops/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent. Callers fall through to the
// database on miss.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	// Tenant lookups by workspace slug
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	SetTenantBySlug(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error
	InvalidateTenant(ctx context.Context, slug string) error

	// Generic JSON values (admin overview, countdown snapshots)
	GetJSON(ctx context.Context, key string, dest any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

// NewRedisCacheFromClient wraps an existing client, letting the caller share
// one connection with health checks.
func NewRedisCacheFromClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func tenantSlugKey(slug string) string {
	return fmt.Sprintf("tenant:slug:%s", slug)
}

func (s *redisCacheService) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	if err := s.GetJSON(ctx, tenantSlugKey(slug), tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *redisCacheService) SetTenantBySlug(ctx context.Context, tenant *models.Tenant, ttl time.Duration) error {
	return s.SetJSON(ctx, tenantSlugKey(tenant.WorkspaceSlug), tenant, ttl)
}

func (s *redisCacheService) InvalidateTenant(ctx context.Context, slug string) error {
	return s.Delete(ctx, tenantSlugKey(slug))
}

func (s *redisCacheService) GetJSON(ctx context.Context, key string, dest any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (s *redisCacheService) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *redisCacheService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
