// Package identity validates bearer tokens against the external identity
// provider. Token issuance and refresh belong to the provider's own client
// library on the device; the gateway only ever verifies.
package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrTokenInvalid indicates the provider rejected the presented token.
var ErrTokenInvalid = errors.New("identity: token rejected")

// Identity is the provider's view of an authenticated user.
type Identity struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expiresIn"`
}

// Verifier checks bearer tokens with the provider and caches positive results
// in Redis keyed by token digest, bounded by both the configured TTL and the
// token's own remaining lifetime.
type Verifier struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
}

// NewVerifier constructs a Verifier.
func NewVerifier(baseURL string, cache *redis.Client, ttl time.Duration, logger *slog.Logger) *Verifier {
	return &Verifier{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
	}
}

// Verify resolves a bearer token to an Identity. Cache misses and cache
// outages both fall through to the provider; a broken cache never locks
// anyone out.
func (v *Verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrTokenInvalid
	}

	key := cacheKey(token)
	if v.cache != nil {
		payload, err := v.cache.Get(ctx, key).Bytes()
		if err == nil {
			var id Identity
			if err := json.Unmarshal(payload, &id); err == nil {
				return &id, nil
			}
		} else if !errors.Is(err, redis.Nil) && v.logger != nil {
			v.logger.Warn("identity cache read", slog.Any("error", err))
		}
	}

	id, err := v.lookup(ctx, token)
	if err != nil {
		return nil, err
	}

	if v.cache != nil {
		ttl := v.ttl
		if remaining := time.Duration(id.ExpiresIn) * time.Second; remaining > 0 && remaining < ttl {
			ttl = remaining
		}
		if payload, err := json.Marshal(id); err == nil {
			if err := v.cache.Set(ctx, key, payload, ttl).Err(); err != nil && v.logger != nil {
				v.logger.Warn("identity cache write", slog.Any("error", err))
			}
		}
	}
	return id, nil
}

func (v *Verifier) lookup(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/v1/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: verify: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrTokenInvalid
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("identity: verify: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("identity: read response: %w", err)
	}

	// The provider wraps userinfo the same way the CRM backend wraps lists.
	var env struct {
		Data *Identity `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Data != nil && env.Data.UserID != "" {
		return env.Data, nil
	}
	var id Identity
	if err := json.Unmarshal(body, &id); err != nil || id.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return &id, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "idtoken:" + hex.EncodeToString(sum[:])
}
