// Copyright 2025 AxonFlow
// SPDX-License-Identifier: BUSL-1.1
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package secrets resolves secret references into key/value maps that
// can back an env.Env store. Resolvers exist for AWS Secrets Manager,
// prefixed environment variables, and an in-memory store for tests.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	"axonflow/envconf/env"
)

// Resolver turns a secret reference into its key/value payload.
type Resolver interface {
	GetSecret(ctx context.Context, ref string) (map[string]string, error)
}

// Load resolves ref and wraps the payload as an env.Env, so the usual
// typed accessors and connection-URL decoding work on secret material:
//
//	e, err := secrets.Load(ctx, resolver, "arn:aws:secretsmanager:...")
//	db, err := e.DatabaseURL("DATABASE_URL")
func Load(ctx context.Context, r Resolver, ref string) (*env.Env, error) {
	store, err := r.GetSecret(ctx, ref)
	if err != nil {
		return nil, err
	}
	return env.FromMap(store), nil
}

// AWSResolver reads secrets from AWS Secrets Manager. Values are JSON
// objects with string fields; payloads that are not JSON are exposed
// under the single key "value". Resolved secrets are cached with a TTL.
type AWSResolver struct {
	client *secretsmanager.Client
	cache  map[string]*cacheEntry
	mu     sync.RWMutex
	ttl    time.Duration
	logger *log.Logger
}

type cacheEntry struct {
	value     map[string]string
	expiresAt time.Time
}

// AWSResolverOptions holds options for creating an AWSResolver.
type AWSResolverOptions struct {
	Region   string
	CacheTTL time.Duration
	Logger   *log.Logger
}

// NewAWSResolver creates a resolver backed by AWS Secrets Manager.
func NewAWSResolver(ctx context.Context, opts AWSResolverOptions) (*AWSResolver, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[SECRETS] ", log.LstdFlags)
	}

	cfgOpts := []func(*config.LoadOptions) error{}
	if opts.Region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &AWSResolver{
		client: secretsmanager.NewFromConfig(cfg),
		cache:  make(map[string]*cacheEntry),
		ttl:    ttl,
		logger: logger,
	}, nil
}

// GetSecret retrieves a secret, serving unexpired values from the cache.
func (r *AWSResolver) GetSecret(ctx context.Context, ref string) (map[string]string, error) {
	r.mu.RLock()
	entry, exists := r.cache[ref]
	r.mu.RUnlock()

	if exists && time.Now().Before(entry.expiresAt) {
		return entry.value, nil
	}

	r.logger.Printf("Fetching secret %s from AWS Secrets Manager", maskRef(ref))

	result, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(ref),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get secret %s: %w", maskRef(ref), err)
	}
	if result.SecretString == nil {
		return nil, fmt.Errorf("secret %s has no string value", maskRef(ref))
	}

	var store map[string]string
	if err := json.Unmarshal([]byte(*result.SecretString), &store); err != nil {
		// Single-value secrets (a bare API key) are not JSON objects.
		store = map[string]string{"value": *result.SecretString}
	}

	r.mu.Lock()
	r.cache[ref] = &cacheEntry{
		value:     store,
		expiresAt: time.Now().Add(r.ttl),
	}
	r.mu.Unlock()

	return store, nil
}

// Invalidate removes a secret from the cache.
func (r *AWSResolver) Invalidate(ref string) {
	r.mu.Lock()
	delete(r.cache, ref)
	r.mu.Unlock()
}

// InvalidateAll clears the secret cache.
func (r *AWSResolver) InvalidateAll() {
	r.mu.Lock()
	r.cache = make(map[string]*cacheEntry)
	r.mu.Unlock()
}

// maskRef masks a secret reference for logging (shows only the last 8
// characters).
func maskRef(ref string) string {
	if len(ref) <= 12 {
		return "***"
	}
	return "..." + ref[len(ref)-8:]
}

// EnvResolver reads secrets from prefixed environment variables: the
// reference "APPDB" resolves APPDB_USERNAME, APPDB_PASSWORD and so on,
// keyed by the lowercased field name.
type EnvResolver struct {
	logger *log.Logger
}

// NewEnvResolver creates a resolver over the process environment.
func NewEnvResolver(logger *log.Logger) *EnvResolver {
	if logger == nil {
		logger = log.New(os.Stdout, "[ENV_SECRETS] ", log.LstdFlags)
	}
	return &EnvResolver{logger: logger}
}

// Credential field suffixes probed by EnvResolver.
var envFields = []string{
	"USERNAME", "PASSWORD", "API_KEY", "API_SECRET",
	"CLIENT_ID", "CLIENT_SECRET", "TOKEN", "PRIVATE_KEY",
	"ACCESS_KEY", "SECRET_KEY", "HOST", "PORT", "DATABASE",
	"DATABASE_URL", "CACHE_URL", "EMAIL_URL",
}

// GetSecret collects <ref>_<FIELD> environment variables.
func (r *EnvResolver) GetSecret(ctx context.Context, ref string) (map[string]string, error) {
	store := make(map[string]string)
	for _, field := range envFields {
		if value := os.Getenv(ref + "_" + field); value != "" {
			store[strings.ToLower(field)] = value
		}
	}

	if len(store) == 0 {
		return nil, fmt.Errorf("no credentials found for prefix %s", ref)
	}

	r.logger.Printf("Loaded %d credentials from environment for %s", len(store), ref)
	return store, nil
}

// LocalResolver is an in-memory resolver for development and tests.
type LocalResolver struct {
	secrets map[string]map[string]string
	mu      sync.RWMutex
}

// NewLocalResolver creates an empty in-memory resolver.
func NewLocalResolver() *LocalResolver {
	return &LocalResolver{secrets: make(map[string]map[string]string)}
}

// GetSecret retrieves a previously stored secret.
func (r *LocalResolver) GetSecret(ctx context.Context, ref string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if secret, exists := r.secrets[ref]; exists {
		return secret, nil
	}
	return nil, fmt.Errorf("secret %s not found", ref)
}

// SetSecret stores a secret.
func (r *LocalResolver) SetSecret(ref string, value map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.secrets[ref] = value
}
