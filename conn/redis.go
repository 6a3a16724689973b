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

package conn

import (
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"axonflow/envconf/backends"
)

// RedisClient builds a go-redis client from a decoded cache
// configuration. Single locations produce a *redis.Client; multiple
// locations produce a universal client over all addresses. The client
// is constructed only; nothing is dialed.
func RedisClient(cfg *backends.Cache) (redis.UniversalClient, error) {
	if cfg.Backend != "redis" {
		return nil, fmt.Errorf("cache backend %q is not redis", cfg.Backend)
	}
	if len(cfg.Locations) == 0 {
		return nil, fmt.Errorf("redis cache config has no location")
	}

	if len(cfg.Locations) == 1 {
		opt, err := redisOptions(cfg.Locations[0])
		if err != nil {
			return nil, err
		}
		applyRedisSettings(opt, cfg)
		return redis.NewClient(opt), nil
	}

	uopt := &redis.UniversalOptions{}
	for _, loc := range cfg.Locations {
		opt, err := redisOptions(loc)
		if err != nil {
			return nil, err
		}
		uopt.Addrs = append(uopt.Addrs, opt.Addr)
		uopt.DB = opt.DB
		if opt.Password != "" {
			uopt.Password = opt.Password
		}
	}
	if pw, ok := cfg.Options["PASSWORD"].(string); ok && uopt.Password == "" {
		uopt.Password = pw
	}
	return redis.NewUniversalClient(uopt), nil
}

// redisOptions parses one location. go-redis understands redis:// and
// rediss://; unix:// locations carry an optional ":password@" userinfo
// in front of the socket path and are split here.
func redisOptions(loc string) (*redis.Options, error) {
	if !strings.HasPrefix(loc, "unix://") {
		opt, err := redis.ParseURL(loc)
		if err != nil {
			return nil, fmt.Errorf("invalid redis location %q: %w", loc, err)
		}
		return opt, nil
	}

	rest := strings.TrimPrefix(loc, "unix://")
	opt := &redis.Options{Network: "unix"}
	if at := strings.LastIndex(rest, "@"); at != -1 {
		userinfo := rest[:at]
		rest = rest[at+1:]
		if _, pass, ok := strings.Cut(userinfo, ":"); ok {
			opt.Password = pass
		}
	}
	if rest == "" {
		return nil, fmt.Errorf("invalid redis location %q: empty socket path", loc)
	}
	opt.Addr = rest
	return opt, nil
}

func applyRedisSettings(opt *redis.Options, cfg *backends.Cache) {
	if pw, ok := cfg.Options["PASSWORD"].(string); ok && opt.Password == "" {
		opt.Password = pw
	}
	if db, ok := cfg.Options["DB"].(int); ok && opt.DB == 0 {
		opt.DB = db
	}
}
