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

package backends

import (
	"strings"
)

// CacheSchemes maps cache URL schemes to backend identifiers. Unknown
// schemes error unless a backend override is given.
var CacheSchemes = map[string]string{
	"dbcache":     "db",
	"dummycache":  "dummy",
	"filecache":   "file",
	"locmemcache": "locmem",
	"memcache":    "memcached",
	"pymemcache":  "memcached",
	"redis":       "redis",
	"rediscache":  "redis",
	"rediss":      "redis",
}

// Query parameters promoted out of Options into Settings.
var cacheBaseSettings = map[string]bool{
	"TIMEOUT":      true,
	"KEY_PREFIX":   true,
	"VERSION":      true,
	"KEY_FUNCTION": true,
	"BINARY":       true,
}

// Cache is a decoded cache connection URL.
type Cache struct {
	Backend string

	// Locations holds one entry per host in the netloc. Empty for URLs
	// without a location (locmemcache://, dummycache://).
	Locations []string

	// Settings holds promoted cache behavior (TIMEOUT, KEY_PREFIX,
	// VERSION, KEY_FUNCTION, BINARY). A nil value means the parameter
	// was explicitly None.
	Settings map[string]interface{}

	// Options holds the remaining query parameters, upper-cased.
	Options map[string]interface{}
}

// Location returns the single location, or the empty string when there
// is none. Multi-host configurations should read Locations directly.
func (c *Cache) Location() string {
	if len(c.Locations) == 0 {
		return ""
	}
	return c.Locations[0]
}

// ParseCache decodes a cache connection URL. A non-empty backend
// overrides the scheme table. An empty URL decodes to an empty config.
//
//	ParseCache("memcache://127.0.0.1:11211", "")
//	// -> Backend "memcached", Location "127.0.0.1:11211"
//
// Redis URLs are rewritten into client-ready locations: the "cache"
// suffix is stripped from the scheme, and URLs without a hostname
// address a unix socket.
func ParseCache(raw string, backend string) (*Cache, error) {
	if raw == "" {
		return &Cache{}, nil
	}

	u, err := splitConnURL(raw)
	if err != nil {
		return nil, err
	}

	if backend == "" {
		mapped, ok := CacheSchemes[u.scheme]
		if !ok {
			return nil, &SchemeError{Kind: "cache", Scheme: u.scheme}
		}
		backend = mapped
	}

	cfg := &Cache{Backend: backend}

	switch {
	case u.scheme == "filecache":
		// Keep the drive letter: filecache://C:/foo/bar.
		cfg.Locations = []string{u.netloc + u.path}
	case u.path != "" && (u.scheme == "memcache" || u.scheme == "pymemcache"):
		cfg.Locations = []string{"unix:" + u.path}
	case strings.HasPrefix(u.scheme, "redis"):
		scheme := "unix"
		if u.host != "" {
			scheme = strings.ReplaceAll(u.scheme, "cache", "")
		}
		for _, loc := range strings.Split(u.netloc, ",") {
			cfg.Locations = append(cfg.Locations, scheme+"://"+loc+u.path)
		}
	case u.netloc != "":
		cfg.Locations = strings.Split(u.netloc, ",")
	}

	if u.query != "" {
		for k, vs := range parseQuery(u.query) {
			upper := strings.ToUpper(k)
			v := literalValue(vs[0])
			if cacheBaseSettings[upper] {
				if cfg.Settings == nil {
					cfg.Settings = map[string]interface{}{}
				}
				cfg.Settings[upper] = v
			} else {
				if cfg.Options == nil {
					cfg.Options = map[string]interface{}{}
				}
				cfg.Options[upper] = v
			}
		}
	}

	return cfg, nil
}
