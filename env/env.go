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

package env

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"axonflow/envconf/backends"
)

// NotFoundError reports a variable missing from the store when no
// default was supplied.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("set the %s environment variable", e.Key)
}

// Env reads typed values out of a string-keyed store. The zero value is
// not usable; construct with New, FromMap, FromDotenv or FromYAML.
type Env struct {
	lookup func(key string) (string, bool)
}

// New returns an Env backed by the process environment.
func New() *Env {
	return &Env{lookup: os.LookupEnv}
}

// FromMap returns an Env backed by a fixed map.
func FromMap(store map[string]string) *Env {
	return &Env{lookup: func(key string) (string, bool) {
		v, ok := store[key]
		return v, ok
	}}
}

// Has reports whether the key is present in the store.
func (e *Env) Has(key string) bool {
	_, ok := e.lookup(key)
	return ok
}

// raw resolves a key, following proxied values: a value of "$OTHER"
// strips the leading dollar signs and reads OTHER from the same store.
func (e *Env) raw(key string) (string, error) {
	v, ok := e.lookup(key)
	if !ok {
		return "", &NotFoundError{Key: key}
	}
	if strings.HasPrefix(v, "$") {
		return e.raw(strings.TrimLeft(v, "$"))
	}
	return v, nil
}

// Value resolves key and applies the cast. With a nil cast and a
// default, the cast is derived from the default's type (smart cast).
// The default is returned as-is when the key is absent.
func (e *Env) Value(key string, c Cast, def ...interface{}) (interface{}, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, err
	}
	if c == nil && len(def) > 0 && def[0] != nil {
		c = castForDefault(def[0])
	}
	return Parse(v, c)
}

// Str returns the raw string value.
func (e *Env) Str(key string, def ...string) (string, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return "", err
	}
	return v, nil
}

// Multiline is Str with literal \n sequences replaced by newlines.
func (e *Env) Multiline(key string, def ...string) (string, error) {
	v, err := e.Str(key, def...)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(v, `\n`, "\n"), nil
}

// Bytes returns the raw value as a byte slice.
func (e *Env) Bytes(key string, def ...[]byte) ([]byte, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, err
	}
	return []byte(v), nil
}

// Bool parses the value with the Bool cast.
func (e *Env) Bool(key string, def ...bool) (bool, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return false, err
	}
	b, err := castBool(v)
	if err != nil {
		return false, err
	}
	return b.(bool), nil
}

// Int parses the value as a base-10 int.
func (e *Env) Int(key string, def ...int) (int, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("cannot cast %s=%q to int: %w", key, v, err)
	}
	return n, nil
}

// Int64 parses the value as a base-10 int64.
func (e *Env) Int64(key string, def ...int64) (int64, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot cast %s=%q to int64: %w", key, v, err)
	}
	return n, nil
}

// Float parses the value with the locale-tolerant Float cast.
func (e *Env) Float(key string, def ...float64) (float64, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, err
	}
	f, err := castFloat(v)
	if err != nil {
		return 0, err
	}
	return f.(float64), nil
}

// Duration parses the value with time.ParseDuration.
func (e *Env) Duration(key string, def ...time.Duration) (time.Duration, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("cannot cast %s=%q to duration: %w", key, v, err)
	}
	return d, nil
}

// List splits the value on commas, dropping empty elements. Elements
// keep their whitespace.
func (e *Env) List(key string, def ...[]string) ([]string, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, err
	}
	return splitList(v), nil
}

// Tuple is List after stripping enclosing parentheses.
func (e *Env) Tuple(key string, def ...[]string) ([]string, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, err
	}
	return splitList(stripParens(v)), nil
}

// StrMap parses comma-separated key=value entries.
func (e *Env) StrMap(key string, def ...map[string]string) (map[string]string, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, err
	}
	m, err := castStrMap(v)
	if err != nil {
		return nil, err
	}
	return m.(map[string]string), nil
}

// JSON decodes the value with encoding/json.
func (e *Env) JSON(key string, def ...interface{}) (interface{}, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, err
	}
	return castJSON(v)
}

// URL parses the value with net/url.
func (e *Env) URL(key string, def ...*url.URL) (*url.URL, error) {
	v, err := e.raw(key)
	if err != nil {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, err
	}
	u, err := castURL(v)
	if err != nil {
		return nil, err
	}
	return u.(*url.URL), nil
}

// Path returns the value cleaned as a filesystem path.
func (e *Env) Path(key string, def ...string) (string, error) {
	v, err := e.Str(key, def...)
	if err != nil {
		return "", err
	}
	return filepath.Clean(v), nil
}

// DatabaseURL decodes the connection URL held by key into a database
// configuration. Use backends.ParseDatabase directly to force an engine.
func (e *Env) DatabaseURL(key string, def ...string) (*backends.Database, error) {
	v, err := e.Str(key, def...)
	if err != nil {
		return nil, err
	}
	return backends.ParseDatabase(v, "")
}

// CacheURL decodes the connection URL held by key into a cache
// configuration. Use backends.ParseCache directly to force a backend.
func (e *Env) CacheURL(key string, def ...string) (*backends.Cache, error) {
	v, err := e.Str(key, def...)
	if err != nil {
		return nil, err
	}
	return backends.ParseCache(v, "")
}

// EmailURL decodes the connection URL held by key into an email
// configuration. Use backends.ParseEmail directly to force a backend.
func (e *Env) EmailURL(key string, def ...string) (*backends.Email, error) {
	v, err := e.Str(key, def...)
	if err != nil {
		return nil, err
	}
	return backends.ParseEmail(v, "")
}
