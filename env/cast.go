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
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Cast converts the raw string form of a variable into a typed value.
// The package provides casts for the common scalar and container shapes;
// Func adapts any conversion function.
type Cast interface {
	cast(raw string) (interface{}, error)
}

type castFunc func(raw string) (interface{}, error)

func (f castFunc) cast(raw string) (interface{}, error) { return f(raw) }

// Func wraps a conversion function as a Cast.
func Func(fn func(raw string) (interface{}, error)) Cast { return castFunc(fn) }

// Parse applies a cast to a raw value. A nil cast returns the value
// unchanged.
func Parse(raw string, c Cast) (interface{}, error) {
	if c == nil {
		return raw, nil
	}
	return c.cast(raw)
}

// Strings the value is considered true for, after lowercasing. A value
// that parses as an integer is true when non-zero instead.
var booleanTrueStrings = map[string]bool{
	"true": true, "on": true, "ok": true, "y": true, "yes": true, "1": true,
}

var (
	// String returns the raw value unchanged.
	String Cast = castFunc(func(raw string) (interface{}, error) { return raw, nil })

	// Bool parses numeric values as non-zero, everything else against the
	// true-string set (true/on/ok/y/yes/1, case-insensitive).
	Bool Cast = castFunc(castBool)

	// Int parses a base-10 integer.
	Int Cast = castFunc(castIntValue)

	// Float parses a float, tolerating locale formatting: everything but
	// digits, commas and dots is stripped, and all separators except the
	// last are treated as thousands separators.
	Float Cast = castFunc(castFloat)

	// JSON decodes the value with encoding/json.
	JSON Cast = castFunc(castJSON)

	// URL parses the value with net/url.
	URL Cast = castFunc(castURL)

	// Path cleans the value as a filesystem path.
	Path Cast = castFunc(func(raw string) (interface{}, error) { return filepath.Clean(raw), nil })

	// Strings splits on commas, dropping empty elements. Elements are not
	// trimmed; interior whitespace is preserved.
	Strings Cast = castFunc(func(raw string) (interface{}, error) { return splitList(raw), nil })

	// Map parses comma-separated key=value entries into a
	// map[string]string.
	Map Cast = castFunc(castStrMap)
)

func castBool(raw string) (interface{}, error) {
	if n, err := strconv.Atoi(raw); err == nil {
		return n != 0, nil
	}
	return booleanTrueStrings[strings.ToLower(raw)], nil
}

func castIntValue(raw string) (interface{}, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot cast %q to int: %w", raw, err)
	}
	return n, nil
}

var (
	floatJunkRe = regexp.MustCompile(`[^\d,.]`)
	floatSepRe  = regexp.MustCompile(`[,.]`)
)

func castFloat(raw string) (interface{}, error) {
	cleaned := floatJunkRe.ReplaceAllString(raw, "")
	parts := floatSepRe.Split(cleaned, -1)
	s := parts[0]
	if len(parts) > 1 {
		s = strings.Join(parts[:len(parts)-1], "") + "." + parts[len(parts)-1]
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot cast %q to float: %w", raw, err)
	}
	return f, nil
}

func castJSON(raw string) (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("cannot cast %q to json: %w", raw, err)
	}
	return v, nil
}

func castURL(raw string) (interface{}, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("cannot cast %q to url: %w", raw, err)
	}
	return u, nil
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func stripParens(raw string) string {
	return strings.TrimRight(strings.TrimLeft(raw, "("), ")")
}

func castStrMap(raw string) (interface{}, error) {
	out := map[string]string{}
	for _, entry := range strings.Split(raw, ",") {
		if entry == "" {
			continue
		}
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("malformed map entry %q", entry)
		}
		out[k] = v
	}
	return out, nil
}

// ListOf splits on commas (empties dropped) and applies elem to each
// element, producing a []interface{}.
func ListOf(elem Cast) Cast {
	return castFunc(func(raw string) (interface{}, error) {
		return castElements(splitList(raw), elem)
	})
}

// TupleOf is ListOf after stripping enclosing parentheses.
func TupleOf(elem Cast) Cast {
	return castFunc(func(raw string) (interface{}, error) {
		return castElements(splitList(stripParens(raw)), elem)
	})
}

func castElements(parts []string, elem Cast) ([]interface{}, error) {
	out := make([]interface{}, 0, len(parts))
	for _, p := range parts {
		v, err := Parse(p, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// MapCast configures MapOf. Value is the cast applied to every value;
// Keys overrides it for specific keys. Nil casts leave strings as-is.
type MapCast struct {
	Value Cast
	Keys  map[string]Cast
}

// MapOf parses semicolon-separated key=value entries into a
// map[string]interface{}, casting each value per the MapCast.
func MapOf(mc MapCast) Cast {
	return castFunc(func(raw string) (interface{}, error) {
		out := map[string]interface{}{}
		for _, entry := range strings.Split(raw, ";") {
			if entry == "" {
				continue
			}
			k, v, ok := strings.Cut(entry, "=")
			if !ok {
				return nil, fmt.Errorf("malformed map entry %q", entry)
			}
			c := mc.Value
			if kc, found := mc.Keys[k]; found {
				c = kc
			}
			parsed, err := Parse(v, c)
			if err != nil {
				return nil, err
			}
			out[k] = parsed
		}
		return out, nil
	})
}

// castForDefault derives a cast from a default value's dynamic type, so
// Value(key, nil, def) parses the raw string the way the default looks.
func castForDefault(def interface{}) Cast {
	switch def.(type) {
	case bool:
		return Bool
	case int:
		return Int
	case float64:
		return Float
	case string:
		return String
	case []string:
		return Strings
	case map[string]string:
		return Map
	default:
		return nil
	}
}
