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
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
)

var logger = log.New(os.Stderr, "[backends] ", log.LstdFlags)

// SchemeError reports a connection URL whose scheme is not in the
// scheme table for its kind and no backend override was given.
type SchemeError struct {
	Kind   string // "database", "cache" or "email"
	Scheme string
}

func (e *SchemeError) Error() string {
	return fmt.Sprintf("invalid %s scheme %q", e.Kind, e.Scheme)
}

// literalValue interprets a query parameter the way a literal would be
// read: None becomes nil, True/False become bools, digit strings become
// ints, everything else stays a string.
func literalValue(s string) interface{} {
	switch s {
	case "None":
		return nil
	case "True":
		return true
	case "False":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// intValue converts digit-only strings to ints and leaves everything
// else alone.
func intValue(s string) interface{} {
	if s == "" {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return n
}

// unquote decodes percent escapes and '+' as space, returning the input
// unchanged when it is not valid encoding.
func unquote(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// parseQuery is url.ParseQuery but tolerant: malformed pairs are
// skipped rather than failing the whole URL.
func parseQuery(query string) url.Values {
	values, err := url.ParseQuery(query)
	if err != nil && values == nil {
		return url.Values{}
	}
	return values
}
