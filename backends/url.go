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
	"strings"
)

// connURL is a loosely split connection URL. net/url rejects URLs that
// are routine in connection strings (multi-host netlocs like
// "memcache://h1:11211,h2:11212", bare '@' inside userinfo), so the
// split here is by string position only and defers validation to the
// per-kind parsers.
type connURL struct {
	scheme string
	netloc string // between "://" and the path, userinfo included
	path   string // leading slash included, query excluded
	query  string

	user     string // raw, still percent-encoded
	password string
	host     string // lowercased, port stripped
	port     int    // 0 when absent or non-numeric
}

// splitConnURL splits raw into scheme, netloc, path and query, then
// pulls userinfo and host/port out of the netloc. Userinfo runs to the
// last '@'; the port is taken only when everything after the last ':'
// is numeric.
func splitConnURL(raw string) (*connURL, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return nil, fmt.Errorf("malformed connection URL %q", raw)
	}

	u := &connURL{scheme: strings.ToLower(scheme)}

	if end := strings.IndexAny(rest, "/?"); end == -1 {
		u.netloc = rest
	} else {
		u.netloc = rest[:end]
		rest = rest[end:]
		if q := strings.Index(rest, "?"); q != -1 {
			u.path, u.query = rest[:q], rest[q+1:]
		} else {
			u.path = rest
		}
	}

	hostport := u.netloc
	if at := strings.LastIndex(u.netloc, "@"); at != -1 {
		userinfo := u.netloc[:at]
		hostport = u.netloc[at+1:]
		u.user, u.password, _ = strings.Cut(userinfo, ":")
	}

	u.host = strings.ToLower(hostport)
	if colon := strings.LastIndex(hostport, ":"); colon != -1 {
		if port, ok := numericPort(hostport[colon+1:]); ok {
			u.host = strings.ToLower(hostport[:colon])
			u.port = port
		}
	}

	return u, nil
}

func numericPort(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	port := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		port = port*10 + int(r-'0')
	}
	return port, true
}
