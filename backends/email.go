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

// EmailSchemes maps email URL schemes to backend identifiers. Unknown
// schemes error unless a backend override is given.
var EmailSchemes = map[string]string{
	"smtp":        "smtp",
	"smtps":       "smtp",
	"smtp+tls":    "smtp",
	"smtp+ssl":    "smtp",
	"consolemail": "console",
	"filemail":    "file",
	"memorymail":  "memory",
	"dummymail":   "dummy",
}

// Email is a decoded email connection URL.
type Email struct {
	Backend  string
	Host     string
	Port     int // 0 when the URL carries no port
	User     string
	Password string
	FilePath string // file backend spool directory
	UseTLS   bool
	UseSSL   bool

	// Options holds the remaining query parameters, upper-cased.
	Options map[string]interface{}
}

// ParseEmail decodes an email connection URL. A non-empty backend
// overrides the scheme table.
//
//	ParseEmail("smtps://user@domain.com:pass@smtp.example.com:587", "")
//	// -> Backend "smtp", Host "smtp.example.com", UseTLS true
//
// The userinfo may contain a bare '@' (full address as the user); the
// split is on the last '@' in the netloc.
func ParseEmail(raw string, backend string) (*Email, error) {
	u, err := splitConnURL(raw)
	if err != nil {
		return nil, err
	}

	cfg := &Email{
		Host:     u.host,
		Port:     u.port,
		User:     unquote(u.user),
		Password: unquote(u.password),
		FilePath: unquote(strings.TrimPrefix(u.path, "/")),
	}

	if backend != "" {
		cfg.Backend = backend
	} else {
		mapped, ok := EmailSchemes[u.scheme]
		if !ok {
			return nil, &SchemeError{Kind: "email", Scheme: u.scheme}
		}
		cfg.Backend = mapped
	}

	switch u.scheme {
	case "smtps", "smtp+tls":
		cfg.UseTLS = true
	case "smtp+ssl":
		cfg.UseSSL = true
	}

	if u.query != "" {
		for k, vs := range parseQuery(u.query) {
			switch upper := strings.ToUpper(k); upper {
			case "EMAIL_USE_TLS":
				cfg.UseTLS = truthy(vs[0])
			case "EMAIL_USE_SSL":
				cfg.UseSSL = truthy(vs[0])
			default:
				if cfg.Options == nil {
					cfg.Options = map[string]interface{}{}
				}
				cfg.Options[upper] = intValue(vs[0])
			}
		}
	}

	return cfg, nil
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "on", "ok", "y", "yes", "1":
		return true
	}
	return false
}
