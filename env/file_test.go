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
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFromDotenv(t *testing.T) {
	path := writeFile(t, ".env", `
# comment
STR_VAR=bar
export EXPORTED_VAR=exported var
QUOTED_VAR="with spaces"
INT_VAR=42
`)

	e, err := FromDotenv(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := e.Str("STR_VAR"); got != "bar" {
		t.Errorf("STR_VAR = %q", got)
	}
	if got, _ := e.Str("EXPORTED_VAR"); got != "exported var" {
		t.Errorf("EXPORTED_VAR = %q", got)
	}
	if got, _ := e.Str("QUOTED_VAR"); got != "with spaces" {
		t.Errorf("QUOTED_VAR = %q", got)
	}
	if got, _ := e.Int("INT_VAR"); got != 42 {
		t.Errorf("INT_VAR = %d", got)
	}
}

func TestFromDotenvMissingFile(t *testing.T) {
	if _, err := FromDotenv("/nonexistent/.env"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromYAML(t *testing.T) {
	t.Setenv("YAML_TEST_HOST", "db.internal")

	path := writeFile(t, "config.yaml", `
debug: true
workers: 8
database:
  host: ${YAML_TEST_HOST}
  port: ${YAML_TEST_PORT:-5432}
  name: appdb
`)

	e, err := FromYAML(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, _ := e.Bool("debug"); !got {
		t.Error("debug = false, want true")
	}
	if got, _ := e.Int("workers"); got != 8 {
		t.Errorf("workers = %d", got)
	}
	if got, _ := e.Str("database.host"); got != "db.internal" {
		t.Errorf("database.host = %q", got)
	}
	if got, _ := e.Int("database.port"); got != 5432 {
		t.Errorf("database.port = %d", got)
	}
	if got, _ := e.Str("database.name"); got != "appdb" {
		t.Errorf("database.name = %q", got)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("EXPAND_TEST_SET", "value")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"braced", "x: ${EXPAND_TEST_SET}", "x: value"},
		{"bare", "x: $EXPAND_TEST_SET", "x: value"},
		{"default used", "x: ${EXPAND_TEST_UNSET:-fallback}", "x: fallback"},
		{"default unused", "x: ${EXPAND_TEST_SET:-fallback}", "x: value"},
		{"undefined empty", "x: ${EXPAND_TEST_UNSET}", "x: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandEnvVars(tt.in); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
