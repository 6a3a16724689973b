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
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"axonflow/envconf/backends"
)

// sqlDrivers maps engine identifiers to database/sql driver names.
var sqlDrivers = map[string]string{
	"postgres":   "postgres",
	"postgis":    "postgres",
	"mysql":      "mysql",
	"mysqlgis":   "mysql",
	"sqlite3":    "sqlite3",
	"spatialite": "sqlite3",
}

// Options consumed by the pool instead of the driver DSN.
var poolOptionKeys = map[string]bool{
	"max_open_conns":    true,
	"max_idle_conns":    true,
	"conn_max_lifetime": true,
}

// OpenSQL opens a *sql.DB for a decoded database configuration. The
// handle is constructed only; no connection is attempted and the
// server is never pinged.
//
// Pool sizing comes from the configuration: CONN_MAX_AGE in Settings
// (seconds; explicit None means connections live forever) and
// max_open_conns / max_idle_conns / conn_max_lifetime in Options.
func OpenSQL(cfg *backends.Database) (*sql.DB, error) {
	driver, ok := sqlDrivers[cfg.Engine]
	if !ok {
		return nil, fmt.Errorf("no sql driver for engine %q", cfg.Engine)
	}

	var dsn string
	switch driver {
	case "postgres":
		dsn = postgresDSN(cfg)
	case "mysql":
		dsn = mysqlDSN(cfg)
	case "sqlite3":
		dsn = cfg.Name
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Engine, err)
	}

	applyPoolSettings(db, cfg)
	return db, nil
}

// postgresDSN builds a lib/pq keyword/value connection string. Unix
// socket configurations put the socket directory in Host.
func postgresDSN(cfg *backends.Database) string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+"="+quotePQ(v))
		}
	}

	add("host", cfg.Host)
	if cfg.Port != 0 {
		add("port", strconv.Itoa(cfg.Port))
	}
	add("user", cfg.User)
	add("password", cfg.Password)
	add("dbname", cfg.Name)

	for k, v := range cfg.Options {
		if poolOptionKeys[k] {
			continue
		}
		add(k, fmt.Sprint(v))
	}

	return strings.Join(parts, " ")
}

// quotePQ single-quotes a keyword/value setting when it contains
// characters lib/pq would misread.
func quotePQ(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// mysqlDSN builds a go-sql-driver DSN through its config type, which
// handles escaping and parameter encoding.
func mysqlDSN(cfg *backends.Database) string {
	mc := mysql.NewConfig()
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.DBName = cfg.Name

	if cfg.Host != "" {
		mc.Net = "tcp"
		mc.Addr = cfg.Host
		if cfg.Port != 0 {
			mc.Addr = cfg.Host + ":" + strconv.Itoa(cfg.Port)
		}
	}

	for k, v := range cfg.Options {
		if poolOptionKeys[k] {
			continue
		}
		if mc.Params == nil {
			mc.Params = map[string]string{}
		}
		mc.Params[k] = fmt.Sprint(v)
	}

	return mc.FormatDSN()
}

func applyPoolSettings(db *sql.DB, cfg *backends.Database) {
	if v, ok := cfg.Settings["CONN_MAX_AGE"]; ok {
		switch age := v.(type) {
		case nil:
			db.SetConnMaxLifetime(0)
		case int:
			db.SetConnMaxLifetime(time.Duration(age) * time.Second)
		}
	}

	if n, ok := intOption(cfg.Options, "max_open_conns"); ok {
		db.SetMaxOpenConns(n)
	}
	if n, ok := intOption(cfg.Options, "max_idle_conns"); ok {
		db.SetMaxIdleConns(n)
	}
	if s, ok := cfg.Options["conn_max_lifetime"].(string); ok {
		if d, err := time.ParseDuration(s); err == nil {
			db.SetConnMaxLifetime(d)
		}
	}
}

func intOption(options map[string]interface{}, key string) (int, bool) {
	switch v := options[key].(type) {
	case int:
		return v, true
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
