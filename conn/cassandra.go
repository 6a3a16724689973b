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

	"github.com/gocql/gocql"

	"axonflow/envconf/backends"
)

// CassandraCluster builds a gocql cluster configuration from a decoded
// database configuration. The cluster is not connected; call
// CreateSession on the result to connect.
func CassandraCluster(cfg *backends.Database) (*gocql.ClusterConfig, error) {
	if cfg.Engine != "cassandra" {
		return nil, fmt.Errorf("engine %q is not cassandra", cfg.Engine)
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("cassandra config has no host")
	}

	cluster := gocql.NewCluster(cfg.Host)
	if cfg.Port != 0 {
		cluster.Port = cfg.Port
	}
	cluster.Keyspace = cfg.Name

	if cfg.User != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.User,
			Password: cfg.Password,
		}
	}

	if v, ok := cfg.Options["consistency"].(string); ok {
		consistency, err := gocql.ParseConsistencyWrapper(v)
		if err != nil {
			return nil, fmt.Errorf("invalid consistency %q: %w", v, err)
		}
		cluster.Consistency = consistency
	}

	return cluster, nil
}
