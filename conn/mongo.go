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
	"net/url"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo/options"

	"axonflow/envconf/backends"
)

// MongoOptions builds mongo client options from a decoded database
// configuration. Pass the result to mongo.Connect.
func MongoOptions(cfg *backends.Database) (*options.ClientOptions, error) {
	if cfg.Engine != "mongodb" {
		return nil, fmt.Errorf("engine %q is not mongodb", cfg.Engine)
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("mongodb config has no host")
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   cfg.Host,
		Path:   "/" + cfg.Name,
	}
	if cfg.Port != 0 {
		u.Host = cfg.Host + ":" + strconv.Itoa(cfg.Port)
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}

	opts := options.Client().ApplyURI(u.String())
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mongodb options: %w", err)
	}
	return opts, nil
}
