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
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"axonflow/envconf/backends"
)

func TestRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg, err := backends.ParseCache("redis://"+mr.Addr(), "")
	require.NoError(t, err)

	client, err := RedisClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestRedisClientWithDB(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg, err := backends.ParseCache("rediscache://"+mr.Addr()+"/2", "")
	require.NoError(t, err)
	require.Equal(t, []string{"redis://" + mr.Addr() + "/2"}, cfg.Locations)

	client, err := RedisClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestRedisClientMultiLocation(t *testing.T) {
	cfg, err := backends.ParseCache("rediscache://host1:6379,host2:6379/1", "")
	require.NoError(t, err)

	client, err := RedisClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.NotNil(t, client)
}

func TestRedisClientWrongBackend(t *testing.T) {
	cfg, err := backends.ParseCache("memcache://127.0.0.1:11211", "")
	require.NoError(t, err)

	_, err = RedisClient(cfg)
	assert.Error(t, err)
}

func TestRedisClientNoLocation(t *testing.T) {
	_, err := RedisClient(&backends.Cache{Backend: "redis"})
	assert.Error(t, err)
}

func TestRedisOptionsUnixSocket(t *testing.T) {
	opt, err := redisOptions("unix://:redispass@/path/to/socket.sock")
	require.NoError(t, err)

	assert.Equal(t, "unix", opt.Network)
	assert.Equal(t, "/path/to/socket.sock", opt.Addr)
	assert.Equal(t, "redispass", opt.Password)
}

func TestRedisOptionsUnixSocketNoAuth(t *testing.T) {
	opt, err := redisOptions("unix:///var/run/redis.sock")
	require.NoError(t, err)

	assert.Equal(t, "unix", opt.Network)
	assert.Equal(t, "/var/run/redis.sock", opt.Addr)
	assert.Empty(t, opt.Password)
}

func TestRedisOptionsInvalidURL(t *testing.T) {
	_, err := redisOptions("http://not-redis")
	assert.Error(t, err)
}

func TestRedisClientPasswordFromOptions(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	cfg, err := backends.ParseCache("redis://"+mr.Addr()+"?password=secret", "")
	require.NoError(t, err)

	client, err := RedisClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}
