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

// Package conn turns decoded backend configurations into client
// handles: *sql.DB for the SQL engines, gocql clusters, mongo client
// options, go-redis clients and gomail dialers.
//
// Constructors never dial or ping; connectivity failures surface on
// first use, where the caller controls the timeout and retry policy.
package conn
