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

	gomail "gopkg.in/gomail.v2"

	"axonflow/envconf/backends"
)

// MailDialer builds a gomail SMTP dialer from a decoded email
// configuration. Nothing is dialed until a message is sent. STARTTLS
// is negotiated opportunistically by gomail, so UseTLS needs no
// explicit wiring; UseSSL selects implicit TLS.
func MailDialer(cfg *backends.Email) (*gomail.Dialer, error) {
	if cfg.Backend != "smtp" {
		return nil, fmt.Errorf("email backend %q is not smtp", cfg.Backend)
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp config has no host")
	}

	port := cfg.Port
	if port == 0 {
		port = 25
	}

	d := gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Password)
	d.SSL = cfg.UseSSL
	return d, nil
}
