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
	"reflect"
	"strings"
	"testing"
)

func TestParseNilCast(t *testing.T) {
	got, err := Parse("anything", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "anything" {
		t.Errorf("Parse = %v", got)
	}
}

func TestBoolCast(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"1", true},
		{"42", true},
		{"0", false},
		{"True", true},
		{"true", true},
		{"on", true},
		{"ok", true},
		{"y", true},
		{"yes", true},
		{"YES", true},
		{"False", false},
		{"off", false},
		{"no", false},
		{"", false},
	}
	for _, tt := range tests {
		got, err := Parse(tt.raw, Bool)
		if err != nil {
			t.Fatalf("Parse(%q, Bool) error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q, Bool) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestFloatCast(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"33.3", 33.3},
		{"33,3", 33.3},
		{"123,420,333.3", 123420333.3},
		{"123.420.333,3", 123420333.3},
		{"$ 1,234.56", 1234.56},
	}
	for _, tt := range tests {
		got, err := Parse(tt.raw, Float)
		if err != nil {
			t.Fatalf("Parse(%q, Float) error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q, Float) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestListOfCast(t *testing.T) {
	got, err := Parse("42,33", ListOf(Int))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []interface{}{42, 33}) {
		t.Errorf("ListOf(Int) = %v", got)
	}

	got, err = Parse("", ListOf(Int))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []interface{}{}) {
		t.Errorf("ListOf(Int) of empty = %v", got)
	}

	got, err = Parse(" foo,  bar", ListOf(String))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []interface{}{" foo", "  bar"}) {
		t.Errorf("ListOf(String) = %v", got)
	}
}

func TestTupleOfCast(t *testing.T) {
	got, err := Parse("(42,33)", TupleOf(Int))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []interface{}{42, 33}) {
		t.Errorf("TupleOf(Int) = %v", got)
	}
}

func TestMapCasts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		cast Cast
		want interface{}
	}{
		{
			name: "plain string map",
			raw:  "a=1",
			cast: Map,
			want: map[string]string{"a": "1"},
		},
		{
			name: "value cast",
			raw:  "a=1",
			cast: MapOf(MapCast{Value: Int}),
			want: map[string]interface{}{"a": 1},
		},
		{
			name: "string list values",
			raw:  "a=1,2,3",
			cast: MapOf(MapCast{Value: ListOf(String)}),
			want: map[string]interface{}{"a": []interface{}{"1", "2", "3"}},
		},
		{
			name: "int list values",
			raw:  "a=1,2,3",
			cast: MapOf(MapCast{Value: ListOf(Int)}),
			want: map[string]interface{}{"a": []interface{}{1, 2, 3}},
		},
		{
			name: "per-key cast override",
			raw:  "a=1;b=1.1,2.2;c=3",
			cast: MapOf(MapCast{Value: Int, Keys: map[string]Cast{"b": ListOf(Float)}}),
			want: map[string]interface{}{
				"a": 1,
				"b": []interface{}{1.1, 2.2},
				"c": 3,
			},
		},
		{
			name: "bool override keeps others strings",
			raw:  "a=uname;c=http://www.example.com;b=True",
			cast: MapOf(MapCast{Value: String, Keys: map[string]Cast{"b": Bool}}),
			want: map[string]interface{}{
				"a": "uname",
				"c": "http://www.example.com",
				"b": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw, tt.cast)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFuncCast(t *testing.T) {
	upper := Func(func(raw string) (interface{}, error) {
		return strings.ToUpper(raw), nil
	})
	got, err := Parse("quiet", upper)
	if err != nil {
		t.Fatal(err)
	}
	if got != "QUIET" {
		t.Errorf("Func cast = %v", got)
	}
}

func TestIntCastError(t *testing.T) {
	if _, err := Parse("not-a-number", Int); err == nil {
		t.Error("Parse(not-a-number, Int) should fail")
	}
}

func TestPathCast(t *testing.T) {
	got, err := Parse("/home//dev/", Path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "/home/dev" {
		t.Errorf("Path cast = %v", got)
	}
}
