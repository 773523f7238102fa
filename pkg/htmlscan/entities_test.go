// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package htmlscan

import "testing"

func TestDefaultEntityTable_XMLBuiltins(t *testing.T) {
	tbl := NewDefaultEntityTable()
	cases := map[string]rune{"amp": '&', "lt": '<', "gt": '>', "quot": '"', "apos": '\''}
	for name, want := range cases {
		got, ok := tbl.Get(name)
		if !ok || got != want {
			t.Fatalf("Get(%q) = (%q, %v), want (%q, true)", name, got, ok, want)
		}
	}
}

func TestDefaultEntityTable_CommonHTMLEntities(t *testing.T) {
	tbl := NewDefaultEntityTable()
	cases := map[string]rune{"mdash": '—', "rsquo": '’', "eacute": 'é', "hellip": '…', "euro": '€'}
	for name, want := range cases {
		got, ok := tbl.Get(name)
		if !ok || got != want {
			t.Fatalf("Get(%q) = (%q, %v), want (%q, true)", name, got, ok, want)
		}
	}
}

func TestDefaultEntityTable_UnknownName(t *testing.T) {
	tbl := NewDefaultEntityTable()
	got, ok := tbl.Get("notarealentity")
	if ok || got != -1 {
		t.Fatalf("Get(unknown) = (%q, %v), want (-1, false)", got, ok)
	}
}

func TestIsXMLBuiltinEntity(t *testing.T) {
	for _, name := range []string{"amp", "lt", "gt", "quot", "apos"} {
		if !isXMLBuiltinEntity(name) {
			t.Fatalf("isXMLBuiltinEntity(%q) = false, want true", name)
		}
	}
	if isXMLBuiltinEntity("mdash") {
		t.Fatalf("isXMLBuiltinEntity(mdash) = true, want false")
	}
}
