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

import (
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// EncodingMap maps an IANA/WHATWG encoding label to the native name the
// decoder (textual.NewUTF8Reader) accepts. A false second return means the
// label is unrecognized (spec.md §6).
type EncodingMap interface {
	IanaToNative(iana string) (string, bool)
}

// aliasTable covers common legacy aliases that predate WHATWG's canonical
// labels; htmlindex already understands most of these, but the table is
// grounded on other_examples' justgohtml encoding package (a hand-written
// lowercase-label -> canonical-name table) and kept as the fast, explicit
// first path in front of htmlindex.
var aliasTable = map[string]string{
	"ascii":       "windows-1252",
	"us-ascii":    "windows-1252",
	"latin1":      "iso-8859-1",
	"latin-1":     "iso-8859-1",
	"iso-latin-1": "iso-8859-1",
	"utf8":        "utf-8",
	"unicode":     "utf-8",
}

// defaultEncodingMap resolves labels via aliasTable first, then htmlindex
// (the Go ecosystem's IANA-label -> encoding.Encoding resolver, purpose
// built for HTML <meta charset> handling).
type defaultEncodingMap struct{}

// NewDefaultEncodingMap returns the EncodingMap used when none is supplied
// to Config.
func NewDefaultEncodingMap() EncodingMap {
	return defaultEncodingMap{}
}

func (defaultEncodingMap) IanaToNative(iana string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(iana))
	if lower == "" {
		return "", false
	}
	if native, ok := aliasTable[lower]; ok {
		return native, true
	}
	if _, err := htmlindex.Get(lower); err == nil {
		return lower, true
	}
	return "", false
}
