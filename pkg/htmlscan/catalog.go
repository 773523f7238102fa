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

import "strings"

// ElementInfo is what the ElementCatalog knows about one element name.
//
// Special marks an element whose content is opaque text until its own end
// tag (spec.md §4.G: SCRIPT, STYLE, and historically COMMENT). Parents lists
// the element's default parent(s); the content scanner only cares whether
// "BODY" is among them (spec.md §4.F step 5).
type ElementInfo struct {
	Special bool
	Parents []string
}

func (e ElementInfo) hasBodyParent() bool {
	for _, p := range e.Parents {
		if p == "BODY" {
			return true
		}
	}
	return false
}

// ElementCatalog answers "is this element special?" and "what is its default
// parent?" (spec.md §6). Names are matched case-insensitively.
type ElementCatalog interface {
	GetElement(name string) (ElementInfo, bool)
}

// elementTable is a plain map-backed ElementCatalog, keyed by the upper-case
// element name. Pure function over immutable data, per spec.md §9's design
// note for the encoding map and entity table.
type elementTable map[string]ElementInfo

func (t elementTable) GetElement(name string) (ElementInfo, bool) {
	info, ok := t[strings.ToUpper(name)]
	return info, ok
}

// NewHTML5ElementCatalog returns the default ElementCatalog: the HTML5
// raw-text/special elements, plus the common block-level elements whose
// default parent is BODY (grounded on the shape of the label table in
// other_examples' justgohtml encoding package — a small, hand-maintained
// constant table rather than a generated one).
func NewHTML5ElementCatalog() ElementCatalog {
	special := []string{"SCRIPT", "STYLE", "TEXTAREA", "TITLE", "XMP", "IFRAME", "NOEMBED", "NOFRAMES", "PLAINTEXT"}
	bodyDefault := []string{
		"P", "DIV", "SPAN", "A", "IMG", "TABLE", "TR", "TD", "TH", "UL", "OL", "LI",
		"H1", "H2", "H3", "H4", "H5", "H6", "FORM", "INPUT", "BUTTON", "LABEL",
		"PRE", "BLOCKQUOTE", "BR", "HR", "B", "I", "EM", "STRONG", "SMALL", "CODE",
		"SECTION", "ARTICLE", "HEADER", "FOOTER", "NAV", "MAIN", "ASIDE", "FIGURE",
		"FIGCAPTION", "VIDEO", "AUDIO", "CANVAS", "SVG", "PICTURE", "SOURCE",
	}
	headOnly := []string{"HEAD", "TITLE", "META", "LINK", "BASE", "STYLE"}

	t := make(elementTable, len(special)+len(bodyDefault)+len(headOnly))
	for _, n := range special {
		info := t[n]
		info.Special = true
		t[n] = info
	}
	for _, n := range bodyDefault {
		info := t[n]
		info.Parents = append(info.Parents, "BODY")
		t[n] = info
	}
	for _, n := range headOnly {
		info := t[n]
		info.Parents = append(info.Parents, "HEAD")
		t[n] = info
	}
	// HTML/HEAD/BODY themselves have no default parent worth recording.
	t["HTML"] = ElementInfo{}
	t["HEAD"] = ElementInfo{}
	t["BODY"] = ElementInfo{}
	return t
}
