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
	"unicode"
)

// scanSpecialStep is the raw-text scanner active inside SCRIPT/STYLE-like
// elements (spec.md §4.G): everything is literal text, including "<" and
// "&", until the matching end tag for t.special is found. Matching is
// case-insensitive and tolerates whitespace between the name and ">".
func (t *Tokenizer) scanSpecialStep() {
	begin := t.mark()
	var b strings.Builder
	for {
		c, ok := t.active.read()
		if !ok {
			if b.Len() > 0 {
				t.emitCharacters(b.String(), t.augFrom(begin))
			}
			t.reportError(HTML1007)
			panic(endOfEntitySignal{})
		}
		if c == '\r' || c == '\n' {
			t.active.pushBack(c)
			n := t.active.skipNewlines()
			for i := 0; i < n; i++ {
				b.WriteByte('\n')
			}
			continue
		}
		if c != '<' {
			b.WriteRune(c)
			continue
		}

		tagBegin := t.mark()
		matched, consumed := t.tryEndTag(t.special)
		if matched {
			if b.Len() > 0 {
				t.emitCharacters(b.String(), t.augFrom(begin))
			}
			name := t.makeElementQName(t.special)
			t.emitEndElement(name, t.augFrom(tagBegin))
			t.variant = variantContent
			t.special = ""
			return
		}
		b.WriteByte('<')
		b.WriteString(consumed)
	}
}

// tryEndTag attempts to scan "/" + name (case-insensitive) + optional
// whitespace + ">", immediately after an already-consumed "<". On success
// it returns (true, ""), having consumed the whole end tag. On failure it
// returns (false, consumed) where consumed is everything read so far —
// nothing is pushed back, since those characters are simply raw text that
// belongs in the caller's buffer instead.
func (t *Tokenizer) tryEndTag(name string) (matched bool, consumed string) {
	var b strings.Builder

	c, ok := t.active.read()
	if !ok || c != '/' {
		if ok {
			b.WriteRune(c)
		}
		return false, b.String()
	}
	b.WriteRune(c)

	for _, want := range name {
		c, ok := t.active.read()
		if !ok {
			return false, b.String()
		}
		if unicode.ToLower(c) != unicode.ToLower(want) {
			b.WriteRune(c)
			return false, b.String()
		}
		b.WriteRune(c)
	}

	for {
		c, ok := t.active.read()
		if !ok {
			return false, b.String()
		}
		if isLegacyHTMLSpace(c) {
			b.WriteRune(c)
			continue
		}
		if c == '>' {
			return true, ""
		}
		b.WriteRune(c)
		return false, b.String()
	}
}
