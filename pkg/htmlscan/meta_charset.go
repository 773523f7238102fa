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

// metaDeclaredCharset extracts the charset named by a <meta> tag's
// attributes, supporting both the HTML5 shorthand (charset="x") and the
// legacy http-equiv="Content-Type" content="text/html; charset=x" form
// (spec.md §4.F step 5).
func metaDeclaredCharset(attrs Attributes) (string, bool) {
	// Matched against Name.Raw, case-insensitively: this bookkeeping works
	// whatever AttributeNameCase is configured, unlike the handler-facing
	// Attributes.Get.
	if a, ok := getAttrFold(attrs, "charset"); ok && strings.TrimSpace(a.Value) != "" {
		return strings.TrimSpace(a.Value), true
	}

	httpEquiv, ok := getAttrFold(attrs, "http-equiv")
	if !ok || !strings.EqualFold(strings.TrimSpace(httpEquiv.Value), "content-type") {
		return "", false
	}
	content, ok := getAttrFold(attrs, "content")
	if !ok {
		return "", false
	}
	for _, part := range strings.Split(content.Value, ";") {
		name, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "charset") {
			if v := strings.Trim(strings.TrimSpace(value), `"'`); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

func getAttrFold(attrs Attributes, name string) (Attribute, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.Name.Raw, name) {
			return a, true
		}
	}
	return Attribute{}, false
}

// maybeSwitchCharset implements spec.md §4.F step 5's mid-document
// re-decode: if this <meta> declares an encoding different from the one the
// document was opened with, the buffered bytes are replayed from the start
// through a freshly built decoder, and elementDepth/elementCount open a
// window (suppressing) that drops every event this re-scan reproduces,
// until the scan naturally reaches (and passes) this same <meta> tag again
// (spec.md §8 invariant 7).
//
// It is a no-op when there is no buffered byte stream to replay (a
// character-stream InputSource has nothing to re-decode), when the <meta>
// declares no charset, or when the declared charset resolves to the
// encoding already in effect.
func (t *Tokenizer) maybeSwitchCharset(attrs Attributes) {
	if t.playback == nil {
		t.metaCharsetOpen = false
		return
	}
	iana, ok := metaDeclaredCharset(attrs)
	if !ok {
		return
	}

	native, known := t.encodingMap.IanaToNative(iana)
	if !known {
		t.reportWarning(HTML1001, iana)
		native = iana
	}
	if native == t.encoding {
		t.metaCharsetOpen = false
		return
	}

	prev := t.active
	t.playback.Playback()
	// decodedReader never returns an error itself: on an encoding it can't
	// map, it already reports HTML1010 and falls back to the raw bytes.
	decoded, _ := t.decodedReader(t.playback, native)

	t.elementDepth = t.elementCount
	t.elementCount = 0
	t.metaCharsetOpen = false
	t.encoding = native
	t.active = newCurrentEntity(decoded, prev.PublicID(), prev.BaseSystemID(), prev.LiteralSystemID(), prev.ExpandedSystemID())
}
