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
	"testing"
)

// recordedEvent is a flattened, comparison-friendly shape for every
// DocumentHandler callback recorderHandler observes.
type recordedEvent struct {
	kind  string
	name  string
	attrs Attributes
	value string
}

// recorderHandler implements DocumentHandler by appending a recordedEvent
// per callback, in source order, for table-driven assertions.
type recorderHandler struct {
	events []recordedEvent
}

func (r *recorderHandler) StartDocument(_ Locator, encoding string, _ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "start-document", value: encoding})
}

func (r *recorderHandler) EndDocument(_ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "end-document"})
}

func (r *recorderHandler) StartElement(name QName, attrs Attributes, _ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "start-element", name: name.Local, attrs: attrs})
}

func (r *recorderHandler) EndElement(name QName, _ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "end-element", name: name.Local})
}

func (r *recorderHandler) Characters(buf string, _ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "characters", value: buf})
}

func (r *recorderHandler) Comment(buf string, _ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "comment", value: buf})
}

func (r *recorderHandler) StartGeneralEntity(name, resourceID, encoding string, _ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "start-general-entity", name: name})
}

func (r *recorderHandler) EndGeneralEntity(name string, _ *LocationItem) {
	r.events = append(r.events, recordedEvent{kind: "end-general-entity", name: name})
}

// kinds returns the sequence of event kinds, for coarse-grained shape
// assertions ("did we see start-element then characters then end-element").
func (r *recorderHandler) kinds() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.kind
	}
	return out
}

func scanString(t *testing.T, input string, opts ...TokenizerOption) *recorderHandler {
	t.Helper()
	rec := &recorderHandler{}
	tok := NewTokenizer(append([]TokenizerOption{WithHandler(rec)}, opts...)...)
	if err := tok.SetInputSource(InputSource{Chars: strings.NewReader(input)}); err != nil {
		t.Fatalf("SetInputSource: %v", err)
	}
	if err := tok.ScanDocument(true); err != nil {
		t.Fatalf("ScanDocument: %v", err)
	}
	return rec
}

func TestScanDocument_SimpleElementTree(t *testing.T) {
	rec := scanString(t, `<p id="a">hello <b>world</b></p>`)

	want := []string{
		"start-document",
		"start-element", "characters", "start-element", "characters", "end-element",
		"end-element",
		"end-document",
	}
	got := rec.kinds()
	if len(got) != len(want) {
		t.Fatalf("event count mismatch: got %d (%v), want %d (%v)", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %q, want %q (full: %v)", i, got[i], want[i], got)
		}
	}

	pOpen := rec.events[1]
	if pOpen.name != "p" {
		t.Fatalf("expected first start-element to be <p>, got %q", pOpen.name)
	}
	if a, ok := pOpen.attrs.Get("id"); !ok || a.Value != "a" {
		t.Fatalf("expected attribute id=%q, got %+v (ok=%v)", "a", a, ok)
	}
}

func TestScanDocument_CommentIsReportedVerbatim(t *testing.T) {
	rec := scanString(t, `<!-- note --><p></p>`)
	if rec.events[1].kind != "comment" || rec.events[1].value != " note " {
		t.Fatalf("unexpected comment event: %+v", rec.events[1])
	}
}

func TestScanDocument_CommentLongDashRunsAreFoldedToNMinus2(t *testing.T) {
	rec := scanString(t, `<!-- a -- b --- c --><p></p>`)
	if rec.events[1].kind != "comment" {
		t.Fatalf("expected a comment event, got %+v", rec.events[1])
	}
	if got, want := rec.events[1].value, " a -- b - c "; got != want {
		t.Fatalf("comment value = %q, want %q", got, want)
	}
}

func TestScanDocument_VoidLikeSelfClosingTag(t *testing.T) {
	rec := scanString(t, `<br/><hr>`)
	want := []string{"start-document", "start-element", "start-element", "end-document"}
	got := rec.kinds()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestScanDocument_NamedAndNumericEntitiesResolve(t *testing.T) {
	rec := scanString(t, `<p>A&amp;B &#65; &#x42;</p>`)
	var text strings.Builder
	for _, e := range rec.events {
		if e.kind == "characters" {
			text.WriteString(e.value)
		}
	}
	if got, want := text.String(), "A&B A B"; got != want {
		t.Fatalf("resolved text = %q, want %q", got, want)
	}
}

func TestScanDocument_UnknownEntityIsLeftLiteral(t *testing.T) {
	rec := scanString(t, `<p>&notareal;</p>`)
	var text strings.Builder
	for _, e := range rec.events {
		if e.kind == "characters" {
			text.WriteString(e.value)
		}
	}
	if got, want := text.String(), "&notareal;"; got != want {
		t.Fatalf("text = %q, want %q", got, want)
	}
}

func TestScanDocument_ScriptContentIsLiteral(t *testing.T) {
	rec := scanString(t, `<script>if (1<2) { x = "<p>&amp;</p>"; }</script>`)
	var text strings.Builder
	for _, e := range rec.events {
		if e.kind == "characters" {
			text.WriteString(e.value)
		}
	}
	want := `if (1<2) { x = "<p>&amp;</p>"; }`
	if got := text.String(); got != want {
		t.Fatalf("script text = %q, want %q", got, want)
	}
}

func TestScanDocument_CDATASectionIsLiteral(t *testing.T) {
	rec := scanString(t, `<svg><![CDATA[a < b & c]]></svg>`)
	var text strings.Builder
	for _, e := range rec.events {
		if e.kind == "characters" {
			text.WriteString(e.value)
		}
	}
	if got, want := text.String(), "a < b & c"; got != want {
		t.Fatalf("CDATA text = %q, want %q", got, want)
	}
}

func TestScanDocument_DuplicateAttributesBothKept(t *testing.T) {
	rec := scanString(t, `<p class="a" class="b"></p>`)
	attrs := rec.events[1].attrs
	if len(attrs) != 2 {
		t.Fatalf("expected both duplicate attributes kept, got %+v", attrs)
	}
	if attrs[0].Value != "a" || attrs[1].Value != "b" {
		t.Fatalf("expected values a,b in source order, got %+v", attrs)
	}
}
