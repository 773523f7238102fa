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

func TestScanDocument_StyleContentIsLiteralAndEndTagIsCaseInsensitive(t *testing.T) {
	rec := scanString(t, `<style>p { color: red; } /* <b>not a tag</b> */</STYLE>`)

	want := []string{"start-document", "start-element", "characters", "end-element", "end-document"}
	got := rec.kinds()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d: got %q want %q", i, got[i], want[i])
		}
	}

	text := rec.events[2].value
	if want := `p { color: red; } /* <b>not a tag</b> */`; text != want {
		t.Fatalf("style text = %q, want %q", text, want)
	}
	if rec.events[3].name != "style" {
		t.Fatalf("expected end-element name %q (original case), got %q", "style", rec.events[3].name)
	}
}

func TestScanDocument_SpecialEndTagToleratesWhitespaceBeforeClose(t *testing.T) {
	rec := scanString(t, "<script>1<2</script  \n>")
	text := ""
	for _, e := range rec.events {
		if e.kind == "characters" {
			text += e.value
		}
	}
	if text != "1<2" {
		t.Fatalf("script text = %q, want %q", text, "1<2")
	}
}

func TestScanDocument_LookalikeEndTagInsideScriptStaysLiteral(t *testing.T) {
	// "</scriptx>" does not match the special element's own name, so it must
	// be treated as ordinary literal text, not as the closing tag.
	rec := scanString(t, `<script>a</scriptx>b</script>`)
	text := ""
	for _, e := range rec.events {
		if e.kind == "characters" {
			text += e.value
		}
	}
	if want := "a</scriptx>b"; text != want {
		t.Fatalf("script text = %q, want %q", text, want)
	}
}

// recordingErrorReporter records every reported code, for assertions that a
// diagnostic fired without caring about the human-readable message.
type recordingErrorReporter struct {
	errors   []string
	warnings []string
}

func (r *recordingErrorReporter) ReportError(code string, _ ...any) {
	r.errors = append(r.errors, code)
}

func (r *recordingErrorReporter) ReportWarning(code string, _ ...any) {
	r.warnings = append(r.warnings, code)
}

func TestScanDocument_EOFInsideSpecialElementReportsHTML1007(t *testing.T) {
	rec := &recorderHandler{}
	reporter := &recordingErrorReporter{}
	cfg := NewConfig(WithErrorReporting(true))
	tok := NewTokenizer(WithHandler(rec), WithConfig(cfg), WithErrorReporter(reporter))
	if err := tok.SetInputSource(InputSource{Chars: strings.NewReader("<script>unterminated")}); err != nil {
		t.Fatalf("SetInputSource: %v", err)
	}
	if err := tok.ScanDocument(true); err != nil {
		t.Fatalf("ScanDocument: %v", err)
	}

	found := false
	for _, code := range reporter.errors {
		if code == HTML1007 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected HTML1007 to be reported on EOF inside a special element, got %v", reporter.errors)
	}
}
