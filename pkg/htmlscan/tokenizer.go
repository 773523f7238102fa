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

// Package htmlscan is a permissive, streaming HTML tokenizer: it turns a
// byte or character stream into a sequence of document events without
// balancing tags or building a DOM. See spec.md for the full component
// design; this file holds the driver (setInputSource/scanDocument) that
// spec.md §3's Lifecycle describes.
package htmlscan

import (
	"fmt"
	"io"

	"github.com/benoit-pereira-da-silva/htmlscan/pkg/textual"
)

// phase is the coarse document-level state (spec.md §3's "Scanner state").
type phase int

const (
	phaseStartDocument phase = iota
	phaseContent
	phaseEndDocument
	phaseDone
)

// activeVariant selects which scanner (content or special-text) is driving
// the CONTENT phase (spec.md §3: "Active scanner variant is one of
// {Content, Special(elementName)}").
type activeVariant int

const (
	variantContent activeVariant = iota
	variantSpecial
)

// endOfEntitySignal unwinds the call stack back to scanStep when the active
// entity hits EOF somewhere inside markup/attribute/comment scanning. This
// is a structured-control-flow use of panic/recover local to one scanStep
// call (never crosses a goroutine boundary), the same technique
// encoding/json and encoding/gob use to avoid threading an "eof" bool
// through every recursive-descent helper.
type endOfEntitySignal struct{}

// Tokenizer drives the whole scan. Construct one with NewTokenizer, call
// SetInputSource once, then ScanDocument repeatedly (or with complete=true
// once) until it reports done.
type Tokenizer struct {
	cfg         Config
	handler     DocumentHandler
	catalog     ElementCatalog
	entityTable EntityTable
	encodingMap EncodingMap
	reporter    ErrorReporter

	stack  entityStack
	active *CurrentEntity

	playback          *PlaybackStream
	byteStreamPresent bool
	metaCharsetOpen   bool // "element depth uninitialized": the meta-charset window is still open
	encoding          string

	phase   phase
	variant activeVariant
	special string // remembered start-tag name while variant == variantSpecial

	elementDepth int
	elementCount int

	done bool
}

// TokenizerOption configures optional collaborators at construction time.
// Unset collaborators fall back to the package defaults (spec.md §6).
type TokenizerOption func(*Tokenizer)

func WithHandler(h DocumentHandler) TokenizerOption {
	return func(t *Tokenizer) { t.handler = h }
}

func WithElementCatalog(c ElementCatalog) TokenizerOption {
	return func(t *Tokenizer) { t.catalog = c }
}

func WithEntityTable(e EntityTable) TokenizerOption {
	return func(t *Tokenizer) { t.entityTable = e }
}

func WithEncodingMap(m EncodingMap) TokenizerOption {
	return func(t *Tokenizer) { t.encodingMap = m }
}

func WithErrorReporter(r ErrorReporter) TokenizerOption {
	return func(t *Tokenizer) { t.reporter = r }
}

func WithConfig(cfg Config) TokenizerOption {
	return func(t *Tokenizer) { t.cfg = cfg }
}

// NewTokenizer builds a Tokenizer. Call SetInputSource before ScanDocument.
func NewTokenizer(opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{
		cfg:         NewConfig(),
		catalog:     NewHTML5ElementCatalog(),
		entityTable: NewDefaultEntityTable(),
		encodingMap: NewDefaultEncodingMap(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.handler == nil {
		t.handler = NopDocumentHandler{}
	}
	if t.reporter == nil {
		if t.cfg.ReportErrors {
			t.reporter = NewSlogErrorReporter(nil, nil)
		} else {
			t.reporter = discardErrorReporter{}
		}
	}
	return t
}

// SetInputSource resets all parse-local state and begins a new document
// (spec.md §3 Lifecycle). It must not be called while a scan is in
// progress (spec.md §5: handlers may call PushInputSource but must not call
// SetInputSource mid-scan).
func (t *Tokenizer) SetInputSource(src InputSource) error {
	t.stack.clear()
	t.playback = nil
	t.byteStreamPresent = false
	t.metaCharsetOpen = false
	t.elementDepth = 0
	t.elementCount = 0
	t.done = false
	t.phase = phaseStartDocument
	t.variant = variantContent
	t.special = ""

	switch {
	case src.Chars != nil:
		t.encoding = src.Encoding
		t.active = newCurrentEntity(src.Chars, src.PublicID, src.BaseSystemID, src.SystemID, ResolveSystemID(src.SystemID, src.BaseSystemID))
	case src.Bytes != nil:
		t.byteStreamPresent = true
		t.metaCharsetOpen = true
		pb := NewPlaybackStream(src.Bytes)
		t.playback = pb

		encoding := src.Encoding
		if encoding == "" {
			iana, native, err := pb.DetectEncoding()
			if err != nil {
				return fmt.Errorf("htmlscan: detecting encoding: %w", err)
			}
			if native != "" {
				encoding = native
			} else {
				t.reportWarning(HTML1000, t.cfg.DefaultEncoding)
				encoding = t.cfg.DefaultEncoding
			}
		}
		decoded, err := t.decodedReader(pb, encoding)
		if err != nil {
			return err
		}
		t.encoding = encoding
		t.active = newCurrentEntity(decoded, src.PublicID, src.BaseSystemID, src.SystemID, ResolveSystemID(src.SystemID, src.BaseSystemID))
	default:
		return fmt.Errorf("htmlscan: InputSource has neither a byte nor a character stream")
	}
	return nil
}

// decodedReader wraps r with a streaming UTF-8 decoder for the named
// encoding (textual.NewUTF8Reader, grounded on golang.org/x/text). On an
// encoding the resolver itself can't map, it reports HTML1010 and gives up
// buffering, continuing with the raw bytes undecoded rather than aborting
// the scan — recoverable, per spec.md §7.
func (t *Tokenizer) decodedReader(r io.Reader, encoding string) (io.Reader, error) {
	dec, err := textual.NewUTF8Reader(r, textual.Encoding(encoding))
	if err != nil {
		t.reportError(HTML1010, encoding)
		if t.playback != nil {
			t.playback.Clear()
		}
		return r, nil
	}
	return dec, nil
}

// PushInputSource installs a nested character stream on top of the active
// entity (spec.md §4.I). It requires a character stream; a byte stream
// fails with ErrNoCharacterStream.
func (t *Tokenizer) PushInputSource(src InputSource) error {
	if src.Chars == nil {
		return ErrNoCharacterStream
	}
	t.stack.push(t.active)
	t.active = newCurrentEntity(src.Chars, src.PublicID, src.BaseSystemID, src.SystemID, ResolveSystemID(src.SystemID, src.BaseSystemID))
	return nil
}

// Locator returns the active entity's position accessors.
func (t *Tokenizer) Locator() Locator { return t.active }

// Done reports whether endDocument has been emitted.
func (t *Tokenizer) Done() bool { return t.done }

func (t *Tokenizer) reportError(code string, args ...any) {
	if t.cfg.ReportErrors {
		t.reporter.ReportError(code, args...)
	}
}

func (t *Tokenizer) reportWarning(code string, args ...any) {
	if t.cfg.ReportErrors {
		t.reporter.ReportWarning(code, args...)
	}
}

// suppressing reports whether the current event should be dropped because
// it is a duplicate produced while re-scanning the document prefix after a
// <meta charset> switch (spec.md §4.F step 5, §8 invariant 7). Only
// startElement increments elementCount; every other event kind shares the
// same gate so the whole suppressed prefix — tags, text, comments alike —
// is dropped exactly once.
func (t *Tokenizer) suppressing() bool {
	return t.elementCount < t.elementDepth
}

type sourceLoc struct{ line, col int }

func (t *Tokenizer) mark() sourceLoc {
	return sourceLoc{t.active.Line(), t.active.Column()}
}

func (t *Tokenizer) augFrom(begin sourceLoc) *LocationItem {
	if !t.cfg.Augmentations {
		return nil
	}
	return &LocationItem{
		BeginLine:   begin.line,
		BeginColumn: begin.col,
		EndLine:     t.active.Line(),
		EndColumn:   t.active.Column(),
	}
}

// ScanDocument advances the scan. With complete == true it runs to
// completion (one endDocument emitted, Done() becomes true). With
// complete == false it returns after producing one "chunk" — one emitted
// event's worth of work — so callers can interleave other work between
// calls; repeated calls eventually reach the same end state as one
// complete == true call (spec.md §5, §8 invariant 10).
func (t *Tokenizer) ScanDocument(complete bool) error {
	for {
		if t.done {
			return nil
		}
		switch t.phase {
		case phaseStartDocument:
			t.emitStartDocument()
			t.phase = phaseContent
			if !complete {
				return nil
			}
		case phaseContent:
			progressed, err := t.scanStep()
			if err != nil {
				return err
			}
			if !complete {
				return nil
			}
			_ = progressed
		case phaseEndDocument:
			t.emitEndDocument()
			t.phase = phaseDone
			t.done = true
			return nil
		case phaseDone:
			t.done = true
			return nil
		}
	}
}

// scanStep performs one CONTENT-phase unit of work: dispatches to the
// active scanner variant and recovers the end-of-entity signal, which pops
// the entity stack or transitions to END_DOCUMENT (spec.md §3 Lifecycle,
// "End-of-entity signal handling").
func (t *Tokenizer) scanStep() (progressed bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(endOfEntitySignal); !ok {
				panic(r)
			}
			if popped, ok := t.stack.pop(); ok {
				t.active = popped
			} else {
				t.phase = phaseEndDocument
			}
			progressed = true
		}
	}()

	switch t.variant {
	case variantSpecial:
		t.scanSpecialStep()
	default:
		t.scanContentStep()
	}
	return true, nil
}

func (t *Tokenizer) emitStartDocument() {
	t.handler.StartDocument(t.active, t.encoding, t.augFrom(t.mark()))
}

func (t *Tokenizer) emitEndDocument() {
	t.handler.EndDocument(t.augFrom(t.mark()))
}
