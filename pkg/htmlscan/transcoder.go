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
	"context"
	"io"
	"runtime/debug"

	"github.com/benoit-pereira-da-silva/htmlscan/pkg/textual"
)

// ChannelHandler adapts the Tokenizer's pull-style DocumentHandler
// callbacks to a channel of Event, respecting ctx cancellation on every
// send exactly like textual.Async (textual/async.go).
//
// It is built once per scan by HTMLTranscoder.Apply and is not meant to be
// shared across tokenizers.
type ChannelHandler struct {
	ctx   context.Context
	out   chan<- Event
	index int
}

// NewChannelHandler builds a ChannelHandler sending onto out.
func NewChannelHandler(ctx context.Context, out chan<- Event) *ChannelHandler {
	return &ChannelHandler{ctx: ctx, out: out}
}

func (h *ChannelHandler) send(e Event) {
	e = e.WithIndex(h.index)
	h.index++
	select {
	case <-h.ctx.Done():
	case h.out <- e:
	}
}

func (h *ChannelHandler) StartDocument(locator Locator, encoding string, augs *LocationItem) {
	h.send(Event{Kind: EventStartDocument, Encoding: encoding, Location: augs})
}

func (h *ChannelHandler) EndDocument(augs *LocationItem) {
	h.send(Event{Kind: EventEndDocument, Location: augs})
}

func (h *ChannelHandler) StartElement(name QName, attrs Attributes, augs *LocationItem) {
	h.send(Event{Kind: EventStartElement, Name: name, Attrs: attrs, Location: augs})
}

func (h *ChannelHandler) EndElement(name QName, augs *LocationItem) {
	h.send(Event{Kind: EventEndElement, Name: name, Location: augs})
}

func (h *ChannelHandler) Characters(buf string, augs *LocationItem) {
	h.send(Event{Kind: EventCharacters, Value: buf, Location: augs})
}

func (h *ChannelHandler) Comment(buf string, augs *LocationItem) {
	h.send(Event{Kind: EventComment, Value: buf, Location: augs})
}

func (h *ChannelHandler) StartGeneralEntity(name, resourceID, encoding string, augs *LocationItem) {
	h.send(Event{Kind: EventStartGeneralEntity, Name: QName{Local: name, Raw: name}, ResourceID: resourceID, Encoding: encoding, Location: augs})
}

func (h *ChannelHandler) EndGeneralEntity(name string, augs *LocationItem) {
	h.send(Event{Kind: EventEndGeneralEntity, Name: QName{Local: name, Raw: name}, Location: augs})
}

// chanReader turns a <-chan textual.StringCarrier into an io.Reader,
// pulling one carrier's worth of text at a time. It lets the Tokenizer's
// ordinary sequential CurrentEntity.refill loop drive the channel read
// instead of a second feeder goroutine.
type chanReader struct {
	ctx context.Context
	in  <-chan textual.StringCarrier
	buf []byte
}

func (r *chanReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		select {
		case <-r.ctx.Done():
			return 0, r.ctx.Err()
		case sc, ok := <-r.in:
			if !ok {
				return 0, io.EOF
			}
			r.buf = []byte(sc.Value)
		}
	}
	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

// HTMLTranscoder implements textual.Transcoder[textual.StringCarrier, Event]:
// it feeds a channel of text chunks into a Tokenizer and streams out the
// resulting Event values. Like IOReaderTranscoder
// (textual/io_reader_transcoder.go), it owns exactly one worker goroutine —
// the Tokenizer itself is ordinary sequential code called from it, never
// spawning goroutines of its own.
type HTMLTranscoder struct {
	Options []TokenizerOption
}

// NewHTMLTranscoder builds an HTMLTranscoder that constructs its Tokenizer
// with opts (plus a ChannelHandler the Apply call supplies itself).
func NewHTMLTranscoder(opts ...TokenizerOption) *HTMLTranscoder {
	return &HTMLTranscoder{Options: opts}
}

func (tc *HTMLTranscoder) Apply(ctx context.Context, in <-chan textual.StringCarrier) <-chan Event {
	if ctx == nil {
		ctx = context.Background()
	}
	if textual.PanicStoreFromContext(ctx) == nil {
		ctx, _ = textual.WithPanicStore(ctx)
	}
	ctx, cancel := context.WithCancel(ctx)

	out := make(chan Event)
	go func() {
		defer close(out)
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				if ps := textual.PanicStoreFromContext(ctx); ps != nil {
					ps.Store(r, debug.Stack())
				}
			}
		}()

		handler := NewChannelHandler(ctx, out)
		opts := append(append([]TokenizerOption(nil), tc.Options...), WithHandler(handler))
		tok := NewTokenizer(opts...)

		reader := &chanReader{ctx: ctx, in: in}
		if err := tok.SetInputSource(InputSource{Chars: reader}); err != nil {
			handler.send(Event{Kind: EventEndDocument}.WithError(err))
			return
		}
		_ = tok.ScanDocument(true)
	}()
	return out
}
