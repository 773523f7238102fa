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

import "io"

// PlaybackStream wraps a raw byte source (spec.md §4.A). While neither
// cleared nor in playback, every byte it returns is also appended to an
// internal buffer; Playback() switches to replaying that buffer from the
// start, and Clear() releases it.
//
// PlaybackStream implements io.Reader, so it can be handed directly to a
// decoder (golang.org/x/text/transform via textual.NewUTF8Reader).
type PlaybackStream struct {
	source io.Reader

	buf        []byte
	byteOffset int
	byteLength int

	pushback       []byte
	pushbackOffset int

	detected   bool
	inPlayback bool
	cleared    bool
	sourceEOF  bool
}

// NewPlaybackStream wraps r.
func NewPlaybackStream(r io.Reader) *PlaybackStream {
	return &PlaybackStream{source: r}
}

// ensureCap grows buf so it has room for at least extra more bytes,
// growing by at least minGrow when a grow is needed (spec.md §4.A: "+1024
// on single-byte append, +512+n on bulk append"; spec.md §9 asks that this
// increment be preserved rather than left to a generic doubling strategy).
func (p *PlaybackStream) ensureCap(extra, minGrow int) {
	if cap(p.buf)-len(p.buf) >= extra {
		return
	}
	growth := minGrow
	if extra > growth {
		growth = extra
	}
	grown := make([]byte, len(p.buf), cap(p.buf)+growth)
	copy(grown, p.buf)
	p.buf = grown
}

func (p *PlaybackStream) appendByte(b byte) {
	p.ensureCap(1, 1024)
	p.buf = append(p.buf, b)
	p.byteLength = len(p.buf)
}

func (p *PlaybackStream) appendBytes(b []byte) {
	p.ensureCap(len(b), 512+len(b))
	p.buf = append(p.buf, b...)
	p.byteLength = len(p.buf)
}

func (p *PlaybackStream) pushbackBytes(b []byte) {
	rest := p.pushback[p.pushbackOffset:]
	merged := make([]byte, 0, len(b)+len(rest))
	merged = append(merged, b...)
	merged = append(merged, rest...)
	p.pushback = merged
	p.pushbackOffset = 0
}

func (p *PlaybackStream) sourceReadByte() (int, error) {
	if p.sourceEOF {
		return -1, nil
	}
	var one [1]byte
	for {
		n, err := p.source.Read(one[:])
		if n > 0 {
			return int(one[0]), nil
		}
		if err != nil {
			if err == io.EOF {
				p.sourceEOF = true
				return -1, nil
			}
			return -1, err
		}
	}
}

// DetectEncoding reads up to three bytes and recognizes a BOM (spec.md
// §4.A). It may only be called once; a second call fails with
// ErrEncodingAlreadyDetected. Bytes that do not form a recognized BOM are
// pushed back so the next Read/ReadByte returns them.
func (p *PlaybackStream) DetectEncoding() (ianaName, nativeName string, err error) {
	if p.detected {
		return "", "", ErrEncodingAlreadyDetected
	}
	p.detected = true

	b0, err := p.sourceReadByte()
	if err != nil {
		return "", "", err
	}
	if b0 == -1 {
		return "", "", nil
	}
	b1, err := p.sourceReadByte()
	if err != nil {
		return "", "", err
	}
	if b1 == -1 {
		p.pushbackBytes([]byte{byte(b0)})
		return "", "", nil
	}

	switch {
	case b0 == 0xFF && b1 == 0xFE:
		return "UTF-16", "UTF-16LE", nil
	case b0 == 0xFE && b1 == 0xFF:
		return "UTF-16", "UTF-16BE", nil
	case b0 == 0xEF && b1 == 0xBB:
		b2, err := p.sourceReadByte()
		if err != nil {
			return "", "", err
		}
		if b2 == 0xBF {
			return "UTF-8", "UTF8", nil
		}
		if b2 == -1 {
			p.pushbackBytes([]byte{byte(b0), byte(b1)})
		} else {
			p.pushbackBytes([]byte{byte(b0), byte(b1), byte(b2)})
		}
		return "", "", nil
	default:
		p.pushbackBytes([]byte{byte(b0), byte(b1)})
		return "", "", nil
	}
}

// Playback switches the stream into replay mode: subsequent reads come from
// the buffered bytes, from the start, until exhausted.
func (p *PlaybackStream) Playback() {
	p.inPlayback = true
	p.byteOffset = 0
	p.byteLength = len(p.buf)
}

// Clear releases the buffer. It is a no-op while in playback (spec.md
// §4.A); playback exhaustion clears automatically.
func (p *PlaybackStream) Clear() {
	if p.inPlayback {
		return
	}
	p.releaseBuffer()
}

func (p *PlaybackStream) releaseBuffer() {
	p.inPlayback = false
	p.cleared = true
	p.buf = nil
	p.byteOffset = 0
	p.byteLength = 0
}

// Cleared reports whether the buffer has been released.
func (p *PlaybackStream) Cleared() bool { return p.cleared }

// ReadByte returns the next byte, or -1 at EOF.
func (p *PlaybackStream) ReadByte() (int, error) {
	if p.pushbackOffset < len(p.pushback) {
		b := p.pushback[p.pushbackOffset]
		p.pushbackOffset++
		if p.pushbackOffset >= len(p.pushback) {
			p.pushback = nil
			p.pushbackOffset = 0
		}
		if !p.cleared && !p.inPlayback {
			p.appendByte(b)
		}
		return int(b), nil
	}

	if p.inPlayback {
		if p.byteOffset < p.byteLength {
			b := p.buf[p.byteOffset]
			p.byteOffset++
			if p.byteOffset >= p.byteLength {
				p.releaseBuffer()
			}
			return int(b), nil
		}
		p.releaseBuffer()
	}

	b, err := p.sourceReadByte()
	if err != nil || b == -1 {
		return b, err
	}
	if !p.cleared && !p.inPlayback {
		p.appendByte(byte(b))
	}
	return b, nil
}

// Read implements io.Reader, draining pushback and playback buffers before
// the underlying source, and buffering what it returns exactly like
// ReadByte.
func (p *PlaybackStream) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	if p.pushbackOffset < len(p.pushback) {
		avail := p.pushback[p.pushbackOffset:]
		k := copy(b, avail)
		p.pushbackOffset += k
		if p.pushbackOffset >= len(p.pushback) {
			p.pushback = nil
			p.pushbackOffset = 0
		}
		if !p.cleared && !p.inPlayback {
			p.appendBytes(b[:k])
		}
		return k, nil
	}

	if p.inPlayback {
		if p.byteOffset < p.byteLength {
			k := copy(b, p.buf[p.byteOffset:p.byteLength])
			p.byteOffset += k
			if p.byteOffset >= p.byteLength {
				p.releaseBuffer()
			}
			return k, nil
		}
		p.releaseBuffer()
	}

	if p.sourceEOF {
		return 0, io.EOF
	}
	n, err := p.source.Read(b)
	if n > 0 && !p.cleared && !p.inPlayback {
		p.appendBytes(b[:n])
	}
	if err == io.EOF {
		p.sourceEOF = true
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}
	return n, err
}
