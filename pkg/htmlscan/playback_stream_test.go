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
	"io"
	"strings"
	"testing"
)

func TestPlaybackStream_DetectsUTF8BOMAndConsumesIt(t *testing.T) {
	p := NewPlaybackStream(strings.NewReader("\xEF\xBB\xBFhello"))
	iana, native, err := p.DetectEncoding()
	if err != nil {
		t.Fatalf("DetectEncoding: %v", err)
	}
	if iana != "UTF-8" || native != "UTF8" {
		t.Fatalf("got (%q, %q), want (%q, %q)", iana, native, "UTF-8", "UTF8")
	}

	rest, err := io.ReadAll(p)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(rest) != "hello" {
		t.Fatalf("remaining bytes = %q, want %q (BOM must not be part of the stream)", rest, "hello")
	}
}

func TestPlaybackStream_NoBOMPushesBytesBack(t *testing.T) {
	p := NewPlaybackStream(strings.NewReader("hi"))
	iana, native, err := p.DetectEncoding()
	if err != nil {
		t.Fatalf("DetectEncoding: %v", err)
	}
	if iana != "" || native != "" {
		t.Fatalf("got (%q, %q), want no BOM detected", iana, native)
	}

	rest, err := io.ReadAll(p)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(rest) != "hi" {
		t.Fatalf("remaining bytes = %q, want %q (no bytes may be lost)", rest, "hi")
	}
}

func TestPlaybackStream_SecondDetectEncodingFails(t *testing.T) {
	p := NewPlaybackStream(strings.NewReader("x"))
	if _, _, err := p.DetectEncoding(); err != nil {
		t.Fatalf("first DetectEncoding: %v", err)
	}
	if _, _, err := p.DetectEncoding(); err != ErrEncodingAlreadyDetected {
		t.Fatalf("second DetectEncoding error = %v, want ErrEncodingAlreadyDetected", err)
	}
}

func TestPlaybackStream_PlaybackReplaysFromTheStart(t *testing.T) {
	p := NewPlaybackStream(strings.NewReader("abcdef"))

	first := make([]byte, 3)
	if _, err := io.ReadFull(p, first); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if string(first) != "abc" {
		t.Fatalf("first read = %q, want %q", first, "abc")
	}

	p.Playback()
	replayed := make([]byte, 3)
	if _, err := io.ReadFull(p, replayed); err != nil {
		t.Fatalf("ReadFull after Playback: %v", err)
	}
	if string(replayed) != "abc" {
		t.Fatalf("replayed bytes = %q, want %q (what was buffered before Playback)", replayed, "abc")
	}

	// Once the playback buffer is exhausted, reads resume from the
	// underlying source where the first pass left off.
	rest, err := io.ReadAll(p)
	if err != nil {
		t.Fatalf("ReadAll after playback exhaustion: %v", err)
	}
	if string(rest) != "def" {
		t.Fatalf("post-playback bytes = %q, want %q", rest, "def")
	}
}

func TestPlaybackStream_ClearReleasesBufferOutsidePlayback(t *testing.T) {
	p := NewPlaybackStream(strings.NewReader("abc"))
	buf := make([]byte, 1)
	if _, err := p.Read(buf); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if p.Cleared() {
		t.Fatalf("expected not cleared before Clear()")
	}
	p.Clear()
	if !p.Cleared() {
		t.Fatalf("expected Cleared() to report true after Clear()")
	}
}
