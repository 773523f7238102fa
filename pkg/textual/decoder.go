// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textual

import (
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names a legacy text encoding that NewUTF8Reader can decode from.
//
// Encoding is a string rather than an enum so that callers can also pass any
// IANA/WHATWG label recognized by golang.org/x/text/encoding/htmlindex
// (e.g. "windows-1252", "shift_jis") without going through the named
// constants below.
type Encoding string

// Named encodings most commonly seen on the legacy web. These resolve via a
// small local table first (cheap, no surprises for the exact names a caller
// is likely to write), falling back to htmlindex.Get for anything else.
const (
	UTF8        Encoding = "utf-8"
	UTF16LE     Encoding = "utf-16le"
	UTF16BE     Encoding = "utf-16be"
	ISO8859_1   Encoding = "iso-8859-1"
	Windows1252 Encoding = "windows-1252"
)

var namedEncodings = map[Encoding]encoding.Encoding{
	UTF8:        unicode.UTF8,
	UTF16LE:     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	UTF16BE:     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	ISO8859_1:   charmap.ISO8859_1,
	Windows1252: charmap.Windows1252,
}

// resolveEncoding maps an Encoding value to a golang.org/x/text/encoding.Encoding.
//
// Lookup order: the small named table above, then htmlindex (which accepts
// the full WHATWG label set, including aliases like "latin1" or "ascii").
func resolveEncoding(e Encoding) (encoding.Encoding, error) {
	if enc, ok := namedEncodings[e]; ok {
		return enc, nil
	}
	enc, err := htmlindex.Get(string(e))
	if err != nil {
		return nil, fmt.Errorf("textual: unknown encoding %q: %w", string(e), err)
	}
	return enc, nil
}

// NewUTF8Reader wraps r so that reads from the returned io.Reader yield UTF-8
// bytes decoded from the given source Encoding.
//
// Decoding is streaming: NewUTF8Reader does not buffer the whole input, so it
// is safe to use on arbitrarily large or slow readers. If enc is UTF8 (or any
// alias that resolves to UTF-8), the returned reader still passes through
// transform.NewReader so callers get a uniform type regardless of source
// encoding.
func NewUTF8Reader(r io.Reader, enc Encoding) (io.Reader, error) {
	e, err := resolveEncoding(enc)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, e.NewDecoder()), nil
}
