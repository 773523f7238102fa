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

// InputSource carries identity and a stream to scan (spec.md §6). Exactly
// one of Bytes / Chars should be set: a byte stream goes through encoding
// auto-detection (PlaybackStream); a character stream is assumed already
// decoded (used by pushInputSource for nested sources such as an embedded
// script's generated markup).
//
// Encoding, when non-empty, short-circuits auto-detection for a byte
// stream — the caller already knows the encoding (e.g. from a transport
// Content-Type header).
type InputSource struct {
	PublicID       string
	SystemID       string
	BaseSystemID   string
	Bytes          io.Reader
	Chars          io.Reader
	Encoding       string
}
