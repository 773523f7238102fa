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

// LocationItem augments an emitted event with its source span. BeginLine and
// BeginColumn are captured before the scanner consumes the characters that
// produced the event; EndLine/EndColumn reflect the locator's position once
// the event is ready to be delivered.
//
// A fresh LocationItem is allocated for every event and every attribute; the
// tokenizer never reuses one across events, so handlers may retain a
// LocationItem pointer past the callback that delivered it.
type LocationItem struct {
	BeginLine   int
	BeginColumn int
	EndLine     int
	EndColumn   int
}
