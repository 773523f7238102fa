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
	"errors"
	"sort"
	"strings"

	"github.com/benoit-pereira-da-silva/htmlscan/pkg/textual"
)

// EventKind tags which DocumentHandler callback an Event was built from.
type EventKind int

const (
	EventStartDocument EventKind = iota
	EventEndDocument
	EventStartElement
	EventEndElement
	EventCharacters
	EventComment
	EventStartGeneralEntity
	EventEndGeneralEntity
)

// Event is the channel-friendly flattening of one DocumentHandler callback,
// the carrier ChannelHandler (transcoder.go) produces and a consumer
// ranges over. Value holds the Characters/Comment text; Name/Attrs are set
// for Start/EndElement, and Name alone for Start/EndGeneralEntity;
// ResourceID/Encoding are set for StartGeneralEntity, and Encoding alone for
// StartDocument.
//
// Event implements textual.Carrier[Event] so it can flow through the
// generic pipeline (Router, Processor chains, Slog) exactly like
// StringCarrier does.
type Event struct {
	Kind       EventKind
	Name       QName
	Attrs      Attributes
	Value      string
	ResourceID string
	Encoding   string
	Location   *LocationItem
	Index      int
	Error      error
}

func (e Event) UTF8String() textual.UTF8String {
	return e.Value
}

// FromUTF8String builds a bare Characters event from plain text. Called on
// the zero value of Event by generic pipeline stages (IOReaderTranscoder's
// prototype pattern); it never depends on receiver state.
func (e Event) FromUTF8String(s textual.UTF8String) Event {
	return Event{Kind: EventCharacters, Value: string(s)}
}

func (e Event) WithIndex(index int) Event {
	e.Index = index
	return e
}

func (e Event) GetIndex() int {
	return e.Index
}

// Aggregate concatenates the Value of every Characters/Comment event in
// index order, reusing StringCarrier.Aggregate's stable-sort-by-index idiom
// (textual/string_carrier.go) so out-of-order fan-in still produces
// deterministic text. Non-text events (tags, entity markers) contribute no
// text but still fold their Error into the result.
func (e Event) Aggregate(events []Event) Event {
	items := make([]Event, len(events))
	copy(items, events)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Index < items[j].Index
	})

	var b strings.Builder
	var aggErr error
	for _, it := range items {
		switch it.Kind {
		case EventCharacters, EventComment:
			b.WriteString(it.Value)
		}
		if it.Error != nil {
			aggErr = errors.Join(aggErr, it.Error)
		}
	}
	return Event{Kind: EventCharacters, Value: b.String(), Error: aggErr}
}

func (e Event) WithError(err error) Event {
	if err == nil {
		return e
	}
	if e.Error == nil {
		e.Error = err
	} else {
		e.Error = errors.Join(e.Error, err)
	}
	return e
}

func (e Event) GetError() error {
	return e.Error
}
