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

func TestEntityStack_EmptyInitially(t *testing.T) {
	var s entityStack
	if !s.empty() {
		t.Fatalf("expected a zero-value stack to be empty")
	}
	if _, ok := s.pop(); ok {
		t.Fatalf("pop on an empty stack must report ok=false")
	}
}

func TestEntityStack_PushPopIsLIFO(t *testing.T) {
	var s entityStack
	a := newCurrentEntity(strings.NewReader("a"), "", "", "", "")
	b := newCurrentEntity(strings.NewReader("b"), "", "", "", "")
	c := newCurrentEntity(strings.NewReader("c"), "", "", "", "")

	s.push(a)
	s.push(b)
	s.push(c)

	for _, want := range []*CurrentEntity{c, b, a} {
		got, ok := s.pop()
		if !ok {
			t.Fatalf("pop reported ok=false, expected a value")
		}
		if got != want {
			t.Fatalf("popped entity = %p, want %p", got, want)
		}
	}
	if !s.empty() {
		t.Fatalf("expected stack to be empty after popping every pushed entry")
	}
}

func TestEntityStack_ClearDropsEverything(t *testing.T) {
	var s entityStack
	s.push(newCurrentEntity(strings.NewReader("a"), "", "", "", ""))
	s.push(newCurrentEntity(strings.NewReader("b"), "", "", "", ""))
	s.clear()
	if !s.empty() {
		t.Fatalf("expected stack to be empty after clear()")
	}
}
