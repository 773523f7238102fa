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

// entityStack is a LIFO of suspended CurrentEntity values (spec.md §3, §4.I).
// Each entry owns its own buffer, so nothing is shared across the stack.
type entityStack struct {
	items []*CurrentEntity
}

func (s *entityStack) push(e *CurrentEntity) {
	s.items = append(s.items, e)
}

func (s *entityStack) pop() (*CurrentEntity, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	n := len(s.items) - 1
	e := s.items[n]
	s.items[n] = nil
	s.items = s.items[:n]
	return e, true
}

func (s *entityStack) empty() bool {
	return len(s.items) == 0
}

func (s *entityStack) clear() {
	s.items = nil
}
