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

// DocumentHandler receives the tokenizer's event stream in strict source
// order (spec.md §5, §6). augs is nil unless Config.Augmentations is on.
//
// buf is a Go string, so it is immutable: implementations may keep it after
// the call returns.
type DocumentHandler interface {
	StartDocument(locator Locator, encoding string, augs *LocationItem)
	EndDocument(augs *LocationItem)
	StartElement(name QName, attrs Attributes, augs *LocationItem)
	EndElement(name QName, augs *LocationItem)
	Characters(buf string, augs *LocationItem)
	Comment(buf string, augs *LocationItem)
	StartGeneralEntity(name string, resourceID string, encoding string, augs *LocationItem)
	EndGeneralEntity(name string, augs *LocationItem)
}

// NopDocumentHandler implements DocumentHandler with no-ops, useful as an
// embeddable base for handlers that only care about a few callbacks.
type NopDocumentHandler struct{}

func (NopDocumentHandler) StartDocument(Locator, string, *LocationItem)       {}
func (NopDocumentHandler) EndDocument(*LocationItem)                         {}
func (NopDocumentHandler) StartElement(QName, Attributes, *LocationItem)     {}
func (NopDocumentHandler) EndElement(QName, *LocationItem)                  {}
func (NopDocumentHandler) Characters(string, *LocationItem)                 {}
func (NopDocumentHandler) Comment(string, *LocationItem)                    {}
func (NopDocumentHandler) StartGeneralEntity(string, string, string, *LocationItem) {}
func (NopDocumentHandler) EndGeneralEntity(string, *LocationItem)           {}
