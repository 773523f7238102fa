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

// EntityTable maps a named character reference (without the leading "&" or
// trailing ";") to its codepoint. Get returns (codepoint, true); an unknown
// name returns (-1, false) (spec.md §6).
type EntityTable interface {
	Get(name string) (rune, bool)
}

// entityMap is a plain map-backed EntityTable. Pure function over immutable
// data (spec.md §9).
type entityMap map[string]rune

func (m entityMap) Get(name string) (rune, bool) {
	r, ok := m[name]
	if !ok {
		return -1, false
	}
	return r, true
}

// xmlBuiltinEntityNames is the set notify-xml-builtin-refs singles out
// (spec.md §4.H step 5).
var xmlBuiltinEntityNames = map[string]struct{}{
	"amp": {}, "lt": {}, "gt": {}, "quot": {}, "apos": {},
}

func isXMLBuiltinEntity(name string) bool {
	_, ok := xmlBuiltinEntityNames[name]
	return ok
}

// NewDefaultEntityTable returns the predefined-entity table: the five XML
// builtins plus the most common named HTML entities. It is not the full
// HTML5 table (over two thousand names) — callers needing full coverage
// supply their own EntityTable.
func NewDefaultEntityTable() EntityTable {
	return entityMap{
		"amp": '&', "lt": '<', "gt": '>', "quot": '"', "apos": '\'',
		"nbsp": ' ', "iexcl": '¡', "cent": '¢', "pound": '£',
		"curren": '¤', "yen": '¥', "brvbar": '¦', "sect": '§',
		"uml": '¨', "copy": '©', "ordf": 'ª', "laquo": '«',
		"not": '¬', "shy": '­', "reg": '®', "macr": '¯',
		"deg": '°', "plusmn": '±', "sup2": '²', "sup3": '³',
		"acute": '´', "micro": 'µ', "para": '¶', "middot": '·',
		"cedil": '¸', "sup1": '¹', "ordm": 'º', "raquo": '»',
		"frac14": '¼', "frac12": '½', "frac34": '¾', "iquest": '¿',
		"times": '×', "divide": '÷',
		"Agrave": 'À', "Aacute": 'Á', "Acirc": 'Â', "Atilde": 'Ã',
		"Auml": 'Ä', "Aring": 'Å', "AElig": 'Æ', "Ccedil": 'Ç',
		"Egrave": 'È', "Eacute": 'É', "Ecirc": 'Ê', "Euml": 'Ë',
		"Igrave": 'Ì', "Iacute": 'Í', "Icirc": 'Î', "Iuml": 'Ï',
		"ETH": 'Ð', "Ntilde": 'Ñ', "Ograve": 'Ò', "Oacute": 'Ó',
		"Ocirc": 'Ô', "Otilde": 'Õ', "Ouml": 'Ö', "Oslash": 'Ø',
		"Ugrave": 'Ù', "Uacute": 'Ú', "Ucirc": 'Û', "Uuml": 'Ü',
		"Yacute": 'Ý', "THORN": 'Þ', "szlig": 'ß',
		"agrave": 'à', "aacute": 'á', "acirc": 'â', "atilde": 'ã',
		"auml": 'ä', "aring": 'å', "aelig": 'æ', "ccedil": 'ç',
		"egrave": 'è', "eacute": 'é', "ecirc": 'ê', "euml": 'ë',
		"igrave": 'ì', "iacute": 'í', "icirc": 'î', "iuml": 'ï',
		"eth": 'ð', "ntilde": 'ñ', "ograve": 'ò', "oacute": 'ó',
		"ocirc": 'ô', "otilde": 'õ', "ouml": 'ö', "oslash": 'ø',
		"ugrave": 'ù', "uacute": 'ú', "ucirc": 'û', "uuml": 'ü',
		"yacute": 'ý', "thorn": 'þ', "yuml": 'ÿ',
		"hellip": '…', "mdash": '—', "ndash": '–', "lsquo": '‘',
		"rsquo": '’', "ldquo": '“', "rdquo": '”', "trade": '™',
		"euro": '€', "larr": '←', "uarr": '↑', "rarr": '→',
		"darr": '↓', "harr": '↔', "bull": '•', "dagger": '†',
		"Dagger": '‡', "permil": '‰', "spades": '♠', "clubs": '♣',
		"hearts": '♥', "diams": '♦',
	}
}
