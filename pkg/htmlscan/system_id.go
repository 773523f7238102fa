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
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// fixPath applies the platform-path fixing spec.md §6 describes: replace
// the native separator with "/", prepend "/" for a drive-letter path
// ("C:\foo" -> "/C:/foo"), and prepend "file:" for a UNC-style "//" prefix.
func fixPath(s string) string {
	s = strings.ReplaceAll(s, string(filepath.Separator), "/")
	if len(s) >= 2 && s[1] == ':' && isASCIILetter(s[0]) {
		s = "/" + s
	}
	if strings.HasPrefix(s, "//") {
		s = "file:" + s
	}
	return s
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ResolveSystemID implements spec.md §6's system-identifier resolution.
//
// If systemID is already a valid absolute URI, it is returned unchanged.
// Otherwise it is fixed up as a path and resolved against baseSystemID
// (itself fixed up, with a "file:" fallback once it contains a ":"); when
// baseSystemID is empty or equal to systemID, the base is the process
// working directory. Any failure along the way degrades to returning
// systemID as-is — this never fails the scan.
func ResolveSystemID(systemID, baseSystemID string) string {
	if systemID == "" {
		return systemID
	}
	if u, err := url.ParseRequestURI(systemID); err == nil && u.IsAbs() && len(u.Scheme) > 1 {
		return systemID
	}

	fixedID := fixPath(systemID)

	var base string
	if baseSystemID == "" || baseSystemID == systemID {
		cwd, err := os.Getwd()
		if err != nil {
			// Degrade to empty string per spec.md §9's note on the one
			// process-global read this module performs.
			cwd = ""
		}
		base = "file://" + filepath.ToSlash(cwd) + "/"
	} else {
		fixedBase := fixPath(baseSystemID)
		if strings.Contains(fixedBase, ":") {
			if bu, err := url.Parse(fixedBase); err == nil && bu.Scheme != "" {
				base = fixedBase
			} else {
				base = "file:" + fixedBase
			}
		} else {
			base = "file:" + fixedBase
		}
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return systemID
	}
	ref, err := url.Parse(fixedID)
	if err != nil {
		return systemID
	}
	return baseURL.ResolveReference(ref).String()
}
