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

package textual

import (
	"encoding/json"
	"errors"
	"fmt"
)

func StringFrom(s UTF8String) StringCarrier {
	return (*new(StringCarrier)).FromUTF8String(s)
}

func JSONCarrierFrom[T any](s UTF8String) JsonGenericCarrier[T] {
	return (*new(JsonGenericCarrier[T])).FromUTF8String(s)
}

func JSONFrom(s UTF8String) JsonCarrier {
	return (*new(JsonCarrier)).FromUTF8String(s)
}

func ParcelFrom(s UTF8String) Parcel {
	return (*new(Parcel)).FromUTF8String(s)
}

// CastJson attempts to convert a JsonCarrier carrier's Value into a specified type T.
// Returns the cast value or an error if the casting/unmarshaling fails.
func CastJson[T any](j JsonCarrier) (T, error) {
	var out T
	// If an upstream stage already produced an error, do NOT attempt any casting.
	if j.Error != nil {
		if j.Index != 0 {
			return out, fmt.Errorf("json carrier (index %d): %w", j.Index, j.Error)
		}
		return out, j.Error
	}
	if len(j.Value) == 0 {
		if j.Index != 0 {
			return out, fmt.Errorf("json carrier (index %d): %w", j.Index, errors.New("empty JsonCarrier value"))
		}
		return out, errors.New("empty JsonCarrier value")
	}
	// Fast paths for “raw” targets.
	if rmPtr, ok := any(&out).(*json.RawMessage); ok {
		*rmPtr = append(json.RawMessage(nil), j.Value...)
		return out, nil
	}
	if bPtr, ok := any(&out).(*[]byte); ok {
		*bPtr = append([]byte(nil), j.Value...)
		return out, nil
	}
	if jPtr, ok := any(&out).(*JsonCarrier); ok {
		*jPtr = j
		jPtr.Error = nil
		return out, nil
	}
	// General case: cast JsonCarrier.Value into T by unmarshaling.
	if err := json.Unmarshal(j.Value, &out); err != nil {
		if j.Index != 0 {
			return out, fmt.Errorf("json unmarshal (index %d): %w", j.Index, err)
		}
		return out, err
	}
	return out, nil
}

