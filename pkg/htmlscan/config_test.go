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

import "testing"

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	if cfg.Augmentations || cfg.ReportErrors || cfg.NotifyCharRefs || cfg.NotifyXMLBuiltinRefs || cfg.NotifyHTMLBuiltinRefs {
		t.Fatalf("expected every toggle to default off, got %+v", cfg)
	}
	if cfg.DefaultEncoding != "windows-1252" {
		t.Fatalf("DefaultEncoding = %q, want %q", cfg.DefaultEncoding, "windows-1252")
	}
	if cfg.ElementNameCase != NameCaseDefault || cfg.AttributeNameCase != NameCaseDefault {
		t.Fatalf("expected NameCaseDefault for both element and attribute names, got %+v", cfg)
	}
}

func TestNewConfig_OptionsApply(t *testing.T) {
	cfg := NewConfig(
		WithAugmentations(true),
		WithErrorReporting(true),
		WithCharRefNotification(true),
		WithXMLBuiltinRefNotification(true),
		WithHTMLBuiltinRefNotification(true),
		WithNameCase(NameCaseUpper, NameCaseLower),
		WithDefaultEncoding("UTF-8"),
	)
	if !cfg.Augmentations || !cfg.ReportErrors || !cfg.NotifyCharRefs || !cfg.NotifyXMLBuiltinRefs || !cfg.NotifyHTMLBuiltinRefs {
		t.Fatalf("expected every toggle to be set, got %+v", cfg)
	}
	if cfg.ElementNameCase != NameCaseUpper || cfg.AttributeNameCase != NameCaseLower {
		t.Fatalf("expected element=upper, attribute=lower, got %+v", cfg)
	}
	if cfg.DefaultEncoding != "UTF-8" {
		t.Fatalf("DefaultEncoding = %q, want %q", cfg.DefaultEncoding, "UTF-8")
	}
}

func TestFeatureSet_SetRawBoolCoercion(t *testing.T) {
	cfg := NewConfig()
	fs := NewFeatureSet(&cfg)

	if err := fs.SetRaw("augmentations", "on"); err != nil {
		t.Fatalf("SetRaw(augmentations, on): %v", err)
	}
	if !cfg.Augmentations {
		t.Fatalf("expected augmentations to be true after SetRaw(\"on\")")
	}
	if err := fs.SetRaw("report-errors", true); err != nil {
		t.Fatalf("SetRaw(report-errors, true): %v", err)
	}
	if !cfg.ReportErrors {
		t.Fatalf("expected report-errors to be true after SetRaw(true)")
	}
	if err := fs.SetRaw("notify-char-refs", "0"); err != nil {
		t.Fatalf("SetRaw(notify-char-refs, 0): %v", err)
	}
	if cfg.NotifyCharRefs {
		t.Fatalf("expected notify-char-refs to be false after SetRaw(\"0\")")
	}
}

func TestFeatureSet_SetRawNameCase(t *testing.T) {
	cfg := NewConfig()
	fs := NewFeatureSet(&cfg)

	if err := fs.SetRaw("names/elems", "upper"); err != nil {
		t.Fatalf("SetRaw(names/elems, upper): %v", err)
	}
	if cfg.ElementNameCase != NameCaseUpper {
		t.Fatalf("ElementNameCase = %v, want NameCaseUpper", cfg.ElementNameCase)
	}
	if err := fs.SetRaw("names/attrs", "lower"); err != nil {
		t.Fatalf("SetRaw(names/attrs, lower): %v", err)
	}
	if cfg.AttributeNameCase != NameCaseLower {
		t.Fatalf("AttributeNameCase = %v, want NameCaseLower", cfg.AttributeNameCase)
	}
}

func TestFeatureSet_SetRawDefaultEncoding(t *testing.T) {
	cfg := NewConfig()
	fs := NewFeatureSet(&cfg)
	if err := fs.SetRaw("default-encoding", "Shift_JIS"); err != nil {
		t.Fatalf("SetRaw(default-encoding, Shift_JIS): %v", err)
	}
	if cfg.DefaultEncoding != "Shift_JIS" {
		t.Fatalf("DefaultEncoding = %q, want %q", cfg.DefaultEncoding, "Shift_JIS")
	}
}

func TestFeatureSet_SetRawUnknownFeature(t *testing.T) {
	cfg := NewConfig()
	fs := NewFeatureSet(&cfg)
	if err := fs.SetRaw("not-a-real-feature", "x"); err == nil {
		t.Fatalf("expected an error for an unknown feature name")
	}
}

func TestFeatureSet_SetRawBadBoolCoercion(t *testing.T) {
	cfg := NewConfig()
	fs := NewFeatureSet(&cfg)
	if err := fs.SetRaw("augmentations", "maybe"); err == nil {
		t.Fatalf("expected an error coercing %q to bool", "maybe")
	}
}
