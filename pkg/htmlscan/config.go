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

import "fmt"

// Config is the immutable per-parse configuration (spec.md §3). Build one
// with NewConfig and the With* options; the zero value of Config is not
// meant to be used directly.
type Config struct {
	Augmentations         bool
	ReportErrors          bool
	NotifyCharRefs        bool
	NotifyXMLBuiltinRefs  bool
	NotifyHTMLBuiltinRefs bool
	ElementNameCase       NameCase
	AttributeNameCase     NameCase
	DefaultEncoding       string
}

// Option configures a Config. Small composable constructors over one large
// struct literal, the same preference the teacher shows in
// NewIOReaderTranscoder/SetContext/SetSplitFunc and Try(...).Catch(...).Finally(...).
type Option func(*Config)

// NewConfig builds a Config from the spec.md §3 defaults (augmentations and
// error reporting off, no notifications, names left as scanned, default
// encoding Windows-1252) plus any supplied options.
func NewConfig(opts ...Option) Config {
	cfg := Config{
		DefaultEncoding: "windows-1252",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func WithAugmentations(on bool) Option {
	return func(c *Config) { c.Augmentations = on }
}

func WithErrorReporting(on bool) Option {
	return func(c *Config) { c.ReportErrors = on }
}

func WithCharRefNotification(on bool) Option {
	return func(c *Config) { c.NotifyCharRefs = on }
}

func WithXMLBuiltinRefNotification(on bool) Option {
	return func(c *Config) { c.NotifyXMLBuiltinRefs = on }
}

func WithHTMLBuiltinRefNotification(on bool) Option {
	return func(c *Config) { c.NotifyHTMLBuiltinRefs = on }
}

func WithNameCase(elems, attrs NameCase) Option {
	return func(c *Config) {
		c.ElementNameCase = elems
		c.AttributeNameCase = attrs
	}
}

func WithDefaultEncoding(iana string) Option {
	return func(c *Config) { c.DefaultEncoding = iana }
}

// FeatureSet exposes the same configuration through the opaque
// feature/property identifiers spec.md §6 names, for callers that only have
// a string name and an untyped value in hand (e.g. a config file). It wraps
// a *Config built via NewConfig/With* for everything else.
type FeatureSet struct {
	cfg *Config
}

// NewFeatureSet wraps cfg for raw feature access.
func NewFeatureSet(cfg *Config) *FeatureSet {
	return &FeatureSet{cfg: cfg}
}

// SetRaw sets a named feature/property from an untyped value, string-coercing
// non-string values first (spec.md §9: "names/elems and names/attrs property
// comparisons against non-string values are converted via string coercion").
func (f *FeatureSet) SetRaw(name string, value any) error {
	switch name {
	case "augmentations":
		return f.setBool(&f.cfg.Augmentations, value)
	case "report-errors":
		return f.setBool(&f.cfg.ReportErrors, value)
	case "notify-char-refs":
		return f.setBool(&f.cfg.NotifyCharRefs, value)
	case "notify-xml-builtin-refs":
		return f.setBool(&f.cfg.NotifyXMLBuiltinRefs, value)
	case "notify-html-builtin-refs":
		return f.setBool(&f.cfg.NotifyHTMLBuiltinRefs, value)
	case "names/elems":
		nc, err := parseNameCase(value)
		if err != nil {
			return err
		}
		f.cfg.ElementNameCase = nc
		return nil
	case "names/attrs":
		nc, err := parseNameCase(value)
		if err != nil {
			return err
		}
		f.cfg.AttributeNameCase = nc
		return nil
	case "default-encoding":
		f.cfg.DefaultEncoding = fmt.Sprint(value)
		return nil
	default:
		return fmt.Errorf("htmlscan: unknown feature/property %q", name)
	}
}

func (f *FeatureSet) setBool(dst *bool, value any) error {
	if b, ok := value.(bool); ok {
		*dst = b
		return nil
	}
	switch fmt.Sprint(value) {
	case "true", "on", "1":
		*dst = true
	case "false", "off", "0", "":
		*dst = false
	default:
		return fmt.Errorf("htmlscan: cannot coerce %v to bool", value)
	}
	return nil
}

func parseNameCase(value any) (NameCase, error) {
	switch fmt.Sprint(value) {
	case "upper":
		return NameCaseUpper, nil
	case "lower":
		return NameCaseLower, nil
	case "default", "":
		return NameCaseDefault, nil
	default:
		return NameCaseDefault, fmt.Errorf("htmlscan: unknown name case %v", value)
	}
}
