/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package catalog

import "dirpx.dev/faults/msgkey"

// Option configures a Catalog at build time.
type Option func(*builder)

type builder struct {
	texts       map[string]string
	skipDefault bool
}

// WithMessage sets or replaces the text for a key prefix. The prefix may
// contain "*" segments.
func WithMessage(prefix, text string) Option {
	return func(b *builder) { b.texts[prefix] = text }
}

// WithMessages merges texts into the catalog; later options win.
func WithMessages(texts map[string]string) Option {
	return func(b *builder) {
		for k, v := range texts {
			b.texts[k] = v
		}
	}
}

// WithoutDefaults starts the catalog empty instead of seeding it with
// Defaults.
func WithoutDefaults() Option {
	return func(b *builder) { b.skipDefault = true }
}

func newBuilder() *builder {
	return &builder{texts: make(map[string]string)}
}

func (b *builder) seed() map[string]string {
	out := make(map[string]string, len(defaultTexts)+len(b.texts))
	if !b.skipDefault {
		for k, v := range defaultTexts {
			out[k.String()] = v
		}
	}
	for k, v := range b.texts {
		out[msgkey.Normalize(k)] = v
	}
	return out
}
