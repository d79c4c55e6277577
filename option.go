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

package faults

// Option is a functional option for E. It takes a *Fault and returns a
// (possibly new) *Fault.
type Option func(*Fault) *Fault

// WithDetailOption adds a single detail key/value on construction.
func WithDetailOption(k string, v any) Option {
	return func(f *Fault) *Fault {
		return f.WithDetail(k, v)
	}
}

// WithDetailsOption merges multiple detail key/values on construction.
func WithDetailsOption(kv map[string]any) Option {
	return func(f *Fault) *Fault {
		return f.WithDetails(kv)
	}
}

// WithCauseOption attaches a cause on construction.
func WithCauseOption(err error) Option {
	return func(f *Fault) *Fault {
		return f.WithCause(err)
	}
}

// WithFieldOption appends a field error on construction.
func WithFieldOption(field, msg string) Option {
	return func(f *Fault) *Fault {
		return f.WithField(field, msg)
	}
}

// WithStatusOption sets the carried transport status on construction. It
// only has an effect on pass-through faults.
func WithStatusOption(status int) Option {
	return func(f *Fault) *Fault {
		cp := *f
		cp.Status = status
		return &cp
	}
}
