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

import (
	"fmt"
	"runtime"
)

const maxStackDepth = 32

// callers records the stack above its caller's caller. skip=0 starts at the
// function that called callers.
func callers(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// StackTrace returns the stack recorded when f was constructed, one entry per
// frame, formatted as "function\n\tfile:line".
func (f *Fault) StackTrace() []string {
	if f == nil || len(f.stack) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(f.stack)
	out := make([]string, 0, len(f.stack))
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			out = append(out, fmt.Sprintf("%s\n\t%s:%d", fr.Function, fr.File, fr.Line))
		}
		if !more {
			break
		}
	}
	return out
}
