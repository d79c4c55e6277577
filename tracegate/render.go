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

package tracegate

import (
	"errors"
	"fmt"
	"strings"

	"dirpx.dev/faults"
)

// maxCauses bounds the rendered cause chain.
const maxCauses = 16

// Render returns the full plain-text detail for err: its type and message,
// the stack recorded by the first *faults.Fault in the chain (if any), and
// every cause below it.
//
// Rendering is best-effort: a panicking Error method is reported inline
// instead of propagating.
func Render(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	writeHeadline(&b, err)

	if f, ok := faults.As(err); ok {
		for _, frame := range f.StackTrace() {
			b.WriteString("\n\tat ")
			b.WriteString(frame)
		}
	}

	cause := safeUnwrap(err)
	for i := 0; cause != nil && i < maxCauses; i++ {
		b.WriteString("\ncaused by: ")
		writeHeadline(&b, cause)
		cause = safeUnwrap(cause)
	}
	return b.String()
}

func writeHeadline(b *strings.Builder, err error) {
	msg, ok := safeMessage(err)
	if !ok {
		fmt.Fprintf(b, "%T: <Error() panicked>", err)
		return
	}
	fmt.Fprintf(b, "%T: %s", err, msg)
}

func safeMessage(err error) (msg string, ok bool) {
	defer func() {
		if recover() != nil {
			msg, ok = "", false
		}
	}()
	return err.Error(), true
}

// safeUnwrap is errors.Unwrap that treats a panicking Unwrap as the end of
// the chain.
func safeUnwrap(err error) (cause error) {
	defer func() {
		if recover() != nil {
			cause = nil
		}
	}()
	return errors.Unwrap(err)
}
