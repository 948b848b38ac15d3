/*
Copyright 2026 Gravitational, Inc.

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

package lib

import "strings"

// Truncate trims the text and limits it to `n` runes. Empty text is
// rendered as "(empty)" so that log lines stay readable.
func Truncate(t string, n int) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return "(empty)"
	}
	var b strings.Builder
	var count int
	for _, r := range t {
		if count >= n {
			b.WriteString("... (truncated)")
			return b.String()
		}
		b.WriteRune(r)
		count++
	}
	return b.String()
}
