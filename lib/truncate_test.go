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

import "fmt"

func ExampleTruncate() {
	fmt.Printf("%q\n", Truncate("     ", 1000))
	fmt.Printf("%q\n", Truncate(`{"error":"invalid_credentials"}`, 1000))
	fmt.Printf("%q\n", Truncate("  123456789012345  ", 10))

	// Output: "(empty)"
	// "{\"error\":\"invalid_credentials\"}"
	// "1234567890... (truncated)"
}
