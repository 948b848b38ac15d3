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

package statusset

import "sort"

// StatusSet is a set of HTTP status codes.
type StatusSet map[int]struct{}

// New builds a status set with the given codes.
func New(codes ...int) StatusSet {
	set := NewWithCap(len(codes))
	set.Add(codes...)
	return set
}

// NewWithCap builds an empty status set with a given capacity.
func NewWithCap(cap int) StatusSet {
	return make(StatusSet, cap)
}

// Add inserts codes to the set.
func (set StatusSet) Add(codes ...int) {
	for _, code := range codes {
		set[code] = struct{}{}
	}
}

// Contains checks if the set includes a given code. A nil set contains nothing.
func (set StatusSet) Contains(code int) bool {
	_, ok := set[code]
	return ok
}

// ToSlice returns the codes in ascending order.
func (set StatusSet) ToSlice() []int {
	if n := len(set); n > 0 {
		result := make([]int, 0, n)
		for code := range set {
			result = append(result, code)
		}
		sort.Ints(result)
		return result
	}
	return nil
}
