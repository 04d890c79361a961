// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

import "strings"

// stripOuter removes a prefix and the matching trailing '>' from a
// templated type string, e.g. "class ceng::math::CVector2<float>" with
// prefix "class ceng::math::CVector2<" yields "float".
func stripOuter(typeString, prefix string) string {
	inner := strings.TrimPrefix(typeString, prefix)
	inner = strings.TrimSuffix(strings.TrimSpace(inner), ">")
	return strings.TrimSpace(inner)
}

// splitTopLevel splits a template parameter list at commas that sit at
// nesting depth 0, honoring nested '<' '>' pairs (needed since a
// vector's allocator parameter re-mentions the element type, which may
// itself be a template).
func splitTopLevel(params string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range params {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(params[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(params[start:]))
	return parts
}

// vectorElementType extracts the element type string from a
// `class std::vector<ELEM,class std::allocator<ELEM> >` type string:
// strip the "class std::vector<" prefix and trailing '>', then take
// the first top-level comma-separated segment.
func vectorElementType(typeString string) string {
	inner := stripOuter(typeString, "class std::vector<")
	parts := splitTopLevel(inner)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}
