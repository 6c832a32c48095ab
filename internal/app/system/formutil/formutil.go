// Package formutil reads the console's resource forms.
//
// List-valued fields (technologies, features, process steps) are entered
// one item per line in a textarea. Checkboxes are present only when ticked.
//
// Example usage:
//
//	p.Technologies = formutil.Lines(r.FormValue("technologies"))
//	p.Featured = formutil.Checkbox(r, "featured")
package formutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Lines splits a textarea value into trimmed, non-empty lines. The result
// is never nil so it encodes as an empty JSON array.
func Lines(v string) []string {
	out := []string{}
	for _, line := range strings.Split(v, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// JoinLines is the inverse of Lines, for re-filling a textarea.
func JoinLines(items []string) string {
	return strings.Join(items, "\n")
}

// Checkbox reports whether a checkbox named name was submitted ticked.
func Checkbox(r *http.Request, name string) bool {
	switch strings.ToLower(strings.TrimSpace(r.FormValue(name))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// Int parses a whole-number field. An empty value yields def.
func Int(v string, def int) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%q is not a whole number", v)
	}
	return n, nil
}

// OptString returns nil for a blank value and a pointer to the trimmed
// value otherwise.
func OptString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// Deref returns *p, or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Pairs zips two parallel form lists (e.g. result metric and value inputs),
// dropping rows where both sides are blank.
func Pairs(left, right []string) [][2]string {
	n := len(left)
	if len(right) > n {
		n = len(right)
	}
	out := make([][2]string, 0, n)
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(left) {
			l = strings.TrimSpace(left[i])
		}
		if i < len(right) {
			r = strings.TrimSpace(right[i])
		}
		if l == "" && r == "" {
			continue
		}
		out = append(out, [2]string{l, r})
	}
	return out
}
