package clj

import "strings"

// Print renders a form back to reader syntax. Metadata annotations are
// not printed; the underlying form is.
func Print(v Value) string {
	switch x := Unmeta(v).(type) {
	case nil:
		return "nil"
	case Nil:
		return "nil"
	case Bool:
		if x {
			return "true"
		}
		return "false"
	case Symbol:
		return string(x)
	case Keyword:
		return ":" + string(x)
	case Num:
		return string(x)
	case Char:
		return "\\" + string(x)
	case Str:
		return `"` + strings.ReplaceAll(string(x), `"`, `\"`) + `"`
	case List:
		return "(" + printItems([]Value(x)) + ")"
	case Vector:
		return "[" + printItems([]Value(x)) + "]"
	case Set:
		return "#{" + printItems([]Value(x)) + "}"
	case Map:
		return "{" + printItems([]Value(x)) + "}"
	}
	return ""
}

func printItems(items []Value) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Print(item)
	}
	return strings.Join(parts, " ")
}
