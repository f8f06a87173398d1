package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
)

// tagName names the struct tag that renames a binding's config key.
// `keymap:"-"` keeps a binding out of reach of overrides.
const tagName = "keymap"

var bindingType = reflect.TypeOf(key.Binding{})

// ApplyOverrides replaces the keys of every key.Binding field of the struct
// km points to whose config name appears in overrides, and returns the names
// it applied. The config name is the snake_case field name unless the field
// carries a keymap tag. Embedded structs are walked; help text is kept and
// its key column shows the first new key.
//
//	km := keymap.NewDemo(backend.CancelKey())
//	keymap.ApplyOverrides(&km, overrides) // overrides["reset"] -> km.Reset
func ApplyOverrides(km interface{}, overrides Overrides) []string {
	if len(overrides) == 0 {
		return nil
	}
	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil
	}
	var applied []string
	walkBindings(v.Elem(), func(name string, field reflect.Value) {
		keys := overrides[name]
		if len(keys) == 0 {
			return
		}
		desc := field.Interface().(key.Binding).Help().Desc
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], desc),
		)))
		applied = append(applied, name)
	})
	return applied
}

// Names lists the config names ApplyOverrides accepts for km.
func Names(km interface{}) []string {
	v := reflect.Indirect(reflect.ValueOf(km))
	if v.Kind() != reflect.Struct {
		return nil
	}
	var names []string
	walkBindings(v, func(name string, _ reflect.Value) {
		names = append(names, name)
	})
	return names
}

func walkBindings(v reflect.Value, visit func(name string, field reflect.Value)) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		field := v.Field(i)
		if sf.Anonymous && field.Kind() == reflect.Struct {
			walkBindings(field, visit)
			continue
		}
		if sf.Type != bindingType || !sf.IsExported() {
			continue
		}
		name := camelToSnake(sf.Name)
		if tag, ok := sf.Tag.Lookup(tagName); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		visit(name, field)
	}
}

// camelToSnake converts a Go field name to its config key. Runs of capitals
// stay together: CancelDrag -> cancel_drag, HTTPServer -> http_server.
func camelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1])
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && unicode.IsUpper(runes[i-1])
			if prevLower || nextLower {
				b.WriteRune('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
