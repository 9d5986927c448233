// Package mcputils binds loosely typed MCP tool arguments to Go structs.
package mcputils

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// ArgumentGetter is implemented by mcp.CallToolRequest.
type ArgumentGetter interface {
	GetArguments() map[string]interface{}
}

// CoerceBindArguments binds request arguments to target using its json tags.
// Clients often send every value as a string ("10", "true", `["a","b"]`),
// so strings are coerced to the target field's kind before decoding.
// Missing arguments leave target fields untouched.
func CoerceBindArguments[T any](request ArgumentGetter, target *T) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(request.GetArguments())
}

// jsonStringHook decodes JSON-looking strings into slices, maps, booleans
// and numbers. Anything else passes through unchanged.
func jsonStringHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}
	raw := strings.TrimSpace(data.(string))
	if raw == "" {
		return data, nil
	}

	switch {
	case t.Kind() == reflect.Slice && isJSONArray(raw):
		slicePtr := reflect.New(t)
		if err := json.Unmarshal([]byte(raw), slicePtr.Interface()); err == nil {
			return slicePtr.Elem().Interface(), nil
		}
	case (t.Kind() == reflect.Map || t.Kind() == reflect.Struct) && isJSONObject(raw):
		var result interface{}
		if err := json.Unmarshal([]byte(raw), &result); err == nil {
			return result, nil
		}
	case t.Kind() == reflect.Bool:
		if raw == "true" || raw == "false" {
			return raw == "true", nil
		}
	case t.Kind() >= reflect.Int && t.Kind() <= reflect.Float64:
		var n json.Number
		if err := json.Unmarshal([]byte(raw), &n); err == nil {
			return n, nil
		}
	}

	return data, nil
}

func isJSONArray(s string) bool {
	return strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}
