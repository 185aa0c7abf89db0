package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	yamlv2 "gopkg.in/yaml.v2"
)

// Options is a list of command-line arguments for PapyrusCs. It can be
// written in YAML either as a list, used as-is, or as a mapping of flag to
// value. Mapping values that are null or booleans are flags without a value.
// Mapping keys keep the order they were written in when the options are
// decoded from YAML, and are sorted when decoded from JSON.
type Options []string

func (o *Options) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var list []interface{}
	if err := unmarshal(&list); err == nil {
		out := make(Options, 0, len(list))
		for _, item := range list {
			out = append(out, optionString(item))
		}
		*o = out
		return nil
	}
	var mapping yamlv2.MapSlice
	if err := unmarshal(&mapping); err != nil {
		return ErrInvalidOptions
	}
	out := make(Options, 0, len(mapping)*2)
	for _, item := range mapping {
		out = append(out, optionString(item.Key))
		switch item.Value.(type) {
		case nil, bool:
			continue
		}
		out = append(out, optionString(item.Value))
	}
	*o = out
	return nil
}

func (o *Options) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*o = nil
	case []interface{}:
		out := make(Options, 0, len(v))
		for _, item := range v {
			out = append(out, optionString(item))
		}
		*o = out
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(Options, 0, len(v)*2)
		for _, k := range keys {
			out = append(out, k)
			switch v[k].(type) {
			case nil, bool:
				continue
			}
			out = append(out, optionString(v[k]))
		}
		*o = out
	default:
		return fmt.Errorf("%w: got %s", ErrInvalidOptions, string(data))
	}
	return nil
}

func optionString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	}
	data, _ := json.Marshal(v)
	return string(data)
}
