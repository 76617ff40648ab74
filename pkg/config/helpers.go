package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/kitctl/pkg/errors"
)

// SetValue sets a configuration value by its dotted key, e.g.
// "project.package_manager" or "settings.log_level".
func (c *Config) SetValue(key, value string) error {
	field, err := c.lookupField(key)
	if err != nil {
		return err
	}

	if field.Kind() == reflect.Ptr {
		// Set a fresh value so a parse error leaves the field untouched.
		ptr := reflect.New(field.Type().Elem())
		if err := setScalar(ptr.Elem(), key, value); err != nil {
			return err
		}
		field.Set(ptr)
		return nil
	}
	return setScalar(field, key, value)
}

func setScalar(field reflect.Value, key, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration value for %s: %s", key, value)
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		field.SetBool(b)
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnknownConfigKey, key)
	}
	return nil
}

// GetValue returns the value for a dotted key as a string.
func (c *Config) GetValue(key string) (string, error) {
	field, err := c.lookupField(key)
	if err != nil {
		return "", err
	}
	return formatValue(field), nil
}

// Redacted replaces secret values in ToMap output.
const Redacted = "********"

// ToMap flattens the configuration into dotted keys.
// This is useful for displaying the configuration. Non-empty secret values
// are replaced with Redacted; GetValue still returns them.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)
	root := reflect.ValueOf(c).Elem()
	rootType := root.Type()

	for i := 0; i < root.NumField(); i++ {
		section := root.Field(i)
		sectionKey := yamlKey(rootType.Field(i))
		sectionType := section.Type()
		for j := 0; j < section.NumField(); j++ {
			key := yamlKey(sectionType.Field(j))
			if key == "" {
				continue
			}
			value := formatValue(section.Field(j))
			if value != "" && sectionType.Field(j).Tag.Get("secret") == "true" {
				value = Redacted
			}
			result[sectionKey+"."+key] = value
		}
	}
	return result
}

// Keys returns every supported dotted key in sorted order.
func (c *Config) Keys() []string {
	m := c.ToMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Config) lookupField(key string) (reflect.Value, error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 {
		return reflect.Value{}, fmt.Errorf("%w: %s", errors.ErrUnknownConfigKey, key)
	}

	root := reflect.ValueOf(c).Elem()
	for i := 0; i < root.NumField(); i++ {
		if yamlKey(root.Type().Field(i)) != parts[0] {
			continue
		}
		section := root.Field(i)
		for j := 0; j < section.NumField(); j++ {
			if yamlKey(section.Type().Field(j)) == parts[1] {
				return section.Field(j), nil
			}
		}
	}
	return reflect.Value{}, fmt.Errorf("%w: %s", errors.ErrUnknownConfigKey, key)
}

// yamlKey handles yaml tags with options (e.g., "cache_dir,omitempty").
func yamlKey(field reflect.StructField) string {
	tag := field.Tag.Get("yaml")
	if tag == "" || tag == "-" {
		return ""
	}
	return strings.Split(tag, ",")[0]
}

func formatValue(v reflect.Value) string {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Type() == reflect.TypeOf(time.Duration(0)) {
		return time.Duration(v.Int()).String()
	}
	switch v.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.String:
		return v.String()
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
