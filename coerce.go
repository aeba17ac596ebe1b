// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package appconfig

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

var (
	durationType        = reflect.TypeOf(time.Duration(0))
	timeType            = reflect.TypeOf(time.Time{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Convert coerces a raw setting value into T.
//
// Parsing never depends on the process locale. Surrounding whitespace is
// ignored for every type but string, which is returned as is.
//
//   - bool accepts 1, t, T, TRUE, true, True, 0, f, F, FALSE, false, False
//   - integers are decimal unless prefixed with 0x, &h or #, in which case
//     they are hexadecimal; values out of range for T fail
//   - floats use '.' as the decimal separator
//   - time.Duration accepts Go duration strings, bare numbers are nanoseconds
//   - time.Time accepts RFC 3339 and the other layouts understood by cast
//   - []string splits on ',' and trims each element
//   - any T whose pointer implements [encoding.TextUnmarshaler]
//
// Any other T fails with a [ConversionError] wrapping [ErrUnsupportedType].
func Convert[T any](raw string) (T, error) {
	var zero T
	t := reflect.TypeOf(&zero).Elem()

	v, err := convert(t, raw)
	if err != nil {
		return zero, ConversionError{
			Value: raw,
			Type:  typeName(t),
			Cause: err,
		}
	}
	return v.Interface().(T), nil
}

func convert(t reflect.Type, raw string) (reflect.Value, error) {
	s := strings.TrimSpace(raw)

	switch t {
	case durationType:
		d, err := cast.ToDurationE(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	case timeType:
		tm, err := cast.ToTimeE(s)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(tm), nil
	}

	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		p := reflect.New(t)
		err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
		if err != nil {
			return reflect.Value{}, err
		}
		return p.Elem(), nil
	}

	v := reflect.New(t).Elem()
	switch t.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Bool:
		b, err := parseBool(s)
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := parseInt(s, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := parseUint(s, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, t.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		v.SetFloat(f)
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return reflect.Value{}, ErrUnsupportedType
		}
		parts := strings.Split(s, ",")
		v = reflect.MakeSlice(t, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			v = reflect.Append(v, reflect.ValueOf(p).Convert(t.Elem()))
		}
	default:
		return reflect.Value{}, ErrUnsupportedType
	}
	return v, nil
}

func hexDigits(s string) (string, bool) {
	for _, prefix := range []string{"0x", "0X", "&h", "&H", "#"} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			return rest, true
		}
	}
	return s, false
}

// parseInt reads hexadecimal as the two's complement bit pattern of
// the target size, so "#FFFFFFFF" is -1 for a 32 bit integer.
func parseInt(s string, bits int) (int64, error) {
	digits, hex := hexDigits(s)
	if !hex {
		return strconv.ParseInt(s, 10, bits)
	}
	u, err := strconv.ParseUint(digits, 16, bits)
	if err != nil {
		return 0, err
	}
	shift := 64 - bits
	return int64(u<<shift) >> shift, nil
}

func parseUint(s string, bits int) (uint64, error) {
	digits, hex := hexDigits(s)
	if hex {
		return strconv.ParseUint(digits, 16, bits)
	}
	return strconv.ParseUint(s, 10, bits)
}

// typeName returns the name used for t in conversion errors,
// e.g. Int32, Bool or Duration.
func typeName(t reflect.Type) string {
	switch t {
	case durationType:
		return "Duration"
	case timeType:
		return "Time"
	}
	if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.String {
		return "StringSlice"
	}
	if t.PkgPath() != "" && t.Name() != "" {
		return t.Name()
	}
	k := t.Kind().String()
	return strings.ToUpper(k[:1]) + k[1:]
}

// parseBool accepts "true" and "false" in any case, falling back to
// the forms cast understands such as "1" and "F".
func parseBool(s string) (bool, error) {
	switch {
	case strings.EqualFold(s, "true"):
		return true, nil
	case strings.EqualFold(s, "false"):
		return false, nil
	}
	return cast.ToBoolE(s)
}
