package decoder

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
)

var (
	publicKeyType = reflect.TypeOf(ed25519.PublicKey{})
	bigIntType    = reflect.TypeOf(&big.Int{})
	stringerType  = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Normalize converts a decoded record into plain values:
//   - 64 bit and wider integers become decimal strings
//   - narrower integers become int64
//   - public keys become base58 strings
//   - structs become maps keyed by their json tag
//   - other byte slices become hex strings
//
// Values of a struct type implementing fmt.Stringer, such as a 128 bit
// integer, become their string form.
func Normalize(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return normalize(reflect.ValueOf(v))
}

func normalize(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}

	switch v.Type() {
	case publicKeyType:
		if v.Len() == 0 {
			return nil
		}
		return base58.Encode(v.Bytes())
	case bigIntType:
		if v.IsNil() {
			return nil
		}
		return v.Interface().(*big.Int).String()
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return normalize(v.Elem())
	case reflect.Bool:
		return v.Bool()
	case reflect.String:
		return v.String()
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return v.Int()
	case reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(v.Uint())
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Slice, reflect.Array:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(b), v)
			return hex.EncodeToString(b)
		}

		res := make([]interface{}, v.Len())
		for i := range res {
			res[i] = normalize(v.Index(i))
		}
		return res
	case reflect.Map:
		res := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			res[fmt.Sprint(iter.Key().Interface())] = normalize(iter.Value())
		}
		return res
	case reflect.Struct:
		if v.Type().Implements(stringerType) {
			return v.Interface().(fmt.Stringer).String()
		}
		return normalizeStruct(v)
	}

	return fmt.Sprint(v.Interface())
}

func normalizeStruct(v reflect.Value) map[string]interface{} {
	res := make(map[string]interface{}, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if field.PkgPath != "" {
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName := strings.Split(tag, ",")[0]
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}

		res[name] = normalize(v.Field(i))
	}
	return res
}
