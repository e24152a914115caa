// Package integrity computes and verifies content hashes over canonical
// AST serializations. The hash is a tamper-detection device for persisted
// program representations, not a signature scheme: anyone who can
// recompute the hash after modifying content defeats it.
package integrity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/sovereign-lang/sovereign/errz"
)

// Canonicalize serializes a decoded JSON document deterministically:
// object keys sorted, no whitespace, stable numeric formatting. The
// output is the byte string that content digests are computed over.
func Canonicalize(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := canonicalize(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func canonicalize(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		buf.WriteString(strconv.FormatBool(v))
	case string:
		return writeString(buf, v)
	case json.Number:
		return writeNumber(buf, v)
	case int:
		buf.WriteString(strconv.Itoa(v))
	case int64:
		buf.WriteString(strconv.FormatInt(v, 10))
	case float64:
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case []any:
		buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := canonicalize(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := canonicalize(buf, v[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return errz.Newf(errz.Parse, "cannot canonicalize value of type %T", v)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	// encoding/json escapes strings deterministically.
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("canonicalize string: %w", err)
	}
	buf.Write(encoded)
	return nil
}

func writeNumber(buf *bytes.Buffer, n json.Number) error {
	if i, err := n.Int64(); err == nil {
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return errz.Newf(errz.Parse, "invalid number %q in AST document", n.String())
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	return nil
}
