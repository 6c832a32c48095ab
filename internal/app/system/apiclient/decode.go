package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// DecodeList decodes data as a JSON array of W. A missing, null or non-array
// data field yields an empty slice rather than an error; elements that do not
// match W are reported as an error.
func DecodeList[W any](data json.RawMessage) ([]W, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return []W{}, nil
	}
	var out []W
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if out == nil {
		out = []W{}
	}
	return out, nil
}

// DecodeItem decodes a single record. Some endpoints nest the record one
// level deeper ({"data":{"data":{...}}}); that shape is unwrapped too.
// ok is false when data carries no object.
func DecodeItem[W any](data json.RawMessage) (W, bool, error) {
	var zero W
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return zero, false, nil
	}

	var nested struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &nested); err == nil {
		inner := bytes.TrimSpace(nested.Data)
		if len(inner) > 0 && inner[0] == '{' {
			trimmed = inner
		}
	}

	var out W
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return zero, false, fmt.Errorf("decode item: %w", err)
	}
	return out, true, nil
}

// FlexString decodes from either a JSON string or a JSON number. The backend
// emits numeric ids for some collections and string ids for others.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexInt decodes from either a JSON number or a numeric JSON string.
type FlexInt int64

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("flex int: %w", err)
		}
		*f = FlexInt(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("flex int: %w", err)
	}
	*f = FlexInt(n)
	return nil
}

// OptString decodes a string that may be null.
type OptString string

func (o *OptString) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*o = OptString(s)
	return nil
}

// LooseString keeps a JSON string and reads any other value as empty.
// Enumerated fields use it so one odd value cannot fail a whole list.
type LooseString string

func (l *LooseString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*l = ""
		return nil
	}
	*l = LooseString(s)
	return nil
}
