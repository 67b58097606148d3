package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

func jsonbValue(v any) (driver.Value, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func jsonbScan(dst any, value interface{}) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("jsonb: unsupported scan type %T", value)
	}

	return json.Unmarshal(raw, dst)
}
