package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// GPSPoint is a device GPS fix stored as jsonb.
type GPSPoint struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// Value implements driver.Valuer (jsonb column).
func (g GPSPoint) Value() (driver.Value, error) {
	return json.Marshal(g)
}

// Scan implements sql.Scanner.
func (g *GPSPoint) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	default:
		return errors.New("gps: unsupported scan source")
	}
}
