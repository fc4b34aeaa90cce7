package entity

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CivilDate is a calendar date in YYYY-MM-DD form. Postgres date columns
// arrive from the driver as time.Time; scanning through this type keeps the
// stored civil form instead of an RFC 3339 timestamp.
type CivilDate string

func (d *CivilDate) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = CivilDate(v.Format("2006-01-02"))
	case string:
		*d = truncateToDate(v)
	case []byte:
		*d = truncateToDate(string(v))
	default:
		return fmt.Errorf("cannot scan %T into CivilDate", value)
	}
	return nil
}

func truncateToDate(s string) CivilDate {
	if len(s) > 10 {
		s = s[:10]
	}
	return CivilDate(s)
}

func (d CivilDate) Value() (driver.Value, error) {
	if d == "" {
		return nil, nil
	}
	return string(d), nil
}

func (d CivilDate) String() string { return string(d) }
