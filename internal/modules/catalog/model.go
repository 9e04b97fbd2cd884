package catalog

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry shared by every store that stocks it.
type Product struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Category          string    `json:"category,omitempty"`
	Barcode           string    `json:"barcode,omitempty"`
	ImageURL          string    `json:"imageUrl,omitempty"`
	ManufacturingDate *Date     `json:"manufacturingDate,omitempty"`
	ExpiryDate        *Date     `json:"expiryDate,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

const dateLayout = "2006-01-02"

// Date is a calendar date without a time component, serialized as
// YYYY-MM-DD and stored in a Postgres DATE column.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case []byte:
		return d.UnmarshalJSON(v)
	case string:
		return d.UnmarshalJSON([]byte(v))
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// ExpiryStatus derives the expiry state of a product at the given moment.
// A nil expiry means the product does not expire: expired is false and
// daysUntil is the -1 sentinel. Otherwise daysUntil is the signed whole-day
// difference from today to the expiry date (negative past, zero today).
func ExpiryStatus(expiry *Date, now time.Time) (expired bool, daysUntil int64) {
	if expiry == nil {
		return false, -1
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	exp := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	daysUntil = int64(exp.Sub(today).Hours() / 24)
	return exp.Before(today), daysUntil
}
