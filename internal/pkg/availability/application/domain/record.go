package availability

import (
	"errors"
	"strings"
	"time"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
)

var (
	ErrEmptyUserName = errors.New("availability: user name is empty")
	ErrZeroDate      = errors.New("availability: date is not set")
)

// Record marks one participant as available on one calendar day.
// Primary key: (UserName, Date)
type Record struct {
	ID        int64        `json:"id,omitempty" db:"id"`
	UserName  string       `json:"user_name" db:"user_name"`
	Date      caldate.Date `json:"selected_date" db:"selected_date"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

// NewRecord validates identity fields and stamps UpdatedAt when it is zero.
// The name is stored exactly as given so it matches the configured roster.
func NewRecord(userName string, date caldate.Date, now time.Time) (Record, error) {
	if strings.TrimSpace(userName) == "" {
		return Record{}, ErrEmptyUserName
	}
	if date.IsZero() {
		return Record{}, ErrZeroDate
	}
	if now.IsZero() {
		now = time.Now()
	}
	return Record{UserName: userName, Date: date, UpdatedAt: now.UTC()}, nil
}

// Key identifies a record independent of its timestamp.
type Key struct {
	UserName string
	Date     caldate.Date
}

func (r Record) Key() Key { return Key{UserName: r.UserName, Date: r.Date} }

// Less orders records by date, then by user name.
func Less(a, b Record) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c < 0
	}
	return a.UserName < b.UserName
}

// CompareRecords is Less as a three-way comparison for slices.SortFunc.
func CompareRecords(a, b Record) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	return strings.Compare(a.UserName, b.UserName)
}
