package model

// Session labels the US equity trading session a bar or order belongs to.
// The stored values match the column suffixes used across the schema.
type Session string

const (
	// SessionCore is regular trading hours, 09:30-16:00 ET.
	SessionCore Session = "RTH"
	// SessionExtended is the after-hours window, 16:00-20:00 ET.
	SessionExtended Session = "AH"
)

func (s Session) Valid() bool {
	return s == SessionCore || s == SessionExtended
}
