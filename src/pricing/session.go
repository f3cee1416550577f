package pricing

import (
	"time"

	"walletengine/src/model"
)

// ----- session windows -----

const (
	coreOpenMinute  = 9*60 + 30  // 09:30 ET
	coreCloseMinute = 16 * 60    // 16:00 ET
	extCloseMinute  = 20 * 60    // 20:00 ET
)

func getEasternTime(t time.Time) time.Time {
	nyLocation, err := time.LoadLocation("America/New_York")
	if err != nil {
		return t.UTC()
	}
	return t.In(nyLocation)
}

// SessionAt maps a wall-clock instant to the equity trading session it falls
// in. ok is false outside both sessions (overnight, early morning).
func SessionAt(t time.Time) (model.Session, bool) {
	et := getEasternTime(t)
	minute := et.Hour()*60 + et.Minute()

	switch {
	case minute >= coreOpenMinute && minute < coreCloseMinute:
		return model.SessionCore, true
	case minute >= coreCloseMinute && minute < extCloseMinute:
		return model.SessionExtended, true
	default:
		return "", false
	}
}

// SessionOfBar classifies a bar timestamp the same way SessionAt classifies
// the current clock. Used when splitting a day of minute bars.
func SessionOfBar(ts time.Time) (model.Session, bool) {
	return SessionAt(ts)
}
