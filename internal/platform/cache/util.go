package cache

import (
	"time"
)

// closeHour / closeMinute は米国市場の終値が確定する時刻（ニューヨーク時間）です。
const (
	closeHour   = 16
	closeMinute = 30
)

var newYork = loadLocation("America/New_York")

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// tzdata が無い環境では EST 固定
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// TimeUntilNextClose は now から次の終値確定時刻（16:30 ニューヨーク時間）までの期間を返します。
func TimeUntilNextClose(now time.Time) time.Duration {
	n := now.In(newYork)

	next := time.Date(n.Year(), n.Month(), n.Day(), closeHour, closeMinute, 0, 0, newYork)

	// 今日の確定時刻が既に過ぎている場合は翌日を使用
	if !n.Before(next) {
		next = next.AddDate(0, 0, 1)
	}

	return next.Sub(n)
}
