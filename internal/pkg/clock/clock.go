package clock

import "time"

// Clock 時間來源與延遲任務
// 正式環境用 New()，測試用 NewFake() 手動推進時間
type Clock interface {
	Now() time.Time
	// AfterFunc 在 d 之後於另一個 goroutine 執行 f
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	// Stop 取消尚未執行的任務，已執行或已取消回傳 false
	Stop() bool
}

type realClock struct{}

func New() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
