package clock

import (
	"sync"
	"time"
)

// Clock 时间源
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// System 返回系统时钟（UTC）
func System() Clock {
	return systemClock{}
}

// Fixed 可手动调整的时钟，用于测试
type Fixed struct {
	mu  sync.RWMutex
	now time.Time
}

// NewFixed 创建固定时钟
func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now.UTC()}
}

// Now 返回当前设定时间
func (f *Fixed) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

// Set 设置当前时间
func (f *Fixed) Set(now time.Time) {
	f.mu.Lock()
	f.now = now.UTC()
	f.mu.Unlock()
}

// Advance 推进时间
func (f *Fixed) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// AddDays 按 UTC 日历天数偏移
func AddDays(t time.Time, days int) time.Time {
	return t.UTC().AddDate(0, 0, days)
}

// Or 当 c 为空时回退到系统时钟
func Or(c Clock) Clock {
	if c == nil {
		return System()
	}
	return c
}
