package model

import "time"

// MenuItem is an immutable catalog entry. Preparation bounds are in minutes.
type MenuItem struct {
	ID       int64   `gorm:"primaryKey"`
	Name     string  `gorm:"size:128;not null"`
	PrepMinM float64 `gorm:"column:prep_min_m;not null"`
	PrepMaxM float64 `gorm:"column:prep_max_m;not null"`
}

// PrepMin returns the lower preparation bound as a duration.
func (m MenuItem) PrepMin() time.Duration {
	return minutes(m.PrepMinM)
}

// PrepMax returns the upper preparation bound as a duration.
func (m MenuItem) PrepMax() time.Duration {
	return minutes(m.PrepMaxM)
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
