package domain

import "time"

type User struct {
	// ID совпадает с telegram id, своего счётчика не заводим
	ID        int64
	Username  string
	CreatedAt time.Time
}
