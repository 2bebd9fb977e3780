package domain

import "time"

type Board struct {
	ID        int64     `db:"id"`
	ProjectID int64     `db:"project_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}
