package models

// Department represents an academic department. Pure reference data:
// readable by any authenticated account, writable by teachers.
type Department struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Code string `json:"code" db:"code"`
}
