package models

// User is a marketplace account snapshot.
type User struct {
	ID        int64   `json:"id"`
	TeacherID *int64  `json:"teacher_id"`
	CreatedAt *string `json:"created_at"`
}

// IsTeacher reports whether the account has a teacher profile attached.
func (u User) IsTeacher() bool {
	return u.TeacherID != nil && *u.TeacherID != 0
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
	TotalPages int `json:"total_pages"`
}
