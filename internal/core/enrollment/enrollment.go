// Package enrollment manages the many-to-many relation between classes and
// subjects, including the per-pair subject teacher.
package enrollment

import "time"

// TeacherRef is the subject teacher shown alongside an enrollment.
type TeacherRef struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Enrollment is one (class, subject) pair. The pair is unique; Teacher is the
// optional subject teacher for this pair only.
type Enrollment struct {
	ID          string      `json:"id"`
	ClassID     string      `json:"class_id"`
	SubjectID   string      `json:"subject_id"`
	SubjectName string      `json:"subject"`
	Teacher     *TeacherRef `json:"teacher,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// TeachingAssignment is an enrollment as seen from the teacher's side,
// backing the "classes this user teaches" listing.
type TeachingAssignment struct {
	ClassName   string `json:"class"`
	SubjectName string `json:"subject"`
}
