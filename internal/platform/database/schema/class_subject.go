// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package schema

// ClassSubjectTable represents the 'class_subject' join table
type ClassSubjectTable struct {
	Table     string
	ID        string
	ClassID   string
	SubjectID string
	TeacherID string
	CreatedAt string
}

// ClassSubject is the schema definition for class_subject
var ClassSubject = ClassSubjectTable{
	Table:     "class_subject",
	ID:        "id",
	ClassID:   "class_id",
	SubjectID: "subject_id",
	TeacherID: "teacher_id",
	CreatedAt: "created_at",
}

// AccountTable represents the 'account' table
type AccountTable struct {
	Table        string
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Verified     string
	Admin        string
	ClassID      string
	CreatedAt    string
	UpdatedAt    string
}

// Account is the schema definition for account
var Account = AccountTable{
	Table:        "account",
	ID:           "id",
	Email:        "email",
	PasswordHash: "password_hash",
	FirstName:    "first_name",
	LastName:     "last_name",
	Verified:     "verified",
	Admin:        "admin",
	ClassID:      "class_id",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}
