// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

// Package schema holds column-name definitions for tables whose repositories
// build joins dynamically. Simple single-table repositories inline their
// queries instead.
package schema

// SubjectTable represents the 'subject' table
type SubjectTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// Subject is the schema definition for subject
var Subject = SubjectTable{
	Table:     "subject",
	ID:        "id",
	Name:      "name",
	CreatedAt: "created_at",
}

// ClassTable represents the 'class' table
type ClassTable struct {
	Table     string
	ID        string
	Name      string
	GuildID   string
	Key       string
	CreatedAt string
}

// Class is the schema definition for class
var Class = ClassTable{
	Table:     "class",
	ID:        "id",
	Name:      "name",
	GuildID:   "guild_id",
	Key:       "key",
	CreatedAt: "created_at",
}
