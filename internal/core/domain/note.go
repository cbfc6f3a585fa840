package domain

import "time"

// Note is a free-text note attached to another entity.
type Note struct {
	ID          int64     `yaml:"id"`
	ObjectID    int64     `yaml:"object_id"`
	ObjectType  string    `yaml:"object_type"`
	UserID      int64     `yaml:"user_id"`
	Content     string    `yaml:"content"`
	DateCreated time.Time `yaml:"date_created"`
}

// Record returns the attribute view of the note.
func (n *Note) Record() Record {
	return Record{
		"id":           n.ID,
		"object_id":    n.ObjectID,
		"object_type":  n.ObjectType,
		"user_id":      n.UserID,
		"content":      n.Content,
		"date_created": timeOrNil(n.DateCreated),
	}
}

// Log is a host log entry attached to another entity.
type Log struct {
	ID          int64     `yaml:"id"`
	ObjectID    int64     `yaml:"object_id"`
	ObjectType  string    `yaml:"object_type"`
	UserID      int64     `yaml:"user_id"`
	Type        string    `yaml:"type"`
	Title       string    `yaml:"title"`
	Content     string    `yaml:"content"`
	DateCreated time.Time `yaml:"date_created"`
}

// Record returns the attribute view of the log entry.
func (l *Log) Record() Record {
	return Record{
		"id":           l.ID,
		"object_id":    l.ObjectID,
		"object_type":  l.ObjectType,
		"user_id":      l.UserID,
		"type":         l.Type,
		"title":        l.Title,
		"content":      l.Content,
		"date_created": timeOrNil(l.DateCreated),
	}
}
