package cmd

import "time"

// Demo schema: a small task tracker exercising every generated widget,
// including a belongs-to select and a split datetime control.

type User struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	Email     string `gorm:"size:255"`
	CreatedAt time.Time
}

type Project struct {
	ID          uint `gorm:"primaryKey"`
	Name        string
	Description string `gorm:"type:text" crudform:"widget:textarea"`
	Budget      float64
	Active      bool
}

type Task struct {
	ID        uint `gorm:"primaryKey"`
	Title     string
	Notes     string `gorm:"type:text"`
	Priority  int
	Done      bool
	DueAt     time.Time
	UserID    uint
	User      User
	ProjectID uint
	Project   Project
}

func (Task) CrudLabelColumn() string { return "title" }
func (Task) CrudOrderBy() string     { return "due_at" }
