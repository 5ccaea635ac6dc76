package models

import "time"

type Category struct {
	ID          int64
	Name        string
	Description string
	ParentID    *int64
	CreatedAt   time.Time
}

func (c *Category) Validate() error {
	v := validator{entity: "category"}
	v.required("name", c.Name)
	v.maxLen("name", c.Name, 100)
	v.maxLen("description", c.Description, 500)
	if c.ParentID != nil {
		v.positiveID("parent_id", *c.ParentID)
	}
	return v.err
}
