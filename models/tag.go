package models

// Tag labels blog posts or prompts. (name, type) is unique.
type Tag struct {
	Base
	Name string       `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_tag_name_type"`
	Type TaxonomyType `json:"type" db:"type" gorm:"type:text;not null;uniqueIndex:idx_tag_name_type"`
}
