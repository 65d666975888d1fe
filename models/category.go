package models

// Category groups blog posts or prompts. (name, type) is unique.
type Category struct {
	Base
	Name        string       `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex:idx_category_name_type"`
	Type        TaxonomyType `json:"type" db:"type" gorm:"type:text;not null;uniqueIndex:idx_category_name_type"`
	Description *string      `json:"description,omitempty" db:"description" gorm:"type:text"`
}
