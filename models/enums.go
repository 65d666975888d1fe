package models

// Role is a user's permission level.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleAuthor Role = "author"
)

func Roles() []string {
	return []string{string(RoleAdmin), string(RoleEditor), string(RoleAuthor)}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleAuthor:
		return true
	}
	return false
}

// ContentStatus is the editorial state of a blog post.
type ContentStatus string

const (
	StatusDraft         ContentStatus = "draft"
	StatusPendingReview ContentStatus = "pending_review"
	StatusPublished     ContentStatus = "published"
	StatusArchived      ContentStatus = "archived"
)

func ContentStatuses() []string {
	return []string{string(StatusDraft), string(StatusPendingReview), string(StatusPublished), string(StatusArchived)}
}

func (s ContentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingReview, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// TaxonomyType says which kind of content a category or tag classifies.
type TaxonomyType string

const (
	TaxonomyBlog   TaxonomyType = "blog"
	TaxonomyPrompt TaxonomyType = "prompt"
)

func TaxonomyTypes() []string {
	return []string{string(TaxonomyBlog), string(TaxonomyPrompt)}
}

func (t TaxonomyType) Valid() bool {
	return t == TaxonomyBlog || t == TaxonomyPrompt
}

// SubmissionStatus tracks how a contact submission has been handled.
type SubmissionStatus string

const (
	SubmissionNew       SubmissionStatus = "new"
	SubmissionRead      SubmissionStatus = "read"
	SubmissionResponded SubmissionStatus = "responded"
	SubmissionArchived  SubmissionStatus = "archived"
)

func SubmissionStatuses() []string {
	return []string{string(SubmissionNew), string(SubmissionRead), string(SubmissionResponded), string(SubmissionArchived)}
}

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionNew, SubmissionRead, SubmissionResponded, SubmissionArchived:
		return true
	}
	return false
}
