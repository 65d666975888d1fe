package resource

import (
	"time"

	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"gorm.io/datatypes"
)

type (
	BlogPostEngine    = Engine[models.BlogPost, *models.BlogPost]
	CategoryEngine    = Engine[models.Category, *models.Category]
	TagEngine         = Engine[models.Tag, *models.Tag]
	UserEngine        = Engine[models.User, *models.User]
	ContactEngine     = Engine[models.ContactSubmission, *models.ContactSubmission]
	StatusCheckEngine = Engine[models.StatusCheck, *models.StatusCheck]
	subscriberEngine  = Engine[models.NewsletterSubscriber, *models.NewsletterSubscriber]
	promptEngine      = Engine[models.Prompt, *models.Prompt]
)

// Engines bundles the engine of every entity the API serves.
type Engines struct {
	BlogPosts          *BlogPostEngine
	Categories         *CategoryEngine
	Tags               *TagEngine
	Prompts            *Prompts
	Users              *UserEngine
	Newsletter         *Newsletter
	ContactSubmissions *ContactEngine
	StatusChecks       *StatusCheckEngine
}

func NewEngines(db database.Database) Engines {
	return Engines{
		BlogPosts:          NewEngine[models.BlogPost](db.BlogPosts(), BlogPostSpec),
		Categories:         NewEngine[models.Category](db.Categories(), CategorySpec),
		Tags:               NewEngine[models.Tag](db.Tags(), TagSpec),
		Prompts:            &Prompts{NewEngine[models.Prompt](db.Prompts(), PromptSpec)},
		Users:              NewEngine[models.User](db.Users(), UserSpec),
		Newsletter:         &Newsletter{NewEngine[models.NewsletterSubscriber](db.Subscribers(), SubscriberSpec)},
		ContactSubmissions: NewEngine[models.ContactSubmission](db.ContactSubmissions(), ContactSubmissionSpec),
		StatusChecks:       NewEngine[models.StatusCheck](db.StatusChecks(), StatusCheckSpec),
	}
}

var CategorySpec = Spec[models.Category]{
	Entity: "Category",
	Scopes: []Scope[models.Category]{{
		Columns: []string{"name", "type"},
		Values: func(c *models.Category) map[string]any {
			return map[string]any{"name": c.Name, "type": c.Type}
		},
	}},
	Sortable:     []string{"created_at", "updated_at", "name"},
	DefaultLimit: 50,
	MaxLimit:     200,
}

var TagSpec = Spec[models.Tag]{
	Entity: "Tag",
	Scopes: []Scope[models.Tag]{{
		Columns: []string{"name", "type"},
		Values: func(t *models.Tag) map[string]any {
			return map[string]any{"name": t.Name, "type": t.Type}
		},
	}},
	Sortable:     []string{"created_at", "updated_at", "name"},
	DefaultLimit: 100,
	MaxLimit:     500,
}

var UserSpec = Spec[models.User]{
	Entity: "User",
	Scopes: []Scope[models.User]{
		{
			Columns: []string{"username"},
			Values: func(u *models.User) map[string]any {
				return map[string]any{"username": u.Username}
			},
		},
		{
			Columns: []string{"email"},
			Values: func(u *models.User) map[string]any {
				return map[string]any{"email": u.Email}
			},
		},
	},
	Sortable:     []string{"created_at", "updated_at", "username", "email"},
	DefaultLimit: 20,
	MaxLimit:     100,
	OnCreate: func(u *models.User, _ time.Time) error {
		if u.Role == "" {
			u.Role = models.RoleAuthor
		}
		return nil
	},
}

var PromptSpec = Spec[models.Prompt]{
	Entity:       "Prompt",
	Sortable:     []string{"created_at", "likes", "views", "title"},
	DefaultLimit: 10,
	MaxLimit:     100,
	OnCreate: func(p *models.Prompt, _ time.Time) error {
		p.Tags = nonNilTags(p.Tags)
		p.Likes, p.Views = 0, 0
		return nil
	},
}

var SubscriberSpec = Spec[models.NewsletterSubscriber]{
	Entity: "Subscriber",
	Scopes: []Scope[models.NewsletterSubscriber]{{
		Columns: []string{"email"},
		Values: func(s *models.NewsletterSubscriber) map[string]any {
			return map[string]any{"email": s.Email}
		},
	}},
	Sortable:     []string{"created_at", "email"},
	DefaultLimit: 100,
	MaxLimit:     1000,
	OnCreate: func(s *models.NewsletterSubscriber, _ time.Time) error {
		s.Tags = nonNilTags(s.Tags)
		return nil
	},
}

var ContactSubmissionSpec = Spec[models.ContactSubmission]{
	Entity:       "Submission",
	Sortable:     []string{"created_at"},
	DefaultLimit: 100,
	MaxLimit:     1000,
	OnCreate: func(c *models.ContactSubmission, _ time.Time) error {
		c.Status = models.SubmissionNew
		return nil
	},
}

var StatusCheckSpec = Spec[models.StatusCheck]{
	Entity:       "Status check",
	Sortable:     []string{"created_at", "timestamp", "client_name"},
	DefaultLimit: 1000,
	MaxLimit:     1000,
	OnCreate: func(s *models.StatusCheck, now time.Time) error {
		s.Timestamp = now
		return nil
	},
}

func nonNilTags(tags datatypes.JSONSlice[string]) datatypes.JSONSlice[string] {
	if tags == nil {
		return datatypes.JSONSlice[string]{}
	}
	return tags
}
