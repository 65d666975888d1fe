package database

import (
	"context"

	"github.com/rpupo63/genai-portfolio-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db                 *gorm.DB
	blogPosts          *Collection[models.BlogPost]
	categories         *Collection[models.Category]
	tags               *Collection[models.Tag]
	prompts            *Collection[models.Prompt]
	users              *Collection[models.User]
	subscribers        *Collection[models.NewsletterSubscriber]
	contactSubmissions *Collection[models.ContactSubmission]
	statusChecks       *Collection[models.StatusCheck]
}

// New initializes a new Database struct with each collection using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                 db,
		blogPosts:          NewCollection[models.BlogPost](db),
		categories:         NewCollection[models.Category](db),
		tags:               NewCollection[models.Tag](db),
		prompts:            NewCollection[models.Prompt](db),
		users:              NewCollection[models.User](db),
		subscribers:        NewCollection[models.NewsletterSubscriber](db),
		contactSubmissions: NewCollection[models.ContactSubmission](db),
		statusChecks:       NewCollection[models.StatusCheck](db),
	}
}

// Accessor methods for each collection

func (d Database) BlogPosts() *Collection[models.BlogPost] {
	return d.blogPosts
}

func (d Database) Categories() *Collection[models.Category] {
	return d.categories
}

func (d Database) Tags() *Collection[models.Tag] {
	return d.tags
}

func (d Database) Prompts() *Collection[models.Prompt] {
	return d.prompts
}

func (d Database) Users() *Collection[models.User] {
	return d.users
}

func (d Database) Subscribers() *Collection[models.NewsletterSubscriber] {
	return d.subscribers
}

func (d Database) ContactSubmissions() *Collection[models.ContactSubmission] {
	return d.contactSubmissions
}

func (d Database) StatusChecks() *Collection[models.StatusCheck] {
	return d.statusChecks
}

// Ping checks that the primary connection is reachable.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
