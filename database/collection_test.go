package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpupo63/genai-portfolio-backend/database"
	"github.com/rpupo63/genai-portfolio-backend/database/dbtest"
	"github.com/rpupo63/genai-portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newPrompt(title, category string, tags ...string) *models.Prompt {
	p := &models.Prompt{
		Title:       title,
		Description: "d",
		PromptText:  "t",
		Category:    category,
		Tags:        datatypes.JSONSlice[string](tags),
	}
	p.Stamp(time.Now().UTC())
	return p
}

func TestCollectionFindFiltersAndPaginates(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	prompts := db.Prompts()

	require.NoError(t, prompts.Insert(ctx, newPrompt("b", "writing", "go", "api")))
	require.NoError(t, prompts.Insert(ctx, newPrompt("a", "writing", "python")))
	require.NoError(t, prompts.Insert(ctx, newPrompt("c", "coding", "go")))

	found, err := prompts.Find(ctx, database.Filter{database.Eq("category", "writing")},
		database.FindOptions{Sort: []database.Sort{{Column: "title"}}})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "a", found[0].Title)
	assert.Equal(t, "b", found[1].Title)

	tagged, err := prompts.Find(ctx, database.Filter{database.Has("tags", "go")},
		database.FindOptions{Sort: []database.Sort{{Column: "title", Desc: true}}})
	require.NoError(t, err)
	require.Len(t, tagged, 2)
	assert.Equal(t, "c", tagged[0].Title)

	page, err := prompts.Find(ctx, nil, database.FindOptions{
		Sort:  []database.Sort{{Column: "title"}},
		Skip:  1,
		Limit: 1,
	})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Title)

	n, err := prompts.Count(ctx, database.Filter{database.Has("tags", "go")})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestCollectionUpdateIncrementDelete(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	prompts := db.Prompts()

	p := newPrompt("title", "coding")
	require.NoError(t, prompts.Insert(ctx, p))

	affected, err := prompts.Update(ctx, database.ByID(p.ID), database.Patch{"title": "renamed"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	for i := 0; i < 3; i++ {
		_, err := prompts.Increment(ctx, database.ByID(p.ID), "views", 1)
		require.NoError(t, err)
	}

	got, err := prompts.FindOne(ctx, database.ByID(p.ID))
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, 3, got.Views)

	exists, err := prompts.Exists(ctx, database.Filter{database.Eq("title", "renamed"), database.Ne("id", p.ID)})
	require.NoError(t, err)
	assert.False(t, exists)

	deleted, err := prompts.Delete(ctx, database.ByID(p.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = prompts.FindOne(ctx, database.ByID(p.ID))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err = prompts.Delete(ctx, database.ByID(p.ID))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestCollectionUniqueIndexRejectsDuplicates(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	first := &models.Tag{Name: "go", Type: models.TaxonomyBlog}
	first.Stamp(time.Now().UTC())
	require.NoError(t, db.Tags().Insert(ctx, first))

	dup := &models.Tag{Name: "go", Type: models.TaxonomyBlog}
	dup.Stamp(time.Now().UTC())
	err := db.Tags().Insert(ctx, dup)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	other := &models.Tag{Name: "go", Type: models.TaxonomyPrompt}
	other.Stamp(time.Now().UTC())
	assert.NoError(t, db.Tags().Insert(ctx, other))
}
