package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	unique := fmt.Errorf("create article: %w", &pgconn.PgError{Code: "23505", ConstraintName: "articles_space_slug_key"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "article_tags_article_id_fkey"}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.Equal(t, "articles_space_slug_key", ViolatedConstraint(unique))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(fk))

	assert.True(t, IsNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, IsNoRows(unique))

	plain := fmt.Errorf("boom")
	assert.False(t, IsUniqueViolation(plain))
	assert.Empty(t, ViolatedConstraint(plain))
}
