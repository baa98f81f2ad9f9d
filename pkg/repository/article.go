package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/newspulse/pkg/domain"
)

const defaultListLimit = 100

// ArticleRepository archives received articles, one row per identity key
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID                int64       `db:"id"`
	Title             string      `db:"title"`
	Source            string      `db:"source"`
	PublishDate       string      `db:"publish_date"`
	Content           string      `db:"content"`
	SourceURL         string      `db:"source_url"`
	Language          string      `db:"language"`
	TranslatedContent string      `db:"translated_content"`
	Author            string      `db:"author"`
	CollectedDate     string      `db:"collected_date"`
	Region            string      `db:"region"`
	Category          string      `db:"category"`
	SentimentLabel    string      `db:"sentiment_label"`
	SentimentScore    *float64    `db:"sentiment_score"`
	Summary           string      `db:"summary"`
	Keywords          keywordsSQL `db:"keywords"`

	GovernmentRelated    *bool    `db:"is_government_related"`
	GovernmentConfidence *float64 `db:"government_confidence"`
	AIProcessed          bool     `db:"ai_processed"`
	AIConfidence         *float64 `db:"ai_confidence_score"`
}

var articleColumns = []string{"id", "title", "source", "publish_date", "content", "source_url", "language",
	"translated_content", "author", "collected_date", "region", "category", "sentiment_label", "sentiment_score",
	"summary", "keywords", "is_government_related", "government_confidence", "ai_processed", "ai_confidence_score"}

// keywordsSQL is a JSON array of keywords for SQL operations
type keywordsSQL []string

// Value implements driver.Valuer for database storage
func (k keywordsSQL) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	data, err := json.Marshal(k)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval
func (k *keywordsSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*k = nil
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected keywords type %T", value)
	}
	if err := json.Unmarshal(data, k); err != nil {
		return err
	}
	if len(*k) == 0 {
		*k = nil
	}
	return nil
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// Save stores articles in a single transaction, articles with a known identity key are skipped.
// The batch is newest first, as the live buffer holds it, and rows are inserted oldest first
// so ids follow arrival order. Returns the number of new rows.
func (r *ArticleRepository) Save(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	query := `
		INSERT OR IGNORE INTO articles (
			title, source, publish_date, content, source_url, language, translated_content, author,
			collected_date, region, category, sentiment_label, sentiment_score, summary, keywords,
			is_government_related, government_confidence, ai_processed, ai_confidence_score
		) VALUES (
			:title, :source, :publish_date, :content, :source_url, :language, :translated_content, :author,
			:collected_date, :region, :category, :sentiment_label, :sentiment_score, :summary, :keywords,
			:is_government_related, :government_confidence, :ai_processed, :ai_confidence_score
		)
	`

	var inserted int
	err := withRetry(ctx, func() error {
		inserted = 0
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		stmt, err := tx.PrepareNamedContext(ctx, query)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := len(articles) - 1; i >= 0; i-- {
			a := articles[i]
			res, err := stmt.ExecContext(ctx, toArticleSQL(a))
			if err != nil {
				return fmt.Errorf("insert article %s: %w", a.Key(), err)
			}
			if n, err := res.RowsAffected(); err == nil {
				inserted += int(n)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save articles: %w", err)
	}
	return inserted, nil
}

// List returns archived articles matching the filter, newest received first
func (r *ArticleRepository) List(ctx context.Context, f domain.Filter) ([]domain.Article, error) {
	q := sq.Select(articleColumns...).From("articles").OrderBy("received_at DESC", "id DESC")

	eq := sq.Eq{}
	for col, v := range map[string]string{"category": f.Category, "region": f.Region,
		"sentiment_label": f.Sentiment, "language": f.Language} {
		if v != "" {
			eq[col] = v
		}
	}
	if len(eq) > 0 {
		q = q.Where(eq)
	}
	if f.GovernmentOnly {
		q = q.Where(sq.Eq{"is_government_related": true})
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(sq.Or{sq.Like{"title": like}, sq.Like{"content": like}})
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	q = q.Limit(uint64(limit)) //nolint:gosec // limit is positive
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset)) //nolint:gosec // offset is positive
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	res := make([]domain.Article, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// Count returns the number of archived articles
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM articles"); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// Prune keeps the newest received articles and deletes the rest, returns the number of deleted rows
func (r *ArticleRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	query := `
		DELETE FROM articles WHERE id NOT IN (
			SELECT id FROM articles ORDER BY received_at DESC, id DESC LIMIT ?
		)
	`
	var deleted int64
	err := withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, query, keep)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune articles: %w", err)
	}
	return deleted, nil
}

func toArticleSQL(a domain.Article) articleSQL {
	return articleSQL{
		Title:                a.Title,
		Source:               a.Source,
		PublishDate:          a.PublishDate,
		Content:              a.Content,
		SourceURL:            a.SourceURL,
		Language:             a.Language,
		TranslatedContent:    a.TranslatedContent,
		Author:               a.Author,
		CollectedDate:        a.CollectedDate,
		Region:               a.Region,
		Category:             a.Category,
		SentimentLabel:       a.SentimentLabel,
		SentimentScore:       a.SentimentScore,
		Summary:              a.Summary,
		Keywords:             a.Keywords,
		GovernmentRelated:    a.GovernmentRelated,
		GovernmentConfidence: a.GovernmentConfidence,
		AIProcessed:          a.AIProcessed,
		AIConfidence:         a.AIConfidence,
	}
}

func (a articleSQL) toDomain() domain.Article {
	return domain.Article{
		Title:                a.Title,
		Source:               a.Source,
		PublishDate:          a.PublishDate,
		Content:              a.Content,
		SourceURL:            a.SourceURL,
		Language:             a.Language,
		TranslatedContent:    a.TranslatedContent,
		Author:               a.Author,
		CollectedDate:        a.CollectedDate,
		Region:               a.Region,
		Category:             a.Category,
		SentimentLabel:       a.SentimentLabel,
		SentimentScore:       a.SentimentScore,
		Summary:              a.Summary,
		Keywords:             a.Keywords,
		GovernmentRelated:    a.GovernmentRelated,
		GovernmentConfidence: a.GovernmentConfidence,
		AIProcessed:          a.AIProcessed,
		AIConfidence:         a.AIConfidence,
	}
}
