package repository

import (
	"context"
	"errors"
	"fmt"

	"chatlog/internal/model"

	"github.com/jackc/pgx/v5"
)

const conversationColumns = `id, prompt, response, category, "timestamp"`

// ConversationRepository defines operations for conversation data
type ConversationRepository interface {
	Create(ctx context.Context, conversation *model.Conversation) error
	FindAll(ctx context.Context) ([]model.Conversation, error)
	FindByCategory(ctx context.Context, category string) ([]model.Conversation, error)
	FindAllSortedByTime(ctx context.Context) ([]model.Conversation, error)
	FindPage(ctx context.Context, req model.PageRequest) ([]model.Conversation, int64, error)
	FindByCategoryPage(ctx context.Context, category string, req model.PageRequest) ([]model.Conversation, int64, error)
	FindSortedByTimePage(ctx context.Context, req model.PageRequest) ([]model.Conversation, int64, error)
	Update(ctx context.Context, conversation *model.Conversation) error
	Delete(ctx context.Context, id int64) error
}

type conversationRepository struct {
	db DB
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create inserts a new conversation and assigns its generated id
func (r *conversationRepository) Create(ctx context.Context, c *model.Conversation) error {
	sql := `INSERT INTO conversations (prompt, response, category, "timestamp")
            VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, sql, c.Prompt, c.Response, c.Category, c.Timestamp).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// FindAll retrieves every conversation, unspecified order
func (r *conversationRepository) FindAll(ctx context.Context) ([]model.Conversation, error) {
	sql := fmt.Sprintf(`SELECT %s FROM conversations`, conversationColumns)
	return r.queryConversations(ctx, sql)
}

// FindByCategory retrieves conversations whose category matches exactly
func (r *conversationRepository) FindByCategory(ctx context.Context, category string) ([]model.Conversation, error) {
	sql := fmt.Sprintf(`SELECT %s FROM conversations WHERE category = $1`, conversationColumns)
	return r.queryConversations(ctx, sql, category)
}

// FindAllSortedByTime retrieves conversations ordered by the lexical value of
// their timestamp, newest first
func (r *conversationRepository) FindAllSortedByTime(ctx context.Context) ([]model.Conversation, error) {
	sql := fmt.Sprintf(`SELECT %s FROM conversations ORDER BY "timestamp" DESC`, conversationColumns)
	return r.queryConversations(ctx, sql)
}

// FindPage retrieves one page of conversations plus the total row count.
// Page and size are passed straight to LIMIT/OFFSET; out-of-range values are
// the storage layer's problem.
func (r *conversationRepository) FindPage(ctx context.Context, req model.PageRequest) ([]model.Conversation, int64, error) {
	sql := fmt.Sprintf(`SELECT %s FROM conversations ORDER BY id LIMIT $1 OFFSET $2`, conversationColumns)
	conversations, err := r.queryConversations(ctx, sql, req.Size, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := r.count(ctx, `SELECT COUNT(*) FROM conversations`)
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

// FindByCategoryPage retrieves one page of a category plus its total count
func (r *conversationRepository) FindByCategoryPage(ctx context.Context, category string, req model.PageRequest) ([]model.Conversation, int64, error) {
	sql := fmt.Sprintf(`SELECT %s FROM conversations WHERE category = $1 ORDER BY id LIMIT $2 OFFSET $3`, conversationColumns)
	conversations, err := r.queryConversations(ctx, sql, category, req.Size, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := r.count(ctx, `SELECT COUNT(*) FROM conversations WHERE category = $1`, category)
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

// FindSortedByTimePage retrieves one page of the timestamp-descending scan
func (r *conversationRepository) FindSortedByTimePage(ctx context.Context, req model.PageRequest) ([]model.Conversation, int64, error) {
	sql := fmt.Sprintf(`SELECT %s FROM conversations ORDER BY "timestamp" DESC LIMIT $1 OFFSET $2`, conversationColumns)
	conversations, err := r.queryConversations(ctx, sql, req.Size, req.Offset())
	if err != nil {
		return nil, 0, err
	}
	total, err := r.count(ctx, `SELECT COUNT(*) FROM conversations`)
	if err != nil {
		return nil, 0, err
	}
	return conversations, total, nil
}

// Update overwrites the record at the conversation's id wholesale
func (r *conversationRepository) Update(ctx context.Context, c *model.Conversation) error {
	sql := `UPDATE conversations SET prompt = $1, response = $2, category = $3, "timestamp" = $4
            WHERE id = $5 RETURNING id`
	err := r.db.QueryRow(ctx, sql, c.Prompt, c.Response, c.Category, c.Timestamp, c.ID).Scan(&c.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("conversation not found for update: %w", err)
		}
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	return nil
}

// Delete removes the row. Deleting a nonexistent id is not an error.
func (r *conversationRepository) Delete(ctx context.Context, id int64) error {
	sql := `DELETE FROM conversations WHERE id = $1`
	if _, err := r.db.Exec(ctx, sql, id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}

func (r *conversationRepository) queryConversations(ctx context.Context, sql string, args ...any) ([]model.Conversation, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	// Non-nil so list responses serialize as [] rather than null
	conversations := []model.Conversation{}
	for rows.Next() {
		var c model.Conversation
		if err := rows.Scan(&c.ID, &c.Prompt, &c.Response, &c.Category, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}
		conversations = append(conversations, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}
	return conversations, nil
}

func (r *conversationRepository) count(ctx context.Context, sql string, args ...any) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count conversations: %w", err)
	}
	return total, nil
}
