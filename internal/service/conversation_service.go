package service

import (
	"context"
	"errors"
	"fmt"

	"chatlog/internal/model"
	"chatlog/internal/repository"

	"github.com/jackc/pgx/v5"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ConversationService defines operations for conversations. Every method is a
// pass-through to the repository; the only logic here is pagination
// descriptor construction.
type ConversationService interface {
	Add(ctx context.Context, conversation model.Conversation) (*model.Conversation, error)
	GetAll(ctx context.Context) ([]model.Conversation, error)
	GetByCategory(ctx context.Context, category string) ([]model.Conversation, error)
	GetSortedByTime(ctx context.Context) ([]model.Conversation, error)
	GetPage(ctx context.Context, page, size int) (*model.ConversationPage, error)
	GetPageByCategory(ctx context.Context, category string, page, size int) (*model.ConversationPage, error)
	GetPageSortedByTime(ctx context.Context, page, size int) (*model.ConversationPage, error)
	Update(ctx context.Context, id int64, conversation model.Conversation) (*model.Conversation, error)
	Delete(ctx context.Context, id int64) error
}

type conversationService struct {
	repo repository.ConversationRepository
}

// NewConversationService creates a new ConversationService
func NewConversationService(repo repository.ConversationRepository) ConversationService {
	return &conversationService{repo: repo}
}

func (s *conversationService) Add(ctx context.Context, conversation model.Conversation) (*model.Conversation, error) {
	conversation.ID = 0 // identity is assigned on insert
	if err := s.repo.Create(ctx, &conversation); err != nil {
		return nil, fmt.Errorf("failed to add conversation: %w", err)
	}
	return &conversation, nil
}

func (s *conversationService) GetAll(ctx context.Context) ([]model.Conversation, error) {
	conversations, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}
	return conversations, nil
}

func (s *conversationService) GetByCategory(ctx context.Context, category string) ([]model.Conversation, error) {
	conversations, err := s.repo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations by category: %w", err)
	}
	return conversations, nil
}

func (s *conversationService) GetSortedByTime(ctx context.Context) ([]model.Conversation, error) {
	conversations, err := s.repo.FindAllSortedByTime(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversations sorted by time: %w", err)
	}
	return conversations, nil
}

func (s *conversationService) GetPage(ctx context.Context, page, size int) (*model.ConversationPage, error) {
	req := model.PageRequest{Page: page, Size: size}
	conversations, total, err := s.repo.FindPage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation page: %w", err)
	}
	result := model.NewConversationPage(conversations, total, req)
	return &result, nil
}

func (s *conversationService) GetPageByCategory(ctx context.Context, category string, page, size int) (*model.ConversationPage, error) {
	req := model.PageRequest{Page: page, Size: size}
	conversations, total, err := s.repo.FindByCategoryPage(ctx, category, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation page by category: %w", err)
	}
	result := model.NewConversationPage(conversations, total, req)
	return &result, nil
}

func (s *conversationService) GetPageSortedByTime(ctx context.Context, page, size int) (*model.ConversationPage, error) {
	req := model.PageRequest{Page: page, Size: size}
	conversations, total, err := s.repo.FindSortedByTimePage(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation page sorted by time: %w", err)
	}
	result := model.NewConversationPage(conversations, total, req)
	return &result, nil
}

// Update replaces every field of the record at id with the incoming payload,
// including fields the payload leaves empty.
func (s *conversationService) Update(ctx context.Context, id int64, conversation model.Conversation) (*model.Conversation, error) {
	conversation.ID = id
	if err := s.repo.Update(ctx, &conversation); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}
	return &conversation, nil
}

func (s *conversationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete conversation: %w", err)
	}
	return nil
}
