package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	repo     repository.CommentRepository
	contents repository.ContentRepository
	log      zerolog.Logger
}

func newCommentService(repo repository.CommentRepository, contents repository.ContentRepository, log zerolog.Logger) *commentService {
	return &commentService{
		repo:     repo,
		contents: contents,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Create records an unapproved comment on an existing article
func (s *commentService) Create(ctx context.Context, in *models.CommentInput) (*models.Comment, error) {
	if err := validation.ValidateComment(in); err != nil {
		return nil, err
	}
	if !validation.IsValidID(in.ContentID) {
		return nil, ErrNotFound
	}

	content, err := s.contents.GetByID(ctx, in.ContentID)
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	if content == nil || content.Type != models.ContentTypeArticle {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	c := &models.Comment{
		ID:         uuid.New().String(),
		ContentID:  in.ContentID,
		Name:       in.Name,
		Message:    in.Message,
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Email != "" {
		c.Email = &in.Email
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrContentMissing) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info().Str("comment_id", c.ID).Str("content_id", c.ContentID).Msg("Comment submitted")
	return c, nil
}

// ListPublic returns the approved comments of an article
func (s *commentService) ListPublic(ctx context.Context, contentID string) ([]models.PublicComment, error) {
	contentID = strings.TrimSpace(contentID)
	if contentID == "" {
		return nil, validation.New("contentId", "Content ID is required")
	}
	out := make([]models.PublicComment, 0)
	if !validation.IsValidID(contentID) {
		return out, nil
	}

	comments, err := s.repo.ListApproved(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	for _, c := range comments {
		if c.IsApproved {
			out = append(out, c.Public())
		}
	}
	return out, nil
}

func (s *commentService) ListAdmin(ctx context.Context, contentID string) ([]*models.AdminComment, error) {
	contentID = strings.TrimSpace(contentID)
	if contentID != "" && !validation.IsValidID(contentID) {
		return []*models.AdminComment{}, nil
	}
	comments, err := s.repo.ListForAdmin(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Moderate applies an admin action and returns a confirmation message
func (s *commentService) Moderate(ctx context.Context, req *models.CommentActionRequest) (string, error) {
	req.CommentID = strings.TrimSpace(req.CommentID)
	if req.Action == "" || req.CommentID == "" {
		return "", validation.New("action", "Action and comment ID are required")
	}

	var (
		found   bool
		err     error
		message string
	)
	switch req.Action {
	case models.CommentActionApprove:
		found, err = s.setApproved(ctx, req.CommentID, true)
		message = "Comment approved successfully"
	case models.CommentActionUnapprove:
		found, err = s.setApproved(ctx, req.CommentID, false)
		message = "Comment unapproved successfully"
	case models.CommentActionReply:
		reply := strings.TrimSpace(req.AdminReply)
		if reply == "" {
			return "", validation.New("adminReply", "Admin reply is required")
		}
		found, err = s.ifValidID(req.CommentID, func() (bool, error) {
			return s.repo.Reply(ctx, req.CommentID, reply, time.Now().UTC())
		})
		message = "Reply added successfully"
	case models.CommentActionDelete:
		found, err = s.ifValidID(req.CommentID, func() (bool, error) {
			return s.repo.Delete(ctx, req.CommentID)
		})
		message = "Comment deleted successfully"
	default:
		return "", &validation.ValidationError{Field: "action", Message: "Invalid action", Value: req.Action}
	}

	if err != nil {
		return "", fmt.Errorf("moderate comment: %w", err)
	}
	if !found {
		return "", ErrNotFound
	}

	s.log.Info().Str("comment_id", req.CommentID).Str("action", string(req.Action)).Msg("Comment moderated")
	return message, nil
}

func (s *commentService) setApproved(ctx context.Context, id string, approved bool) (bool, error) {
	return s.ifValidID(id, func() (bool, error) {
		return s.repo.SetApproved(ctx, id, approved)
	})
}

func (s *commentService) ifValidID(id string, fn func() (bool, error)) (bool, error) {
	if !validation.IsValidID(id) {
		return false, nil
	}
	return fn()
}
