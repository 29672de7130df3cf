package models

import (
	"time"
)

// Comment represents a visitor remark on an article
type Comment struct {
	ID         string     `json:"id" db:"id"`
	ContentID  string     `json:"contentId" db:"content_id"`
	Name       string     `json:"name" db:"name"`
	Email      *string    `json:"email" db:"email"`
	Message    string     `json:"message" db:"message"`
	IsApproved bool       `json:"isApproved" db:"is_approved"`
	AdminReply *string    `json:"adminReply" db:"admin_reply"`
	RepliedAt  *time.Time `json:"repliedAt" db:"replied_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// PublicComment is the projection shown to site visitors
type PublicComment struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Message    string     `json:"message"`
	AdminReply *string    `json:"adminReply"`
	RepliedAt  *time.Time `json:"repliedAt"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Public strips moderation-only fields
func (c *Comment) Public() PublicComment {
	return PublicComment{
		ID:         c.ID,
		Name:       c.Name,
		Message:    c.Message,
		AdminReply: c.AdminReply,
		RepliedAt:  c.RepliedAt,
		CreatedAt:  c.CreatedAt,
	}
}

// ContentRef identifies the article a comment belongs to
type ContentRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AdminComment is a comment together with its article for moderation views
type AdminComment struct {
	Comment
	Content ContentRef `json:"content"`
}

// CommentInput is the public submission body
type CommentInput struct {
	ContentID string `json:"contentId" form:"contentId" validate:"required"`
	Name      string `json:"name" form:"name" validate:"required,min=2"`
	Email     string `json:"email" form:"email" validate:"omitempty,email"`
	Message   string `json:"message" form:"message" validate:"required,min=5"`
}

// CommentAction is the moderation verb sent to the admin endpoint
type CommentAction string

const (
	CommentActionApprove   CommentAction = "approve"
	CommentActionUnapprove CommentAction = "unapprove"
	CommentActionReply     CommentAction = "reply"
	CommentActionDelete    CommentAction = "delete"
)

// CommentActionRequest is the admin moderation body
type CommentActionRequest struct {
	Action     CommentAction `json:"action" form:"action"`
	CommentID  string        `json:"commentId" form:"commentId"`
	AdminReply string        `json:"adminReply" form:"adminReply"`
}
