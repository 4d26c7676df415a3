package domain

import "time"

type Blog struct {
	BlogID      string     `json:"id" dynamodbav:"blog_id"`
	Title       string     `json:"title" dynamodbav:"title"`
	Content     string     `json:"content" dynamodbav:"content"`
	Author      string     `json:"author" dynamodbav:"author"`
	Category    string     `json:"category" dynamodbav:"category"`
	Tags        []string   `json:"tags" dynamodbav:"tags"`
	Published   bool       `json:"published" dynamodbav:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty" dynamodbav:"published_at"`
	CreatedAt   time.Time  `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" dynamodbav:"updated_at"`
}

type CreateBlogRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Content   string   `json:"content" validate:"required"`
	Author    string   `json:"author" validate:"required"`
	Category  string   `json:"category" validate:"required"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

type UpdateBlogRequest struct {
	Title     *string  `json:"title" validate:"omitempty,max=200"`
	Content   *string  `json:"content"`
	Author    *string  `json:"author"`
	Category  *string  `json:"category"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}
