package domain

import "time"

type Todo struct {
	TodoID    string    `json:"id" dynamodbav:"todo_id"`
	Task      string    `json:"task" dynamodbav:"task"`
	Severity  int       `json:"severity" dynamodbav:"severity"`
	IsDone    bool      `json:"is_done" dynamodbav:"is_done"`
	OwnerID   string    `json:"owner_id" dynamodbav:"owner_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateTodoRequest struct {
	Task     string `json:"task" validate:"required"`
	Severity int    `json:"severity"`
	IsDone   bool   `json:"is_done"`
}
