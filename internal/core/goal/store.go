package goal

import "context"

type Repository interface {
	Create(context context.Context, goal *Goal) error
	FindByID(context context.Context, id, userID string) (*Goal, error)
	ListByUser(context context.Context, userID string) ([]*Goal, error)
	ListByCategory(context context.Context, userID, category string) ([]*Goal, error)
	ListByStatus(context context.Context, userID, status string) ([]*Goal, error)
	ListInProgress(context context.Context, userID string, limit int) ([]*Goal, error)
	Update(context context.Context, goal *Goal) error
	Delete(context context.Context, id, userID string) error

	// Subtasks
	CreateSubTask(context context.Context, subTask *SubTask) error
	// FindSubTask resolves a subtask together with its parent goal's owner,
	// so the service can enforce ownership.
	FindSubTask(context context.Context, subTaskID string) (*SubTask, string, error)
	UpdateSubTask(context context.Context, subTask *SubTask) error
	DeleteSubTask(context context.Context, subTaskID string) error
}
