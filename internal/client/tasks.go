package client

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Task mirrors the server's task resource.
type Task struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          *string    `json:"description,omitempty"`
	Priority             string     `json:"priority"`
	Category             string     `json:"category"`
	Recurrence           string     `json:"recurrence"`
	DueDate              *time.Time `json:"dueDate,omitempty"`
	RepetitionsRequired  int        `json:"repetitionsRequired"`
	RepetitionsCompleted int        `json:"repetitionsCompleted"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// Completed reports whether the task met its repetition target.
func (task *Task) Completed() bool {
	return task.RepetitionsCompleted >= task.RepetitionsRequired
}

// CreateTaskInput carries the fields for a new task.
type CreateTaskInput struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Priority    string     `json:"priority"`
	Category    string     `json:"category"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// ListTasks returns all of the user's tasks.
func (client *Client) ListTasks(ctx context.Context) ([]*Task, error) {
	var tasks []*Task
	err := client.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   "/api/tasks",
	}, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpcomingTasks returns tasks due from now on, soonest first.
func (client *Client) UpcomingTasks(ctx context.Context, limit int) ([]*Task, error) {
	path := "/api/tasks/upcoming"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	var tasks []*Task
	err := client.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   path,
	}, &tasks)
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a new task.
func (client *Client) CreateTask(ctx context.Context, input CreateTaskInput) (*Task, error) {
	var task Task
	err := client.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/api/tasks",
		body:   input,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CompleteTask records one completed repetition on a task.
func (client *Client) CompleteTask(ctx context.Context, id string) (*Task, error) {
	var task Task
	err := client.do(ctx, requestSpec{
		method: http.MethodPatch,
		path:   "/api/tasks/" + id + "/complete",
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}
