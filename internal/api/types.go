package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskState is the lifecycle marker of a task. Transitions are not
// enforced server-side; clients may set any valid value at any time.
type TaskState int32

const (
	StateNew TaskState = iota + 1
	StateStarted
	StateEnded
)

var tsToString = map[TaskState]string{
	StateNew:     "new",
	StateStarted: "started",
	StateEnded:   "ended",
}

func (ts TaskState) String() string {
	return tsToString[ts]
}

func (ts TaskState) Valid() bool {
	_, ok := tsToString[ts]
	return ok
}

func TaskStateFromInt(i int32) (TaskState, error) {
	ts := TaskState(i)
	if !ts.Valid() {
		return 0, fmt.Errorf("invalid task state: %d", i)
	}
	return ts, nil
}

// Date marshals as a plain YYYY-MM-DD value.
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Category struct {
	ID          uuid.UUID `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type Task struct {
	ID             uuid.UUID `json:"id"`
	CreationDate   time.Time `json:"creation_date"`
	UpdatedAt      time.Time `json:"updated_at"`
	Text           string    `json:"text"`
	EndPlannedDate Date      `json:"end_planned_date"`
	State          TaskState `json:"state"`
	CategoryID     uuid.UUID `json:"category_id"`
	UserID         uuid.UUID `json:"user_id"`
}
