package models

// Status is the lifecycle state of a tournament. Transitions only move
// forward: new -> ongoing -> completed.
type Status int32

const (
	StatusNew       Status = 0
	StatusOngoing   Status = 1
	StatusCompleted Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	default:
		return "new"
	}
}
