package port

import "github.com/animo-meet/backend/internal/core/domain"

type UserRepository interface {
	Create(user domain.User) error
	GetByUsername(username string) (domain.User, error)
}

type MeetingRepository interface {
	Create(meeting domain.Meeting) error
	Get(code string) (domain.Meeting, error)
	HostedBy(username string) ([]string, error)
}
