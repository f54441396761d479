package service

import (
	"errors"
	"time"

	"github.com/animo-meet/backend/internal/core/domain"
	"github.com/animo-meet/backend/internal/core/port"
)

// MeetingService fronts the durable meeting registry. It owns meeting codes
// and host identity; live room state stays entirely in the relay.
type MeetingService struct {
	meetings port.MeetingRepository
}

func NewMeetingService(meetings port.MeetingRepository) *MeetingService {
	return &MeetingService{meetings: meetings}
}

// Create claims a meeting code for the given host.
func (s *MeetingService) Create(code, hostUsername string) error {
	return s.meetings.Create(domain.Meeting{
		Code:         code,
		HostUsername: hostUsername,
		CreatedAt:    time.Now().UTC(),
		Controls:     domain.DefaultHostControls(),
	})
}

func (s *MeetingService) Exists(code string) (bool, error) {
	_, err := s.meetings.Get(code)
	if errors.Is(err, domain.ErrMeetingNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *MeetingService) IsHost(code, username string) (bool, error) {
	meeting, err := s.meetings.Get(code)
	if err != nil {
		return false, err
	}
	return meeting.HostUsername == username, nil
}

func (s *MeetingService) HostedBy(username string) ([]string, error) {
	return s.meetings.HostedBy(username)
}
