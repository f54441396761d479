package domain

import "time"

// HostControls are the per-meeting switches the host can impose on guests.
type HostControls struct {
	AudioAllowed           bool `json:"audio_allowed"`
	VideoAllowed           bool `json:"video_allowed"`
	ScreenShareAllowed     bool `json:"screen_share_allowed"`
	HostPermissionRequired bool `json:"host_permission_required"`
}

func DefaultHostControls() HostControls {
	return HostControls{
		AudioAllowed:           true,
		VideoAllowed:           true,
		ScreenShareAllowed:     true,
		HostPermissionRequired: true,
	}
}

// Meeting is the durable record behind a meeting code. Live call state never
// touches this; it only proves a code exists and who hosts it.
type Meeting struct {
	Code         string       `json:"code"`
	HostUsername string       `json:"host_username"`
	CreatedAt    time.Time    `json:"created_at"`
	Controls     HostControls `json:"controls"`
}
