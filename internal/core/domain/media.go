package domain

// MediaState mirrors what a member's tracks look like: whether a device
// exists at all (available) and whether it is currently turned on (enabled).
type MediaState struct {
	AudioEnabled   bool `json:"audio_enabled"`
	AudioAvailable bool `json:"audio_available"`
	VideoEnabled   bool `json:"video_enabled"`
	VideoAvailable bool `json:"video_available"`
}
