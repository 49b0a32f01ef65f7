package types

import "strings"

// Conventional play statuses. The store accepts any text unless strict status
// checking is enabled in Config.
const (
	StatusPlaying    = "Playing"
	StatusCompleted  = "Completed"
	StatusWantToPlay = "Want to Play"
)

// validStatuses is the closed set used by strict status checking.
var validStatuses = map[string]bool{
	StatusPlaying:    true,
	StatusCompleted:  true,
	StatusWantToPlay: true,
}

// Statuses returns the conventional statuses in display order.
func Statuses() []string {
	return []string{StatusPlaying, StatusCompleted, StatusWantToPlay}
}

// IsValidStatus reports whether status is one of the conventional statuses.
func IsValidStatus(status string) bool {
	return validStatuses[status]
}

// GameRecord is one cataloged game. Values returned by a Catalog are detached
// copies; changing them does not affect the store.
type GameRecord struct {
	ID       int64  `json:"id"`       // Assigned by the store on insert, never reused.
	Title    string `json:"title"`    // Required by convention; the store does not enforce it.
	Platform string `json:"platform"` // Free text (PC, PS5, SNES...).
	Genre    string `json:"genre"`    // Free text (RPG, FPS...).
	Status   string `json:"status"`   // Free text, conventionally one of Statuses().
}

// ValidateTitle returns an *InputError when title is blank.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &InputError{Field: "title", Value: title, Err: ErrEmptyTitle}
	}
	return nil
}

// ValidateStatus returns an *InputError when status is outside the closed set.
func ValidateStatus(status string) error {
	if !IsValidStatus(status) {
		return &InputError{Field: "status", Value: status, Err: ErrInvalidStatus}
	}
	return nil
}
