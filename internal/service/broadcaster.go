package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToUser(userID string, msgType string, payload interface{})
}

// MsgProgressUpdated is sent to a user's clients after results are recorded
const MsgProgressUpdated = "progress_updated"
