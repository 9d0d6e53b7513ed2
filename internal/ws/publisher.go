package ws

// Record change event types
const (
	EventCreate = "create"
	EventUpdate = "update"
)

// PublishRecordEvent broadcasts a record change to all connected clients.
// The feed is advisory: a failed or missing broadcast never affects the
// primary write, and clients needing a complete trail read the history
// endpoint instead.
func PublishRecordEvent(topic, eventType string, id int, record interface{}) {
	BroadcastToAll(topic+":update", map[string]interface{}{
		"type": eventType,
		"id":   id,
		"data": record,
	})
}
