package timeline

// Key is the Redis sorted set holding a user's following timeline.
func Key(userID string) string {
	return "timeline:" + userID
}
