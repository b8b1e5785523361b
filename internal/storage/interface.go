package storage

// Fixed keys of the durable local store. Every value is a JSON document;
// timestamp-bearing fields round-trip as RFC 3339 strings and are decoded
// back into time.Time by the typed records they load into.
const (
	KeyUser             = "user"
	KeyActiveTab        = "activeTab"
	KeyCurrentChat      = "currentChat"
	KeyChatSessions     = "chatSessions"
	KeyCurrentSessionID = "currentSessionId"
	KeyMoodEntries      = "moodEntries"
	KeyGoals            = "goals"
)

type Store interface {
	// Get decodes the value stored under key into out. Returns
	// ErrKeyNotFound when the key has never been set.
	Get(key string, out any) error
	Set(key string, value any) error
	// Delete is a no-op for absent keys.
	Delete(key string) error

	Init() error
	Close() error
}
