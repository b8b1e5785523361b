package model

import "time"

// Sender identifies which side of the conversation authored a message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is a single conversation turn. Messages are immutable once
// created and belong to exactly one session.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username,omitempty"`
}

// Session is an archived, named conversation. While a conversation is
// active its messages live on ActiveConversation; archiving snapshots them
// here, and re-saving under the same ID replaces the whole record.
type Session struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Messages      []Message `json:"messages"`
	CreatedAt     time.Time `json:"createdAt"`
	LastMessageAt time.Time `json:"lastMessageAt"`
}

// ActiveConversation is the in-progress conversation shown to the user.
// An empty CurrentSessionID means the conversation has not been saved yet.
type ActiveConversation struct {
	CurrentSessionID string    `json:"currentSessionId"`
	Messages         []Message `json:"messages"`
}

// User is the authenticated identity. The secret never leaves the
// identity table.
type User struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// ContextTurn is the wire form of one prior turn sent to the chat
// endpoint alongside a new message.
type ContextTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MoodEntry is one mood check-in.
type MoodEntry struct {
	ID               string    `json:"id"`
	Value            int       `json:"value"` // 1 (lowest) .. 7 (highest)
	Timestamp        time.Time `json:"timestamp"`
	Activities       []string  `json:"activities"`
	SleepHours       float64   `json:"sleepHours"`
	EnergyLevel      int       `json:"energyLevel"`
	AnxietyLevel     int       `json:"anxietyLevel"`
	Thoughts         string    `json:"thoughts"`
	Triggers         []string  `json:"triggers"`
	CopingStrategies []string  `json:"copingStrategies"`
}

type GoalStep struct {
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Deadline    time.Time `json:"deadline"`
}

// Goal is a user-defined well-being goal.
type Goal struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Category      string     `json:"category"` // mental, emotional, physical, social
	Steps         []GoalStep `json:"steps"`
	Progress      int        `json:"progress"`
	Rewards       []string   `json:"rewards"`
	SupportNeeded []string   `json:"supportNeeded"`
}

type EmergencyContact struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Available string `json:"available"`
}

type Organization struct {
	Name     string `json:"name"`
	Website  string `json:"website"`
	Helpline string `json:"helpline"`
}

type SelfHelpResource struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Link string `json:"link"`
}

// ResourceDirectory is the static payload served by GET /resources.
type ResourceDirectory struct {
	EmergencyContacts []EmergencyContact `json:"emergencyContacts"`
	Organizations     []Organization     `json:"organizations"`
	SelfHelpResources []SelfHelpResource `json:"selfHelpResources"`
}
