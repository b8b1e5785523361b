// Package conversation manages the active conversation and the archive of
// saved sessions: creating, saving, resuming, and deleting chats, with
// every transition committed to the durable store.
package conversation

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"sereno-backend/internal/model"
	"sereno-backend/internal/storage"
	"sereno-backend/pkg/logger"
)

var ErrSessionNotFound = errors.New("session not found")

// Truncated titles come out at 53 characters at most, ellipsis included.
const maxTitleLen = 50

const defaultTab = "chat"

// Manager owns the active conversation and the session archive. It is the
// single writer for both; callers share one instance and never touch the
// underlying store directly. The invariants it keeps:
//
//   - the active message list is append-only between save points
//   - saving under an existing session id supersedes, never duplicates
//   - a switch away always saves pending edits first
type Manager struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time

	active    model.ActiveConversation
	sessions  []model.Session // most recently saved first
	activeTab string
	user      model.User
	hasUser   bool
	moods     []model.MoodEntry
	goals     []model.Goal

	// epoch increments whenever the active conversation is replaced, so
	// in-flight sends can detect that their reply arrived too late.
	epoch uint64
}

// NewManager rehydrates all state from the store. Missing keys mean a
// fresh install; anything else is logged and treated as absent.
func NewManager(store storage.Store) *Manager {
	m := &Manager{
		store:     store,
		now:       time.Now,
		activeTab: defaultTab,
	}
	m.rehydrate()
	return m
}

func (m *Manager) rehydrate() {
	load := func(key string, out any) bool {
		err := m.store.Get(key, out)
		if err == nil {
			return true
		}
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logger.Errorf("Failed to load %s: %v", key, err)
		}
		return false
	}

	load(storage.KeyCurrentChat, &m.active.Messages)
	load(storage.KeyCurrentSessionID, &m.active.CurrentSessionID)
	load(storage.KeyChatSessions, &m.sessions)
	load(storage.KeyMoodEntries, &m.moods)
	load(storage.KeyGoals, &m.goals)

	if load(storage.KeyUser, &m.user) {
		m.hasUser = true
	}

	var tab string
	if load(storage.KeyActiveTab, &tab) && tab != "" {
		m.activeTab = tab
	}

	if m.active.Messages == nil {
		m.active.Messages = []model.Message{}
	}
}

// NewChat archives the current conversation if it has any messages, then
// starts an empty unsaved one.
func (m *Manager) NewChat() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveLocked()
	m.clearActiveLocked()
	m.commitLocked()
}

// SaveCurrent archives the active conversation under its session id,
// minting one on first save. Saving an empty conversation is a no-op.
func (m *Manager) SaveCurrent() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveLocked()
	m.commitLocked()
}

// Select saves the active conversation, then resumes the archived session
// with the given id and switches the UI back to the chat tab.
func (m *Manager) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveLocked()

	target, ok := m.findLocked(id)
	if !ok {
		m.commitLocked()
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	m.active = model.ActiveConversation{
		CurrentSessionID: target.ID,
		Messages:         cloneMessages(target.Messages),
	}
	m.activeTab = defaultTab
	m.epoch++
	m.commitLocked()
	return nil
}

// Delete removes a session from the archive. Deleting the session that is
// currently resumed also clears the active conversation.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.sessions[:0]
	for _, s := range m.sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.sessions = kept

	if m.active.CurrentSessionID == id {
		m.clearActiveLocked()
	}
	m.commitLocked()
}

// Append adds one turn to the active conversation. Messages are never
// mutated or removed individually after this.
func (m *Manager) Append(msg model.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.active.Messages = append(m.active.Messages, msg)
	m.commitLocked()
}

// Active returns a snapshot of the active conversation.
func (m *Manager) Active() model.ActiveConversation {
	m.mu.Lock()
	defer m.mu.Unlock()

	return model.ActiveConversation{
		CurrentSessionID: m.active.CurrentSessionID,
		Messages:         cloneMessages(m.active.Messages),
	}
}

// Sessions returns the archive ordered by last message time, newest first.
func (m *Manager) Sessions() []model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Session, len(m.sessions))
	copy(out, m.sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out
}

// Epoch identifies the current active conversation; it changes whenever
// the active conversation is replaced or cleared.
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

// SetActiveTab records the visible tab, saving pending chat edits when
// navigating away from the chat view.
func (m *Manager) SetActiveTab(tab string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.activeTab == defaultTab && tab != defaultTab {
		m.saveLocked()
	}
	m.activeTab = tab
	m.commitLocked()
}

func (m *Manager) ActiveTab() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeTab
}

// Login records the authenticated user.
func (m *Manager) Login(user model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.user = user
	m.hasUser = true
	m.persist(storage.KeyUser, user)
}

// Logout saves any pending conversation, clears the active conversation
// and the stored identity, and resets the UI to the chat tab. The archive
// is untouched.
func (m *Manager) Logout() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveLocked()
	m.clearActiveLocked()
	m.activeTab = defaultTab
	m.user = model.User{}
	m.hasUser = false
	m.commitLocked()

	if err := m.store.Delete(storage.KeyUser); err != nil {
		logger.Errorf("Failed to clear stored user: %v", err)
	}
}

// CurrentUser returns the logged-in user, if any.
func (m *Manager) CurrentUser() (model.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user, m.hasUser
}

func (m *Manager) AddMoodEntry(entry model.MoodEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.moods = append(m.moods, entry)
	m.persist(storage.KeyMoodEntries, m.moods)
}

func (m *Manager) MoodEntries() []model.MoodEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.MoodEntry, len(m.moods))
	copy(out, m.moods)
	return out
}

func (m *Manager) AddGoal(goal model.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.goals = append(m.goals, goal)
	m.persist(storage.KeyGoals, m.goals)
}

func (m *Manager) UpdateGoal(goal model.Goal) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.goals {
		if m.goals[i].ID == goal.ID {
			m.goals[i] = goal
			break
		}
	}
	m.persist(storage.KeyGoals, m.goals)
}

func (m *Manager) DeleteGoal(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.goals[:0]
	for _, g := range m.goals {
		if g.ID != id {
			kept = append(kept, g)
		}
	}
	m.goals = kept
	m.persist(storage.KeyGoals, m.goals)
}

func (m *Manager) Goals() []model.Goal {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Goal, len(m.goals))
	copy(out, m.goals)
	return out
}

// saveLocked snapshots the active conversation into the archive. The
// session keeps its id across saves, so a re-save supersedes the prior
// entry instead of appending a duplicate.
func (m *Manager) saveLocked() {
	if len(m.active.Messages) == 0 {
		return
	}

	id := m.active.CurrentSessionID
	if id == "" {
		id = fmt.Sprintf("%d", m.now().UnixNano())
	}

	createdAt := m.now()
	if prior, ok := m.findLocked(id); ok {
		createdAt = prior.CreatedAt
	}

	session := model.Session{
		ID:            id,
		Title:         deriveTitle(m.active.Messages),
		Messages:      cloneMessages(m.active.Messages),
		CreatedAt:     createdAt,
		LastMessageAt: m.now(),
	}

	kept := make([]model.Session, 0, len(m.sessions)+1)
	kept = append(kept, session)
	for _, s := range m.sessions {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.sessions = kept
	m.active.CurrentSessionID = id
}

func (m *Manager) clearActiveLocked() {
	m.active = model.ActiveConversation{Messages: []model.Message{}}
	m.epoch++
}

func (m *Manager) findLocked(id string) (model.Session, bool) {
	for _, s := range m.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return model.Session{}, false
}

// commitLocked flushes all conversation state to the store. Persistence
// is best-effort: failures are logged, never surfaced, and never roll
// back the in-memory transition.
func (m *Manager) commitLocked() {
	m.persist(storage.KeyCurrentChat, m.active.Messages)
	m.persist(storage.KeyChatSessions, m.sessions)
	m.persist(storage.KeyActiveTab, m.activeTab)

	if m.active.CurrentSessionID == "" {
		if err := m.store.Delete(storage.KeyCurrentSessionID); err != nil {
			logger.Errorf("Failed to clear %s: %v", storage.KeyCurrentSessionID, err)
		}
	} else {
		m.persist(storage.KeyCurrentSessionID, m.active.CurrentSessionID)
	}
}

func (m *Manager) persist(key string, value any) {
	if err := m.store.Set(key, value); err != nil {
		logger.Errorf("Failed to persist %s: %v", key, err)
	}
}

// deriveTitle names a session after its first user message, truncated to
// maxTitleLen characters plus an ellipsis.
func deriveTitle(messages []model.Message) string {
	for _, msg := range messages {
		if msg.Sender == model.SenderUser {
			runes := []rune(msg.Content)
			if len(runes) > maxTitleLen {
				return string(runes[:maxTitleLen]) + "..."
			}
			return msg.Content
		}
	}
	return "New Chat"
}

func cloneMessages(messages []model.Message) []model.Message {
	out := make([]model.Message, len(messages))
	copy(out, messages)
	return out
}
