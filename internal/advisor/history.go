package advisor

import "sync"

type Message struct {
	Role    string
	Content string
}

// HistoryStore keeps per-session conversation history in memory,
// trimmed to the most recent maxMessages entries. Sessions are not
// persisted across restarts.
type HistoryStore struct {
	mu          sync.Mutex
	maxMessages int
	sessions    map[string][]Message
}

func NewHistoryStore(maxMessages int) *HistoryStore {
	if maxMessages <= 0 {
		maxMessages = 20
	}
	return &HistoryStore{
		maxMessages: maxMessages,
		sessions:    make(map[string][]Message),
	}
}

func (h *HistoryStore) Append(sessionID, role, content string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := append(h.sessions[sessionID], Message{Role: role, Content: content})
	if len(msgs) > h.maxMessages {
		msgs = msgs[len(msgs)-h.maxMessages:]
	}
	h.sessions[sessionID] = msgs
}

func (h *HistoryStore) Recent(sessionID string) []Message {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := h.sessions[sessionID]
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
