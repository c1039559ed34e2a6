package services

import (
	"context"
	"sort"
	"sync"

	"ember_server/models"
	"ember_server/utils"
)

// In-memory doubles for the injected capabilities. They mirror the storage
// contracts, including pair uniqueness and idempotent match creation.

type memSwipeStore struct {
	mu     sync.Mutex
	swipes map[string]models.Swipe
}

func newMemSwipeStore() *memSwipeStore {
	return &memSwipeStore{swipes: make(map[string]models.Swipe)}
}

func swipeKey(from, to string) string { return from + "->" + to }

func (s *memSwipeStore) Insert(ctx context.Context, swipe models.Swipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := swipeKey(swipe.FromUserID, swipe.ToUserID)
	if _, exists := s.swipes[key]; exists {
		return ErrDuplicateSwipe
	}
	s.swipes[key] = swipe
	return nil
}

func (s *memSwipeStore) Get(ctx context.Context, fromUserID, toUserID string) (*models.Swipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	swipe, ok := s.swipes[swipeKey(fromUserID, toUserID)]
	if !ok {
		return nil, nil
	}
	return &swipe, nil
}

func (s *memSwipeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.swipes)
}

type memMatchStore struct {
	mu      sync.Mutex
	matches map[string]models.Match
	inserts int
}

func newMemMatchStore() *memMatchStore {
	return &memMatchStore{matches: make(map[string]models.Match)}
}

func (s *memMatchStore) Create(ctx context.Context, match models.Match) (models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.matches[match.PairKey]; ok {
		return existing, nil
	}
	s.matches[match.PairKey] = match
	s.inserts++
	return match, nil
}

func (s *memMatchStore) GetByPair(ctx context.Context, userA, userB string) (*models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	match, ok := s.matches[utils.PairKey(userA, userB)]
	if !ok {
		return nil, nil
	}
	return &match, nil
}

func (s *memMatchStore) Delete(ctx context.Context, userA, userB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.matches, utils.PairKey(userA, userB))
	return nil
}

func (s *memMatchStore) ListForUser(ctx context.Context, userID string) ([]models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []models.Match
	for _, match := range s.matches {
		if match.UserAID == userID || match.UserBID == userID {
			matches = append(matches, match)
		}
	}
	return matches, nil
}

func (s *memMatchStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matches)
}

type fakeUserLookup struct {
	users map[string]string // userId -> display name
}

func newFakeUserLookup(userIDs ...string) *fakeUserLookup {
	users := make(map[string]string, len(userIDs))
	for _, id := range userIDs {
		users[id] = "User " + id
	}
	return &fakeUserLookup{users: users}
}

func (f *fakeUserLookup) Exists(ctx context.Context, userID string) (bool, error) {
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeUserLookup) DisplayInfo(ctx context.Context, userID string) (*models.DisplayInfo, error) {
	name, ok := f.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &models.DisplayInfo{
		UserID:       userID,
		Name:         name,
		MainPhotoURL: "https://photos.example.com/" + userID + ".jpg",
	}, nil
}

type memConversationStore struct {
	mu            sync.Mutex
	conversations map[string]models.Conversation
}

func newMemConversationStore() *memConversationStore {
	return &memConversationStore{conversations: make(map[string]models.Conversation)}
}

func (s *memConversationStore) Create(ctx context.Context, conversation models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[conversation.ConversationID] = conversation
	return nil
}

func (s *memConversationStore) Get(ctx context.Context, conversationID string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, ok := s.conversations[conversationID]
	if !ok {
		return nil, nil
	}
	return &conversation, nil
}

func (s *memConversationStore) GetByMatch(ctx context.Context, matchID string) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, conversation := range s.conversations {
		if conversation.MatchID == matchID {
			return &conversation, nil
		}
	}
	return nil, nil
}

func (s *memConversationStore) Close(ctx context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conversation, ok := s.conversations[conversationID]
	if !ok {
		return ErrNotFound
	}
	conversation.Active = false
	s.conversations[conversationID] = conversation
	return nil
}

type memMessageStore struct {
	mu       sync.Mutex
	messages []models.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{}
}

func (s *memMessageStore) Insert(ctx context.Context, message models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func (s *memMessageStore) ListByConversation(ctx context.Context, conversationID string, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var messages []models.Message
	for _, message := range s.messages {
		if message.ConversationID == conversationID {
			messages = append(messages, message)
		}
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].SentAt < messages[j].SentAt
	})
	if len(messages) > limit {
		messages = messages[:limit]
	}
	return messages, nil
}

func (s *memMessageStore) MarkRead(ctx context.Context, conversationID, readerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, message := range s.messages {
		if message.ConversationID == conversationID && message.SenderID != readerID {
			s.messages[i].IsRead = true
		}
	}
	return nil
}

func (s *memMessageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type broadcastCall struct {
	room  string
	event string
	args  []interface{}
}

type fakeBroadcaster struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (b *fakeBroadcaster) BroadcastToRoom(namespace, room, event string, args ...interface{}) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, broadcastCall{room: room, event: event, args: args})
	return true
}

func (b *fakeBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

type notifyCall struct {
	userID      string
	kind        string
	referenceID string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (n *fakeNotifier) Notify(userID, kind, referenceID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{userID: userID, kind: kind, referenceID: referenceID})
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}
