package channel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beachleague/channel/internal/message"
	"github.com/beachleague/channel/internal/responder"
	"github.com/beachleague/channel/internal/store"
)

const testWelcome = "Welcome to BeachLeague Chat! Talk about beach volleyball, tournaments, and tips."

type wordFilter struct{ word string }

func (f wordFilter) IsAllowed(text string) bool {
	return !strings.Contains(strings.ToLower(text), f.word)
}

func newTestService(t *testing.T) (*Service, *store.MemoryBackend) {
	t.Helper()
	backend := store.NewMemoryBackend()
	log := store.NewLog(nil, backend, testWelcome, store.DefaultLimit)
	svc := NewService(nil, Info{Name: "BeachLeague Chat"}, log, wordFilter{word: "darn"}, responder.New())
	return svc, backend
}

func TestServiceHealth(t *testing.T) {
	svc, _ := newTestService(t)
	assert.Equal(t, HealthResponse{Name: "BeachLeague Chat"}, svc.Health())
}

func TestServiceInfo(t *testing.T) {
	info := Info{Name: "BeachLeague Chat", Topic: "Beach volleyball"}
	svc := NewService(nil, info, store.NewLog(nil, store.NewMemoryBackend(), testWelcome, 0), nil, nil)
	assert.Equal(t, info, svc.Info())
}

func TestServicePostAppendsMessageAndReply(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	in := message.Message{Content: "What are the official rules?", Sender: "A", Timestamp: "T"}
	res, err := svc.Post(ctx, in)
	require.NoError(t, err)
	assert.False(t, res.Blocked)

	msgs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, message.Welcome(testWelcome), msgs[0])
	assert.Equal(t, in, msgs[1])
	assert.Equal(t, message.BotSender, msgs[2].Sender)
	assert.Equal(t, "T", msgs[2].Timestamp)
	assert.Nil(t, msgs[2].Extra)
	assert.Equal(t, res.Reply, msgs[2].Content)
	assert.Contains(t, msgs[2].Content, "official-rules-of-the-games")
}

func TestServicePostRuleOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Post(ctx, message.Message{Content: "Which court in Osnabrück hosts the tournament?", Sender: "A", Timestamp: "T"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Reply, "There are several beachvolleyball courts across Osnabrück"))
}

func TestServicePostBlockedStoresNothing(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	before, err := svc.List(ctx)
	require.NoError(t, err)

	res, err := svc.Post(ctx, message.Message{Content: "darn it", Sender: "A", Timestamp: "T"})
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Empty(t, res.Reply)
	assert.Equal(t, 0, backend.Saves())

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestServicePostKeepsMostRecent(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 51; i++ {
		_, err := svc.Post(ctx, message.Message{Content: fmt.Sprintf("hello %d", i), Sender: "A", Timestamp: fmt.Sprintf("T%02d", i)})
		require.NoError(t, err)
	}

	saved, err := backend.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, store.DefaultLimit)

	// every post adds the message and a reply, so the tail holds the last 25 posts
	for i, m := range saved {
		post := 26 + i/2
		assert.Equal(t, fmt.Sprintf("T%02d", post), m.Timestamp)
		if i%2 == 0 {
			assert.Equal(t, fmt.Sprintf("hello %d", post), m.Content)
		} else {
			assert.Equal(t, message.BotSender, m.Sender)
		}
	}

	msgs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, msgs, store.DefaultLimit+1)
	assert.Equal(t, message.Welcome(testWelcome), msgs[0])
	assert.Equal(t, saved, msgs[1:])
}

func TestServicePostNoResponder(t *testing.T) {
	backend := store.NewMemoryBackend()
	svc := NewService(nil, Info{}, store.NewLog(nil, backend, testWelcome, 0), nil, nil)

	res, err := svc.Post(context.Background(), message.Message{Content: "hi", Sender: "A", Timestamp: "T"})
	require.NoError(t, err)
	assert.Empty(t, res.Reply)

	saved, err := backend.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

func TestServicePostStorageError(t *testing.T) {
	svc, backend := newTestService(t)
	backend.FailSaves(errors.New("disk full"))

	_, err := svc.Post(context.Background(), message.Message{Content: "hi", Sender: "A", Timestamp: "T"})
	var serr *store.Error
	require.ErrorAs(t, err, &serr)
}

func TestServicePostConcurrentNoLostUpdates(t *testing.T) {
	svc, backend := newTestService(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Post(ctx, message.Message{Content: fmt.Sprintf("hi %d", i), Sender: "A", Timestamp: "T"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	saved, err := backend.Load(ctx)
	require.NoError(t, err)
	// welcome + 10 messages + 10 replies
	assert.Len(t, saved, 21)
}
