package engine

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yooho-ai/trainee-engine/internal/services"
	"github.com/yooho-ai/trainee-engine/internal/storage"
	"github.com/yooho-ai/trainee-engine/pkg/catalog"
	"github.com/yooho-ai/trainee-engine/pkg/chat"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
}

func newTestEngine() (*Engine, *services.MockChatService, *storage.Mock) {
	mockChat := services.NewMockChatService()
	mockStore := storage.NewMock()
	return New(mockChat, mockStore, testLogger()), mockChat, mockStore
}

func TestStart(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	s := e.Snapshot()
	assert.True(t, s.Started)
	assert.Equal(t, "小满", s.PlayerName)
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, catalog.MaxActionPoints, s.ActionPoints)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, chat.ChatRoleSystem, s.Messages[0].Role)
	assert.NotEmpty(t, s.Messages[0].Content)
}

func TestSnapshotIsACopy(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	snap := e.Snapshot()
	snap.Resources.Mental = 1
	snap.Inventory["lucky-charm"] = 99

	s := e.Snapshot()
	assert.Equal(t, 70, s.Resources.Mental)
	assert.Equal(t, 1, s.Inventory["lucky-charm"])
}

func TestSubmitInputFullTurn(t *testing.T) {
	e, mockChat, _ := newTestEngine()
	mockChat.StreamReply = "【顾言澈】练到这么晚？\n【顾言澈 好感+10】【心理-5】"
	e.Start("小满")

	err := e.SubmitInput(context.Background(), "和言澈打招呼")
	require.NoError(t, err)

	s := e.Snapshot()
	assert.Equal(t, 20, s.CharacterStats["guyanche"]["affection"])
	assert.Equal(t, 65, s.Resources.Mental)
	assert.Equal(t, 2, s.ActionPoints)
	assert.Equal(t, 1, s.PeriodIndex)
	assert.False(t, s.AwaitingReply)
	assert.Empty(t, s.StreamingContent)

	// welcome, player, narrator, time notice
	require.Len(t, s.Messages, 4)
	assert.Equal(t, chat.ChatRolePlayer, s.Messages[1].Role)
	assert.Equal(t, "和言澈打招呼", s.Messages[1].Content)
	assert.Equal(t, chat.ChatRoleNarrator, s.Messages[2].Role)
	assert.Equal(t, mockChat.StreamReply, s.Messages[2].Content)
	assert.Equal(t, chat.ChatRoleSystem, s.Messages[3].Role)
	assert.Contains(t, s.Messages[3].Content, "中午")

	require.Len(t, mockChat.ChatStreamCalls, 1)
	assert.Equal(t, chat.ChatRoleSystem, mockChat.ChatStreamCalls[0][0].Role)
}

func TestSubmitInputTagsFocusedCharacter(t *testing.T) {
	e, mockChat, _ := newTestEngine()
	mockChat.StreamReply = "【顾言澈】嗯。"
	e.Start("小满")
	e.FocusCharacter("guyanche")

	require.NoError(t, e.SubmitInput(context.Background(), "你好"))

	s := e.Snapshot()
	assert.Equal(t, "guyanche", s.Messages[2].Character)
}

func TestSubmitInputGuards(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		e, _, _ := newTestEngine()
		assert.ErrorIs(t, e.SubmitInput(context.Background(), "hi"), ErrNotStarted)
	})

	t.Run("ended", func(t *testing.T) {
		e, _, _ := newTestEngine()
		e.Start("小满")
		e.mu.Lock()
		e.session.EndingID = "ne-close"
		e.mu.Unlock()
		assert.ErrorIs(t, e.SubmitInput(context.Background(), "hi"), ErrEnded)
	})

	t.Run("busy", func(t *testing.T) {
		e, _, _ := newTestEngine()
		e.Start("小满")
		e.mu.Lock()
		e.session.AwaitingReply = true
		e.mu.Unlock()
		assert.ErrorIs(t, e.SubmitInput(context.Background(), "hi"), ErrBusy)
	})
}

func TestSubmitInputEmptyReplyUsesFallback(t *testing.T) {
	e, mockChat, _ := newTestEngine()
	mockChat.StreamReply = ""
	e.Start("小满")

	require.NoError(t, e.SubmitInput(context.Background(), "……"))

	s := e.Snapshot()
	require.Len(t, s.Messages, 4)
	assert.Equal(t, chat.ChatRoleNarrator, s.Messages[2].Role)
	assert.NotEmpty(t, s.Messages[2].Content)
	// The fallback still advances time like any other reply.
	assert.Equal(t, 2, s.ActionPoints)
}

func TestSubmitInputTransportFailureRollsBack(t *testing.T) {
	e, mockChat, _ := newTestEngine()
	mockChat.ChatStreamFunc = func(ctx context.Context, messages []chat.ChatMessage) (<-chan chat.StreamChunk, error) {
		chunks := make(chan chat.StreamChunk, 2)
		chunks <- chat.StreamChunk{Content: "排练厅"}
		chunks <- chat.StreamChunk{Err: assert.AnError}
		close(chunks)
		return chunks, nil
	}
	e.Start("小满")

	err := e.SubmitInput(context.Background(), "开始练习")
	assert.NoError(t, err, "a handled transport failure does not surface")

	s := e.Snapshot()
	// No narrator message, no delta, no time cost; the player message and
	// one system notice remain.
	require.Len(t, s.Messages, 3)
	assert.Equal(t, chat.ChatRolePlayer, s.Messages[1].Role)
	assert.Equal(t, chat.ChatRoleSystem, s.Messages[2].Role)
	assert.Equal(t, transportFailureNotice, s.Messages[2].Content)
	assert.Equal(t, catalog.MaxActionPoints, s.ActionPoints)
	assert.Equal(t, 0, s.PeriodIndex)
	assert.False(t, s.AwaitingReply)
}

func TestSubmitInputCancellationIsSilent(t *testing.T) {
	e, mockChat, _ := newTestEngine()
	mockChat.ChatStreamFunc = func(ctx context.Context, messages []chat.ChatMessage) (<-chan chat.StreamChunk, error) {
		chunks := make(chan chat.StreamChunk, 1)
		chunks <- chat.StreamChunk{Err: context.Canceled}
		close(chunks)
		return chunks, nil
	}
	e.Start("小满")

	err := e.SubmitInput(context.Background(), "开始练习")
	assert.ErrorIs(t, err, context.Canceled)

	s := e.Snapshot()
	// The player message stays, but no failure notice is appended.
	require.Len(t, s.Messages, 2)
	assert.False(t, s.AwaitingReply)
}

func TestSubmitInputComputesSummaryOnce(t *testing.T) {
	e, mockChat, _ := newTestEngine()
	mockChat.StreamReply = "继续。"
	mockChat.ChatFunc = func(ctx context.Context, messages []chat.ChatMessage) (string, error) {
		return "前情提要", nil
	}
	e.Start("小满")

	e.mu.Lock()
	for i := 0; i < summaryThreshold; i++ {
		e.session.Messages = append(e.session.Messages, state.NewMessage(chat.ChatRolePlayer, "..."))
	}
	e.mu.Unlock()

	require.NoError(t, e.SubmitInput(context.Background(), "然后呢"))
	assert.Equal(t, "前情提要", e.Snapshot().HistorySummary)
	require.Len(t, mockChat.ChatCalls, 1)

	// A summary already present is not recomputed.
	require.NoError(t, e.SubmitInput(context.Background(), "再然后呢"))
	assert.Len(t, mockChat.ChatCalls, 1)
}

func TestAdvanceTimeDayRollover(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.AdvanceTime()
	e.AdvanceTime()

	s := e.Snapshot()
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, 2, s.PeriodIndex)
	assert.Equal(t, 1, s.ActionPoints)

	e.AdvanceTime()

	s = e.Snapshot()
	assert.Equal(t, 2, s.Day)
	assert.Equal(t, 0, s.PeriodIndex)
	assert.Equal(t, catalog.MaxActionPoints, s.ActionPoints)
	assert.Equal(t, 67, s.Resources.Mental, "daily mental decay")

	last := s.Messages[len(s.Messages)-1]
	assert.Equal(t, state.MessageDayChange, last.Type)
	require.NotNil(t, last.DayInfo)
	assert.Equal(t, 2, last.DayInfo.Day)
}

func TestDayRolloverChapterAndSceneUnlock(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.mu.Lock()
	e.session.Day = 3
	e.session.PeriodIndex = 2
	e.session.ActionPoints = 1
	e.mu.Unlock()

	e.AdvanceTime()

	s := e.Snapshot()
	assert.Equal(t, 4, s.Day)
	assert.Equal(t, 2, s.CurrentChapter)
	assert.True(t, s.SceneUnlocked("stage"))

	var sawChapter, sawUnlock bool
	for _, m := range s.Messages {
		if m.Role != chat.ChatRoleSystem {
			continue
		}
		if strings.Contains(m.Content, "📖") {
			sawChapter = true
		}
		if strings.Contains(m.Content, "🔓") {
			sawUnlock = true
		}
	}
	assert.True(t, sawChapter, "chapter transition message")
	assert.True(t, sawUnlock, "scene unlock message")
}

func TestForcedEventFires(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.mu.Lock()
	e.session.Day = 3
	e.session.PeriodIndex = 1
	e.mu.Unlock()

	e.AdvanceTime()

	s := e.Snapshot()
	assert.Contains(t, s.TriggeredEvents, "internal-rank")

	// Advancing again does not re-fire.
	e.mu.Lock()
	e.session.Day = 3
	e.session.PeriodIndex = 1
	e.mu.Unlock()
	e.AdvanceTime()

	count := 0
	for _, id := range e.Snapshot().TriggeredEvents {
		if id == "internal-rank" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEarlyCrisisEnding(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.mu.Lock()
	// Mental decays to 19 on rollover, under the crisis threshold.
	e.session.Resources = state.GlobalResources{Vocal: 20, Dance: 20, Charm: 20, Fans: 5, Mental: 22}
	e.session.PeriodIndex = 2
	e.mu.Unlock()

	e.AdvanceTime()

	s := e.Snapshot()
	assert.Equal(t, "be-quit", s.EndingID)

	// Terminal: further advances change nothing.
	before := s.Day
	e.AdvanceTime()
	assert.Equal(t, before, e.Snapshot().Day)
}

func TestEndingRules(t *testing.T) {
	tests := []struct {
		name      string
		resources state.GlobalResources
		adjust    func(*state.Session)
		expected  string
	}{
		{
			name:      "mental collapse",
			resources: state.GlobalResources{Vocal: 80, Dance: 80, Charm: 80, Fans: 90, Mental: 15},
			expected:  "be-quit",
		},
		{
			name:      "skills too weak",
			resources: state.GlobalResources{Vocal: 30, Dance: 30, Charm: 30, Fans: 90, Mental: 80},
			expected:  "be-eliminated",
		},
		{
			name:      "ace with devoted lead",
			resources: state.GlobalResources{Vocal: 80, Dance: 80, Charm: 80, Fans: 85, Mental: 70},
			adjust: func(s *state.Session) {
				s.CharacterStats["guyanche"]["affection"] = 85
			},
			expected: "te-ace",
		},
		{
			name:      "pure friendship",
			resources: state.GlobalResources{Vocal: 65, Dance: 65, Charm: 65, Fans: 30, Mental: 70},
			adjust: func(s *state.Session) {
				for id, c := range catalog.Characters {
					if !c.IsLead {
						s.CharacterStats[id]["friendship"] = 80
					}
				}
			},
			expected: "te-pure",
		},
		{
			name:      "solo artist",
			resources: state.GlobalResources{Vocal: 90, Dance: 40, Charm: 50, Fans: 30, Mental: 70},
			expected:  "he-solo",
		},
		{
			name:      "group debut",
			resources: state.GlobalResources{Vocal: 60, Dance: 60, Charm: 60, Fans: 70, Mental: 60},
			expected:  "he-debut",
		},
		{
			name:      "black-red internet fame",
			resources: state.GlobalResources{Vocal: 50, Dance: 50, Charm: 50, Fans: 80, Mental: 35},
			expected:  "ne-blackred",
		},
		{
			name:      "near miss default",
			resources: state.GlobalResources{Vocal: 50, Dance: 50, Charm: 50, Fans: 30, Mental: 60},
			expected:  "ne-close",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEngine()
			e.Start("小满")

			e.mu.Lock()
			e.session.Resources = tt.resources
			if tt.adjust != nil {
				tt.adjust(e.session)
			}
			e.resolveEndingLocked()
			got := e.session.EndingID
			e.mu.Unlock()

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFinalPeriodResolvesEnding(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.mu.Lock()
	e.session.Day = catalog.MaxDays
	e.session.PeriodIndex = 1
	e.session.Resources = state.GlobalResources{Vocal: 50, Dance: 50, Charm: 50, Fans: 30, Mental: 60}
	e.mu.Unlock()

	e.AdvanceTime()

	assert.Equal(t, "ne-close", e.Snapshot().EndingID)
}

func TestFocusCharacter(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.FocusCharacter("guyanche")
	assert.Equal(t, "guyanche", e.Snapshot().CurrentCharacter)

	// 沈哲远 has not joined on day 1.
	e.FocusCharacter("shenzheyuan")
	assert.Equal(t, "guyanche", e.Snapshot().CurrentCharacter)

	e.FocusCharacter("unknown")
	assert.Equal(t, "guyanche", e.Snapshot().CurrentCharacter)

	e.FocusCharacter("")
	assert.Empty(t, e.Snapshot().CurrentCharacter)
}

func TestFocusScene(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	// Locked scene is a no-op.
	e.FocusScene("stage")
	assert.Equal(t, catalog.DefaultScene, e.Snapshot().CurrentScene)

	e.FocusScene("dormitory")
	s := e.Snapshot()
	assert.Equal(t, "dormitory", s.CurrentScene)
	assert.Equal(t, state.TabDialogue, s.ActiveTab)

	last := s.Messages[len(s.Messages)-1]
	assert.Equal(t, state.MessageSceneTransition, last.Type)
	assert.Equal(t, "dormitory", last.SceneID)

	// Re-focusing the current scene adds nothing.
	count := len(s.Messages)
	e.FocusScene("dormitory")
	assert.Len(t, e.Snapshot().Messages, count)
}

func TestUseItem(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.mu.Lock()
	e.session.Inventory["energy-drink"] = 1
	e.session.Resources.Mental = 50
	e.mu.Unlock()

	e.UseItem("energy-drink")
	s := e.Snapshot()
	assert.Equal(t, 65, s.Resources.Mental)
	assert.Equal(t, 0, s.Inventory["energy-drink"])
	assert.Contains(t, s.Messages[len(s.Messages)-1].Content, "能量饮料")

	// Depleted item is a silent no-op.
	count := len(s.Messages)
	e.UseItem("energy-drink")
	s = e.Snapshot()
	assert.Equal(t, 65, s.Resources.Mental)
	assert.Len(t, s.Messages, count)

	// Unknown id is a silent no-op.
	e.UseItem("potion")
	assert.Len(t, e.Snapshot().Messages, count)
}

func TestUseItemCollectibleIsNotConsumed(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.UseItem("lucky-charm")
	assert.Equal(t, 1, e.Snapshot().Inventory["lucky-charm"])
}

func TestUseItemMultiEffect(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	e.mu.Lock()
	e.session.Inventory["fan-letter"] = 1
	e.mu.Unlock()

	e.UseItem("fan-letter")
	s := e.Snapshot()
	assert.Equal(t, 80, s.Resources.Mental)
	assert.Equal(t, 8, s.Resources.Fans)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")
	e.AdvanceTime()
	e.FocusCharacter("guyanche")

	ctx := context.Background()
	e.Save(ctx)
	assert.True(t, e.HasSave(ctx))

	saved := e.Snapshot()

	e.Reset()
	assert.False(t, e.Snapshot().Started)

	// Reset does not clear the save slot.
	assert.True(t, e.HasSave(ctx))

	e.Load(ctx)
	loaded := e.Snapshot()
	assert.True(t, loaded.Started)
	assert.Equal(t, saved.Day, loaded.Day)
	assert.Equal(t, saved.PeriodIndex, loaded.PeriodIndex)
	assert.Equal(t, saved.CurrentCharacter, loaded.CurrentCharacter)
	assert.Equal(t, saved.Resources, loaded.Resources)
	assert.Len(t, loaded.Messages, len(saved.Messages))
}

func TestLoadVersionMismatchIsNoOp(t *testing.T) {
	e, _, mockStore := newTestEngine()
	e.Start("小满")

	other := state.NewSaveData(state.NewSession())
	other.Version = state.SaveVersion + 1
	require.NoError(t, mockStore.SaveSession(context.Background(), other))

	before := e.Snapshot()
	e.Load(context.Background())
	after := e.Snapshot()

	assert.Equal(t, before.Started, after.Started)
	assert.Equal(t, before.Day, after.Day)
	assert.Len(t, after.Messages, len(before.Messages))
}

func TestLoadCorruptBlobIsNoOp(t *testing.T) {
	e, _, mockStore := newTestEngine()
	e.Start("小满")
	mockStore.SetBlob([]byte("{not json"))

	before := e.Snapshot()
	e.Load(context.Background())
	assert.Equal(t, before.Day, e.Snapshot().Day)
	assert.True(t, e.Snapshot().Started)
}

func TestLoadEmptySlotIsNoOp(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	before := e.Snapshot()
	e.Load(context.Background())
	assert.Equal(t, before.Day, e.Snapshot().Day)
}

func TestLoadClearsTransientState(t *testing.T) {
	e, _, mockStore := newTestEngine()
	e.Start("小满")

	data := state.NewSaveData(e.Snapshot())
	data.Session.AwaitingReply = true
	data.Session.StreamingContent = "half a reply"
	require.NoError(t, mockStore.SaveSession(context.Background(), data))

	e.Load(context.Background())
	s := e.Snapshot()
	assert.False(t, s.AwaitingReply)
	assert.Empty(t, s.StreamingContent)
}

func TestClearSave(t *testing.T) {
	e, _, _ := newTestEngine()
	e.Start("小满")

	ctx := context.Background()
	e.Save(ctx)
	require.True(t, e.HasSave(ctx))

	e.ClearSave(ctx)
	assert.False(t, e.HasSave(ctx))
}

func TestSaveErrorIsSwallowed(t *testing.T) {
	e, _, mockStore := newTestEngine()
	mockStore.SaveErr = assert.AnError
	e.Start("小满")

	// Must not panic or surface the error.
	e.Save(context.Background())
	assert.False(t, e.HasSave(context.Background()))
}

func TestTurnPersistsAsynchronously(t *testing.T) {
	e, mockChat, _ := newTestEngine()
	mockChat.StreamReply = "好的。"
	e.Start("小满")

	require.NoError(t, e.SubmitInput(context.Background(), "练习"))

	assert.Eventually(t, func() bool {
		return e.HasSave(context.Background())
	}, 2*time.Second, 10*time.Millisecond)
}

func TestParseReply(t *testing.T) {
	e, _, _ := newTestEngine()

	res := e.ParseReply("【顾言澈 好感+5】")
	require.Len(t, res.Deltas, 1)
	assert.Equal(t, 5, res.Deltas[0].Amount)
}
