package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yooho-ai/trainee-engine/pkg/chat"
	"github.com/yooho-ai/trainee-engine/pkg/state"
)

func sessionWithMessages(n int) *state.Session {
	s := state.NewSession()
	s.Started = true
	for i := 0; i < n; i++ {
		role := chat.ChatRolePlayer
		if i%2 == 1 {
			role = chat.ChatRoleNarrator
		}
		s.Messages = append(s.Messages, state.NewMessage(role, fmt.Sprintf("msg-%d", i)))
	}
	return s
}

func TestBuildRequiresSession(t *testing.T) {
	_, err := New().Build()
	assert.Error(t, err)
}

func TestBuildStartsWithSystemPrompt(t *testing.T) {
	messages, err := New().WithSession(sessionWithMessages(3)).Build()
	require.NoError(t, err)
	require.NotEmpty(t, messages)

	assert.Equal(t, chat.ChatRoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "AI叙述者")
	assert.Contains(t, messages[0].Content, "输出格式")
}

func TestBuildWindowsHistory(t *testing.T) {
	messages, err := New().WithSession(sessionWithMessages(25)).Build()
	require.NoError(t, err)

	// system prompt + last 10 messages
	require.Len(t, messages, DefaultHistoryLimit+1)
	assert.Equal(t, "msg-15", messages[1].Content)
	assert.Equal(t, "msg-24", messages[len(messages)-1].Content)
}

func TestBuildCustomHistoryLimit(t *testing.T) {
	messages, err := New().
		WithSession(sessionWithMessages(25)).
		WithHistoryLimit(3).
		Build()
	require.NoError(t, err)

	require.Len(t, messages, 4)
	assert.Equal(t, "msg-22", messages[1].Content)
}

func TestBuildIncludesSummary(t *testing.T) {
	s := sessionWithMessages(4)
	s.HistorySummary = "她第一天就迟到了。"

	messages, err := New().WithSession(s).Build()
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(messages), 2)
	assert.Equal(t, chat.ChatRoleSystem, messages[1].Role)
	assert.Contains(t, messages[1].Content, "历史摘要")
	assert.Contains(t, messages[1].Content, s.HistorySummary)
	assert.Equal(t, "msg-0", messages[2].Content)
}

func TestBuildSkipsMarkerMessages(t *testing.T) {
	s := sessionWithMessages(2)
	marker := state.NewMessage(chat.ChatRoleSystem, "")
	marker.Type = state.MessageSceneTransition
	marker.SceneID = "dormitory"
	s.Messages = append(s.Messages, marker)

	messages, err := New().WithSession(s).Build()
	require.NoError(t, err)

	for _, m := range messages {
		assert.NotEmpty(t, m.Content)
	}
	assert.Len(t, messages, 3)
}

func TestBuildSystemPromptContent(t *testing.T) {
	s := state.NewSession()
	s.Started = true
	s.Day = 5
	s.CurrentScene = "backstage"
	s.CurrentCharacter = "guyanche"

	prompt := BuildSystemPrompt(s)

	assert.Contains(t, prompt, "青春练习生")
	assert.Contains(t, prompt, "顾言澈")
	assert.Contains(t, prompt, "后台")
	assert.Contains(t, prompt, "第5期")
}

func TestBuildSystemPromptIsDeterministic(t *testing.T) {
	s := sessionWithMessages(2)
	assert.Equal(t, BuildSystemPrompt(s), BuildSystemPrompt(s))
}

func TestBuildScriptListsJoinedCharactersOnly(t *testing.T) {
	script := BuildScript()

	// The full script lists everyone, including the late joiner.
	assert.Contains(t, script, "沈哲远")
	assert.Contains(t, script, "章节")
}

func TestBuildStatsSnapshot(t *testing.T) {
	s := state.NewSession()
	snapshot := BuildStatsSnapshot(s)

	assert.Contains(t, snapshot, "30") // vocal
	assert.Contains(t, snapshot, "Vocal")
	assert.Contains(t, snapshot, "心理")
}

func TestFallbackNarration(t *testing.T) {
	withName := FallbackNarration("顾言澈")
	assert.True(t, strings.HasPrefix(withName, "【顾言澈】"))

	generic := FallbackNarration("")
	assert.NotEmpty(t, generic)
	assert.NotContains(t, generic, "【")
}

func TestWelcomeMessage(t *testing.T) {
	msg := WelcomeMessage()
	assert.Contains(t, msg, "青春练习生")
	assert.Contains(t, msg, "第1期")
}
