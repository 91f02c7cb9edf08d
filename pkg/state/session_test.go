package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
	"github.com/yooho-ai/trainee-engine/pkg/chat"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()

	assert.False(t, s.Started)
	assert.Equal(t, 1, s.Day)
	assert.Equal(t, 0, s.PeriodIndex)
	assert.Equal(t, catalog.MaxActionPoints, s.ActionPoints)
	assert.Equal(t, catalog.DefaultScene, s.CurrentScene)
	assert.Equal(t, DefaultResources(), s.Resources)
	assert.Equal(t, TabDialogue, s.ActiveTab)
	assert.Equal(t, 1, s.Inventory["lucky-charm"])
	assert.Empty(t, s.Messages)
	assert.Empty(t, s.EndingID)

	for id, c := range catalog.Characters {
		for k, v := range c.InitialStats {
			assert.Equal(t, v, s.CharacterStats[id][k], "character %s stat %s", id, k)
		}
	}
}

func TestResourceClamping(t *testing.T) {
	r := DefaultResources()

	r.Apply("mental", -200)
	assert.Equal(t, 0, r.Mental)

	r.Apply("charm", 500)
	assert.Equal(t, 100, r.Charm)

	r.Apply("vocal", 7)
	assert.Equal(t, 37, r.Vocal)

	r.Apply("unknown", 50)
	assert.Equal(t, DefaultResources().Dance, r.Dance)
}

func TestSkillAverage(t *testing.T) {
	r := GlobalResources{Vocal: 60, Dance: 30, Charm: 90}
	assert.InDelta(t, 60.0, r.SkillAverage(), 0.001)
}

func TestApplyCharacterDelta(t *testing.T) {
	s := NewSession()

	s.ApplyCharacterDelta("guyanche", "affection", 15)
	assert.Equal(t, 25, s.CharacterStats["guyanche"]["affection"])

	s.ApplyCharacterDelta("guyanche", "affection", -100)
	assert.Equal(t, 0, s.CharacterStats["guyanche"]["affection"])

	// Unknown characters are ignored.
	s.ApplyCharacterDelta("nobody", "affection", 10)
	assert.NotContains(t, s.CharacterStats, "nobody")

	// Unknown stat keys start from zero.
	s.ApplyCharacterDelta("guyanche", "respect", 12)
	assert.Equal(t, 12, s.CharacterStats["guyanche"]["respect"])
}

func TestCloneIsDeep(t *testing.T) {
	s := NewSession()
	s.Messages = append(s.Messages, NewMessage(chat.ChatRolePlayer, "hello"))
	s.UnlockedScenes = append(s.UnlockedScenes, "stage")
	s.TriggeredEvents = append(s.TriggeredEvents, "orientation")

	cp := s.Clone()
	require.NotNil(t, cp)

	cp.ApplyCharacterDelta("guyanche", "affection", 50)
	cp.Inventory["lucky-charm"] = 99
	cp.Messages[0].Content = "changed"
	cp.UnlockedScenes[0] = "other"
	cp.TriggeredEvents[0] = "other"

	assert.Equal(t, 10, s.CharacterStats["guyanche"]["affection"])
	assert.Equal(t, 1, s.Inventory["lucky-charm"])
	assert.Equal(t, "hello", s.Messages[0].Content)
	assert.Equal(t, "practice", s.UnlockedScenes[0])
	assert.Equal(t, "orientation", s.TriggeredEvents[0])
}

func TestCloneNil(t *testing.T) {
	var s *Session
	assert.Nil(t, s.Clone())
}

func TestSceneUnlocked(t *testing.T) {
	s := NewSession()
	assert.True(t, s.SceneUnlocked("practice"))
	assert.False(t, s.SceneUnlocked("stage"))
}

func TestNewSaveDataTruncatesMessages(t *testing.T) {
	s := NewSession()
	for i := 0; i < SavedMessageWindow+10; i++ {
		s.Messages = append(s.Messages, NewMessage(chat.ChatRolePlayer, "msg"))
	}
	lastID := s.Messages[len(s.Messages)-1].ID

	data := NewSaveData(s)
	assert.Equal(t, SaveVersion, data.Version)
	require.Len(t, data.Session.Messages, SavedMessageWindow)
	assert.Equal(t, lastID, data.Session.Messages[len(data.Session.Messages)-1].ID)

	// The source session keeps its full log.
	assert.Len(t, s.Messages, SavedMessageWindow+10)
	assert.False(t, data.Session.UpdatedAt.IsZero())
}

func TestNewSaveDataShortLog(t *testing.T) {
	s := NewSession()
	s.Messages = append(s.Messages, NewMessage(chat.ChatRoleSystem, "welcome"))

	data := NewSaveData(s)
	assert.Len(t, data.Session.Messages, 1)
}

func TestNewMessage(t *testing.T) {
	m := NewMessage(chat.ChatRoleNarrator, "content")
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, chat.ChatRoleNarrator, m.Role)
	assert.False(t, m.Timestamp.IsZero())

	other := NewMessage(chat.ChatRoleNarrator, "content")
	assert.NotEqual(t, m.ID, other.ID)
}
