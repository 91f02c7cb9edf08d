// Package state holds the session aggregate for one playthrough: the
// mutable progression state the engine owns and the UI renders from.
package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/yooho-ai/trainee-engine/pkg/catalog"
)

const (
	// SaveVersion is the save-blob schema version. Loads with any other
	// version are ignored.
	SaveVersion = 1

	// SavedMessageWindow caps the message log persisted in a save blob.
	SavedMessageWindow = 30
)

// GlobalResources are the five bounded player resources. Every value is
// clamped into [0,100] on mutation.
type GlobalResources struct {
	Vocal  int `json:"vocal"`
	Dance  int `json:"dance"`
	Charm  int `json:"charm"`
	Fans   int `json:"fans"`
	Mental int `json:"mental"`
}

// DefaultResources returns starting values for a new session.
func DefaultResources() GlobalResources {
	return GlobalResources{Vocal: 30, Dance: 25, Charm: 40, Fans: 5, Mental: 70}
}

// Get returns the value of the named resource, 0 for unknown keys.
func (r *GlobalResources) Get(key string) int {
	switch key {
	case "vocal":
		return r.Vocal
	case "dance":
		return r.Dance
	case "charm":
		return r.Charm
	case "fans":
		return r.Fans
	case "mental":
		return r.Mental
	}
	return 0
}

// Apply adds delta to the named resource, clamping into [0,100].
// Unknown keys are ignored.
func (r *GlobalResources) Apply(key string, delta int) {
	switch key {
	case "vocal":
		r.Vocal = Clamp(r.Vocal + delta)
	case "dance":
		r.Dance = Clamp(r.Dance + delta)
	case "charm":
		r.Charm = Clamp(r.Charm + delta)
	case "fans":
		r.Fans = Clamp(r.Fans + delta)
	case "mental":
		r.Mental = Clamp(r.Mental + delta)
	}
}

// SkillAverage is the mean of the three skill resources.
func (r *GlobalResources) SkillAverage() float64 {
	return float64(r.Vocal+r.Dance+r.Charm) / 3
}

// Clamp bounds a stat value into [0,100].
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// MessageType marks rich payload messages that render as cards instead
// of plain text.
type MessageType string

const (
	MessagePlain           MessageType = ""
	MessageSceneTransition MessageType = "scene-transition"
	MessageDayChange       MessageType = "day-change"
)

// DayChangeInfo is the payload of a day-change marker message.
type DayChangeInfo struct {
	Day     int    `json:"day"`
	Chapter string `json:"chapter"`
}

// Message is one entry of the append-only session log.
type Message struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"` // chat.ChatRolePlayer / Narrator / System
	Content   string         `json:"content"`
	Character string         `json:"character,omitempty"` // speaker character id
	Type      MessageType    `json:"type,omitempty"`
	SceneID   string         `json:"scene_id,omitempty"`
	DayInfo   *DayChangeInfo `json:"day_info,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewMessage builds a plain message with a fresh id.
func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// Tab identifies the active UI tab; the engine only stores it.
type Tab string

const (
	TabDialogue  Tab = "dialogue"
	TabScene     Tab = "scene"
	TabCharacter Tab = "character"
)

// Session is the full progression state of one playthrough. It is mutated
// exclusively through engine commands and replaced wholesale on reset.
type Session struct {
	PlayerName string `json:"player_name"`
	Started    bool   `json:"started"`

	Day          int `json:"day"`           // 1..12
	PeriodIndex  int `json:"period_index"`  // 0..2
	ActionPoints int `json:"action_points"` // 0..3

	CurrentScene     string `json:"current_scene"`
	CurrentCharacter string `json:"current_character,omitempty"`

	Resources      GlobalResources           `json:"resources"`
	CharacterStats map[string]map[string]int `json:"character_stats"`

	UnlockedScenes  []string       `json:"unlocked_scenes"`
	CurrentChapter  int            `json:"current_chapter"`
	TriggeredEvents []string       `json:"triggered_events"`
	Inventory       map[string]int `json:"inventory"`

	Messages       []Message `json:"messages"`
	HistorySummary string    `json:"history_summary,omitempty"`

	EndingID  string `json:"ending_id,omitempty"`
	ActiveTab Tab    `json:"active_tab"`

	// Transient turn state, not persisted.
	AwaitingReply    bool   `json:"-"`
	StreamingContent string `json:"-"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession builds a session with catalog defaults. Started is left
// false; Start flips it.
func NewSession() *Session {
	stats := make(map[string]map[string]int, len(catalog.Characters))
	for id, c := range catalog.Characters {
		initial := make(map[string]int, len(c.InitialStats))
		for k, v := range c.InitialStats {
			initial[k] = v
		}
		stats[id] = initial
	}

	inventory := make(map[string]int, len(catalog.DefaultInventory))
	for k, v := range catalog.DefaultInventory {
		inventory[k] = v
	}

	return &Session{
		Day:             1,
		PeriodIndex:     0,
		ActionPoints:    catalog.MaxActionPoints,
		CurrentScene:    catalog.DefaultScene,
		Resources:       DefaultResources(),
		CharacterStats:  stats,
		UnlockedScenes:  append([]string(nil), catalog.DefaultUnlockedScenes...),
		CurrentChapter:  1,
		TriggeredEvents: make([]string, 0),
		Inventory:       inventory,
		Messages:        make([]Message, 0),
		ActiveTab:       TabDialogue,
	}
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s

	cp.CharacterStats = make(map[string]map[string]int, len(s.CharacterStats))
	for id, stats := range s.CharacterStats {
		inner := make(map[string]int, len(stats))
		for k, v := range stats {
			inner[k] = v
		}
		cp.CharacterStats[id] = inner
	}

	cp.UnlockedScenes = append([]string(nil), s.UnlockedScenes...)
	cp.TriggeredEvents = append([]string(nil), s.TriggeredEvents...)

	cp.Inventory = make(map[string]int, len(s.Inventory))
	for k, v := range s.Inventory {
		cp.Inventory[k] = v
	}

	cp.Messages = make([]Message, len(s.Messages))
	copy(cp.Messages, s.Messages)

	return &cp
}

// ApplyCharacterDelta adds delta to a character stat, clamped. Unknown
// characters are ignored; unknown stat keys start from zero.
func (s *Session) ApplyCharacterDelta(characterID, statKey string, delta int) {
	stats, ok := s.CharacterStats[characterID]
	if !ok {
		return
	}
	stats[statKey] = Clamp(stats[statKey] + delta)
}

// SceneUnlocked reports whether a scene id is in the unlocked set.
func (s *Session) SceneUnlocked(id string) bool {
	for _, sid := range s.UnlockedScenes {
		if sid == id {
			return true
		}
	}
	return false
}

// EventTriggered reports whether a forced event already fired.
func (s *Session) EventTriggered(id string) bool {
	for _, eid := range s.TriggeredEvents {
		if eid == id {
			return true
		}
	}
	return false
}

// SaveData is the versioned persistence envelope for a session snapshot.
type SaveData struct {
	Version int      `json:"version"`
	Session *Session `json:"session"`
}

// NewSaveData wraps a session clone with the current schema version,
// truncating the message log to the persisted window.
func NewSaveData(s *Session) *SaveData {
	cp := s.Clone()
	if len(cp.Messages) > SavedMessageWindow {
		cp.Messages = append([]Message(nil), cp.Messages[len(cp.Messages)-SavedMessageWindow:]...)
	}
	cp.UpdatedAt = time.Now()
	return &SaveData{Version: SaveVersion, Session: cp}
}
