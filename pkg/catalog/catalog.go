package catalog

// StatCategory groups stat metas for display and prompt formatting.
type StatCategory string

const (
	StatCategoryRelation StatCategory = "relation"
	StatCategoryStatus   StatCategory = "status"
	StatCategorySkill    StatCategory = "skill"
)

// StatMeta describes one tracked stat on a character or on the player.
type StatMeta struct {
	Key      string       `json:"key"`
	Label    string       `json:"label"`
	Color    string       `json:"color"`
	Icon     string       `json:"icon"`
	Category StatCategory `json:"category,omitempty"`
}

// Period is one of the three sub-divisions of a day.
type Period struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Hours string `json:"hours"`
}

const (
	MaxDays         = 12
	MaxActionPoints = 3
)

// Periods lists the three periods of a day in order.
var Periods = []Period{
	{Index: 0, Name: "早晨", Icon: "🌅", Hours: "06:00-12:00"},
	{Index: 1, Name: "中午", Icon: "☀️", Hours: "12:00-18:00"},
	{Index: 2, Name: "晚上", Icon: "🌙", Hours: "18:00-24:00"},
}

// StoryInfo describes the game for prompts and title screens.
var StoryInfo = struct {
	Title       string
	Subtitle    string
	Description string
	Genre       string
	Emoji       string
}{
	Title:       "青春练习生",
	Subtitle:    "AI 女团养成游戏",
	Description: "在偶像工业的残酷选拔中，用汗水与梦想证明自己。12期综艺，3位攻略对象，你的选择决定出道命运。",
	Genre:       "偶像养成",
	Emoji:       "⭐",
}

// QuickActions are suggested player inputs surfaced by clients.
var QuickActions = []string{
	"加紧练习",
	"与队友交流",
	"请教前辈",
	"休息调整",
}

// GlobalStatMetas describes the five global player resources.
var GlobalStatMetas = []StatMeta{
	{Key: "vocal", Label: "Vocal", Color: "#e91e8c", Icon: "🎤", Category: StatCategorySkill},
	{Key: "dance", Label: "Dance", Color: "#f97316", Icon: "💃", Category: StatCategorySkill},
	{Key: "charm", Label: "颜值", Color: "#ec4899", Icon: "✨", Category: StatCategorySkill},
	{Key: "fans", Label: "粉丝", Color: "#6366f1", Icon: "📱", Category: StatCategoryStatus},
	{Key: "mental", Label: "心理", Color: "#10b981", Icon: "💚", Category: StatCategoryStatus},
}

// AvailableCharacters returns the characters whose join day has been
// reached. Absent matches yield an empty map, never an error.
func AvailableCharacters(day int) map[string]Character {
	out := make(map[string]Character)
	for id, c := range Characters {
		if c.JoinDay <= day {
			out[id] = c
		}
	}
	return out
}

// CharacterByName resolves a character by exact display name.
func CharacterByName(name string) (Character, bool) {
	for _, c := range Characters {
		if c.Name == name {
			return c, true
		}
	}
	return Character{}, false
}

// CurrentChapter returns the first chapter whose day range contains day,
// falling back to the first chapter.
func CurrentChapter(day int) Chapter {
	for _, ch := range Chapters {
		if day >= ch.FirstDay && day <= ch.LastDay {
			return ch
		}
	}
	return Chapters[0]
}

// DueEvents returns the forced events scheduled for day that have not
// yet been triggered. Period filtering is applied by the caller.
func DueEvents(day int, triggered []string) []ForcedEvent {
	seen := make(map[string]bool, len(triggered))
	for _, id := range triggered {
		seen[id] = true
	}
	var due []ForcedEvent
	for _, e := range ForcedEvents {
		if e.TriggerDay == day && !seen[e.ID] {
			due = append(due, e)
		}
	}
	return due
}

// SceneByID looks up a scene by id.
func SceneByID(id string) (Scene, bool) {
	s, ok := Scenes[id]
	return s, ok
}

// ItemByID looks up an item by id.
func ItemByID(id string) (Item, bool) {
	for _, it := range Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// EndingByID looks up an ending by id.
func EndingByID(id string) (Ending, bool) {
	for _, e := range Endings {
		if e.ID == id {
			return e, true
		}
	}
	return Ending{}, false
}
