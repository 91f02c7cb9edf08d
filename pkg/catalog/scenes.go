package catalog

// Scene is an immutable catalog entry for a location the player can visit.
// UnlockDay 0 means the scene is available from the start of the game.
type Scene struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
	Background  string   `json:"background"`
	Atmosphere  string   `json:"atmosphere"`
	Tags        []string `json:"tags"`
	UnlockDay   int      `json:"unlock_day,omitempty"`
}

const DefaultScene = "practice"

// DefaultUnlockedScenes are the scenes open at the start of a session.
var DefaultUnlockedScenes = []string{"practice", "backstage", "dormitory"}

// Scenes is the scene catalog keyed by id.
var Scenes = map[string]Scene{
	"practice": {
		ID:          "practice",
		Name:        "练习室",
		Icon:        "🎵",
		Description: "三面镜墙，冷白灯光，节拍器无情闪烁。梦想锻造的熔炉。",
		Background:  "/scenes/practice.jpg",
		Atmosphere:  "汗水与地板蜡的混合气味",
		Tags:        []string{"训练", "日常", "加练"},
	},
	"stage": {
		ID:          "stage",
		Name:        "公演舞台",
		Icon:        "🎤",
		Description: "圆形舞台，环绕LED，数百盏灯光。三分钟内被审判的法庭。",
		Background:  "/scenes/stage.jpg",
		Atmosphere:  "干冰白雾与荧光棒海洋",
		Tags:        []string{"公演", "比赛", "聚光灯"},
		UnlockDay:   4,
	},
	"backstage": {
		ID:          "backstage",
		Name:        "后台化妆间",
		Icon:        "💄",
		Description: "带灯泡的化妆镜、演出服、散落的假睫毛。变身的魔法空间。",
		Background:  "/scenes/backstage.jpg",
		Atmosphere:  "定妆喷雾与期待交织",
		Tags:        []string{"化妆", "准备", "偶遇"},
	},
	"dormitory": {
		ID:          "dormitory",
		Name:        "宿舍",
		Icon:        "🏠",
		Description: "四人间上下铺，窗外城市灯火。深夜谈心与偷偷哭泣的地方。",
		Background:  "/scenes/dormitory.jpg",
		Atmosphere:  "洗衣液清香与深夜私语",
		Tags:        []string{"休息", "谈心", "社交"},
	},
}
