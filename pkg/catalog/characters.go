package catalog

// Character is an immutable catalog entry for one NPC. Lead characters are
// romance targets tracked by affection; trainees are tracked by friendship.
type Character struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Portrait         string         `json:"portrait"`
	Gender           string         `json:"gender"`
	Age              int            `json:"age"`
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	Personality      string         `json:"personality"`
	SpeakingStyle    string         `json:"speaking_style"`
	Secret           string         `json:"secret"`
	TriggerPoints    []string       `json:"trigger_points"`
	BehaviorPatterns string         `json:"behavior_patterns"`
	ThemeColor       string         `json:"theme_color"`
	JoinDay          int            `json:"join_day"`
	IsLead           bool           `json:"is_lead"`
	StatMetas        []StatMeta     `json:"stat_metas"`
	InitialStats     map[string]int `json:"initial_stats"`
}

var leadStatMetas = []StatMeta{
	{Key: "affection", Label: "好感", Color: "#ef4444", Icon: "❤️", Category: StatCategoryRelation},
}

var traineeStatMetas = []StatMeta{
	{Key: "friendship", Label: "友好", Color: "#ec4899", Icon: "🤝", Category: StatCategoryRelation},
}

// Characters is the full character roster keyed by id.
var Characters = map[string]Character{
	"guyanche": {
		ID:               "guyanche",
		Name:             "顾言澈",
		Portrait:         "/characters/guyanche.jpg",
		Gender:           "male",
		Age:              28,
		Title:            "顶流男明星",
		Description:      "天星传媒天王级艺人，高冷清俊的大师兄。十年浮沉让他对真心格外珍视。",
		Personality:      "高冷克制 | 内心温柔 + 极度怕被利用 + 保护欲强",
		SpeakingStyle:    "简短克制，偶尔说出让人心跳的话时语气反而更淡",
		Secret:           "对娱乐圈极度疲惫，想退圈但合约未到期",
		TriggerPoints:    []string{"看到你独自加练", "你主动请教歌唱技巧", "你在舆论中保持真实"},
		BehaviorPatterns: "好感<20冷淡疏离，20-40暗中关注，40-60主动接近，60-80情感萌动，80+深度羁绊",
		ThemeColor:       "#6366f1",
		JoinDay:          1,
		IsLead:           true,
		StatMetas:        leadStatMetas,
		InitialStats:     map[string]int{"affection": 10},
	},
	"shenzheyuan": {
		ID:               "shenzheyuan",
		Name:             "沈哲远",
		Portrait:         "/characters/shenzheyuan.jpg",
		Gender:           "male",
		Age:              26,
		Title:            "舞蹈导师",
		Description:      "《青春练习生》主舞蹈导师，前国家级舞蹈队员。严格专业，把未完成的梦想倾注在学员身上。",
		Personality:      "严厉专业 | 外冷内热 + 完美主义 + 因伤退役的遗憾",
		SpeakingStyle:    "教学时精准命令式，私下话少且温柔",
		Secret:           "右膝旧伤未完全痊愈，深夜偷偷做复健",
		TriggerPoints:    []string{"你在舞蹈上展现进步", "你受伤仍坚持", "你理解他严格背后的用心"},
		BehaviorPatterns: "好感<20公事公办，20-40额外关注，40-60私下温柔，60-80情感挣扎，80+突破师生界限",
		ThemeColor:       "#ef4444",
		JoinDay:          4,
		IsLead:           true,
		StatMetas:        leadStatMetas,
		InitialStats:     map[string]int{"affection": 15},
	},
	"zhoumushen": {
		ID:               "zhoumushen",
		Name:             "周慕深",
		Portrait:         "/characters/zhoumushen.jpg",
		Gender:           "male",
		Age:              32,
		Title:            "王牌经纪人",
		Description:      "天星传媒金牌经纪人，眼光毒辣手段过人。白手起家，捧红无数艺人。",
		Personality:      "精明算计 | 利益至上 + 珍惜真正有潜力的人 + 疲惫的孤独",
		SpeakingStyle:    "游刃有余，喜欢用商业术语包装真心话",
		Secret:           "左手银戒是送给已去世初恋的，从未摘下",
		TriggerPoints:    []string{"你展现超越年龄的成熟", "你在逆境中不放弃", "你拒绝走捷径"},
		BehaviorPatterns: "好感<20无视，20-40商业评估，40-60资源倾斜，60-80保护欲，80+为你打破规则",
		ThemeColor:       "#0ea5e9",
		JoinDay:          1,
		IsLead:           true,
		StatMetas:        leadStatMetas,
		InitialStats:     map[string]int{"affection": 20},
	},
	"linshiyu": {
		ID:               "linshiyu",
		Name:             "林诗雨",
		Portrait:         "/characters/linshiyu.jpg",
		Gender:           "female",
		Age:              19,
		Title:            "天赋型·室友",
		Description:      "音乐世家出身的天才少女，嗓音天生动听。单纯有天赋但从未经历真正挫折。",
		Personality:      "单纯开朗 | 有天赋 + 容易骄傲 + 本质善良",
		SpeakingStyle:    "活泼爱用语气词，\"哎呀\"\"真的假的！\"",
		Secret:           "最怕别人说她靠家庭背景",
		TriggerPoints:    []string{"你真诚赞美她的歌声", "你在她被质疑时帮她说话"},
		BehaviorPatterns: "友好>50毫不犹豫帮你，<30疏远敏感",
		ThemeColor:       "#a855f7",
		JoinDay:          1,
		IsLead:           false,
		StatMetas:        traineeStatMetas,
		InitialStats:     map[string]int{"friendship": 50},
	},
	"zhaoxiaoman": {
		ID:               "zhaoxiaoman",
		Name:             "赵小曼",
		Portrait:         "/characters/zhaoxiaoman.jpg",
		Gender:           "female",
		Age:              20,
		Title:            "努力型·草根",
		Description:      "农村考出来的孩子，靠奖学金和打工存够练习生面试车费。舞蹈自学，坚韧不屈。",
		Personality:      "坚韧自尊 | 不服输 + 害怕被同情 + 内心柔软",
		SpeakingStyle:    "简短有力，\"我可以的\"\"没事，再来\"\"不需要同情\"",
		Secret:           "手机里存着妈妈只发过一条的微信语音",
		TriggerPoints:    []string{"你用行动而非怜悯支持她", "你承认她的实力"},
		BehaviorPatterns: "友好>50沉默但坚定站在你身边，<30把你当竞争对手",
		ThemeColor:       "#f97316",
		JoinDay:          1,
		IsLead:           false,
		StatMetas:        traineeStatMetas,
		InitialStats:     map[string]int{"friendship": 40},
	},
	"chenkeer": {
		ID:               "chenkeer",
		Name:             "陈可儿",
		Portrait:         "/characters/chenkeer.jpg",
		Gender:           "female",
		Age:              18,
		Title:            "心机型·颜值担当",
		Description:      "精致到每个角度都完美，善于社交和镜头。不是坏人，只是太清楚行业规则。",
		Personality:      "聪明现实 | 善于社交 + 活在人设里 + 渴望真心朋友",
		SpeakingStyle:    "甜美讨巧，\"姐妹你太好了~\"\"我觉得这样对大家都好\"",
		Secret:           "深夜卸妆后不敢照镜子，怕忘了真正的自己",
		TriggerPoints:    []string{"你不带目的地对她好", "你在她崩溃时没有嘲笑"},
		BehaviorPatterns: "友好>60真诚帮你，<20暗示你的弱点争夺资源",
		ThemeColor:       "#ec4899",
		JoinDay:          1,
		IsLead:           false,
		StatMetas:        traineeStatMetas,
		InitialStats:     map[string]int{"friendship": 35},
	},
	"suniannian": {
		ID:               "suniannian",
		Name:             "苏念念",
		Portrait:         "/characters/suniannian.jpg",
		Gender:           "female",
		Age:              21,
		Title:            "佛系型·隐藏实力",
		Description:      "大学音乐系在读，被星探发掘。来当练习生只是\"试试看\"，看似佛系实则通透。",
		Personality:      "通透有主见 | 看似佛系 + 关键时刻清醒 + 被认真的人触动",
		SpeakingStyle:    "慵懒随意，\"随缘吧\"\"都行啊\"\"无所谓\"",
		Secret:           "怕认真后承受不了失去",
		TriggerPoints:    []string{"你认真问她为什么不更努力", "你在关键时刻展现真心"},
		BehaviorPatterns: "友好>60深夜给你带宵夜帮你冷静，<30懒得理你",
		ThemeColor:       "#10b981",
		JoinDay:          1,
		IsLead:           false,
		StatMetas:        traineeStatMetas,
		InitialStats:     map[string]int{"friendship": 45},
	},
}

// ShortNames maps familiar two-character forms of each character name to
// the character id, for tagging names inside free narration.
var ShortNames = map[string]string{
	"言澈": "guyanche",
	"哲远": "shenzheyuan",
	"慕深": "zhoumushen",
	"诗雨": "linshiyu",
	"小曼": "zhaoxiaoman",
	"可儿": "chenkeer",
	"念念": "suniannian",
}
