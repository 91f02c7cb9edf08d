package catalog

// EndingKind classifies an ending's quality tier.
type EndingKind string

const (
	EndingTrue   EndingKind = "TE"
	EndingHappy  EndingKind = "HE"
	EndingNormal EndingKind = "NE"
	EndingBad    EndingKind = "BE"
)

// Ending is an immutable catalog entry for a terminal outcome. Condition
// is the human-readable unlock description; the evaluation rules live in
// the progression engine.
type Ending struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Kind        EndingKind `json:"kind"`
	Description string     `json:"description"`
	Condition   string     `json:"condition"`
}

// Endings lists all outcomes in rule-evaluation order.
var Endings = []Ending{
	{
		ID:          "be-quit",
		Name:        "退圈",
		Kind:        EndingBad,
		Description: "聚光灯太刺眼，梦想太沉重。你选择了离开，但学到的一切不会消失。",
		Condition:   "心理≤20 且实力均值<40",
	},
	{
		ID:          "be-eliminated",
		Name:        "淘汰出局",
		Kind:        EndingBad,
		Description: "实力不足以支撑梦想的重量。你带着遗憾离开了舞台。",
		Condition:   "Vocal/Dance/颜值均值<40",
	},
	{
		ID:          "te-ace",
		Name:        "全能ACE·C位出道",
		Kind:        EndingTrue,
		Description: "你站在C位，聚光灯为你而亮。实力、人气、颜值——三年汗水证明了一切。",
		Condition:   "Vocal≥75 Dance≥75 颜值≥75 粉丝≥80 心理≥60 且至少一位男主好感≥80",
	},
	{
		ID:          "te-pure",
		Name:        "不忘初心",
		Kind:        EndingTrue,
		Description: "你没有走捷径，没有背叛同伴。你是偶像工业最稀有的存在。",
		Condition:   "所有女练习生友好≥70 且实力均值≥60",
	},
	{
		ID:          "he-solo",
		Name:        "Solo新星",
		Kind:        EndingHappy,
		Description: "团体出道与你擦肩，但公司决定为你开辟Solo道路。",
		Condition:   "Vocal≥85 或 Dance≥85，粉丝<50",
	},
	{
		ID:          "he-debut",
		Name:        "梦想成真",
		Kind:        EndingHappy,
		Description: "虽然不是C位，但你成功出道了。站在舞台上，你笑着流泪。",
		Condition:   "粉丝≥60 均值≥55 心理≥50",
	},
	{
		ID:          "ne-blackred",
		Name:        "黑红出道",
		Kind:        EndingNormal,
		Description: "争议巨大但流量极高。这条路不会平坦，但你已经站上去了。",
		Condition:   "粉丝≥70 心理<40",
	},
	{
		ID:          "ne-close",
		Name:        "意难平选手",
		Kind:        EndingNormal,
		Description: "差一个名额。全网为你喊冤，你成了最让人心疼的选手。",
		Condition:   "其余情况",
	},
}
