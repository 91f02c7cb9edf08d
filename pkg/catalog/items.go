package catalog

// ItemKind distinguishes how an item behaves when used.
type ItemKind string

const (
	ItemConsumable  ItemKind = "consumable"
	ItemCollectible ItemKind = "collectible"
	ItemSocial      ItemKind = "social"
)

// Item is an immutable catalog entry for an inventory item. Its gameplay
// effect is a fixed resource-mutation rule keyed by id in the engine.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Icon        string   `json:"icon"`
	Kind        ItemKind `json:"kind"`
	Description string   `json:"description"`
	MaxCount    int      `json:"max_count,omitempty"`
}

// Items is the item catalog in display order.
var Items = []Item{
	{
		ID:          "energy-drink",
		Name:        "能量饮料",
		Icon:        "🥤",
		Kind:        ItemConsumable,
		Description: "冰凉液体冲走疲惫。心理+15",
		MaxCount:    3,
	},
	{
		ID:          "vocal-notes",
		Name:        "声乐秘籍",
		Icon:        "📝",
		Kind:        ItemConsumable,
		Description: "泛黄笔记本上的气息控制心得。Vocal+10",
		MaxCount:    2,
	},
	{
		ID:          "dance-video",
		Name:        "舞蹈教程",
		Icon:        "📱",
		Kind:        ItemConsumable,
		Description: "独家慢动作分解视频。Dance+8",
		MaxCount:    2,
	},
	{
		ID:          "skincare-set",
		Name:        "护肤套装",
		Icon:        "💄",
		Kind:        ItemConsumable,
		Description: "品牌赞助补水三件套。颜值+8",
		MaxCount:    2,
	},
	{
		ID:          "fan-letter",
		Name:        "粉丝来信",
		Icon:        "💌",
		Kind:        ItemSocial,
		Description: "手写信，贴着星星贴纸。心理+10 粉丝+3",
		MaxCount:    99,
	},
	{
		ID:          "lucky-charm",
		Name:        "幸运手链",
		Icon:        "🍀",
		Kind:        ItemCollectible,
		Description: "苏念念送的四叶草编织手链。关键时刻判定+3",
		MaxCount:    1,
	},
}

// DefaultInventory is the starting inventory for a new session.
var DefaultInventory = map[string]int{"lucky-charm": 1}
