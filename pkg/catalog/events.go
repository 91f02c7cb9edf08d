package catalog

// ForcedEvent is a scripted event that fires at most once per session on
// its trigger day. TriggerPeriod nil means any period of that day.
type ForcedEvent struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TriggerDay    int    `json:"trigger_day"`
	TriggerPeriod *int   `json:"trigger_period,omitempty"`
	Description   string `json:"description"`
}

func periodPtr(p int) *int { return &p }

// ForcedEvents lists the scripted events in trigger order.
var ForcedEvents = []ForcedEvent{
	{
		ID:            "orientation",
		Name:          "入社仪式",
		TriggerDay:    1,
		TriggerPeriod: periodPtr(0),
		Description:   "初入天星传媒，分配宿舍，遇见室友。第一次站在练习室镜子前。",
	},
	{
		ID:            "internal-rank",
		Name:          "内部排位赛",
		TriggerDay:    3,
		TriggerPeriod: periodPtr(2),
		Description:   "前3期总评！公布进入《青春练习生》综艺的选手名单。",
	},
	{
		ID:            "edit-storm",
		Name:          "剪辑风波",
		TriggerDay:    6,
		TriggerPeriod: periodPtr(1),
		Description:   "节目组恶意剪辑制造矛盾，你被牵涉其中。舆论一边倒。",
	},
	{
		ID:            "scandal-crisis",
		Name:          "舆论危机",
		TriggerDay:    9,
		TriggerPeriod: periodPtr(0),
		Description:   "\"黑历史\"被扒，社交媒体炸锅。需要综合公关手段应对。",
	},
	{
		ID:            "finale",
		Name:          "总决赛之夜",
		TriggerDay:    12,
		TriggerPeriod: periodPtr(2),
		Description:   "聚光灯下，主持人宣布最终出道名单。你的命运即将揭晓。",
	},
}
