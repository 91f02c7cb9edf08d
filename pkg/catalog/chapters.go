package catalog

// Chapter is an immutable catalog entry covering an inclusive day range.
// Exactly one chapter is current for any given day.
type Chapter struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	FirstDay    int      `json:"first_day"`
	LastDay     int      `json:"last_day"`
	Description string   `json:"description"`
	Objectives  []string `json:"objectives"`
	Atmosphere  string   `json:"atmosphere"`
}

// Chapters lists the three acts of the game in order.
var Chapters = []Chapter{
	{
		ID:          1,
		Name:        "练习生时代",
		FirstDay:    1,
		LastDay:     3,
		Description: "公司培训选拔，争取综艺名额",
		Objectives:  []string{"熟悉训练环境", "结交同伴", "提升基础实力", "内部排名前50%"},
		Atmosphere:  "紧张中带期待，陌生环境的适应与磨合",
	},
	{
		ID:          2,
		Name:        "综艺征途",
		FirstDay:    4,
		LastDay:     8,
		Description: "节目中生存，完成公演，争取晋级",
		Objectives:  []string{"在每期节目中存活", "完成公演舞台", "积累粉丝影响力", "处理人际关系"},
		Atmosphere:  "高压竞争，聚光灯与暗箭齐飞",
	},
	{
		ID:          3,
		Name:        "巅峰对决",
		FirstDay:    9,
		LastDay:     12,
		Description: "冲刺出道，最终排名争夺",
		Objectives:  []string{"冲击出道位", "粉丝影响力最大化", "处理感情线", "总决赛一战定生死"},
		Atmosphere:  "白热化竞争，情感与梦想的抉择",
	},
}
