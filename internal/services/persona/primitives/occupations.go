package primitives

import "math/rand/v2"

var occupations = []string{
	"软件工程师", "前端开发工程师", "测试工程师", "运维工程师", "系统架构师",
	"产品经理", "项目经理", "市场总监", "销售经理", "销售代表",
	"客服专员", "行政专员", "人事主管", "财务主管", "会计",
	"小学教师", "中学老师", "大学讲师", "医生", "护士",
	"药剂师", "快递员", "外卖骑手", "出租车司机", "厨师",
	"服务员", "营业员", "保安", "保洁员", "家政服务员",
	"设计师", "摄影师", "律师", "记者", "编辑",
	"电工", "焊工", "机械技术员", "数据分析师", "研究员",
	"算法专家", "总经理", "首席执行官CEO", "技术总监", "办公室主任",
}

// Occupation draws a job title.
func Occupation(rng *rand.Rand) string {
	return occupations[rng.IntN(len(occupations))]
}
