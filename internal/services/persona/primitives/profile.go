package primitives

import "math/rand/v2"

// MBTITypes lists the sixteen personality types.
var MBTITypes = []string{
	"INTJ", "INTP", "ENTJ", "ENTP", "INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ", "ISTP", "ISFP", "ESTP", "ESFP",
}

// BirthCityQuestion is answered with the hometown city.
const BirthCityQuestion = "你出生在哪个城市？"

var securityQuestions = []struct {
	question string
	answers  []string
}{
	{"你母亲的名字叫什么？", []string{"王淑芳", "李美玲", "张爱华", "刘兰英"}},
	{BirthCityQuestion, nil},
	{"你的首只宠物的中文名字？", []string{"小花", "大黄", "球球", "皮皮"}},
	{"你的小学老师姓什么？", []string{"陈", "周", "吴", "郑", "何"}},
}

// MBTI draws a personality type.
func MBTI(rng *rand.Rand) string {
	return MBTITypes[rng.IntN(len(MBTITypes))]
}

// SecurityQuestion draws a question and a plausible answer.
func SecurityQuestion(rng *rand.Rand, hometownCity string) (question, answer string) {
	q := securityQuestions[rng.IntN(len(securityQuestions))]
	if q.answers == nil {
		return q.question, hometownCity
	}
	return q.question, q.answers[rng.IntN(len(q.answers))]
}
