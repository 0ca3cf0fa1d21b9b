// Package primitives supplies the generic building blocks of a persona:
// names, account handles, device strings, bank cards and small labels.
//
// Everything draws from the caller's generator so a seeded run reproduces
// the same values.
package primitives

import (
	"math/rand/v2"
	"unicode/utf8"
)

// surnames pairs common family names with their pinyin.
var surnames = []struct {
	hanzi  string
	pinyin string
}{
	{"王", "wang"}, {"李", "li"}, {"张", "zhang"}, {"刘", "liu"}, {"陈", "chen"},
	{"杨", "yang"}, {"黄", "huang"}, {"赵", "zhao"}, {"吴", "wu"}, {"周", "zhou"},
	{"徐", "xu"}, {"孙", "sun"}, {"马", "ma"}, {"朱", "zhu"}, {"胡", "hu"},
	{"林", "lin"}, {"郭", "guo"}, {"何", "he"}, {"高", "gao"}, {"罗", "luo"},
	{"郑", "zheng"}, {"梁", "liang"}, {"谢", "xie"}, {"唐", "tang"}, {"宋", "song"},
	{"韩", "han"}, {"曹", "cao"}, {"许", "xu"}, {"邓", "deng"}, {"萧", "xiao"},
	{"冯", "feng"}, {"曾", "zeng"}, {"程", "cheng"}, {"蔡", "cai"}, {"潘", "pan"},
	{"袁", "yuan"}, {"于", "yu"}, {"董", "dong"}, {"余", "yu"}, {"苏", "su"},
	{"叶", "ye"}, {"吕", "lv"}, {"魏", "wei"}, {"蒋", "jiang"}, {"田", "tian"},
	{"杜", "du"}, {"丁", "ding"},
}

// rareSurnames have no pinyin-linked username.
var rareSurnames = []string{"欧阳", "上官", "司马", "诸葛", "闫", "邱", "侯", "龙", "万", "段"}

var maleGiven = []string{
	"伟", "强", "磊", "军", "勇", "杰", "涛", "斌", "超", "明",
	"建国", "志强", "俊杰", "浩然", "宇轩", "子轩", "博文", "天宇", "文博", "立新",
}

var femaleGiven = []string{
	"芳", "娜", "敏", "静", "丽", "艳", "娟", "霞", "婷", "雪",
	"秀英", "桂英", "欣怡", "梓涵", "诗涵", "雨桐", "佳怡", "思琪", "婉清", "晓燕",
}

var pinyinBySurname = func() map[string]string {
	m := make(map[string]string, len(surnames))
	for _, s := range surnames {
		m[s.hanzi] = s.pinyin
	}
	return m
}()

// Name draws a full name. Nine in ten names use a common surname.
func Name(rng *rand.Rand, male bool) string {
	var family string
	if rng.IntN(10) == 0 {
		family = rareSurnames[rng.IntN(len(rareSurnames))]
	} else {
		family = surnames[rng.IntN(len(surnames))].hanzi
	}
	given := femaleGiven
	if male {
		given = maleGiven
	}
	return family + given[rng.IntN(len(given))]
}

// SurnamePinyin returns the pinyin of a name's single-character surname.
func SurnamePinyin(name string) (string, bool) {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || size == 0 {
		return "", false
	}
	py, ok := pinyinBySurname[string(r)]
	return py, ok
}
