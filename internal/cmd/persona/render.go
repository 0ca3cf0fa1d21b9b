package persona

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/zhpersona/internal/services/persona"
)

// printer renders numbers with Chinese grouping.
var printer = message.NewPrinter(language.SimplifiedChinese)

type line struct {
	label string
	value string
}

// writeText prints each persona as labelled lines. A projected result
// prints only its requested paths.
func writeText(out io.Writer, results []persona.Result) error {
	for i, res := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "#%d (seed %d)\n", i+1, res.Seed)
		}
		lines, err := textLines(res)
		if err != nil {
			return err
		}
		for _, l := range lines {
			if _, err := fmt.Fprintf(out, "%s: %s\n", l.label, l.value); err != nil {
				return fmt.Errorf("write persona: %w", err)
			}
		}
	}
	return nil
}

func textLines(res persona.Result) ([]line, error) {
	if len(res.Fields) > 0 {
		m, err := res.Map()
		if err != nil {
			return nil, fmt.Errorf("project persona: %w", err)
		}
		var lines []line
		flatten("", m, &lines)
		return lines, nil
	}

	r := res.Record
	lines := []line{
		{"姓名", r.Name},
		{"性别", r.Gender},
		{"年龄", printer.Sprintf("%d 岁", r.Age)},
		{"出生日期", r.BirthDate},
		{"身份证号", r.IdentityNumber},
		{"民族", r.Ethnicity},
		{"户籍地址", r.Hometown.Address},
		{"邮编", r.Hometown.Postcode},
		{"手机号", phoneText(r.PrimaryPhone)},
	}
	if r.SecondaryPhone != nil {
		lines = append(lines, line{"副号", phoneText(*r.SecondaryPhone)})
	}
	lines = append(lines,
		line{"工作地址", r.Workplace.Address},
	)
	if r.WorkLocation != nil {
		lines = append(lines, line{"异地工作地址", r.WorkLocation.Address})
	}
	lines = append(lines,
		line{"学历", r.Social.Education},
		line{"就业状态", r.Social.Employment},
		line{"职业", r.Social.Job},
		line{"月薪", salaryText(r.Social.Salary)},
		line{"身高", r.Physical.Height},
		line{"体重", r.Physical.Weight},
		line{"血型", r.Physical.BloodType},
		line{"MBTI", r.MBTI},
		line{"银行", r.BankName},
		line{"银行卡号", r.BankCard},
		line{"用户名", r.Username},
		line{"密码", r.Password},
		line{"邮箱", r.Email},
		line{"临时邮箱", r.TempEmail},
		line{"临时邮箱收件箱", r.TempEmailURL},
		line{"安全问题", r.Social.SecurityQuestion},
		line{"安全答案", r.Social.SecurityAnswer},
		line{"GUID", r.Internet.GUID},
		line{"操作系统", r.Internet.OS},
		line{"User-Agent", r.Internet.UserAgent},
		line{"个人主页", r.Internet.WebHome},
	)
	if r.LifeStory != "" {
		lines = append(lines, line{"人生故事", r.LifeStory})
	}
	if r.AvatarURL != "" {
		lines = append(lines, line{"头像", r.AvatarURL})
	}
	return lines, nil
}

func phoneText(p persona.Phone) string {
	if p.Location == "" {
		return p.Number
	}
	return p.Number + " (" + p.Location + ")"
}

// salaryText groups the digits of a generated "￥N" salary. Other values,
// such as overrides, print unchanged.
func salaryText(s string) string {
	digits, ok := strings.CutPrefix(s, "￥")
	if !ok {
		return s
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return s
	}
	return printer.Sprintf("￥%d", n)
}

// flatten appends one line per leaf of m, keyed by its dotted path.
func flatten(prefix string, m map[string]any, lines *[]line) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if child, ok := m[k].(map[string]any); ok {
			flatten(path, child, lines)
			continue
		}
		*lines = append(*lines, line{path, fmt.Sprint(m[k])})
	}
}
