package service

import "regexp"

// Rule: одна подстановка «сокращение ритейлера → словарь справочника».
//
// В RE2 нет lookahead, поэтому отрицательные условия вынесены в отдельные поля:
// NotFollowedBy проверяется на тексте сразу после совпадения (шаблон должен
// начинаться с ^), Unless — на всей строке до применения правила.
type Rule struct {
	Name          string
	Pattern       *regexp.Regexp
	Replace       string
	NotFollowedBy *regexp.Regexp
	Unless        *regexp.Regexp
}

// Apply заменяет первое подходящее вхождение. Второе значение — сработало ли правило.
func (r Rule) Apply(s string) (string, bool) {
	if r.Unless != nil && r.Unless.MatchString(s) {
		return s, false
	}
	for _, loc := range r.Pattern.FindAllStringSubmatchIndex(s, -1) {
		if r.NotFollowedBy != nil && r.NotFollowedBy.MatchString(s[loc[1]:]) {
			continue
		}
		repl := r.Pattern.ExpandString(nil, r.Replace, s, loc)
		return s[:loc[0]] + string(repl) + s[loc[1]:], true
	}
	return s, false
}

// Rewrite прогоняет правила по порядку, каждое — по результату предыдущих.
func Rewrite(rules []Rule, s string) (string, []string) {
	var fired []string
	for _, r := range rules {
		out, ok := r.Apply(s)
		if ok {
			fired = append(fired, r.Name)
			s = out
		}
	}
	return s, fired
}
