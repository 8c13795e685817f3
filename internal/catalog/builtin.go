package catalog

import "time"

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var builtinAuthors = []Author{
	{
		Key:  "chomsky",
		Name: "Ноам Хомский",
		Bio:  "Американский лингвист, философ, политический активист и теоретик. Профессор лингвистики Массачусетского технологического института.",
	},
	{
		Key:  "zinn",
		Name: "Говард Зинн",
		Bio:  "Американский историк, писатель и общественный деятель. Автор книги 'Народная история США'.",
	},
	{
		Key:  "blum",
		Name: "Уильям Блум",
		Bio:  "Американский писатель, историк и критик внешней политики США. Автор книги 'Убийство надежды'.",
	},
	{
		Key:  "parenti",
		Name: "Майкл Паренти",
		Bio:  "Американский политолог и историк. Специализируется на критическом анализе американской политики и медиа.",
	},
	{
		Key:  "pilger",
		Name: "Джон Пилджер",
		Bio:  "Австралийский журналист и документалист. Известен критическими работами о внешней политике западных стран.",
	},
}

var builtinEvents = []Event{
	{Date: date(1953, time.August, 19), Description: "Операция 'Аякс': свержение премьер-министра Ирана Мохаммеда Мосаддыка", AuthorKey: "chomsky"},
	{Date: date(1954, time.June, 18), Description: "Операция в Гватемале: свержение президента Хакобо Арбенса", AuthorKey: "zinn"},
	{Date: date(1961, time.April, 17), Description: "Вторжение в заливе Свиней на Кубе", AuthorKey: "blum"},
	{Date: date(1973, time.September, 11), Description: "Военный переворот в Чили: свержение президента Сальвадора Альенде", AuthorKey: "parenti"},
	{Date: date(1983, time.October, 25), Description: "Вторжение США в Гренаду", AuthorKey: "pilger"},
}

// Builtin returns the compiled-in content tables.
func Builtin() *Catalog {
	c, err := New(builtinAuthors, builtinEvents)
	if err != nil {
		panic(err)
	}
	return c
}
