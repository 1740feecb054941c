package model

// Team is a static catalog entry for a KBO club. Like the badge catalog the
// team list is fixed at build time; users reference teams by ID only.
type Team struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Emoji     string `json:"emoji"`
	Color     string `json:"primaryColor"`
}

var Teams = []Team{
	{ID: "doosan", Name: "두산 베어스", ShortName: "두산", Emoji: "🐻", Color: "#131230"},
	{ID: "lg", Name: "LG 트윈스", ShortName: "LG", Emoji: "⚾", Color: "#C30452"},
	{ID: "samsung", Name: "삼성 라이온즈", ShortName: "삼성", Emoji: "🦁", Color: "#074CA1"},
	{ID: "kia", Name: "KIA 타이거즈", ShortName: "KIA", Emoji: "🐯", Color: "#EA0029"},
	{ID: "kt", Name: "KT 위즈", ShortName: "KT", Emoji: "🧙", Color: "#000000"},
	{ID: "ssg", Name: "SSG 랜더스", ShortName: "SSG", Emoji: "🚀", Color: "#CE0E2D"},
	{ID: "lotte", Name: "롯데 자이언츠", ShortName: "롯데", Emoji: "🌊", Color: "#041E42"},
	{ID: "hanwha", Name: "한화 이글스", ShortName: "한화", Emoji: "🦅", Color: "#FC4E00"},
	{ID: "nc", Name: "NC 다이노스", ShortName: "NC", Emoji: "🦕", Color: "#315288"},
	{ID: "kiwoom", Name: "키움 히어로즈", ShortName: "키움", Emoji: "🦸", Color: "#570514"},
}

var TeamByID = func() map[string]Team {
	m := make(map[string]Team, len(Teams))
	for _, t := range Teams {
		m[t.ID] = t
	}
	return m
}()
