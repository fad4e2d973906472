package model

import "fmt"

type DashboardName string

const (
	DashboardPolitical DashboardName = "political"
	DashboardSports    DashboardName = "sports"
)

// Channel is a tracked channel. Name is the label stamped on fetched videos.
type Channel struct {
	Name string           `json:"name"`
	ID   YoutubeChannelID `json:"id"`
}

type Dashboard struct {
	Name     DashboardName `json:"name"`
	Title    string        `json:"title"`
	Focus    string        `json:"focus"`
	Note     string        `json:"-"`
	Channels []Channel     `json:"channels"`
	Defaults []string      `json:"defaults"`
}

// ChannelID resolves a channel label through the static directory.
func (d Dashboard) ChannelID(name string) (YoutubeChannelID, bool) {
	for _, c := range d.Channels {
		if c.Name == name {
			return c.ID, true
		}
	}
	return "", false
}

func (d Dashboard) ChannelNames() []string {
	names := make([]string, 0, len(d.Channels))
	for _, c := range d.Channels {
		names = append(names, c.Name)
	}
	return names
}

type Dashboards map[DashboardName]Dashboard

func (ds Dashboards) Find(name string) (Dashboard, error) {
	if name == "" {
		name = string(DashboardPolitical)
	}
	d, ok := ds[DashboardName(name)]
	if !ok {
		return Dashboard{}, fmt.Errorf("unknown dashboard %q", name)
	}
	return d, nil
}

func DefaultDashboards() Dashboards {
	return Dashboards{
		DashboardPolitical: {
			Name:  DashboardPolitical,
			Title: "Political commentary",
			Focus: "conservative political commentary",
			Note:  "ALL content is political, so don't mention that politics works - be VERY SPECIFIC about what types of political content work.",
			Channels: []Channel{
				{"Megyn Kelly", "UCzJXNzqz6VMHSNInQt_7q6w"},
				{"Bill Maher", "UCy6kyFxaMqGtpE3pQTflK8A"},
				{"The Daily Show", "UCwWhs_6x42TyRM4Wstoq8HA"},
				{"David Pakman Show", "UCvixJtaXuNdMPUGdOPcY8Ag"},
				{"Michael Knowles", "UCr4kgAUTFkGIwlWSodg43QA"},
				{"The Weekly Show with Jon Stewart", "UCQlJ7XpBtiMLKNSd4RAJmRQ"},
				{"Brian Tyler Cohen", "UCQANb2YPwAtK-IQJrLaaUFw"},
				{"Nick Freitas", "UCPFzA28Hw9tYDxXAeidDk6w"},
				{"Matt Walsh", "UCO01ytfzgXYy4glnPJm4PPQ"},
				{"Ben Shapiro", "UCnQC_G5Xsjhp9fEJKuIcrSw"},
				{"Timcast IRL", "UCLwNTXWEjVd2qIHLcXxQWxA"},
				{"Benny Johnson", "UCLdP3jmBYe9lAZQbY6OSYjw"},
				{"Candace Owens", "UCL0u5uz7KZ9q-pe-VC8TY-w"},
				{"Dr. Jordan B. Peterson", "UCL_f53ZEJxp8TtlOkHwMV9Q"},
				{"The Rubin Report", "UCJdKr0Bgd_5saZYqLCa9mng"},
				{"Tucker Carlson", "UCGttrUON87gWfU6dMWm1fcA"},
				{"Amala Ekpunobi", "UCgEvEKgmQ-CHPIeOSaGCffw"},
				{"The Bulwark", "UCG4Hp1KbGw4e02N7FpPXDgQ"},
				{"Charlie Kirk", "UCfaIu2jO-fppCQV_lchCRIQ"},
				{"Brett Cooper", "UCdFcGPb4xQ6X4QOoRU6ROYw"},
				{"Trish Regan", "UCBlMo25WDUKJNQ7G8sAk4Zw"},
				{"The Officer Tatum", "UCaYw_yJ_YLPEv6zR2c7hgHA"},
				{"Piers Morgan Uncensored", "UCatt7TBjfBkiJWx8khav_Gg"},
				{"MeidasTouch", "UC9r9HYFxEQOBXSopFS61ZWg"},
				{"Destiny", "UC554eY5jNUfDq3yDOJYirOQ"},
				{"LastWeekTonight", "UC3XTzVzaHQEd30rQbuvCtTQ"},
				{"The Majority Report w/ Sam Seder", "UC-3jIAlnQmbbVMV6gR7K8aQ"},
			},
			Defaults: []string{"Ben Shapiro", "Matt Walsh", "Michael Knowles"},
		},
		DashboardSports: {
			Name:  DashboardSports,
			Title: "Sports content",
			Focus: "sports and college football commentary",
			Note:  "ALL content is sports-related, so don't mention that sports content works - be VERY SPECIFIC about what types of sports content, teams, players, or topics work.",
			Channels: []Channel{
				{"Josh Pate's College Football Show", "UCG-q_MDEWqrijzr1VPLEPYg"},
				{"On3", "UCn2g2Wy8uiE9BhDPV4knT7A"},
				{"FortunateYouth", "UCJn33SOv86632dLg_qWIcg"},
				{"Adapt & Respond with RJ Young", "UC2g1DShTjHNcjBQ-PC-4aHA"},
				{"Cover 3 Podcast", "UCODwphyohBn9u8-FWWfbQ7g"},
				{"CFB ON FOX", "UCpwix-O6ceqMgdxhqlynzFA"},
				{"The Film Guy Network", "UCqipe2jOlQZke4AN3-K9DJA"},
				{"Bleacher Report", "UC9-OpMMVoNP5o10_Iyq7Ndw"},
				{"SEC Shorts", "UCUOzVgb9Q8AgZjJlYcLWztQ"},
				{"Locked On College Football", "UCqNQsWmyf0LCFUkr01QZ2LQ"},
				{"Strictly Football", "UCGAOAB1tD432c5pyXMzS-6w"},
				{"College Football City", "UCrjdiWSTYMLEHGYs5yfp56Q"},
				{"MattBeGreat", "UCCQfkgVy-f814HGAwKQFPaw"},
				{"See Ball Get Ball with David Pollack", "UC3-r8FzHqjr-O3KvPU26ZEA"},
				{"Crain & Company", "UC-LeIYApj-NTHYGAzU4cPBQ"},
			},
			Defaults: []string{"Crain & Company", "Josh Pate's College Football Show", "SEC Shorts"},
		},
	}
}

// ChannelID looks a channel up across all dashboards.
func (ds Dashboards) ChannelID(name string) (YoutubeChannelID, bool) {
	for _, d := range ds {
		if id, ok := d.ChannelID(name); ok {
			return id, true
		}
	}
	return "", false
}

// Names returns the dashboard names in a stable order.
func (ds Dashboards) Names() []DashboardName {
	names := make([]DashboardName, 0, len(ds))
	for _, n := range []DashboardName{DashboardPolitical, DashboardSports} {
		if _, ok := ds[n]; ok {
			names = append(names, n)
		}
	}
	return names
}
