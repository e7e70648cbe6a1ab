package dtos

import "github.com/JuandaBeta1990/BDMIKISUPABASE/internal/analytics"

type DashboardStatsResponse struct {
	TotalProjects   int   `json:"total_projects"`
	TotalUnits      int64 `json:"total_units"`
	TotalZones      int   `json:"total_zones"`
	AvailableUnits  int   `json:"available_units"`
	SoldUnits       int   `json:"sold_units"`
	ReservedUnits   int   `json:"reserved_units"`
	TotalDevelopers int   `json:"total_developers"`
}

type ZoneProjectCount struct {
	ZoneName     string `json:"zone_name"`
	ProjectCount int    `json:"project_count"`
}

type StatusUnitCount struct {
	Status    string `json:"status"`
	UnitCount int    `json:"unit_count"`
}

type DailyMessageCount struct {
	Date  string `json:"fecha"`
	Total int    `json:"total"`
}

type UserMessageCount struct {
	User  string `json:"usuario"`
	Total int    `json:"total"`
}

type KeywordCount struct {
	Keyword string `json:"palabra"`
	Total   int    `json:"total"`
}

func NewZoneProjectCounts(groups []analytics.GroupCount) []ZoneProjectCount {
	out := make([]ZoneProjectCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, ZoneProjectCount{ZoneName: g.Label, ProjectCount: g.Count})
	}
	return out
}

func NewStatusUnitCounts(groups []analytics.GroupCount) []StatusUnitCount {
	out := make([]StatusUnitCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, StatusUnitCount{Status: g.Label, UnitCount: g.Count})
	}
	return out
}

func NewDailyMessageCounts(groups []analytics.GroupCount) []DailyMessageCount {
	out := make([]DailyMessageCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, DailyMessageCount{Date: g.Label, Total: g.Count})
	}
	return out
}

func NewUserMessageCounts(groups []analytics.GroupCount) []UserMessageCount {
	out := make([]UserMessageCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, UserMessageCount{User: g.Label, Total: g.Count})
	}
	return out
}

func NewKeywordCounts(groups []analytics.GroupCount) []KeywordCount {
	out := make([]KeywordCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, KeywordCount{Keyword: g.Label, Total: g.Count})
	}
	return out
}
