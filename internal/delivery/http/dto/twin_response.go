package dto

import (
	"time"

	"skill-twin/internal/domain/twin"

	"github.com/google/uuid"
)

type SkillNodeResponse struct {
	SkillID         uuid.UUID `json:"skill_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	MasteryLevel    float64   `json:"mastery_level"`
	ConfidenceScore float64   `json:"confidence_score"`
	IsGap           bool      `json:"is_gap"`
	GapSeverity     *float64  `json:"gap_severity,omitempty"`
	Source          string    `json:"source"`
	LastUpdated     time.Time `json:"last_updated"`
}

type ConnectionResponse struct {
	SourceSkillID uuid.UUID `json:"source_skill_id"`
	TargetSkillID uuid.UUID `json:"target_skill_id"`
	Type          string    `json:"type"`
	Strength      float64   `json:"strength"`
}

type CategorySummaryResponse struct {
	CategoryID     uuid.UUID   `json:"category_id"`
	CategoryName   string      `json:"category_name"`
	TotalSkills    int         `json:"total_skills"`
	MasteredSkills int         `json:"mastered_skills"`
	AverageMastery float64     `json:"average_mastery"`
	SkillIDs       []uuid.UUID `json:"skill_ids"`
}

type TwinResponse struct {
	UserID              uuid.UUID                 `json:"user_id"`
	Nodes               []SkillNodeResponse       `json:"nodes"`
	Connections         []ConnectionResponse      `json:"connections"`
	TotalSkills         int                       `json:"total_skills"`
	AverageMastery      float64                   `json:"average_mastery"`
	TopSkills           []SkillNodeResponse       `json:"top_skills"`
	WeakestSkills       []SkillNodeResponse       `json:"weakest_skills"`
	CategorySummaries   []CategorySummaryResponse `json:"category_summaries"`
	ProfileCompleteness int                       `json:"profile_completeness"`
	DataFreshness       string                    `json:"data_freshness"`
	GeneratedAt         time.Time                 `json:"generated_at"`
}

func NewTwinResponse(s twin.Snapshot) TwinResponse {
	nodes := make([]SkillNodeResponse, 0, len(s.Nodes))
	for _, n := range s.Nodes {
		nodes = append(nodes, newSkillNodeResponse(n))
	}
	top := make([]SkillNodeResponse, 0, len(s.TopSkills))
	for _, n := range s.TopSkills {
		top = append(top, newSkillNodeResponse(n))
	}
	weakest := make([]SkillNodeResponse, 0, len(s.WeakestSkills))
	for _, n := range s.WeakestSkills {
		weakest = append(weakest, newSkillNodeResponse(n))
	}
	conns := make([]ConnectionResponse, 0, len(s.Connections))
	for _, c := range s.Connections {
		conns = append(conns, ConnectionResponse{
			SourceSkillID: c.SourceSkillID,
			TargetSkillID: c.TargetSkillID,
			Type:          string(c.Type),
			Strength:      c.Strength,
		})
	}
	cats := make([]CategorySummaryResponse, 0, len(s.CategorySummaries))
	for _, cs := range s.CategorySummaries {
		cats = append(cats, CategorySummaryResponse{
			CategoryID:     cs.CategoryID,
			CategoryName:   cs.CategoryName,
			TotalSkills:    cs.TotalSkills,
			MasteredSkills: cs.MasteredSkills,
			AverageMastery: cs.AverageMastery,
			SkillIDs:       cs.SkillIDs,
		})
	}

	return TwinResponse{
		UserID:              s.UserID,
		Nodes:               nodes,
		Connections:         conns,
		TotalSkills:         s.TotalSkills,
		AverageMastery:      s.AverageMastery,
		TopSkills:           top,
		WeakestSkills:       weakest,
		CategorySummaries:   cats,
		ProfileCompleteness: s.ProfileCompleteness,
		DataFreshness:       string(s.DataFreshness),
		GeneratedAt:         s.GeneratedAt,
	}
}

func newSkillNodeResponse(n twin.SkillNode) SkillNodeResponse {
	return SkillNodeResponse{
		SkillID:         n.SkillID,
		Name:            n.Name,
		Category:        n.Category,
		MasteryLevel:    n.MasteryLevel,
		ConfidenceScore: n.ConfidenceScore,
		IsGap:           n.IsGap,
		GapSeverity:     n.GapSeverity,
		Source:          n.Source,
		LastUpdated:     n.LastUpdated,
	}
}
