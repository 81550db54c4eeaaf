package types

import "github.com/jonathan/resume-tailor/internal/parsing"

// JobAnalysis is the structured reading of a job description.
type JobAnalysis struct {
	Company             string   `json:"company"`
	Role                string   `json:"role"`
	Department          string   `json:"department,omitempty"`
	Seniority           string   `json:"seniority,omitempty"`
	MustHave            []string `json:"must_have"`
	NiceToHave          []string `json:"nice_to_have"`
	ATSKeywords         []string `json:"ats_keywords"`
	SoftSkills          []string `json:"soft_skills"`
	KeyResponsibilities []string `json:"key_responsibilities"`
	Industry            string   `json:"industry,omitempty"`
}

// JobAnalysisFromRecord reads an analysis response. Company and role default
// to "Unknown".
func JobAnalysisFromRecord(rec parsing.Record) JobAnalysis {
	reqs := rec.Map("requirements")
	return JobAnalysis{
		Company:             rec.StringOr("company", "Unknown"),
		Role:                rec.StringOr("role", "Unknown"),
		Department:          rec.String("department"),
		Seniority:           rec.String("seniority"),
		MustHave:            reqs.Strings("must_have"),
		NiceToHave:          reqs.Strings("nice_to_have"),
		ATSKeywords:         rec.Strings("ats_keywords"),
		SoftSkills:          rec.Strings("soft_skills"),
		KeyResponsibilities: rec.Strings("key_responsibilities"),
		Industry:            rec.String("industry"),
	}
}

// CompanyResearch is the research summary for a company and role.
type CompanyResearch struct {
	Overview             string   `json:"company_overview"`
	Culture              string   `json:"company_culture"`
	HiringProfile        string   `json:"hiring_profile"`
	RoleInsights         string   `json:"role_insights"`
	WhatMakesYouRelevant string   `json:"what_makes_you_relevant"`
	ResumeTips           []string `json:"resume_tips"`
	KeywordsToEmphasize  []string `json:"keywords_to_emphasize"`
	ToneRecommendation   string   `json:"tone_recommendation"`
	SourcesUsed          []string `json:"sources_used"`
}

// CompanyResearchFromRecord reads a research response.
func CompanyResearchFromRecord(rec parsing.Record) CompanyResearch {
	return CompanyResearch{
		Overview:             rec.String("company_overview"),
		Culture:              rec.String("company_culture"),
		HiringProfile:        rec.String("hiring_profile"),
		RoleInsights:         rec.String("role_insights"),
		WhatMakesYouRelevant: rec.String("what_makes_you_relevant"),
		ResumeTips:           rec.Strings("resume_tips"),
		KeywordsToEmphasize:  rec.Strings("keywords_to_emphasize"),
		ToneRecommendation:   rec.String("tone_recommendation"),
		SourcesUsed:          rec.Strings("sources_used"),
	}
}

// Empty reports whether no field was filled.
func (c CompanyResearch) Empty() bool {
	return c.Overview == "" && c.Culture == "" && c.HiringProfile == "" &&
		c.RoleInsights == "" && c.WhatMakesYouRelevant == "" &&
		len(c.ResumeTips) == 0 && len(c.KeywordsToEmphasize) == 0 &&
		c.ToneRecommendation == ""
}

// MatchNotes is the model's self-assessment attached to a tailored document.
type MatchNotes struct {
	KeywordsUsed    []string `json:"keywords_used"`
	KeywordsMissing []string `json:"keywords_missing"`
	MatchScore      string   `json:"match_score"`
	Suggestions     []string `json:"suggestions"`
}

// MatchNotesFromRecord reads the "match_notes" object of a tailoring response.
func MatchNotesFromRecord(rec parsing.Record) MatchNotes {
	return MatchNotes{
		KeywordsUsed:    rec.Strings("keywords_used"),
		KeywordsMissing: rec.Strings("keywords_missing"),
		MatchScore:      rec.String("match_score"),
		Suggestions:     rec.Strings("suggestions"),
	}
}

// ScoreLabel returns the match score, or "—" when the model gave none.
func (m MatchNotes) ScoreLabel() string {
	if m.MatchScore == "" {
		return "—"
	}
	return m.MatchScore
}
