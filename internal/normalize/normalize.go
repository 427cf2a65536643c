// Package normalize defensively reshapes decoded API payloads into
// well-formed records. The backend contract is not enforced at compile
// time from the client's side, so every boundary-crossing payload goes
// through here before it enters application state. All functions are
// pure and total: any input shape, including nil, yields a usable record.
package normalize

import (
	"strings"

	"github.com/DongjuLee0528/portfolio-admin/internal/model"
)

// Project coerces an arbitrary decoded JSON value into a Project.
// Array fields are always non-nil afterwards; a non-numeric id resets
// to 0 (the unsaved-draft sentinel). Legacy records that carry
// githubLinks/demoLink instead of the unified links field are folded
// into the links shape.
func Project(data any) model.Project {
	obj, ok := data.(map[string]any)
	if !ok {
		return model.Project{
			Tags:  []string{},
			Links: []model.ProjectLink{},
			QnA:   []model.QnA{},
		}
	}

	p := model.Project{
		ID:          asInt(obj["id"]),
		Title:       asString(obj["title"]),
		Category:    asString(obj["category"]),
		Status:      asStatus(obj["status"]),
		Description: asString(obj["description"]),
		Tags:        asStrings(obj["tags"]),
		Image:       asString(obj["image"]),
		Links:       asLinks(obj["links"]),
		QnA:         asQnA(obj["qna"]),
	}

	// Legacy shape: separate githubLinks array plus a lone demoLink.
	if len(p.Links) == 0 {
		p.Links = asLinks(obj["githubLinks"])
	}
	if demo := strings.TrimSpace(asString(obj["demoLink"])); demo != "" {
		p.Links = append(p.Links, model.ProjectLink{Label: "Demo", URL: demo})
	}

	return p
}

// Projects coerces a decoded JSON value into a slice of Projects.
// Anything that is not an array yields an empty slice.
func Projects(data any) []model.Project {
	arr, ok := data.([]any)
	if !ok {
		return []model.Project{}
	}
	out := make([]model.Project, len(arr))
	for i, raw := range arr {
		out[i] = Project(raw)
	}
	return out
}

// Profile coerces an arbitrary decoded JSON value into a Profile with
// the same always-array guarantee as Project.
func Profile(data any) model.Profile {
	obj, ok := data.(map[string]any)
	if !ok {
		return model.Profile{
			Education:    []model.Education{},
			Certificates: []model.Certificate{},
			Skills:       []model.SkillGroup{},
		}
	}

	return model.Profile{
		Name:         asString(obj["name"]),
		Bio:          asString(obj["bio"]),
		About:        asString(obj["about"]),
		Email:        asString(obj["email"]),
		GitHub:       asString(obj["github"]),
		Image:        asString(obj["image"]),
		Education:    asEducation(obj["education"]),
		Certificates: asCertificates(obj["certificates"]),
		Skills:       asSkills(obj["skills"]),
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asInt accepts the numeric types encoding/json can produce. Anything
// else resets to 0.
func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func asStatus(v any) string {
	if asString(v) == model.StatusPublished {
		return model.StatusPublished
	}
	return model.StatusDraft
}

func asStrings(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func asLinks(v any) []model.ProjectLink {
	arr, ok := v.([]any)
	if !ok {
		return []model.ProjectLink{}
	}
	out := make([]model.ProjectLink, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.ProjectLink{
			Label:       asString(obj["label"]),
			URL:         asString(obj["url"]),
			Description: asString(obj["description"]),
		})
	}
	return out
}

func asQnA(v any) []model.QnA {
	arr, ok := v.([]any)
	if !ok {
		return []model.QnA{}
	}
	out := make([]model.QnA, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.QnA{
			Question: asString(obj["question"]),
			Answer:   asString(obj["answer"]),
		})
	}
	return out
}

func asEducation(v any) []model.Education {
	arr, ok := v.([]any)
	if !ok {
		return []model.Education{}
	}
	out := make([]model.Education, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Education{
			School: asString(obj["school"]),
			Degree: asString(obj["degree"]),
			Period: asString(obj["period"]),
		})
	}
	return out
}

func asCertificates(v any) []model.Certificate {
	arr, ok := v.([]any)
	if !ok {
		return []model.Certificate{}
	}
	out := make([]model.Certificate, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.Certificate{
			Name:   asString(obj["name"]),
			Issuer: asString(obj["issuer"]),
			Date:   asString(obj["date"]),
		})
	}
	return out
}

func asSkills(v any) []model.SkillGroup {
	arr, ok := v.([]any)
	if !ok {
		return []model.SkillGroup{}
	}
	out := make([]model.SkillGroup, 0, len(arr))
	for _, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, model.SkillGroup{
			Category: asString(obj["category"]),
			Items:    asStrings(obj["items"]),
		})
	}
	return out
}
