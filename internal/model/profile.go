package model

// Education is one entry in the profile's education history.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Period string `json:"period"`
}

// Certificate is one certification entry on the profile.
type Certificate struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}

// SkillGroup is a named category of skills ("Languages", "Tools & DevOps").
type SkillGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// Profile is the singleton account record behind the About page.
// It always exists server-side; the client only ever updates it.
type Profile struct {
	Name         string        `json:"name"`
	Bio          string        `json:"bio"`
	About        string        `json:"about"`
	Email        string        `json:"email"`
	GitHub       string        `json:"github,omitempty"`
	Image        string        `json:"image,omitempty"`
	Education    []Education   `json:"education"`
	Certificates []Certificate `json:"certificates"`
	Skills       []SkillGroup  `json:"skills"`
}

// DefaultProfile is the placeholder shown before the first load completes.
func DefaultProfile() Profile {
	return Profile{
		Education:    []Education{},
		Certificates: []Certificate{},
		Skills: []SkillGroup{
			{Category: "Languages", Items: []string{"Python", "Java", "JavaScript", "TypeScript"}},
			{Category: "Tools & DevOps", Items: []string{"Git", "Docker", "VS Code", "IntelliJ IDEA"}},
		},
	}
}

// Clone returns a deep copy for draft editing.
func (p Profile) Clone() Profile {
	out := p
	out.Education = append([]Education(nil), p.Education...)
	out.Certificates = append([]Certificate(nil), p.Certificates...)
	out.Skills = make([]SkillGroup, len(p.Skills))
	for i, g := range p.Skills {
		out.Skills[i] = SkillGroup{
			Category: g.Category,
			Items:    append([]string(nil), g.Items...),
		}
	}
	return out
}
