package classify

import "github.com/ppiankov/creditlens/internal/model"

// Rule maps any of its keywords to a category. Rules are evaluated in order
// and the first rule with a matching keyword wins.
type Rule struct {
	Category model.RoleCategory
	Keywords []string
}

// DefaultRules returns the curated taxonomy for studio credits.
//
// Ordering is the tie-break: contractor and partner-studio credits come first,
// support and outsourced disciplines come before the core disciplines that
// share vocabulary with them ("Brand Designer", "BI Developer", "Infrastructure
// Engineer"), and leadership comes last so that "Lead Designer" stays in design.
func DefaultRules() []Rule {
	return []Rule{
		{model.RoleSpecialThanks, []string{"thanks", "babies", "in memory of", "dedicated to"}},
		{model.RoleExternal, []string{"contractor", "external", "outsourced", "outsourcing", "sega",
			"keywords", "platige", "mediamill", "universe", "foley"}},
		{model.RoleArt, []string{"pr art", "pr drawings", "concept art"}},
		{model.RoleProgramming, []string{"audio programmer", "sound programmer", "network programmer", "web programmer"}},
		{model.RoleLocalization, []string{"localisation", "localization", "translation", "translated", "translator", "lqa"}},
		{model.RoleMoCap, []string{"motion capture", "mocap", "performance capture", "fight", "stunt", "choreographer", "choreography"}},
		{model.RoleVoices, []string{"voice", "voiceover", "actor", "actress", "cast", "casting"}},
		{model.RoleMusic, []string{"music", "composer", "conductor", "conducting", "orchestra", "orchestration", "orchestrator",
			"orchestrated", "choir", "musician", "singer", "vocals", "lyrics", "score", "percussion", "recording"}},
		{model.RoleBusinessIntelligence, []string{"bi", "business intelligence", "business analyst"}},
		{model.RoleData, []string{"data", "analytics", "user research", "data analyst"}},
		{model.RoleBrand, []string{"brand"}},
		{model.RolePR, []string{"pr", "public relations", "communications", "press", "evangelist", "influencer"}},
		{model.RoleMarketing, []string{"marketing"}},
		{model.RoleCommunity, []string{"community", "forum", "social media", "player experience", "live feedback"}},
		{model.RoleSales, []string{"sales", "account manager", "commercial"}},
		{model.RoleFinance, []string{"finance", "financial", "accountant", "accounts", "accounting", "payable", "purchasing", "procurement"}},
		{model.RoleIT, []string{"it", "helpdesk", "service desk", "support desk", "system administrator", "sysadmin",
			"network", "webmaster", "web developer", "web development", "linux administrator"}},
		{model.RoleInfrastructure, []string{"infrastructure", "devops", "cloud"}},
		{model.RoleOperations, []string{"hr", "human resources", "recruitment", "recruiter", "relocation", "facilities",
			"front of house", "operations", "operating officer", "studio support", "talent", "csr", "event manager",
			"administrator", "office manager", "vice president", "development management"}},
		{model.RoleResearch, []string{"historical research", "historical consultant", "historian", "research", "researcher", "consultant"}},
		{model.RoleContent, []string{"content producer", "content editor", "additional content", "manual", "editorial"}},
		{model.RoleQA, []string{"qa", "q a", "quality assurance", "tester", "testing", "test", "compliance", "certification"}},
		{model.RoleAudioEngineering, []string{"audio", "sound", "foley", "sfx", "dialogue editor", "mixing"}},
		{model.RoleArt, []string{"art", "artist", "animator", "animation", "graphics", "texture", "concept", "modeller",
			"modeler", "modelling", "modeling", "vfx", "visual effects", "lighting", "cinematic", "illustrator",
			"illustration", "portraits", "drawings"}},
		{model.RoleDesign, []string{"technical designer", "technical design"}},
		{model.RoleProgramming, []string{"programmer", "programming", "engineer", "engineering", "developer", "coder",
			"code", "tools", "technical", "technician", "software", "ai", "pathfinding", "multiplayer", "installation"}},
		{model.RoleDesign, []string{"design", "designer", "scenario", "level", "balance", "balancing", "gameplay",
			"campaign", "tutorial", "scripter", "scripting"}},
		{model.RoleWriting, []string{"writer", "writing", "narrative", "script", "story", "lore", "dialog", "dialogue"}},
		{model.RoleProduction, []string{"producer", "production", "project manager", "project management",
			"development manager", "scrum", "release manager"}},
		{model.RoleLeadership, []string{"director", "head", "lead", "chief", "president", "founder", "ceo", "cto"}},
	}
}

// ScopePolicy decides which categories count toward the curated cross-section.
// Categories missing from the policy are out of scope.
type ScopePolicy map[model.RoleCategory]bool

// DefaultScopePolicy keeps the core technical and creative development roles
func DefaultScopePolicy() ScopePolicy {
	policy := make(ScopePolicy, len(model.AllRoleCategories()))
	for _, c := range model.AllRoleCategories() {
		policy[c] = false
	}
	for _, c := range []model.RoleCategory{
		model.RoleProgramming,
		model.RoleArt,
		model.RoleDesign,
		model.RoleAudioEngineering,
		model.RoleProduction,
		model.RoleWriting,
		model.RoleQA,
		model.RoleLeadership,
	} {
		policy[c] = true
	}
	return policy
}

// InScope reports whether the category is in scope
func (p ScopePolicy) InScope(c model.RoleCategory) bool {
	return p[c]
}

// With returns a copy of the policy with overrides applied.
// Override keys are category names as accepted by model.ParseRoleCategory.
func (p ScopePolicy) With(overrides map[string]bool) (ScopePolicy, error) {
	out := make(ScopePolicy, len(p)+len(overrides))
	for c, in := range p {
		out[c] = in
	}
	for name, in := range overrides {
		c, err := model.ParseRoleCategory(name)
		if err != nil {
			return nil, err
		}
		out[c] = in
	}
	return out, nil
}

// InScopeCategories lists the in-scope categories in declaration order
func (p ScopePolicy) InScopeCategories() []model.RoleCategory {
	var out []model.RoleCategory
	for _, c := range model.AllRoleCategories() {
		if p[c] {
			out = append(out, c)
		}
	}
	return out
}
