package model

import (
	"fmt"
	"strings"
)

// RoleCategory is a coarse classification bucket for a free-text job title
type RoleCategory string

const (
	RoleProgramming          RoleCategory = "programming"
	RoleArt                  RoleCategory = "art"
	RoleDesign               RoleCategory = "design"
	RoleAudioEngineering     RoleCategory = "audio_engineering"
	RoleProduction           RoleCategory = "production"
	RoleWriting              RoleCategory = "writing"
	RoleQA                   RoleCategory = "qa"
	RoleLeadership           RoleCategory = "leadership"
	RoleData                 RoleCategory = "data"
	RoleBusinessIntelligence RoleCategory = "business_intelligence"
	RoleIT                   RoleCategory = "it"
	RoleInfrastructure       RoleCategory = "infrastructure"
	RolePR                   RoleCategory = "pr"
	RoleMarketing            RoleCategory = "marketing"
	RoleSales                RoleCategory = "sales"
	RoleBrand                RoleCategory = "brand"
	RoleMusic                RoleCategory = "music"
	RoleVoices               RoleCategory = "voices"
	RoleMoCap                RoleCategory = "mocap"
	RoleLocalization         RoleCategory = "localization"
	RoleOperations           RoleCategory = "operations"
	RoleCommunity            RoleCategory = "community"
	RoleContent              RoleCategory = "content"
	RoleFinance              RoleCategory = "finance"
	RoleResearch             RoleCategory = "research"
	RoleSpecialThanks        RoleCategory = "special_thanks"
	RoleExternal             RoleCategory = "external" // Contractors and partner studios
	RoleOther                RoleCategory = "other"    // Unclassified
)

var allRoleCategories = []RoleCategory{
	RoleProgramming, RoleArt, RoleDesign, RoleAudioEngineering, RoleProduction, RoleWriting, RoleQA,
	RoleLeadership, RoleData, RoleBusinessIntelligence, RoleIT, RoleInfrastructure, RolePR, RoleMarketing,
	RoleSales, RoleBrand, RoleMusic, RoleVoices, RoleMoCap, RoleLocalization, RoleOperations, RoleCommunity,
	RoleContent, RoleFinance, RoleResearch, RoleSpecialThanks, RoleExternal, RoleOther,
}

// AllRoleCategories returns every category in declaration order
func AllRoleCategories() []RoleCategory {
	out := make([]RoleCategory, len(allRoleCategories))
	copy(out, allRoleCategories)
	return out
}

// ParseRoleCategory parses a category name (case-insensitive, "-" and " " accepted for "_")
func ParseRoleCategory(s string) (RoleCategory, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "_", " ", "_", "/", "_").Replace(key)
	if key == "unclassified" {
		return RoleOther, nil
	}
	for _, c := range allRoleCategories {
		if string(c) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown role category %q", s)
}

// Valid reports whether c is one of the closed set of categories
func (c RoleCategory) Valid() bool {
	for _, known := range allRoleCategories {
		if c == known {
			return true
		}
	}
	return false
}
