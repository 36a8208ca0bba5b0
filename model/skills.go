package model

// Skill ids as stored in player_skills.skillid.
const (
	SkillFist = iota
	SkillClub
	SkillSword
	SkillAxe
	SkillDistance
	SkillShielding
	SkillFishing
)

var skillNames = map[int]string{
	SkillFist:      "fist",
	SkillClub:      "club",
	SkillSword:     "sword",
	SkillAxe:       "axe",
	SkillDistance:  "distance",
	SkillShielding: "shielding",
	SkillFishing:   "fishing",
}

func SkillName(id int) string {
	if name, ok := skillNames[id]; ok {
		return name
	}
	return "unknown"
}

// SkillByName resolves a highscore category to a skill id.
func SkillByName(name string) (int, bool) {
	for id, n := range skillNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// Highscore categories that are not skills.
const (
	CategoryLevel = "level"
	CategoryMagic = "magic"
)

func ValidCategory(category string) bool {
	if category == CategoryLevel || category == CategoryMagic {
		return true
	}
	_, ok := SkillByName(category)
	return ok
}
