package models

// Skills a drill item can belong to
const (
	SkillWriting  = "writing"
	SkillSpeaking = "speaking"
)

// Question answer modes
const (
	// ModeClick is a multiple-choice question; answers are matched exactly
	ModeClick = "click"
	// ModeTyping is a free-text question; answers are matched after normalization
	ModeTyping = "typing"
)

// Content modules
const (
	ModuleLexicon = "lexicon"
	ModuleIdiom   = "idiom"
	ModuleVocab   = "vocab"
)

// ValidSkill reports whether s is a known skill
func ValidSkill(s string) bool {
	return s == SkillWriting || s == SkillSpeaking
}

// ValidMode reports whether m is a known answer mode
func ValidMode(m string) bool {
	return m == ModeClick || m == ModeTyping
}

// ValidModule reports whether m is a known content module
func ValidModule(m string) bool {
	return m == ModuleLexicon || m == ModuleIdiom || m == ModuleVocab
}
