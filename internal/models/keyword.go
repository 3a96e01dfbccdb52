package models

// KeywordRule maps a category to the description keywords that imply it.
type KeywordRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// KeywordRulesFile is the top-level shape of a keyword rules YAML file.
type KeywordRulesFile struct {
	Categories []KeywordRule `yaml:"categories"`
}
