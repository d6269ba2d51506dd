package validation

import (
	"strings"

	"questionnaire-api/internal/errs"
	"questionnaire-api/internal/model"
)

// TemplateValidator checks a candidate template tree before persistence.
// It is stateless and safe for concurrent use; construct it once and inject it.
type TemplateValidator struct{}

// TrimNames normalizes every name in the tree to its trimmed form, in place.
// Run it before Validate so the checked values are the persisted values.
func TrimNames(t *model.Template) {
	t.Name = strings.TrimSpace(t.Name)
	for i := range t.Categories {
		cat := &t.Categories[i]
		cat.Name = strings.TrimSpace(cat.Name)
		for j := range cat.SubCategories {
			sub := &cat.SubCategories[j]
			sub.Name = strings.TrimSpace(sub.Name)
			for k := range sub.Topics {
				sub.Topics[k].Name = strings.TrimSpace(sub.Topics[k].Name)
			}
		}
	}
}

// NewTemplateValidator creates a validator.
func NewTemplateValidator() *TemplateValidator {
	return &TemplateValidator{}
}

// Validate walks the tree top-down, left-to-right and fails fast at the first
// violation: template name, then per category its name, duplicate check and
// sub-category count, then per sub-category the same for topics. The whole
// operation is rejected on any violation; nothing is partially accepted.
func (v *TemplateValidator) Validate(t *model.Template) error {
	if msgs := TemplateName(t.Name); len(msgs) > 0 {
		return errs.Validation(msgs...)
	}
	if len(t.Categories) > model.MaxChildren {
		return errs.Validation("A questionnaire can have at most 10 categories")
	}

	catNames := make(map[string]struct{})
	for _, cat := range t.Categories {
		if !nodeNameRe.MatchString(cat.Name) {
			return errs.Validationf("Category's name is not valid: '%s'", cat.Name)
		}
		if _, ok := catNames[cat.Name]; ok {
			return errs.Validationf("כפילות שם קטגוריה: '%s'", cat.Name)
		}
		catNames[cat.Name] = struct{}{}

		if len(cat.SubCategories) > model.MaxChildren {
			return errs.Validationf("לקטגוריה: '%s' יש יותר מ10 תתי קטגוריות", cat.Name)
		}

		subNames := make(map[string]struct{})
		for _, sub := range cat.SubCategories {
			if !nodeNameRe.MatchString(sub.Name) {
				return errs.Validationf("Sub-category's name is not valid: '%s'", sub.Name)
			}
			if _, ok := subNames[sub.Name]; ok {
				return errs.Validationf("כפילויות שם תת קטגוריה: '%s'", sub.Name)
			}
			subNames[sub.Name] = struct{}{}

			if len(sub.Topics) > model.MaxChildren {
				return errs.Validationf("לתת הקטגוריה '%s' יש יותר מ10 נושאים", sub.Name)
			}

			topicNames := make(map[string]struct{})
			for _, topic := range sub.Topics {
				if !nodeNameRe.MatchString(topic.Name) {
					return errs.Validationf("Topic's name is not valid: '%s'", topic.Name)
				}
				if _, ok := topicNames[topic.Name]; ok {
					return errs.Validationf("כפילויות בתת קטגוריה '%s': תחת השם: '%s'", sub.Name, topic.Name)
				}
				topicNames[topic.Name] = struct{}{}
			}
		}
	}
	return nil
}
