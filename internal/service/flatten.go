package service

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"questionnaire-api/internal/model"
)

// collectRefs gathers every question-collection id referenced anywhere in the
// template tree, deduplicated in first-seen order, so the whole load is a
// single $in query.
func collectRefs(t *model.Template) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{})
	var refs []primitive.ObjectID

	add := func(ids []primitive.ObjectID) {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			refs = append(refs, id)
		}
	}

	for _, cat := range t.Categories {
		add(cat.QuestionRefs)
		for _, sub := range cat.SubCategories {
			add(sub.QuestionRefs)
			for _, topic := range sub.Topics {
				add(topic.QuestionRefs)
			}
		}
	}
	return refs
}

// copyQuestion returns an independent copy, so later edits to the source
// collection cannot reach a stored snapshot.
func copyQuestion(q model.Question) model.Question {
	out := q
	out.Choice = append([]string(nil), q.Choice...)
	if q.Answer != nil {
		a := *q.Answer
		out.Answer = &a
	}
	return out
}

// flattenQuestions replaces a reference list with the concatenation of the
// referenced collections' questions, in reference order. Dangling refs (a
// collection deleted after being added to a template) are skipped, the same
// way an unresolvable populate drops out. Always returns a non-nil slice so
// the snapshot serializes an empty list rather than null.
func flattenQuestions(refs []primitive.ObjectID, cols map[primitive.ObjectID]*model.QuestionsCol) []model.Question {
	questions := make([]model.Question, 0)
	for _, ref := range refs {
		col, ok := cols[ref]
		if !ok {
			continue
		}
		for _, q := range col.Questions {
			questions = append(questions, copyQuestion(q))
		}
	}
	return questions
}

// snapshotTemplate materializes the flattened, self-contained snapshot of a
// template: a structural clone of the tree with every reference list replaced
// by a flat question sequence. The snapshot holds no live references back to
// the template or the collections.
func snapshotTemplate(t *model.Template, cols map[primitive.ObjectID]*model.QuestionsCol) *model.TemplateSnapshot {
	snap := &model.TemplateSnapshot{
		Name:       t.Name,
		Categories: make([]model.CategorySnapshot, 0, len(t.Categories)),
	}

	for _, cat := range t.Categories {
		catSnap := model.CategorySnapshot{
			ID:        cat.ID,
			Name:      cat.Name,
			Questions: flattenQuestions(cat.QuestionRefs, cols),
		}
		for _, sub := range cat.SubCategories {
			subSnap := model.SubCategorySnapshot{
				ID:        sub.ID,
				Name:      sub.Name,
				Questions: flattenQuestions(sub.QuestionRefs, cols),
			}
			for _, topic := range sub.Topics {
				subSnap.Topics = append(subSnap.Topics, model.TopicSnapshot{
					ID:        topic.ID,
					Name:      topic.Name,
					Questions: flattenQuestions(topic.QuestionRefs, cols),
				})
			}
			catSnap.SubCategories = append(catSnap.SubCategories, subSnap)
		}
		snap.Categories = append(snap.Categories, catSnap)
	}
	return snap
}

// resolveTemplate replaces every reference list with the full referenced
// collection documents, in reference order. This is the GET /template/:id view;
// unlike a snapshot it keeps the collection boundaries visible.
func resolveTemplate(t *model.Template, cols map[primitive.ObjectID]*model.QuestionsCol) *model.ResolvedTemplate {
	resolveRefs := func(refs []primitive.ObjectID) []model.QuestionsCol {
		out := make([]model.QuestionsCol, 0, len(refs))
		for _, ref := range refs {
			if col, ok := cols[ref]; ok {
				out = append(out, *col)
			}
		}
		return out
	}

	view := &model.ResolvedTemplate{
		ID:         t.ID,
		Name:       t.Name,
		Categories: make([]model.ResolvedCategory, 0, len(t.Categories)),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}

	for _, cat := range t.Categories {
		catView := model.ResolvedCategory{
			ID:        cat.ID,
			Name:      cat.Name,
			Questions: resolveRefs(cat.QuestionRefs),
		}
		for _, sub := range cat.SubCategories {
			subView := model.ResolvedSubCategory{
				ID:        sub.ID,
				Name:      sub.Name,
				Questions: resolveRefs(sub.QuestionRefs),
			}
			for _, topic := range sub.Topics {
				subView.Topics = append(subView.Topics, model.ResolvedTopic{
					ID:        topic.ID,
					Name:      topic.Name,
					Questions: resolveRefs(topic.QuestionRefs),
				})
			}
			catView.SubCategories = append(catView.SubCategories, subView)
		}
		view.Categories = append(view.Categories, catView)
	}
	return view
}

// colsByID indexes fetched collections for the flatten/resolve passes.
func colsByID(cols []*model.QuestionsCol) map[primitive.ObjectID]*model.QuestionsCol {
	m := make(map[primitive.ObjectID]*model.QuestionsCol, len(cols))
	for _, col := range cols {
		m[col.ID] = col
	}
	return m
}
