package normalize

import "github.com/Tiliavir/trivial-trip-planner/internal/model"

// Note coerces a backend note payload.
func Note(raw any) model.Note {
	m, ok := raw.(map[string]any)
	if !ok {
		return model.Note{}
	}
	return model.Note{
		Meta:      model.Meta{Ref: model.Confirmed(firstString(m, "id", "note_id", "uuid"))},
		Content:   firstString(m, "content", "text", "note"),
		CreatedAt: timestamp(m, "created_at", "createdAt"),
		UpdatedAt: timestamp(m, "updated_at", "updatedAt"),
	}
}
