package normalize

import "github.com/Tiliavir/trivial-trip-planner/internal/model"

// Reminder coerces a backend reminder payload. Only boolean done/is_done
// values are honoured.
func Reminder(raw any) model.Reminder {
	m, ok := raw.(map[string]any)
	if !ok {
		return model.Reminder{}
	}
	r := model.Reminder{
		Meta:      model.Meta{Ref: model.Confirmed(firstString(m, "id", "reminder_id", "uuid"))},
		Content:   firstString(m, "content", "text", "reminder"),
		DueAt:     timestamp(m, "due_at", "dueAt", "remind_at", "remindAt"),
		CreatedAt: timestamp(m, "created_at", "createdAt"),
		UpdatedAt: timestamp(m, "updated_at", "updatedAt"),
	}
	if b, ok := m["done"].(bool); ok {
		r.Done = b
	} else if b, ok := m["is_done"].(bool); ok {
		r.Done = b
	}
	return r
}
