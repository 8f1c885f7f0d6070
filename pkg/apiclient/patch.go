package apiclient

// WishPatch accumulates fields for a partial wish update. Distinguishing an
// untouched field from one set to null matters on the wire, so the patch is
// built through setters instead of a struct literal.
type WishPatch struct {
	fields map[string]any
}

// NewWishPatch returns an empty patch.
func NewWishPatch() *WishPatch {
	return &WishPatch{fields: map[string]any{}}
}

// SetTitle replaces the title.
func (p *WishPatch) SetTitle(title string) *WishPatch {
	p.fields["title"] = title
	return p
}

// SetDescription replaces the description; nil clears it.
func (p *WishPatch) SetDescription(description *string) *WishPatch {
	if description == nil {
		p.fields["description"] = nil
	} else {
		p.fields["description"] = *description
	}
	return p
}

// SetCategory replaces the category.
func (p *WishPatch) SetCategory(category string) *WishPatch {
	p.fields["category"] = category
	return p
}

// SetPriority replaces the priority.
func (p *WishPatch) SetPriority(priority string) *WishPatch {
	p.fields["priority"] = priority
	return p
}

// SetCompleted marks the wish done or active.
func (p *WishPatch) SetCompleted(completed bool) *WishPatch {
	p.fields["completed"] = completed
	return p
}

// SetDeadline replaces the deadline ("YYYY-MM-DD"); nil clears it.
func (p *WishPatch) SetDeadline(deadline *string) *WishPatch {
	if deadline == nil {
		p.fields["deadline"] = nil
	} else {
		p.fields["deadline"] = *deadline
	}
	return p
}

// IsEmpty reports whether no fields have been set.
func (p *WishPatch) IsEmpty() bool {
	return p == nil || len(p.fields) == 0
}

func (p *WishPatch) body() map[string]any {
	if p == nil {
		return map[string]any{}
	}
	return p.fields
}
