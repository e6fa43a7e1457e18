package menuitem

type CreatedEvent struct {
	Result MenuItem
}

type UpdatedEvent struct {
	Result MenuItem
}

type DeletedEvent struct {
	Result MenuItem
}
