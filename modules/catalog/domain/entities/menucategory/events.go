package menucategory

type CreatedEvent struct {
	Result MenuCategory
}

type UpdatedEvent struct {
	Result MenuCategory
}

type DeletedEvent struct {
	Result MenuCategory
}
