package orderitem

type CreatedEvent struct {
	Result OrderItem
}

type UpdatedEvent struct {
	Result OrderItem
}

type DeletedEvent struct {
	Result OrderItem
}
