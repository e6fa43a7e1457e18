package planapplication

type CreatedEvent struct {
	Result PlanApplication
}

type UpdatedEvent struct {
	Result PlanApplication
}

type DeletedEvent struct {
	Result PlanApplication
}
