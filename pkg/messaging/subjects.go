package messaging

const (
	// ProductsSubjects matches every product lifecycle subject.
	ProductsSubjects      = "inventory.products.>"
	ProductCreatedSubject = "inventory.products.created"
	ProductUpdatedSubject = "inventory.products.updated"
	ProductDeletedSubject = "inventory.products.deleted"
)
