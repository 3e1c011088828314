package schema

// Descriptors for every persisted entity. Relations are wired in init
// because the entity graph is cyclic (authors reference books, books
// reference authors).

var Users = &Descriptor{
	Entity: "user",
	Table:  "users",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "email", Column: "email", Kind: String, Required: true, Sortable: true},
		{Name: "first_name", Column: "first_name", Kind: String, Required: true, Sortable: true},
		{Name: "last_name", Column: "last_name", Kind: String, Required: true, Sortable: true},
		{Name: "is_active", Column: "is_active", Kind: Bool},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
		{Name: "updated_at", Column: "updated_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}, {"email"}},
}

var Authors = &Descriptor{
	Entity: "author",
	Table:  "authors",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "name", Column: "name", Kind: String, Required: true, Sortable: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
		{Name: "updated_at", Column: "updated_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}},
}

var Categories = &Descriptor{
	Entity: "category",
	Table:  "categories",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "name", Column: "name", Kind: String, Required: true, Sortable: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
		{Name: "updated_at", Column: "updated_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}, {"name"}},
}

var Publishers = &Descriptor{
	Entity: "publisher",
	Table:  "publishers",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "name", Column: "name", Kind: String, Required: true, Sortable: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
		{Name: "updated_at", Column: "updated_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}, {"name"}},
}

var Books = &Descriptor{
	Entity: "book",
	Table:  "books",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "title", Column: "title", Kind: String, Required: true, Sortable: true},
		{Name: "isbn", Column: "isbn", Kind: String},
		{Name: "published_year", Column: "published_year", Kind: Int, Sortable: true},
		{Name: "total_copies", Column: "total_copies", Kind: Int, Required: true, Sortable: true},
		{Name: "available_copies", Column: "available_copies", Kind: Int, Required: true, Sortable: true},
		{Name: "author_id", Column: "author_id", Kind: UUID, Required: true},
		{Name: "category_id", Column: "category_id", Kind: UUID},
		{Name: "publisher_id", Column: "publisher_id", Kind: UUID},
		{Name: "added_by_id", Column: "added_by_id", Kind: UUID, Required: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
		{Name: "updated_at", Column: "updated_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}, {"isbn"}},
}

var Classrooms = &Descriptor{
	Entity: "classroom",
	Table:  "classrooms",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "name", Column: "name", Kind: String, Required: true, Sortable: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}, {"name"}},
}

var Students = &Descriptor{
	Entity: "student",
	Table:  "students",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "name", Column: "name", Kind: String, Required: true, Sortable: true},
		{Name: "email", Column: "email", Kind: String},
		{Name: "student_no", Column: "student_no", Kind: String, Required: true, Sortable: true},
		{Name: "class_id", Column: "class_id", Kind: UUID, Required: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
		{Name: "updated_at", Column: "updated_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}, {"student_no"}},
}

var TransferHistories = &Descriptor{
	Entity: "transfer_history",
	Table:  "transfer_histories",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "student_id", Column: "student_id", Kind: UUID, Required: true},
		{Name: "old_class_id", Column: "old_class_id", Kind: UUID, Required: true},
		{Name: "new_class_id", Column: "new_class_id", Kind: UUID, Required: true},
		{Name: "notes", Column: "notes", Kind: String},
		{Name: "transfer_date", Column: "transfer_date", Kind: Time, Required: true, Sortable: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}},
}

var Notifications = &Descriptor{
	Entity: "notification",
	Table:  "notifications",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "type", Column: "type", Kind: Enum, Required: true, Values: []string{"OVERDUE_BOOK", "SYSTEM"}},
		{Name: "user_id", Column: "user_id", Kind: UUID, Required: true},
		{Name: "message", Column: "message", Kind: String, Required: true},
		{Name: "is_read", Column: "is_read", Kind: Bool, Sortable: true},
		{Name: "metadata", Column: "metadata", Kind: JSON},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}},
}

// Sessions leaves the persisted access_token/refresh_token columns out
// of the plain shape on purpose: token material must never travel
// through the generic read path or a list response. The typed session
// queries are the only readers of those columns.
var Sessions = &Descriptor{
	Entity: "session",
	Table:  "sessions",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "user_id", Column: "user_id", Kind: UUID, Required: true},
		{Name: "expires_at", Column: "expires_at", Kind: Time, Required: true, Sortable: true},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
		{Name: "updated_at", Column: "updated_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}},
}

var BookAssignments = &Descriptor{
	Entity: "book_assignment",
	Table:  "book_assignments",
	Fields: []Field{
		{Name: "id", Column: "id", Kind: UUID, Required: true, Generated: true, Sortable: true},
		{Name: "book_id", Column: "book_id", Kind: UUID, Required: true},
		{Name: "student_id", Column: "student_id", Kind: UUID, Required: true},
		{Name: "assigned_by_id", Column: "assigned_by_id", Kind: UUID, Required: true},
		{Name: "due_date", Column: "due_date", Kind: Time, Required: true, Sortable: true},
		{Name: "returned_at", Column: "returned_at", Kind: Time},
		{Name: "created_at", Column: "created_at", Kind: Time, Required: true, Generated: true, Sortable: true},
	},
	UniqueKeys: [][]string{{"id"}},
}

func init() {
	Users.Relations = []Relation{
		{Name: "books", Target: Books, ForeignKey: "added_by_id", Many: true},
		{Name: "notifications", Target: Notifications, ForeignKey: "user_id", Many: true},
	}
	Authors.Relations = []Relation{
		{Name: "books", Target: Books, ForeignKey: "author_id", Many: true},
	}
	Categories.Relations = []Relation{
		{Name: "books", Target: Books, ForeignKey: "category_id", Many: true},
	}
	Publishers.Relations = []Relation{
		{Name: "books", Target: Books, ForeignKey: "publisher_id", Many: true},
	}
	Books.Relations = []Relation{
		{Name: "author", Target: Authors, ForeignKey: "author_id"},
		{Name: "category", Target: Categories, ForeignKey: "category_id"},
		{Name: "publisher", Target: Publishers, ForeignKey: "publisher_id"},
		{Name: "added_by", Target: Users, ForeignKey: "added_by_id"},
	}
	Classrooms.Relations = []Relation{
		{Name: "students", Target: Students, ForeignKey: "class_id", Many: true},
	}
	Students.Relations = []Relation{
		{Name: "classroom", Target: Classrooms, ForeignKey: "class_id"},
		{Name: "transfers", Target: TransferHistories, ForeignKey: "student_id", Many: true},
	}
	TransferHistories.Relations = []Relation{
		{Name: "student", Target: Students, ForeignKey: "student_id"},
		{Name: "old_class", Target: Classrooms, ForeignKey: "old_class_id"},
		{Name: "new_class", Target: Classrooms, ForeignKey: "new_class_id"},
	}
	Notifications.Relations = []Relation{
		{Name: "user", Target: Users, ForeignKey: "user_id"},
	}
	Sessions.Relations = []Relation{
		{Name: "user", Target: Users, ForeignKey: "user_id"},
	}
	BookAssignments.Relations = []Relation{
		{Name: "book", Target: Books, ForeignKey: "book_id"},
		{Name: "student", Target: Students, ForeignKey: "student_id"},
		{Name: "assigned_by", Target: Users, ForeignKey: "assigned_by_id"},
	}
}
