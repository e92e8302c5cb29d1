package schema

// CorePublicationTable represents the 'core.publication' table
type CorePublicationTable struct {
	Table     string
	ID        string
	Slug      string
	Title     string
	Manifest  string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// CorePublication is the schema definition for core.publication
var CorePublication = CorePublicationTable{
	Table:     "core.publication",
	ID:        "id",
	Slug:      "slug",
	Title:     "title",
	Manifest:  "manifest",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
	DeletedAt: "deletedat",
}

func (t CorePublicationTable) Columns() []string {
	return []string{
		t.ID, t.Slug, t.Title, t.Manifest, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
