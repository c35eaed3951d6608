package repos

import (
	"slices"

	"github.com/google/uuid"
)

// Repository is one tracked project.
type Repository struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	URL   string    `json:"url"`
	Techs []string  `json:"techs"`
	Likes int64     `json:"likes"`
}

// Input carries the client-editable fields of a Repository.
type Input struct {
	Title string
	URL   string
	Techs []string
}

// clone returns a copy of r that shares no memory with it.
func (r Repository) clone() Repository {
	r.Techs = cloneTechs(r.Techs)
	return r
}

// cloneTechs copies techs, turning nil into an empty list so records always
// serialize "techs" as an array.
func cloneTechs(techs []string) []string {
	if techs == nil {
		return []string{}
	}
	return slices.Clone(techs)
}
