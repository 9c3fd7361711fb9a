package classify

import "github.com/intransparency/talentsearch/internal/domain/search/entity"

// Fallback derives entities locally when the primary classifier yields nothing usable.
type Fallback interface {
	Extract(query string) entity.Set
}
