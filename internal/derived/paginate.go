package derived

import "github.com/moharam-dev/hotelbook/internal/domain"

// PageSize is fixed across every list in the UI.
const PageSize = 5

// Paginate returns the slice for a 1-based page. Pages past the end are
// empty, never a panic.
func Paginate[T any](list []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * PageSize
	if start >= len(list) {
		return nil
	}
	end := start + PageSize
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}

func TotalPages[T any](list []T) int {
	return (len(list) + PageSize - 1) / PageSize
}

// ValidPage re-validates a page index after the underlying list changed,
// falling back to the first page when the index ran past the new bounds.
func ValidPage[T any](list []T, page int) int {
	if page < 1 {
		return 1
	}
	if page > TotalPages(list) && len(list) > 0 {
		return 1
	}
	return page
}

// UserFilter is the admin user list's three-way tab.
type UserFilter string

const (
	UserFilterAll    UserFilter = "all"
	UserFilterAdmins UserFilter = "admin"
	UserFilterGuests UserFilter = "user"
)

// FilterUsers projects the visible subset for a tab. The backing list is
// never reordered or mutated.
func FilterUsers(users []domain.User, filter UserFilter) []domain.User {
	switch filter {
	case UserFilterAdmins, UserFilterGuests:
		wantAdmin := filter == UserFilterAdmins
		out := make([]domain.User, 0, len(users))
		for _, u := range users {
			if u.IsAdmin() == wantAdmin {
				out = append(out, u)
			}
		}
		return out
	default:
		return users
	}
}
