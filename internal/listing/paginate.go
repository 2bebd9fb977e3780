package listing

type Page[T any] struct {
	Items      []T
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// OutOfRange: запрошена страница за пределами непустого результата.
func (p Page[T]) OutOfRange() bool {
	return p.Total > 0 && p.Page > p.TotalPages
}

// Paginate returns the 1-based page of items. page < 1 is treated as the first
// page, perPage < 1 as a single page holding everything.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = max(total, 1)
	}

	totalPages := (total + perPage - 1) / perPage

	out := Page[T]{
		Items:      []T{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	// сравниваем номер страницы до умножения, иначе (page-1)*perPage может переполниться
	if page > totalPages {
		return out
	}
	start := (page - 1) * perPage
	end := min(start+perPage, total)
	out.Items = items[start:end:end]
	return out
}

// PerPage выбирает размер страницы из разрешённых вариантов; первый: дефолт.
func PerPage(requested int, options []int) int {
	if len(options) == 0 {
		return requested
	}
	for _, o := range options {
		if o == requested {
			return o
		}
	}
	return options[0]
}
