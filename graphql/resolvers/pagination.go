package resolvers

func defaultPageSize(p *int32) int {
	if p != nil && *p > 0 {
		return int(*p)
	}
	return 20
}

func defaultCurrentPage(p *int32) int {
	if p != nil && *p > 0 {
		return int(*p)
	}
	return 1
}

func paginate[T any](items []T, currentPage, pageSize int) []T {
	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if start >= len(items) {
		return []T{}
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func totalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}
