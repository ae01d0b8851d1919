package service

// PageInfo 承载分页结果的元数据，供模板渲染上一页/下一页控件。
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// resolvePage 根据总数计算分页元数据和 SQL 偏移量。
// 页码从 1 开始；小于 1 的页码回落到第 1 页，超出末页的页码
// 收敛到末页。任何输入都不会产生错误。
func resolvePage(total int64, page, perPage int) (PageInfo, int) {
	if perPage <= 0 {
		perPage = 10
	}
	if page <= 0 {
		page = 1
	}

	totalPages := 1
	if total > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	if page > totalPages {
		page = totalPages
	}

	info := PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}

	return info, (page - 1) * perPage
}
