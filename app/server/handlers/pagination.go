package handlers

import (
	"errors"
	"library-catalog/app/server/api"
	"library-catalog/app/server/constants"
	"math"

	"gorm.io/gorm"
)

var errPageOutOfRange = errors.New("page is out of range")

func (a *App) parsePagination(page *uint, limit *uint) (bool, int, int, error) {
	if page != nil && *page == 0 && limit != nil && *limit == 0 {
		// 特殊参数：展示全部
		return true, -1, -1, nil
	}
	// 映射前：第几页，每页限制多少个
	// 映射后：页减一，限制不变
	var parsedPage, parsedLimit uint

	if page == nil || *page < 1 {
		parsedPage = 0
	} else {
		parsedPage = *page - 1
	}

	if limit == nil || *limit <= 0 {
		parsedLimit = constants.ListLimitDefault
	} else if *limit > constants.ListLimitMax {
		parsedLimit = constants.ListLimitMax
	} else {
		parsedLimit = *limit
	}

	// 偏移量 page*limit 必须能放进 int
	if parsedPage > uint(math.MaxInt)/parsedLimit {
		return false, 0, 0, errPageOutOfRange
	}

	return false, int(parsedPage), int(parsedLimit), nil
}

func (a *App) calcMaxPage(count int64, showAll bool, limit int) int64 {
	if showAll {
		return 1
	} else {
		pageMax := count / int64(limit)
		if (count % int64(limit)) != 0 {
			pageMax++
		}
		return pageMax
	}
}

// paginate 返回分页后的查询和展示用的 limit
func (a *App) paginate(tx *gorm.DB, params *api.ListParams) (*gorm.DB, bool, int, error) {
	showAll, page, limit, err := a.parsePagination(params.Page, params.Limit)
	if err != nil {
		return nil, false, 0, err
	}
	if showAll {
		return tx, true, limit, nil
	}
	return tx.Limit(limit).Offset(page * limit), false, limit, nil
}
