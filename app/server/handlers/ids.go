package handlers

import (
	"errors"
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"
)

var errInvalidID = errors.New("invalid id")

// pathID 读取路径中的 :id ，0 和非数字都视为无效
func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// uniqueIDs 去重并保持原有顺序
func uniqueIDs(ids []uint) []uint {
	var res []uint
	for _, id := range ids {
		if !slices.Contains(res, id) {
			res = append(res, id)
		}
	}
	return res
}
