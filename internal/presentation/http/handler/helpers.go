package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseUintParam extracts a positive numeric path parameter.
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseTableNo extracts the table number path parameter.
func parseTableNo(c *gin.Context) (int, bool) {
	no, err := strconv.Atoi(c.Param("tableNo"))
	if err != nil || no < 1 {
		return 0, false
	}
	return no, true
}
