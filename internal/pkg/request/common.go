package request

import (
	"net/http"
	"strings"

	"github.com/elvisburrniku/OrderTable-sub004/internal/pkg/apperror"
)

var ErrInvalidSortOrder = apperror.New(http.StatusBadRequest, "sort_order must be asc or desc")

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// ListParams carries the pagination and ordering query parameters shared by list endpoints.
type ListParams struct {
	Page      int    `form:"page,default=1" binding:"min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"min=1,max=100"`
	SortOrder string `form:"sort_order"`
}

// Validate normalizes SortOrder to ASC or DESC.
func (p *ListParams) Validate() error {
	switch strings.ToUpper(p.SortOrder) {
	case "":
		p.SortOrder = "ASC"
	case "ASC", "DESC":
		p.SortOrder = strings.ToUpper(p.SortOrder)
	default:
		return ErrInvalidSortOrder
	}
	return nil
}

// Offset returns the number of rows to skip for the current page.
func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
