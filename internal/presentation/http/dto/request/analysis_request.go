package request

import (
	"github.com/gin-gonic/gin"

	"github.com/kvittoapp/kvitto-api/pkg/aggregate"
	"github.com/kvittoapp/kvitto-api/pkg/apperror"
	"github.com/kvittoapp/kvitto-api/pkg/pagination"
)

// DateRangeQuery carries the optional analysis window. Both bounds are
// inclusive YYYY-MM-DD dates; either may be omitted.
type DateRangeQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// Range validates the query and converts it to a date range. Malformed
// or inverted bounds are rejected before any aggregation runs.
func (q *DateRangeQuery) Range() (aggregate.DateRange, error) {
	rng, err := aggregate.ParseDateRange(q.StartDate, q.EndDate)
	if err != nil {
		return aggregate.DateRange{}, apperror.NewBadRequestError(err.Error())
	}
	return rng, nil
}

// BindDateRange parses and validates the window from the query string.
func BindDateRange(c *gin.Context) (aggregate.DateRange, error) {
	var q DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return aggregate.DateRange{}, apperror.NewBadRequestError("Invalid query parameters")
	}
	return q.Range()
}

// BindPagination parses the page window, applying defaults and caps.
func BindPagination(c *gin.Context) *pagination.PaginationParams {
	params := pagination.DefaultPagination()
	_ = c.ShouldBindQuery(params)
	params.Validate()
	return params
}

// ComparisonQuery names the two stores to compare.
type ComparisonQuery struct {
	Store1 string `form:"store1" binding:"required"`
	Store2 string `form:"store2" binding:"required"`
}
