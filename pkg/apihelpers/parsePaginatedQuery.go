package apihelpers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PaginatedQuery is the parsed form of the page/limit/sort/filter query
// params shared by all listing endpoints.
type PaginatedQuery struct {
	Page   int64
	Limit  int64
	Sort   bson.M
	Filter bson.M
}

func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)), 10, 64)
	if err != nil {
		return nil, err
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	sort := bson.M{}
	if sortStr := c.DefaultQuery("sort", ""); sortStr != "" {
		if err := json.Unmarshal([]byte(sortStr), &sort); err != nil {
			return nil, err
		}
	}

	filter := bson.M{}
	if filterStr := c.DefaultQuery("filter", ""); filterStr != "" {
		if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
			return nil, err
		}
	}

	return &PaginatedQuery{
		Page:   page,
		Limit:  limit,
		Sort:   sort,
		Filter: filter,
	}, nil
}
