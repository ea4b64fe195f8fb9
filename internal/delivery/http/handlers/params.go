package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/LavaJover/shvark-trade-order-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-trade-order-service/internal/usecase/dto/order"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// localDateTime is accepted for timestamps without an offset, read as UTC.
const localDateTime = "2006-01-02T15:04:05"

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("Request body is missing or malformed")
	}
	return nil
}

func invalidParam(name, raw string) error {
	return domain.NewValidationError("Invalid value for parameter %s: %s", name, raw)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidParam(name, raw)
	}
	return id, nil
}

type queryReader struct {
	values url.Values
	err    error
}

func (q *queryReader) raw(name string) (string, bool) {
	raw := strings.TrimSpace(q.values.Get(name))
	return raw, raw != "" && q.err == nil
}

func (q *queryReader) int64Ptr(name string) *int64 {
	raw, ok := q.raw(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		q.err = invalidParam(name, raw)
		return nil
	}
	return &v
}

func (q *queryReader) intOr(name string, def int) int {
	raw, ok := q.raw(name)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.err = invalidParam(name, raw)
		return def
	}
	return v
}

func (q *queryReader) decimalPtr(name string) *decimal.Decimal {
	raw, ok := q.raw(name)
	if !ok {
		return nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		q.err = invalidParam(name, raw)
		return nil
	}
	return &v
}

func (q *queryReader) timePtr(name string) *time.Time {
	raw, ok := q.raw(name)
	if !ok {
		return nil
	}
	v, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		v, err = time.ParseInLocation(localDateTime, raw, time.UTC)
	}
	if err != nil {
		q.err = invalidParam(name, raw)
		return nil
	}
	v = v.UTC()
	return &v
}

func (q *queryReader) stringOr(name, def string) string {
	if raw, ok := q.raw(name); ok {
		return raw
	}
	return def
}

func parseListQuery(values url.Values) (*orderdto.ListOrdersInput, error) {
	q := &queryReader{values: values}
	defaults := orderdto.NewListOrdersInput()

	input := &orderdto.ListOrdersInput{
		UserID:      q.int64Ptr("userId"),
		OrderType:   q.stringOr("orderType", ""),
		Status:      q.stringOr("status", ""),
		CreatedFrom: q.timePtr("createdFrom"),
		CreatedTo:   q.timePtr("createdTo"),
		MinPrice:    q.decimalPtr("minPrice"),
		MaxPrice:    q.decimalPtr("maxPrice"),
		MinQty:      q.int64Ptr("minQty"),
		MaxQty:      q.int64Ptr("maxQty"),
		Page:        q.intOr("page", defaults.Page),
		Size:        q.intOr("size", defaults.Size),
		SortBy:      q.stringOr("sortBy", defaults.SortBy),
		SortDir:     q.stringOr("sortDir", defaults.SortDir),
	}
	if q.err != nil {
		return nil, q.err
	}
	return input, nil
}
