package services

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"parkeasy/dto"
	"parkeasy/utils"
)

// SaveLastFilters remembers a user's (or anonymous session's) last search so
// follow-up searches can be merged with it.
func SaveLastFilters(ctx context.Context, rdb *redis.Client, key string, filters *dto.SearchFilters) error {
	b, _ := json.Marshal(filters)
	return rdb.Set(ctx, "last_filters:"+key, b, 30*time.Minute).Err()
}

func GetLastFilters(ctx context.Context, rdb *redis.Client, key string) (*dto.SearchFilters, error) {
	val, err := rdb.Get(ctx, "last_filters:"+key).Result()
	if err != nil {
		return nil, err
	}
	var filters dto.SearchFilters
	if err := json.Unmarshal([]byte(val), &filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

func ClearLastFilters(ctx context.Context, rdb *redis.Client, key string) error {
	return DeleteFromRedis(ctx, rdb, "last_filters:"+key)
}

// MergeFilters layers a new search on top of the previous one: fields left
// empty in the new request keep their old values.
func MergeFilters(old, next *dto.SearchFilters) *dto.SearchFilters {
	next.MaxPrice = orFloatPointer(next.MaxPrice, old.MaxPrice)
	next.ChargerLevel = orString(next.ChargerLevel, old.ChargerLevel)
	next.ConnectorType = orString(next.ConnectorType, old.ConnectorType)
	next.ParkingSpotSize = orString(next.ParkingSpotSize, old.ParkingSpotSize)
	next.Location = orString(next.Location, old.Location)
	next.Lat = orFloatPointer(next.Lat, old.Lat)
	next.Lng = orFloatPointer(next.Lng, old.Lng)
	next.Radius = orFloatPointer(next.Radius, old.Radius)
	next.FromDate = orTimePointer(next.FromDate, old.FromDate)
	next.ToDate = orTimePointer(next.ToDate, old.ToDate)
	if !next.HasEVCharger {
		next.HasEVCharger = old.HasEVCharger
	}
	return next
}

// FiltersFromRequest distills a search request into the cacheable filter
// form. Unparseable fields stay unset, matching the filter's own behavior of
// skipping them.
func FiltersFromRequest(req *dto.ListingFilterRequest) *dto.SearchFilters {
	filters := &dto.SearchFilters{
		HasEVCharger:    req.HasEVCharger,
		ChargerLevel:    req.ChargerLevel,
		ConnectorType:   req.ConnectorType,
		ParkingSpotSize: req.ParkingSpotSize,
		Location:        req.Location,
	}
	if v, err := strconv.ParseFloat(req.MaxPrice, 64); err == nil {
		filters.MaxPrice = &v
	}
	if v, err := strconv.ParseFloat(req.Lat, 64); err == nil {
		filters.Lat = &v
	}
	if v, err := strconv.ParseFloat(req.Lng, 64); err == nil {
		filters.Lng = &v
	}
	if v, err := strconv.ParseFloat(req.Radius, 64); err == nil {
		filters.Radius = &v
	}
	if v, err := utils.ParseDate(req.StartDate); err == nil && req.StartDate != "" {
		filters.FromDate = &v
	}
	if v, err := utils.ParseDate(req.EndDate); err == nil && req.EndDate != "" {
		filters.ToDate = &v
	}
	return filters
}

func orString(newVal, oldVal string) string {
	if newVal != "" {
		return newVal
	}
	return oldVal
}

func orFloatPointer(newVal, oldVal *float64) *float64 {
	if newVal != nil {
		return newVal
	}
	return oldVal
}

func orTimePointer(newVal, oldVal *time.Time) *time.Time {
	if newVal != nil {
		return newVal
	}
	return oldVal
}
