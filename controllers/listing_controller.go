package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"parkeasy/constants"
	"parkeasy/dto"
	"parkeasy/response"
	"parkeasy/services"
	"parkeasy/utils"
)

const searchCacheTTL = 5 * time.Minute

// ListingController serves listing CRUD and search
type ListingController struct {
	service *services.ListingService
	rdb     *redis.Client
}

func NewListingController(service *services.ListingService, rdb *redis.Client) *ListingController {
	return &ListingController{service: service, rdb: rdb}
}

// CreateListing creates a listing for the authenticated verified owner
func (ctl *ListingController) CreateListing(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	listing, err := ctl.service.CreateListing(userID, &req)
	if err != nil {
		respondAppError(c, err)
		return
	}
	ctl.invalidateSearchCache(c)
	response.Success(c, services.ToListingResponse(listing))
}

// UpdateListing edits a listing and replaces its availability slots
func (ctl *ListingController) UpdateListing(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	listing, err := ctl.service.UpdateListing(userID, &req)
	if err != nil {
		respondAppError(c, err)
		return
	}
	ctl.invalidateSearchCache(c)
	response.Success(c, services.ToListingResponse(listing))
}

// DeleteListing removes a listing without active bookings
func (ctl *ListingController) DeleteListing(c *gin.Context) {
	userID := c.GetUint("userID")
	isAdmin := c.GetInt("userRole") == constants.RoleAdmin

	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	if err := ctl.service.DeleteListing(userID, uint(listingID), isAdmin); err != nil {
		respondAppError(c, err)
		return
	}
	ctl.invalidateSearchCache(c)
	response.Success(c, nil)
}

// GetListingDetail returns one listing with its availability
func (ctl *ListingController) GetListingDetail(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	listing, err := ctl.service.GetListingByID(uint(listingID))
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToListingResponse(listing))
}

// GetMyListings returns the caller's own listings
func (ctl *ListingController) GetMyListings(c *gin.Context) {
	userID := c.GetUint("userID")
	listings, err := ctl.service.GetUserListings(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToListingResponses(listings))
}

// SearchListings filters listings by availability, price, EV attributes,
// size and location, with an optional free-text keyword. Filter errors make
// the result list empty but the request still succeeds so the messages reach
// the client.
func (ctl *ListingController) SearchListings(c *gin.Context) {
	ctx := c.Request.Context()
	req := services.ParseFilterRequest(c.Request.URL.Query())
	keyword := c.Query("q")

	cacheKey := "search:" + c.Request.URL.RawQuery
	var cached dto.FilterResult
	if err := services.GetFromRedis(ctx, ctl.rdb, cacheKey, &cached); err == nil {
		ctl.rememberFilters(c, req)
		page, limit := pageParams(c)
		listings, total := paginateListings(cached.Listings, page, limit)
		respondSearch(c, listings, cached.Errors, cached.Warnings, page, limit, total)
		return
	}

	listings, err := ctl.service.GetActiveListings(time.Now())
	if err != nil {
		respondAppError(c, err)
		return
	}
	if keyword != "" {
		listings = services.SearchListingsByKeyword(keyword, listings)
	}

	filtered, errs, warnings := services.FilterListings(listings, req)
	result := dto.FilterResult{
		Listings: services.ToListingResponses(filtered),
		Errors:   errs,
		Warnings: warnings,
	}
	if err := services.SetToRedis(ctx, ctl.rdb, cacheKey, result, searchCacheTTL); err != nil {
		utils.LogError("search cache: %v", err)
	}
	ctl.rememberFilters(c, req)

	page, limit := pageParams(c)
	pageListings, total := paginateListings(result.Listings, page, limit)
	respondSearch(c, pageListings, errs, warnings, page, limit, total)
}

// GetLastSearch returns the caller's cached search filters
func (ctl *ListingController) GetLastSearch(c *gin.Context) {
	userID := c.GetUint("userID")
	filters, err := services.GetLastFilters(c.Request.Context(), ctl.rdb, filtersKey(userID))
	if err != nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, filters)
}

// ClearLastSearch forgets the caller's cached search filters
func (ctl *ListingController) ClearLastSearch(c *gin.Context) {
	userID := c.GetUint("userID")
	if err := services.ClearLastFilters(c.Request.Context(), ctl.rdb, filtersKey(userID)); err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}

// rememberFilters layers the current search over the user's cached one.
// Anonymous searches are not remembered.
func (ctl *ListingController) rememberFilters(c *gin.Context, req *dto.ListingFilterRequest) {
	userID, _, err := services.CurrentUserID(c)
	if err != nil || !req.HasActiveFilters() {
		return
	}

	ctx := c.Request.Context()
	filters := services.FiltersFromRequest(req)
	if previous, err := services.GetLastFilters(ctx, ctl.rdb, filtersKey(userID)); err == nil {
		filters = services.MergeFilters(previous, filters)
	}
	if err := services.SaveLastFilters(ctx, ctl.rdb, filtersKey(userID), filters); err != nil {
		utils.LogError("search cache: %v", err)
	}
}

// invalidateSearchCache drops cached search pages after a listing mutation.
// Entries expire quickly anyway, so a scan failure is not fatal.
func (ctl *ListingController) invalidateSearchCache(c *gin.Context) {
	ctx := c.Request.Context()
	iter := ctl.rdb.Scan(ctx, 0, "search:*", 100).Iterator()
	for iter.Next(ctx) {
		ctl.rdb.Del(ctx, iter.Val())
	}
}

func filtersKey(userID uint) string {
	return fmt.Sprintf("user_%d", userID)
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func paginateListings(listings []dto.ListingResponse, page, limit int) ([]dto.ListingResponse, int) {
	total := len(listings)
	start := (page - 1) * limit
	if start >= total {
		return []dto.ListingResponse{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return listings[start:end], total
}

func respondSearch(c *gin.Context, listings []dto.ListingResponse, errs, warnings []string, page, limit, total int) {
	response.SuccessWithMessages(c, listings, errs, warnings, &response.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

