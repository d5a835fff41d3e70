package server

import (
	"fmt"
	"net/http"
	"strconv"

	"clearance/internal/controller"
	"clearance/internal/export"
	"clearance/internal/query"
	"clearance/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const internalServerError = "Internal Server Error"

// rankedJobsHandler serves the ranked listings of one partition and scope
func (s *Server) rankedJobsHandler(partition string, scope query.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := jobQueryFromRequest(c, partition, scope)

		page, err := s.jc.ListRanked(c.Request.Context(), q, getPage(c))
		if err != nil {
			abortInternal(c, err, q)
			return
		}

		c.JSON(http.StatusOK, page)
	}
}

// exportJobsHandler returns the whole ranked listing as a workbook, either
// as an upload URL or as an attachment
func (s *Server) exportJobsHandler(partition string, scope query.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := jobQueryFromRequest(c, partition, scope)

		res, err := s.ec.ExportJobs(c.Request.Context(), q)
		if err != nil {
			abortInternal(c, err, q)
			return
		}

		if res.URL != "" {
			c.JSON(http.StatusOK, gin.H{"url": res.URL})
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.FileName))
		c.Data(http.StatusOK, export.ContentType, res.Workbook)
	}
}

// flatJobsHandler serves the unranked listing paged by the database
func (s *Server) flatJobsHandler(partition string) gin.HandlerFunc {
	return func(c *gin.Context) {
		year := c.Param("year")
		requested := status.ParseCoarse(c.Param("status"))

		page, err := s.jc.ListFlat(c.Request.Context(), partition, year, requested, c.Query("search"), getPage(c))
		if err != nil {
			log.Error().
				Err(err).
				Str("partition", partition).
				Str("year", year).
				Str("status", string(requested)).
				Msg("Failed to list jobs")
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerError})
			return
		}

		c.JSON(http.StatusOK, page)
	}
}

func jobQueryFromRequest(c *gin.Context, partition string, scope query.Scope) query.JobQuery {
	q := query.JobQuery{
		Partition:      partition,
		Year:           c.Param("year"),
		Status:         status.ParseCoarse(c.Param("status")),
		DetailedStatus: c.Param("detailedStatus"),
		Search:         c.Query("search"),
		Exporter:       c.Query("exporter"),
		Scope:          scope,
	}

	switch scope {
	case query.ScopeMultiple:
		q.CustomHouse = c.Param("scope")
		q.IECodes = query.SplitList(c.Query("ieCodes"))
		q.Importers = query.SplitList(c.Query("importers"))
	default:
		q.Importer = c.Param("scope")
	}

	return q
}

// getPage reads page and limit; malformed values are left for the
// controller to default
func getPage(c *gin.Context) controller.Page {
	var page controller.Page

	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil {
			page.Number = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			page.Limit = parsed
		}
	}

	return page
}

func abortInternal(c *gin.Context, err error, q query.JobQuery) {
	log.Error().
		Err(err).
		Str("partition", q.Partition).
		Str("year", q.Year).
		Str("status", string(q.Status)).
		Str("detailedStatus", q.DetailedStatus).
		Msg("Failed to list jobs")
	c.JSON(http.StatusInternalServerError, gin.H{"error": internalServerError})
}
