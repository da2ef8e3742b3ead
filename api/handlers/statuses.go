package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	apierrors "github.com/customeros/statusstack/api/errors"
	"github.com/customeros/statusstack/dto"
	"github.com/customeros/statusstack/interfaces"
	"github.com/customeros/statusstack/internal/logger"
	"github.com/customeros/statusstack/internal/models"
	"github.com/customeros/statusstack/internal/tracing"
	"github.com/customeros/statusstack/internal/validation"
)

// DefaultTimelineCount is used when count is absent or zero
const DefaultTimelineCount = 20

type StatusesHandler struct {
	statusUpdateService interfaces.StatusUpdateService
	timelineService     interfaces.TimelineService
	validator           *validation.Validator
	log                 logger.Logger
}

func NewStatusesHandler(statusUpdateService interfaces.StatusUpdateService, timelineService interfaces.TimelineService, validator *validation.Validator, log logger.Logger) *StatusesHandler {
	return &StatusesHandler{
		statusUpdateService: statusUpdateService,
		timelineService:     timelineService,
		validator:           validator,
		log:                 log,
	}
}

type timelineParams struct {
	ScreenName string `form:"screen_name"`
	Count      int    `form:"count"`
	SinceID    string `form:"since_id"`
	MaxID      string `form:"max_id"`
}

func (p timelineParams) query() interfaces.TimelineQuery {
	count := p.Count
	if count <= 0 {
		count = DefaultTimelineCount
	}
	return interfaces.TimelineQuery{
		Count:   count,
		SinceID: p.SinceID,
		MaxID:   p.MaxID,
	}
}

// PostStatus handles POST /rest/statuses/update
func (h *StatusesHandler) PostStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.PostStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var request dto.StatusUpdate
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log.IsDebugEnabled() {
			h.log.Debugf("REST request to add status : %s", request.Content)
		}
		if err := h.validator.Struct(&request); err != nil {
			apierrors.Respond(c, h.log, err)
			return
		}

		if _, err := h.statusUpdateService.PostStatus(ctx, request.Content, request.Attachment); err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// PostAttachment handles POST /rest/statuses/attachment/update
func (h *StatusesHandler) PostAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.PostAttachment")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var attachment models.Attachment
		if err := c.ShouldBindJSON(&attachment); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log.IsDebugEnabled() {
			h.log.Debugf("REST request to add attachment : %s", &attachment)
		}

		if err := h.statusUpdateService.SaveAttachment(ctx, &attachment); err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// ReplyToStatus handles POST /rest/statuses/discussion
func (h *StatusesHandler) ReplyToStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.ReplyToStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var reply dto.Reply
		if err := c.ShouldBindJSON(&reply); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log.IsDebugEnabled() {
			h.log.Debugf("REST request to reply to status %s : %s", reply.StatusID, reply.Content)
		}
		if err := h.validator.Struct(&reply); err != nil {
			apierrors.Respond(c, h.log, err)
			return
		}

		if _, err := h.statusUpdateService.ReplyToStatus(ctx, reply.Content, reply.StatusID); err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// DestroyStatus handles POST /rest/statuses/destroy/:statusId. The
// attachment goes first, then the status.
func (h *StatusesHandler) DestroyStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.DestroyStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		statusID := c.Param("statusId")
		tracing.TagEntity(span, statusID)
		if h.log.IsDebugEnabled() {
			h.log.Debugf("REST request to remove status : %s", statusID)
		}

		if err := h.timelineService.RemoveAttachment(ctx, statusID); err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		if err := h.timelineService.RemoveStatus(ctx, statusID); err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// ShowStatus handles GET /rest/statuses/show/:statusId
func (h *StatusesHandler) ShowStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.ShowStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		statusID := c.Param("statusId")
		tracing.TagEntity(span, statusID)

		status, err := h.timelineService.GetStatus(ctx, statusID)
		if err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		if status == nil {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

// ShowAttachment handles GET /rest/statuses/attachment/show/:statusId
func (h *StatusesHandler) ShowAttachment() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.ShowAttachment")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		statusID := c.Param("statusId")
		tracing.TagEntity(span, statusID)

		attachment := h.timelineService.GetAttachment(ctx, statusID)
		if attachment == nil {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, attachment)
	}
}

// StatusDetails handles GET /rest/statuses/details/:statusId
func (h *StatusesHandler) StatusDetails() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.StatusDetails")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		statusID := c.Param("statusId")
		tracing.TagEntity(span, statusID)

		details, err := h.timelineService.GetStatusDetails(ctx, statusID)
		if err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		if details == nil {
			c.Status(http.StatusOK)
			return
		}
		c.JSON(http.StatusOK, details)
	}
}

// ShareStatus handles POST /rest/statuses/share/:statusId
func (h *StatusesHandler) ShareStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.ShareStatus")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		statusID := c.Param("statusId")
		tracing.TagEntity(span, statusID)
		if h.log.IsDebugEnabled() {
			h.log.Debugf("REST request to share status : %s", statusID)
		}

		if err := h.timelineService.ShareStatus(ctx, statusID); err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		c.Status(http.StatusOK)
	}
}

// HomeTimeline handles GET /rest/statuses/home_timeline
func (h *StatusesHandler) HomeTimeline() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.HomeTimeline")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var params timelineParams
		if err := c.ShouldBindQuery(&params); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		statuses, err := h.timelineService.GetTimeline(ctx, params.query())
		if err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, statuses)
	}
}

// UserTimeline handles GET /rest/statuses/user_timeline?screen_name=
func (h *StatusesHandler) UserTimeline() gin.HandlerFunc {
	return func(c *gin.Context) {
		span, ctx := opentracing.StartSpanFromContext(c.Request.Context(), "StatusesHandler.UserTimeline")
		defer span.Finish()
		tracing.SetDefaultRestSpanTags(ctx, span)

		var params timelineParams
		if err := c.ShouldBindQuery(&params); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if h.log.IsDebugEnabled() {
			h.log.Debugf("REST request to get someone's status (username=%s).", params.ScreenName)
		}

		statuses, err := h.timelineService.GetUserline(ctx, params.ScreenName, params.query())
		if err != nil {
			tracing.TraceErr(span, err)
			apierrors.Respond(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, statuses)
	}
}
