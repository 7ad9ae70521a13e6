package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/kit/endpoint"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/announcements"
	"github.com/specs-nexus/nexus/events"
	"github.com/specs-nexus/nexus/membership"
	"github.com/specs-nexus/nexus/officers"
	"github.com/specs-nexus/nexus/users"
)

func errStatus(err error) int {
	switch {
	case errors.Is(err, users.ErrInvalidCredentials),
		errors.Is(err, officers.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, events.ErrRegistrationNotStarted),
		errors.Is(err, events.ErrRegistrationEnded),
		errors.Is(err, officers.ErrOfficerArchived):
		return http.StatusForbidden

	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, events.ErrEventNotFound),
		errors.Is(err, officers.ErrOfficerNotFound),
		errors.Is(err, announcements.ErrAnnouncementNotFound),
		errors.Is(err, membership.ErrMembershipNotFound),
		errors.Is(err, membership.ErrRequirementNotFound),
		errors.Is(err, membership.ErrQRCodeNotFound):
		return http.StatusNotFound

	case errors.Is(err, nexus.ErrEmptyQuery),
		errors.Is(err, membership.ErrInvalidPaymentMethod),
		errors.Is(err, membership.ErrInvalidAction),
		errors.Is(err, membership.ErrRequirementSaturated),
		errors.Is(err, officers.ErrOfficerExists):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, status int, err error) {
	c.String(status, err.Error())
	c.Error(err)
	c.Abort()
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time: %q", s)
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func idParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func ChatHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req nexus.AnswerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func LoginHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req users.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func ProfileHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, Subject(c))
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func EventsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, events.ListRequest{UserID: Subject(c)})
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func OfficerEventsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, events.ListRequest{})
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func JoinEventHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return eventMembershipHandler(endpoint)
}

func LeaveEventHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return eventMembershipHandler(endpoint)
}

func eventMembershipHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := idParam(c, "event_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, events.MembershipChangeRequest{
			EventID: eventID,
			UserID:  Subject(c),
		})
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": resp})
	}
}

func EventParticipantsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := idParam(c, "event_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, eventID)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func eventDraftRequest(c *gin.Context, uploads *Uploads) (events.DraftRequest, error) {
	var req events.DraftRequest

	date, err := parseTime(c.PostForm("date"))
	if err != nil {
		return req, err
	}

	regStart, err := parseOptionalTime(c.PostForm("registration_start"))
	if err != nil {
		return req, err
	}

	regEnd, err := parseOptionalTime(c.PostForm("registration_end"))
	if err != nil {
		return req, err
	}

	imageURL, err := uploads.SaveOptional(c, "image", "event_images")
	if err != nil {
		return req, err
	}

	req.Title = c.PostForm("title")
	req.Description = c.PostForm("description")
	req.Date = date
	req.Location = c.PostForm("location")
	req.ImageURL = imageURL
	req.RegistrationStart = regStart
	req.RegistrationEnd = regEnd

	return req, nil
}

func CreateEventHandler(endpoint endpoint.Endpoint, uploads *Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := eventDraftRequest(c, uploads)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func UpdateEventHandler(endpoint endpoint.Endpoint, uploads *Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := idParam(c, "event_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		req, err := eventDraftRequest(c, uploads)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		req.EventID = eventID

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func ArchiveEventHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := idParam(c, "event_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		if _, err := endpoint(ctx, eventID); err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"detail": "Event archived successfully"})
	}
}

func MembershipsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, Subject(c))
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func QRCodeHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := nexus.PaymentMethod(c.Query("payment_type"))

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, method)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"qr_code_url": resp})
	}
}

func UploadReceiptHandler(uploads *Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		path, err := uploads.Save(c, file, "receipts")
		if err != nil {
			fail(c, http.StatusInternalServerError, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"file_path": path})
	}
}

func UpdateReceiptHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.UpdateReceiptRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func ListMembershipsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func CreateMembershipHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.CreateRequest
		if err := c.ShouldBind(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func VerifyMembershipHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		membershipID, err := idParam(c, "membership_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		var req membership.VerifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		req.MembershipID = membershipID

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func RequirementsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func UpdateRequirementHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.RequirementUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		req.Requirement = c.Param("requirement")

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func ArchiveRequirementHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if _, err := endpoint(ctx, c.Param("requirement")); err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Requirement archived successfully"})
	}
}

func CreateRequirementHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req membership.RequirementCreateRequest
		if err := c.ShouldBind(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func UploadQRCodeHandler(endpoint endpoint.Endpoint, uploads *Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		path, err := uploads.Save(c, file, "qrcodes")
		if err != nil {
			fail(c, http.StatusInternalServerError, err)
			return
		}

		req := membership.SetQRCodeRequest{
			PaymentType: c.PostForm("payment_type"),
			Path:        path,
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func AnnouncementsHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func announcementDraftRequest(c *gin.Context, uploads *Uploads) (announcements.DraftRequest, error) {
	var req announcements.DraftRequest

	date, err := parseOptionalTime(c.PostForm("date"))
	if err != nil {
		return req, err
	}

	imageURL, err := uploads.SaveOptional(c, "image", "announcement_images")
	if err != nil {
		return req, err
	}

	req.Title = c.PostForm("title")
	req.Description = c.PostForm("description")
	req.Date = date
	req.Location = c.PostForm("location")
	req.ImageURL = imageURL

	return req, nil
}

func CreateAnnouncementHandler(endpoint endpoint.Endpoint, uploads *Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := announcementDraftRequest(c, uploads)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func UpdateAnnouncementHandler(endpoint endpoint.Endpoint, uploads *Uploads) gin.HandlerFunc {
	return func(c *gin.Context) {
		announcementID, err := idParam(c, "announcement_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		req, err := announcementDraftRequest(c, uploads)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		req.AnnouncementID = announcementID

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func ArchiveAnnouncementHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		announcementID, err := idParam(c, "announcement_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		if _, err := endpoint(ctx, announcementID); err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"detail": "Announcement archived successfully"})
	}
}

func OfficerLoginHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req officers.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func ListOfficersHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func CreateOfficerHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req officers.DraftRequest
		if err := c.ShouldBind(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func UpdateOfficerHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		officerID, err := idParam(c, "officer_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		var req officers.DraftRequest
		if err := c.ShouldBind(&req); err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		req.OfficerID = officerID

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, req)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}

func ArchiveOfficerHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		officerID, err := idParam(c, "officer_id")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		if _, err := endpoint(ctx, officerID); err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"detail": "Officer archived successfully"})
	}
}

func ImportOfficersHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		f, err := file.Open()
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}
		defer f.Close()

		workbook, err := io.ReadAll(f)
		if err != nil {
			fail(c, http.StatusBadRequest, err)
			return
		}

		ctx := c.Request.Context()
		resp, err := endpoint(ctx, workbook)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"imported": resp})
	}
}

func DashboardHandler(endpoint endpoint.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		resp, err := endpoint(ctx, nil)
		if err != nil {
			fail(c, errStatus(err), err)
			return
		}

		c.JSON(http.StatusOK, &resp)
	}
}
