package http

import (
	"github.com/gin-gonic/gin"

	nexus "github.com/specs-nexus/nexus"
	"github.com/specs-nexus/nexus/analytics"
	"github.com/specs-nexus/nexus/announcements"
	"github.com/specs-nexus/nexus/auth"
	"github.com/specs-nexus/nexus/events"
	"github.com/specs-nexus/nexus/membership"
	"github.com/specs-nexus/nexus/officers"
	"github.com/specs-nexus/nexus/users"
)

type Endpoints struct {
	Chat          nexus.EndpointSet
	Users         users.EndpointSet
	Events        events.EndpointSet
	Membership    membership.EndpointSet
	Announcements announcements.EndpointSet
	Officers      officers.EndpointSet
	Analytics     analytics.EndpointSet
}

func AddRouters(r *gin.Engine, endpoints Endpoints, tokens *auth.Tokens, uploads *Uploads) {
	r.Static(uploads.BaseURL, uploads.Dir)

	member := UserAuthorizator(tokens)
	officer := OfficerAuthorizator(tokens)

	authAPI := r.Group("/auth")
	{
		authAPI.POST("/login", LoginHandler(endpoints.Users.Login))
		authAPI.GET("/profile", member, ProfileHandler(endpoints.Users.Profile))
	}

	chat := r.Group("/chat")
	{
		chat.POST("/", ChatHandler(endpoints.Chat.Answer))
	}

	eventsAPI := r.Group("/events")
	{
		eventsAPI.GET("/", member, EventsHandler(endpoints.Events.List))
		eventsAPI.POST("/join/:event_id", member, JoinEventHandler(endpoints.Events.Join))
		eventsAPI.POST("/leave/:event_id", member, LeaveEventHandler(endpoints.Events.Leave))
		eventsAPI.GET("/participants/:event_id", officer, EventParticipantsHandler(endpoints.Events.Participants))
		eventsAPI.GET("/officer/list", officer, OfficerEventsHandler(endpoints.Events.List))
		eventsAPI.POST("/officer/create", officer, CreateEventHandler(endpoints.Events.Create, uploads))
		eventsAPI.PUT("/officer/update/:event_id", officer, UpdateEventHandler(endpoints.Events.Update, uploads))
		eventsAPI.DELETE("/officer/delete/:event_id", officer, ArchiveEventHandler(endpoints.Events.Archive))
	}

	membershipAPI := r.Group("/membership")
	{
		membershipAPI.GET("/qrcode", member, QRCodeHandler(endpoints.Membership.QRCodeURL))
		membershipAPI.GET("/memberships", member, MembershipsHandler(endpoints.Membership.Memberships))
		membershipAPI.POST("/upload_receipt_file", member, UploadReceiptHandler(uploads))
		membershipAPI.PUT("/update_receipt", member, UpdateReceiptHandler(endpoints.Membership.UpdateReceipt))
		membershipAPI.GET("/officer/list", officer, ListMembershipsHandler(endpoints.Membership.ListAll))
		membershipAPI.POST("/officer/create", officer, CreateMembershipHandler(endpoints.Membership.Create))
		membershipAPI.PUT("/officer/verify/:membership_id", officer, VerifyMembershipHandler(endpoints.Membership.Verify))
		membershipAPI.GET("/officer/requirements", officer, RequirementsHandler(endpoints.Membership.Requirements))
		membershipAPI.PUT("/officer/requirements/:requirement", officer, UpdateRequirementHandler(endpoints.Membership.UpdateRequirement))
		membershipAPI.DELETE("/officer/requirements/:requirement", officer, ArchiveRequirementHandler(endpoints.Membership.ArchiveRequirement))
		membershipAPI.POST("/officer/requirement/create", officer, CreateRequirementHandler(endpoints.Membership.CreateRequirement))
		membershipAPI.POST("/officer/requirement/upload_qrcode", officer, UploadQRCodeHandler(endpoints.Membership.SetQRCode, uploads))
	}

	announcementsAPI := r.Group("/announcements")
	{
		announcementsAPI.GET("/", member, AnnouncementsHandler(endpoints.Announcements.List))
		announcementsAPI.GET("/officer/list", officer, AnnouncementsHandler(endpoints.Announcements.List))
		announcementsAPI.POST("/officer/create", officer, CreateAnnouncementHandler(endpoints.Announcements.Create, uploads))
		announcementsAPI.PUT("/officer/update/:announcement_id", officer, UpdateAnnouncementHandler(endpoints.Announcements.Update, uploads))
		announcementsAPI.DELETE("/officer/delete/:announcement_id", officer, ArchiveAnnouncementHandler(endpoints.Announcements.Archive))
	}

	officersAPI := r.Group("/officers")
	{
		officersAPI.POST("/login", OfficerLoginHandler(endpoints.Officers.Login))
		officersAPI.GET("/", officer, ListOfficersHandler(endpoints.Officers.List))
		officersAPI.POST("/", officer, CreateOfficerHandler(endpoints.Officers.Create))
		officersAPI.PUT("/update/:officer_id", officer, UpdateOfficerHandler(endpoints.Officers.Update))
		officersAPI.DELETE("/delete/:officer_id", officer, ArchiveOfficerHandler(endpoints.Officers.Archive))
		officersAPI.POST("/import", officer, ImportOfficersHandler(endpoints.Officers.Import))
	}

	analyticsAPI := r.Group("/analytics")
	{
		analyticsAPI.GET("/dashboard", officer, DashboardHandler(endpoints.Analytics.Dashboard))
	}
}
