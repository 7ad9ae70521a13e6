// Package analytics aggregates the officer dashboard figures.
package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	nexus "github.com/specs-nexus/nexus"
)

// ActiveWindow is how far back a member's last activity may lie for the
// member to count as active.
const ActiveWindow = 30 * 24 * time.Hour

type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

type RequirementYearStatus struct {
	Requirement string
	Year        string
	Status      nexus.PaymentStatus
	Count       int
}

type RequirementStatus struct {
	Requirement string
	Status      nexus.ClearanceStatus
	Count       int
}

type YearStatus struct {
	Year   string
	Status nexus.ClearanceStatus
	Count  int
}

type Repository interface {
	PaidMemberCount(ctx context.Context) (int, error)
	PaidMembersByRequirement(ctx context.Context) (map[string]int, error)
	ActivePaidMemberCount(ctx context.Context, since time.Time) (int, error)
	PaymentStatusCounts(ctx context.Context) (map[nexus.PaymentStatus]int, error)
	PaymentMethodCounts(ctx context.Context) ([]MethodCount, error)
	PaymentByRequirementAndYear(ctx context.Context) ([]RequirementYearStatus, error)
	ActiveEventsWithCounts(ctx context.Context) ([]nexus.Event, error)
	ClearancesByRequirementStatus(ctx context.Context) ([]RequirementStatus, error)
	ClearancesByYearStatus(ctx context.Context) ([]YearStatus, error)
}

type EventEngagement struct {
	Title             string  `json:"title"`
	ParticipantCount  int     `json:"participant_count"`
	ParticipationRate float64 `json:"participation_rate"`
}

type MembershipInsights struct {
	TotalPaidMembers     int            `json:"totalPaidMembers"`
	ActiveMembers        int            `json:"activeMembers"`
	InactiveMembers      int            `json:"inactiveMembers"`
	MembersByRequirement map[string]int `json:"membersByRequirement"`
}

type PaymentAnalytics struct {
	ByRequirementAndYear    map[string]map[string]map[string]int `json:"byRequirementAndYear"`
	NotPaid                 int                                  `json:"notPaid"`
	Verifying               int                                  `json:"verifying"`
	Paid                    int                                  `json:"paid"`
	PreferredPaymentMethods []MethodCount                        `json:"preferredPaymentMethods"`
}

type EventsEngagement struct {
	Events          []EventEngagement            `json:"events"`
	PopularEvents   []EventEngagement            `json:"popularEvents"`
	BreakdownByYear map[string][]EventEngagement `json:"breakdownByYear"`
}

type ClearanceTracking struct {
	ByRequirement    map[string]map[string]int `json:"byRequirement"`
	ComplianceByYear map[string]map[string]int `json:"complianceByYear"`
}

type Dashboard struct {
	MembershipInsights MembershipInsights `json:"membershipInsights"`
	PaymentAnalytics   PaymentAnalytics   `json:"paymentAnalytics"`
	EventsEngagement   EventsEngagement   `json:"eventsEngagement"`
	ClearanceTracking  ClearanceTracking  `json:"clearanceTracking"`
}

type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

func NewService(repo Repository) Service {
	log := zap.L().With(
		zap.String("service", "analytics"),
	)

	return &service{
		repo: repo,
		log:  log,
	}
}

type service struct {
	repo Repository
	log  *zap.Logger
}

func (svc *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	log := svc.log.With(
		zap.String("action", "dashboard"),
	)

	totalPaid, err := svc.repo.PaidMemberCount(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	byRequirement, err := svc.repo.PaidMembersByRequirement(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	active, err := svc.repo.ActivePaidMemberCount(ctx, time.Now().Add(-ActiveWindow))
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	statusCounts, err := svc.repo.PaymentStatusCounts(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	methods, err := svc.repo.PaymentMethodCounts(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	byReqYear, err := svc.repo.PaymentByRequirementAndYear(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	paymentBreakdown := make(map[string]map[string]map[string]int)
	for _, row := range byReqYear {
		year := row.Year
		if year == "" {
			year = "Unspecified"
		}

		if _, ok := paymentBreakdown[row.Requirement]; !ok {
			paymentBreakdown[row.Requirement] = make(map[string]map[string]int)
		}

		if _, ok := paymentBreakdown[row.Requirement][year]; !ok {
			paymentBreakdown[row.Requirement][year] = map[string]int{
				string(nexus.PaymentNotPaid):   0,
				string(nexus.PaymentVerifying): 0,
				string(nexus.PaymentPaid):      0,
			}
		}

		paymentBreakdown[row.Requirement][year][string(row.Status)] = row.Count
	}

	events, err := svc.repo.ActiveEventsWithCounts(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	engagement := make([]EventEngagement, 0, len(events))
	breakdownByYear := make(map[string][]EventEngagement)
	for _, event := range events {
		rate := 0.0
		if totalPaid > 0 {
			rate = math.Round(float64(event.ParticipantCount)/float64(totalPaid)*100*100) / 100
		}

		e := EventEngagement{
			Title:             event.Title,
			ParticipantCount:  event.ParticipantCount,
			ParticipationRate: rate,
		}

		engagement = append(engagement, e)

		year := event.Date.Format("2006")
		breakdownByYear[year] = append(breakdownByYear[year], e)
	}

	popular := make([]EventEngagement, len(engagement))
	copy(popular, engagement)
	sort.SliceStable(popular, func(i, j int) bool {
		return popular[i].ParticipantCount > popular[j].ParticipantCount
	})

	byReqStatus, err := svc.repo.ClearancesByRequirementStatus(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	tracking := make(map[string]map[string]int)
	for _, row := range byReqStatus {
		if _, ok := tracking[row.Requirement]; !ok {
			tracking[row.Requirement] = make(map[string]int)
		}

		tracking[row.Requirement][string(row.Status)] = row.Count
	}

	byYearStatus, err := svc.repo.ClearancesByYearStatus(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	compliance := make(map[string]map[string]int)
	for _, row := range byYearStatus {
		year := row.Year
		if year == "" {
			year = "Unspecified"
		}

		if _, ok := compliance[year]; !ok {
			compliance[year] = make(map[string]int)
		}

		compliance[year][string(row.Status)] = row.Count
	}

	log.Info("dashboard aggregated")

	return &Dashboard{
		MembershipInsights: MembershipInsights{
			TotalPaidMembers:     totalPaid,
			ActiveMembers:        active,
			InactiveMembers:      totalPaid - active,
			MembersByRequirement: byRequirement,
		},
		PaymentAnalytics: PaymentAnalytics{
			ByRequirementAndYear:    paymentBreakdown,
			NotPaid:                 statusCounts[nexus.PaymentNotPaid],
			Verifying:               statusCounts[nexus.PaymentVerifying],
			Paid:                    statusCounts[nexus.PaymentPaid],
			PreferredPaymentMethods: methods,
		},
		EventsEngagement: EventsEngagement{
			Events:          engagement,
			PopularEvents:   popular,
			BreakdownByYear: breakdownByYear,
		},
		ClearanceTracking: ClearanceTracking{
			ByRequirement:    tracking,
			ComplianceByYear: compliance,
		},
	}, nil
}
